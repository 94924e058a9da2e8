package core

import (
	"sync"

	"github.com/spaghettifunk/bubble/engine/containers"
)

const AVG_COUNT int = 30

type MetricsState struct {
	samples            *containers.RingQueue[float64]
	sum                float64
	MSavg              float64
	Frames             int32
	TotalFrames        uint64
	AccumulatedFrameMS float64
	FPS                float64
}

var metricsMu sync.Mutex
var metricsState *MetricsState = nil

// MetricsInitialize resets the rolling frame statistics.
func MetricsInitialize() error {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	metricsState = &MetricsState{
		samples: containers.NewRingQueue[float64](AVG_COUNT),
	}
	return nil
}

// MetricsUpdate records one frame that took frameElapsedTime seconds.
func MetricsUpdate(frameElapsedTime float64) {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metricsState == nil {
		return
	}
	ms := metricsState

	frameMS := frameElapsedTime * 1000.0
	if old, evicted := ms.samples.Push(frameMS); evicted {
		ms.sum -= old
	}
	ms.sum += frameMS
	ms.MSavg = ms.sum / float64(ms.samples.Len())

	ms.AccumulatedFrameMS += frameMS
	ms.Frames++
	ms.TotalFrames++
	if ms.AccumulatedFrameMS >= 1000 {
		ms.FPS = float64(ms.Frames) * 1000.0 / ms.AccumulatedFrameMS
		ms.AccumulatedFrameMS = 0
		ms.Frames = 0
	}
}

func MetricsFPS() float64 {
	fps, _ := MetricsFrame()
	return fps
}

func MetricsFrameTime() float64 {
	_, avg := MetricsFrame()
	return avg
}

func MetricsTotalFrames() uint64 {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metricsState == nil {
		return 0
	}
	return metricsState.TotalFrames
}

// MetricsFrame returns the last whole-second FPS and the rolling average
// frame time in milliseconds.
func MetricsFrame() (float64, float64) {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metricsState == nil {
		return 0, 0
	}
	return metricsState.FPS, metricsState.MSavg
}
