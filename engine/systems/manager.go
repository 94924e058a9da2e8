package systems

import (
	"runtime"

	"github.com/spaghettifunk/bubble/engine/renderer"
)

type SystemManagerConfig struct {
	// Worker goroutines for per-vertex work. 0 means one per CPU, 1 runs
	// everything on the calling goroutine.
	Workers   int
	CameraFOV float32
	Near      float32
	Far       float32
}

type SystemManager struct {
	cameraSystem   *CameraSystem
	geometrySystem *GeometrySystem
	jobSystem      *JobSystem
}

func NewSystemManager(config SystemManagerConfig, r *renderer.Renderer) (*SystemManager, error) {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var js *JobSystem
	if workers > 1 {
		var err error
		if js, err = NewJobSystem(workers, workers*2); err != nil {
			return nil, err
		}
	}

	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 8,
		FOV:            config.CameraFOV,
		Near:           config.Near,
		Far:            config.Far,
	})
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{
		MaxGeometryCount: 16,
	}, r)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		cameraSystem:   cs,
		geometrySystem: gs,
		jobSystem:      js,
	}, nil
}

func (sm *SystemManager) CameraSystem() *CameraSystem {
	return sm.cameraSystem
}

func (sm *SystemManager) GeometrySystem() *GeometrySystem {
	return sm.geometrySystem
}

// JobSystem is nil when the manager runs single threaded.
func (sm *SystemManager) JobSystem() *JobSystem {
	return sm.jobSystem
}

// Shutdown stops the systems in reverse creation order.
func (sm *SystemManager) Shutdown() error {
	if err := sm.geometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.cameraSystem.Shutdown(); err != nil {
		return err
	}
	if sm.jobSystem != nil {
		if err := sm.jobSystem.Shutdown(); err != nil {
			return err
		}
	}
	return nil
}
