// Package bubble owns the noise-deformed sphere: a fixed-topology mesh whose
// vertex radii are recomputed from a noise field every frame.
package bubble

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/noise"
)

const (
	DefaultWidthSegments  uint32 = 64
	DefaultHeightSegments uint32 = 64

	// Below this many vertices a frame is deformed on the calling goroutine.
	parallelThreshold = 2048
)

// Dispatcher splits [0, n) into contiguous ranges, runs fn on each and
// returns once every range has completed.
type Dispatcher interface {
	ParallelFor(n int, fn func(start, end int)) error
}

type Bubble struct {
	preset Preset
	field  noise.Field

	vertices []math.Vertex3D
	indices  []uint32
	// Unit direction of every vertex, captured at creation. Deformation
	// always starts from these so nothing accumulates across frames.
	directions []mgl32.Vec3

	Transform *math.Transform

	time      float64
	scaleTime float64
	dirty     bool

	dispatcher Dispatcher
}

// New builds the sphere mesh and binds it to a noise field.
func New(preset Preset, field noise.Field, widthSegments, heightSegments uint32) (*Bubble, error) {
	if field == nil {
		return nil, fmt.Errorf("bubble: noise field is required")
	}
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	vertices, indices := math.GenerateSphere(1, widthSegments, heightSegments)
	directions := make([]mgl32.Vec3, len(vertices))
	for i := range vertices {
		directions[i] = math.NormalizeSafe(vertices[i].Position)
	}

	b := &Bubble{
		preset:     preset,
		field:      field,
		vertices:   vertices,
		indices:    indices,
		directions: directions,
		Transform:  math.TransformCreate(),
	}
	b.Deform(0)
	core.LogDebug("bubble created: preset=%s vertices=%d triangles=%d seed=%d",
		preset.Name, len(vertices), len(indices)/3, field.Seed())
	return b, nil
}

func (b *Bubble) SetDispatcher(d Dispatcher) {
	b.dispatcher = d
}

func (b *Bubble) Preset() Preset {
	return b.preset
}

// SetPreset swaps the motion parameters. Topology and accumulated rotation
// are kept.
func (b *Bubble) SetPreset(p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	b.preset = p
	if !p.BreathingEnabled() {
		b.scaleTime = 0
		b.Transform.SetUniformScale(1)
	}
	return nil
}

func (b *Bubble) Field() noise.Field {
	return b.field
}

func (b *Bubble) SetField(f noise.Field) {
	if f != nil {
		b.field = f
	}
}

func (b *Bubble) Vertices() []math.Vertex3D {
	return b.vertices
}

func (b *Bubble) Indices() []uint32 {
	return b.indices
}

// Direction returns the canonical unit direction of vertex i.
func (b *Bubble) Direction(i int) mgl32.Vec3 {
	return b.directions[i]
}

// Time is the logical noise time used by the last deformation.
func (b *Bubble) Time() float64 {
	return b.time
}

// IsDirty reports whether positions changed since the last upload.
func (b *Bubble) IsDirty() bool {
	return b.dirty
}

func (b *Bubble) ClearDirty() {
	b.dirty = false
}

// ScaleFactor is the radius a vertex with unit direction dir takes at time.
func (b *Bubble) ScaleFactor(dir mgl32.Vec3, time float64) float64 {
	p := b.preset
	x := float64(dir.X()) * p.Radius
	y := float64(dir.Y()) * p.Radius
	z := float64(dir.Z()) * p.Radius

	n := b.field.Noise3(x+time, y+time, z+time)
	s := p.Radius + p.NoiseAmplitude*n
	if p.WobbleEnabled() {
		s += p.WobbleAmplitude * gomath.Sin(time+x*p.WobbleFrequency)
	}
	return s
}

// Update advances one frame: delta is seconds since the previous frame and
// nowMS the high-resolution clock in milliseconds.
func (b *Bubble) Update(delta, nowMS float64) error {
	if err := b.Deform(nowMS * b.preset.TimeScale); err != nil {
		return err
	}

	r := float32(delta * b.preset.RotationSpeed)
	b.Transform.Rotate(mgl32.Vec3{r, r, 0})

	if b.preset.BreathingEnabled() {
		b.scaleTime += delta * b.preset.BreathingRate
		b.Transform.SetUniformScale(float32(1 + gomath.Sin(b.scaleTime)*b.preset.BreathingAmplitude))
	}
	return nil
}

// Deform recomputes every vertex position for the given noise time, then
// the smooth normals. Vertex ranges may run in parallel; normals only start
// after all of them finished.
func (b *Bubble) Deform(time float64) error {
	b.time = time
	n := len(b.vertices)
	if b.dispatcher != nil && n >= parallelThreshold {
		if err := b.dispatcher.ParallelFor(n, func(start, end int) {
			b.deformRange(start, end, time)
		}); err != nil {
			return err
		}
	} else {
		b.deformRange(0, n, time)
	}
	math.GeometryGenerateNormals(b.vertices, b.indices)
	b.dirty = true
	return nil
}

func (b *Bubble) deformRange(start, end int, time float64) {
	for i := start; i < end; i++ {
		dir := b.directions[i]
		s := b.ScaleFactor(dir, time)
		b.vertices[i].Position = dir.Mul(float32(s))
	}
}
