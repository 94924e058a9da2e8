package noise

import "github.com/aquilax/go-perlin"

const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
)

type perlinField struct {
	seed int64
	p    *perlin.Perlin
}

func newPerlin(seed int64, octaves int32) *perlinField {
	if octaves < 1 {
		octaves = 1
	}
	return &perlinField{
		seed: seed,
		p:    perlin.NewPerlin(perlinAlpha, perlinBeta, octaves, seed),
	}
}

func (f *perlinField) Noise3(x, y, z float64) float64 {
	return clampUnit(f.p.Noise3D(x, y, z))
}

func (f *perlinField) Seed() int64 {
	return f.seed
}
