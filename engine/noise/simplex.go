package noise

import "github.com/ojrac/opensimplex-go"

type simplexField struct {
	seed  int64
	noise opensimplex.Noise
}

func newSimplex(seed int64) *simplexField {
	return &simplexField{
		seed:  seed,
		noise: opensimplex.New(seed),
	}
}

func (f *simplexField) Noise3(x, y, z float64) float64 {
	return clampUnit(f.noise.Eval3(x, y, z))
}

func (f *simplexField) Seed() int64 {
	return f.seed
}
