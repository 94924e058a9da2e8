// Package noise provides seeded, deterministic 3D coherent noise fields.
package noise

import (
	"fmt"
	"strings"
	"time"

	"github.com/spaghettifunk/bubble/engine/core"
	"golang.org/x/exp/rand"
)

// Field is a pure 3D noise function. Values lie in [-1, 1] and the same
// input always yields the same output for the lifetime of the field.
// Implementations must be safe for concurrent use.
type Field interface {
	Noise3(x, y, z float64) float64
	Seed() int64
}

type Kind string

const (
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
)

// Options tune a field. The zero value selects one octave of Perlin noise.
type Options struct {
	Kind    Kind
	Octaves int32
}

// New builds a field of the given kind from an explicit seed.
func New(seed int64, opts Options) (Field, error) {
	kind := Kind(strings.ToLower(string(opts.Kind)))
	if kind == "" {
		kind = KindPerlin
	}
	switch kind {
	case KindPerlin:
		return newPerlin(seed, opts.Octaves), nil
	case KindSimplex:
		return newSimplex(seed), nil
	default:
		return nil, fmt.Errorf("noise kind %q: %w", opts.Kind, core.ErrUnknownNoise)
	}
}

// NewSeed draws a fresh seed from the wall clock. Use it when the caller
// does not care about reproducing a run.
func NewSeed() int64 {
	r := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	seed := r.Int63()
	if seed == 0 {
		seed = 1
	}
	return seed
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
