package noise

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/bubble/engine/core"
)

func TestFieldDeterministic(t *testing.T) {
	for _, kind := range []Kind{KindPerlin, KindSimplex} {
		t.Run(string(kind), func(t *testing.T) {
			a, err := New(42, Options{Kind: kind})
			if err != nil {
				t.Fatal(err)
			}
			b, _ := New(42, Options{Kind: kind})
			if a.Seed() != 42 {
				t.Fatalf("seed = %d", a.Seed())
			}
			for i := 0; i < 200; i++ {
				x, y, z := float64(i)*0.137, float64(i)*-0.291, float64(i)*0.073
				first := a.Noise3(x, y, z)
				if again := a.Noise3(x, y, z); again != first {
					t.Fatalf("same field returned %v then %v", first, again)
				}
				if other := b.Noise3(x, y, z); other != first {
					t.Fatalf("same seed returned %v and %v", first, other)
				}
			}
		})
	}
}

func TestFieldBounded(t *testing.T) {
	for _, kind := range []Kind{KindPerlin, KindSimplex} {
		f, _ := New(7, Options{Kind: kind, Octaves: 3})
		for i := 0; i < 2000; i++ {
			v := f.Noise3(float64(i)*0.31, float64(i%17)*0.7, float64(i%5)*1.3)
			if v < -1 || v > 1 {
				t.Fatalf("%s produced %v", kind, v)
			}
		}
	}
}

func TestFieldSeedsDiffer(t *testing.T) {
	a, _ := New(1, Options{Kind: KindSimplex})
	b, _ := New(2, Options{Kind: KindSimplex})
	same := true
	for i := 0; i < 50 && same; i++ {
		x := 0.5 + float64(i)*0.21
		same = a.Noise3(x, x*0.5, x*0.25) == b.Noise3(x, x*0.5, x*0.25)
	}
	if same {
		t.Fatal("different seeds should produce different fields")
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := New(1, Options{Kind: "worley"})
	if !errors.Is(err, core.ErrUnknownNoise) {
		t.Fatalf("expected ErrUnknownNoise, got %v", err)
	}
	if f, err := New(1, Options{}); err != nil || f == nil {
		t.Fatalf("zero options should default to perlin: %v", err)
	}
}

func TestNewSeedNonZero(t *testing.T) {
	if NewSeed() == 0 {
		t.Fatal("seed must not be zero")
	}
}
