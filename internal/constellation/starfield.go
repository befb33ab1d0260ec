package constellation

import (
	"math/rand/v2"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
)

// RandSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// NewSeededSource returns a deterministic source for the given seed.
// Seed 0 returns the process-wide random source.
func NewSeededSource(seed uint64) RandSource {
	if seed == 0 {
		return globalRand{}
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func generateStarfield(count int, width, height float64, rng RandSource) []models.Star {
	if rng == nil {
		rng = globalRand{}
	}
	stars := make([]models.Star, count)
	for i := range stars {
		stars[i] = models.Star{
			X:          rng.Float64() * width,
			Y:          rng.Float64() * height,
			Brightness: 0.2 + 0.8*rng.Float64(),
			Size:       0.5 + 1.5*rng.Float64(),
		}
	}
	return stars
}
