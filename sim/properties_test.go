package sim

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomRun builds a grid from the generated inputs and returns it with a
// seeded step source.
func randomRun(width, height int, ratio float64, seed int64) (*Grid, *rand.Rand) {
	init, err := RandomInitializer(rand.New(rand.NewSource(seed)), ratio)
	if err != nil {
		panic(err)
	}
	g, err := NewGrid(width, height, init)
	if err != nil {
		panic(err)
	}
	return g, rand.New(rand.NewSource(seed ^ 0x5eed))
}

// TestStepInvariants checks the population and transition invariants over
// randomly generated grids and parameters.
func TestStepInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.Rng.Seed(1234)

	properties := gopter.NewProperties(parameters)

	// Property 1: S+I+R == W*H before and after every step
	properties.Property("population is conserved", prop.ForAll(
		func(width, height int, ratio, beta, gamma float64, seed int64) bool {
			g, rng := randomRun(width, height, ratio, seed)
			p := Parameters{Beta: beta, Gamma: gamma, Dt: 1}
			for i := 0; i < 5; i++ {
				if g.Counts().Total() != width*height {
					return false
				}
				next, err := Step(g, p, rng)
				if err != nil {
					return false
				}
				g = next
			}
			return g.Counts().Total() == width*height
		},
		gen.IntRange(1, 15),
		gen.IntRange(1, 15),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 2),
		gen.Float64Range(0, 1),
		gen.Int64(),
	))

	// Property 2: every cell follows only S->S, S->I, I->I, I->R, R->R
	properties.Property("transitions are monotone and recovered is terminal", prop.ForAll(
		func(width, height int, ratio, beta, gamma float64, seed int64) bool {
			g, rng := randomRun(width, height, ratio, seed)
			p := Parameters{Beta: beta, Gamma: gamma, Dt: 1}
			for i := 0; i < 6; i++ {
				next, err := Step(g, p, rng)
				if err != nil {
					return false
				}
				for idx := range g.cells {
					if !CanTransition(g.cells[idx], next.cells[idx]) {
						return false
					}
					if g.cells[idx] == Recovered && next.cells[idx] != Recovered {
						return false
					}
				}
				g = next
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 12),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 2),
		gen.Float64Range(0, 1),
		gen.Int64(),
	))

	// Property 3: a susceptible cell with no infected neighbors stays susceptible
	properties.Property("no exposure means no infection", prop.ForAll(
		func(width, height int, ratio, beta float64, seed int64) bool {
			g, rng := randomRun(width, height, ratio, seed)
			next, err := Step(g, Parameters{Beta: beta, Gamma: 0.5, Dt: 1}, rng)
			if err != nil {
				return false
			}
			for r := 0; r < height; r++ {
				for c := 0; c < width; c++ {
					idx := g.index(r, c)
					if g.cells[idx] == Susceptible && g.InfectedNeighbors(r, c) == 0 && next.cells[idx] != Susceptible {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 12),
		gen.Float64Range(0, 0.3),
		gen.Float64Range(0, 5),
		gen.Int64(),
	))

	// Property 4: with recovery probability 1 every cell is infected at most
	// once for one step, so the epidemic ends within W*H steps
	properties.Property("epidemic terminates when recovery is certain", prop.ForAll(
		func(width, height int, ratio, beta float64, seed int64) bool {
			g, rng := randomRun(width, height, ratio, seed)
			p := Parameters{Beta: beta, Gamma: 1, Dt: 1}
			for i := 0; i <= width*height; i++ {
				if g.Count(Infected) == 0 {
					return true
				}
				next, err := Step(g, p, rng)
				if err != nil {
					return false
				}
				g = next
			}
			return g.Count(Infected) == 0
		},
		gen.IntRange(1, 10),
		gen.IntRange(1, 10),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// TestInfectionProbabilityProperties checks the composed exposure probability.
func TestInfectionProbabilityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("zero exposures give zero probability", prop.ForAll(
		func(beta, dt float64) bool {
			return Parameters{Beta: beta, Gamma: 0, Dt: dt}.InfectionProbability(0) == 0
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(0.001, 10),
	))

	properties.Property("non-decreasing in k and bounded by one", prop.ForAll(
		func(beta, dt float64) bool {
			p := Parameters{Beta: beta, Gamma: 0, Dt: dt}
			prev := 0.0
			for k := 0; k <= 8; k++ {
				v := p.InfectionProbability(k)
				if v < prev || v < 0 || v > 1 {
					return false
				}
				prev = v
			}
			return true
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(0.001, 10),
	))

	properties.Property("derived probabilities stay in [0,1]", prop.ForAll(
		func(beta, gamma, dt float64) bool {
			p := Parameters{Beta: beta, Gamma: gamma, Dt: dt}
			pi, pr := p.InfectionProbabilityPerNeighbor(), p.RecoveryProbability()
			return pi >= 0 && pi <= 1 && pr >= 0 && pr <= 1
		},
		gen.Float64Range(0, 1000),
		gen.Float64Range(0, 1000),
		gen.Float64Range(0.0001, 100),
	))

	properties.TestingRun(t)
}
