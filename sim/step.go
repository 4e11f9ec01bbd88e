// sim/step.go
package sim

import (
	"errors"
	"fmt"
)

// Source is the randomness consumed by the step engine. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// maxNeighbors is the size of an unclipped Moore neighborhood.
const maxNeighbors = 8

// transitionTable holds the per-step probabilities derived from Parameters
// for a single Step call. infect[k] is the composed probability for k
// infected neighbors.
type transitionTable struct {
	recover float64
	infect  [maxNeighbors + 1]float64
}

func newTransitionTable(p Parameters) transitionTable {
	t := transitionTable{recover: p.RecoveryProbability()}
	for k := range t.infect {
		t.infect[k] = p.InfectionProbability(k)
	}
	return t
}

// Step computes the next generation of g. Every cell's next state depends
// only on g; g itself is left untouched. Cells are visited row-major and
// consume one draw from rng per Infected cell and one per Susceptible cell
// with at least one Infected neighbor.
func Step(g *Grid, p Parameters, rng Source) (*Grid, error) {
	if err := checkStepInputs(g, p); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("step: nil random source")
	}
	next, err := newBlankGrid(g.width, g.height)
	if err != nil {
		return nil, err
	}
	stepRows(g, next, newTransitionTable(p), rng, 0, g.height)
	return next, nil
}

func checkStepInputs(g *Grid, p Parameters) error {
	if g == nil {
		return errors.New("step: nil grid")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("step: %w", err)
	}
	return nil
}

// stepRows advances rows [rowStart, rowEnd) of cur into next.
func stepRows(cur, next *Grid, t transitionTable, rng Source, rowStart, rowEnd int) {
	for r := rowStart; r < rowEnd; r++ {
		for c := 0; c < cur.width; c++ {
			idx := cur.index(r, c)
			next.cells[idx] = nextState(cur, r, c, t, rng)
		}
	}
}

// nextState applies the transition rules to one cell. An illegal edge is a
// programming error and panics.
func nextState(cur *Grid, row, col int, t transitionTable, rng Source) HealthState {
	from := cur.cells[cur.index(row, col)]
	var to HealthState
	switch from {
	case Recovered:
		to = Recovered
	case Infected:
		to = Infected
		if rng.Float64() < t.recover {
			to = Recovered
		}
	case Susceptible:
		to = Susceptible
		if k := cur.InfectedNeighbors(row, col); k > 0 && rng.Float64() < t.infect[k] {
			to = Infected
		}
	default:
		panic(fmt.Sprintf("unknown health state %d at (%d,%d)", from, row, col))
	}
	if !CanTransition(from, to) {
		panic(fmt.Sprintf("illegal transition %v -> %v at (%d,%d)", from, to, row, col))
	}
	return to
}
