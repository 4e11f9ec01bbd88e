package sim

import "fmt"

// RandomInitializer marks each cell Infected with probability infectedRatio,
// drawing once per cell in the row-major order NewGrid visits them.
func RandomInitializer(rng Source, infectedRatio float64) (Initializer, error) {
	if err := validateFinite("infected ratio", infectedRatio); err != nil {
		return nil, err
	}
	if infectedRatio < 0 || infectedRatio > 1 {
		return nil, fmt.Errorf("%w: infected ratio must be in [0,1], got %f", ErrInvalidParameter, infectedRatio)
	}
	return func(_, _ int) HealthState {
		if rng.Float64() < infectedRatio {
			return Infected
		}
		return Susceptible
	}, nil
}

// CenterInitializer infects only the middle cell, rounding down on even sides.
func CenterInitializer(width, height int) Initializer {
	cr, cc := height/2, width/2
	return func(row, col int) HealthState {
		if row == cr && col == cc {
			return Infected
		}
		return Susceptible
	}
}

// CoordsInitializer infects exactly the listed coordinates.
func CoordsInitializer(infected ...Coord) Initializer {
	set := make(map[Coord]bool, len(infected))
	for _, c := range infected {
		set[c] = true
	}
	return func(row, col int) HealthState {
		if set[Coord{Row: row, Col: col}] {
			return Infected
		}
		return Susceptible
	}
}
