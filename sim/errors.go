package sim

import "errors"

// Sentinel errors returned by the core. Callers match them with errors.Is;
// returned errors wrap them with the offending values.
var (
	// ErrInvalidDimension is returned when a grid is created with a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("invalid grid dimension")

	// ErrOutOfBounds is returned for coordinates outside [0,H)x[0,W).
	// The engine never produces one; seeing it means the caller's
	// coordinate math is wrong.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidParameter is returned for negative beta or gamma,
	// non-positive dt, or non-finite values.
	ErrInvalidParameter = errors.New("invalid simulation parameter")

	// ErrInvalidInitialState is returned when a grid is seeded with a
	// state other than Susceptible or Infected.
	ErrInvalidInitialState = errors.New("invalid initial cell state")

	// ErrConservation is returned by the run loop when S+I+R no longer
	// equals the grid size after a step.
	ErrConservation = errors.New("population not conserved")
)
