package sim

import (
	"fmt"
	"math"
)

// Parameters holds the per-run SIR constants. Derived probabilities are
// computed on demand and never stored.
type Parameters struct {
	Beta  float64 // infection rate per infected neighbor (>= 0)
	Gamma float64 // recovery rate (>= 0)
	Dt    float64 // time step size (> 0)
}

// NewParameters returns validated Parameters.
func NewParameters(beta, gamma, dt float64) (Parameters, error) {
	p := Parameters{Beta: beta, Gamma: gamma, Dt: dt}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Validate rejects negative or non-finite rates and a non-positive dt.
func (p Parameters) Validate() error {
	if err := validateFinite("beta", p.Beta); err != nil {
		return err
	}
	if err := validateFinite("gamma", p.Gamma); err != nil {
		return err
	}
	if err := validateFinite("dt", p.Dt); err != nil {
		return err
	}
	if p.Beta < 0 {
		return fmt.Errorf("%w: beta must be non-negative, got %f", ErrInvalidParameter, p.Beta)
	}
	if p.Gamma < 0 {
		return fmt.Errorf("%w: gamma must be non-negative, got %f", ErrInvalidParameter, p.Gamma)
	}
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidParameter, p.Dt)
	}
	return nil
}

// InfectionProbabilityPerNeighbor is the chance that one Infected neighbor
// infects a Susceptible cell within a step: beta*dt clamped to [0,1].
func (p Parameters) InfectionProbabilityPerNeighbor() float64 {
	return clampProbability(p.Beta * p.Dt)
}

// RecoveryProbability is the chance an Infected cell recovers within a
// step: gamma*dt clamped to [0,1].
func (p Parameters) RecoveryProbability() float64 {
	return clampProbability(p.Gamma * p.Dt)
}

// InfectionProbability composes k independent exposures: 1-(1-p)^k.
// k <= 0 yields exactly 0.
func (p Parameters) InfectionProbability(k int) float64 {
	if k <= 0 {
		return 0
	}
	perNeighbor := p.InfectionProbabilityPerNeighbor()
	return clampProbability(1 - math.Pow(1-perNeighbor, float64(k)))
}

func clampProbability(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return v
}

func validateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %f", ErrInvalidParameter, name, v)
	}
	return nil
}
