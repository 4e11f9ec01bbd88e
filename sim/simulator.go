// sim/simulator.go
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/gridsir/sim/trace"
)

// StepObserver is notified after every recorded step, including step 0.
type StepObserver interface {
	ObserveStep(step int64, stats PopulationStats, elapsed time.Duration)
}

// Simulator owns the current grid and drives Step until the epidemic ends.
type Simulator struct {
	Grid      *Grid
	Params    Parameters
	RNG       *PartitionedRNG
	Horizon   int64
	TileRows  int
	StepCount int64
	Metrics   *Metrics
	Trace     *trace.EpidemicTrace
	Observers []StepObserver
}

// NewSimulator validates cfg, seeds the initial grid and records step 0.
func NewSimulator(cfg SimConfig) (*Simulator, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Horizon < 0 {
		return nil, fmt.Errorf("%w: horizon must be non-negative, got %d", ErrInvalidParameter, cfg.Horizon)
	}
	if cfg.TileRows < 0 {
		return nil, fmt.Errorf("%w: tile rows must be non-negative, got %d", ErrInvalidDimension, cfg.TileRows)
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	grid, err := seedGrid(cfg.GridConfig, rng)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		Grid:     grid,
		Params:   cfg.Params,
		RNG:      rng,
		Horizon:  cfg.Horizon,
		TileRows: cfg.TileRows,
		Metrics:  NewMetrics(grid.Size()),
		Trace:    trace.NewEpidemicTrace(trace.TraceConfig{Level: trace.TraceLevelNone}),
	}
	if cfg.TileRows > grid.height {
		logrus.Warnf("tile rows %d exceeds grid height %d; stepping runs as a single band", cfg.TileRows, grid.height)
	}
	s.Metrics.Record(grid.Counts())
	return s, nil
}

func seedGrid(cfg GridConfig, rng *PartitionedRNG) (*Grid, error) {
	switch {
	case len(cfg.Pattern) > 0:
		return ParseGrid(cfg.Pattern)
	case cfg.SeedCenter:
		return NewGrid(cfg.Width, cfg.Height, CenterInitializer(cfg.Width, cfg.Height))
	default:
		init, err := RandomInitializer(rng.ForSubsystem(SubsystemInit), cfg.InfectedRatio)
		if err != nil {
			return nil, err
		}
		return NewGrid(cfg.Width, cfg.Height, init)
	}
}

// AddObserver registers o and immediately reports the current counts to it.
func (s *Simulator) AddObserver(o StepObserver) {
	s.Observers = append(s.Observers, o)
	o.ObserveStep(s.StepCount, s.Grid.Counts(), 0)
}

// SetTrace replaces the trace and records the current counts into it.
func (s *Simulator) SetTrace(t *trace.EpidemicTrace) {
	s.Trace = t
	s.recordTrace(s.Grid.Counts())
}

// Done reports whether no Infected cells remain.
func (s *Simulator) Done() bool {
	return s.Grid.Count(Infected) == 0
}

// Step advances the simulation by one generation.
func (s *Simulator) Step() error {
	start := time.Now()
	var next *Grid
	var err error
	if s.TileRows > 0 {
		next, err = StepTiled(s.Grid, s.Params, s.RNG, s.TileRows)
	} else {
		next, err = Step(s.Grid, s.Params, s.RNG.ForSubsystem(SubsystemStep))
	}
	if err != nil {
		return fmt.Errorf("step %d: %w", s.StepCount+1, err)
	}

	stats := next.Counts()
	if stats.Total() != next.Size() {
		return fmt.Errorf("step %d: %w: S+I+R=%d, grid size %d", s.StepCount+1, ErrConservation, stats.Total(), next.Size())
	}

	s.Grid = next
	s.StepCount++
	elapsed := time.Since(start)

	s.Metrics.Record(stats)
	s.recordTrace(stats)
	for _, o := range s.Observers {
		o.ObserveStep(s.StepCount, stats, elapsed)
	}
	logrus.Debugf("[step %06d] S=%d I=%d R=%d", s.StepCount, stats.Susceptible, stats.Infected, stats.Recovered)
	return nil
}

func (s *Simulator) recordTrace(stats PopulationStats) {
	s.Trace.Record(trace.StepRecord{
		Step:        s.StepCount,
		Time:        float64(s.StepCount) * s.Params.Dt,
		Susceptible: stats.Susceptible,
		Infected:    stats.Infected,
		Recovered:   stats.Recovered,
	})
}

// Run steps until no Infected remain or the horizon is reached. ctx is
// checked between steps; on cancellation Run returns ctx.Err() with the
// state of the last completed step intact.
func (s *Simulator) Run(ctx context.Context) error {
	w, h := s.Grid.Dimensions()
	logrus.Infof("Starting simulation on %dx%d grid, beta=%v gamma=%v dt=%v, %d initially infected",
		w, h, s.Params.Beta, s.Params.Gamma, s.Params.Dt, s.Grid.Count(Infected))
	if s.Done() {
		logrus.Warnf("No infected cells at step 0; nothing to simulate")
	}

	for !s.Done() {
		if s.Horizon > 0 && s.StepCount >= s.Horizon {
			logrus.Infof("[step %06d] Horizon reached with %d infected", s.StepCount, s.Grid.Count(Infected))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	logrus.Infof("[step %06d] Infection has died out", s.StepCount)
	return nil
}
