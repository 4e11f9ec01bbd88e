// Tracks population counts over the course of a run and reports them.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// PopulationStats holds how many agents are in each state.
type PopulationStats struct {
	Susceptible int `json:"susceptible"`
	Infected    int `json:"infected"`
	Recovered   int `json:"recovered"`
}

// Total is S+I+R; it must equal the grid size.
func (p PopulationStats) Total() int {
	return p.Susceptible + p.Infected + p.Recovered
}

// Get returns the count for s.
func (p PopulationStats) Get(s HealthState) int {
	switch s {
	case Susceptible:
		return p.Susceptible
	case Infected:
		return p.Infected
	case Recovered:
		return p.Recovered
	}
	return 0
}

// Metrics aggregates the epidemic curve of a run for final reporting.
type Metrics struct {
	History      []PopulationStats // index = step; History[0] is the initial grid
	PeakInfected int
	PeakStep     int64
	Population   int
}

// NewMetrics creates an empty Metrics for a grid of the given size.
func NewMetrics(population int) *Metrics {
	return &Metrics{
		History:    make([]PopulationStats, 0),
		Population: population,
	}
}

// Record appends the counts for the next step.
func (m *Metrics) Record(stats PopulationStats) {
	step := int64(len(m.History))
	m.History = append(m.History, stats)
	if stats.Infected > m.PeakInfected {
		m.PeakInfected = stats.Infected
		m.PeakStep = step
	}
}

// Steps is the number of steps taken after the initial record.
func (m *Metrics) Steps() int64 {
	if len(m.History) == 0 {
		return 0
	}
	return int64(len(m.History) - 1)
}

// Final returns the last recorded counts.
func (m *Metrics) Final() PopulationStats {
	if len(m.History) == 0 {
		return PopulationStats{}
	}
	return m.History[len(m.History)-1]
}

// AttackRate is the fraction of the population that has been infected at
// some point: (N - S_final) / N.
func (m *Metrics) AttackRate() float64 {
	if m.Population == 0 {
		return 0
	}
	return float64(m.Population-m.Final().Susceptible) / float64(m.Population)
}

// Print writes a human-readable summary.
func (m *Metrics) Print(w io.Writer) {
	final := m.Final()
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Population           : %d\n", m.Population)
	fmt.Fprintf(w, "Steps                : %d\n", m.Steps())
	fmt.Fprintf(w, "Peak Infected        : %d (step %d)\n", m.PeakInfected, m.PeakStep)
	fmt.Fprintf(w, "Final S/I/R          : %d / %d / %d\n", final.Susceptible, final.Infected, final.Recovered)
	fmt.Fprintf(w, "Attack Rate          : %.4f\n", m.AttackRate())
}

// MetricsOutput is the JSON document written by SaveResults.
type MetricsOutput struct {
	RunID               string          `json:"run_id"`
	Seed                int64           `json:"seed"`
	Width               int             `json:"width"`
	Height              int             `json:"height"`
	Beta                float64         `json:"beta"`
	Gamma               float64         `json:"gamma"`
	Dt                  float64         `json:"dt"`
	Steps               int64           `json:"steps"`
	SimulatedTime       float64         `json:"simulated_time"`
	PeakInfected        int             `json:"peak_infected"`
	PeakStep            int64           `json:"peak_step"`
	Final               PopulationStats `json:"final"`
	AttackRate          float64         `json:"attack_rate"`
	SimulationDurationS float64         `json:"simulation_duration_s"` // wall clock, not deterministic
}

// RunInfo identifies the run a MetricsOutput describes.
type RunInfo struct {
	RunID  string
	Seed   int64
	Width  int
	Height int
	Params Parameters
}

// Output builds the JSON document for this run.
func (m *Metrics) Output(info RunInfo, startTime time.Time) MetricsOutput {
	return MetricsOutput{
		RunID:               info.RunID,
		Seed:                info.Seed,
		Width:               info.Width,
		Height:              info.Height,
		Beta:                info.Params.Beta,
		Gamma:               info.Params.Gamma,
		Dt:                  info.Params.Dt,
		Steps:               m.Steps(),
		SimulatedTime:       float64(m.Steps()) * info.Params.Dt,
		PeakInfected:        m.PeakInfected,
		PeakStep:            m.PeakStep,
		Final:               m.Final(),
		AttackRate:          m.AttackRate(),
		SimulationDurationS: time.Since(startTime).Seconds(),
	}
}

// SaveResults writes the run's MetricsOutput as indented JSON to
// outputPath, or to stdout when outputPath is empty.
func (m *Metrics) SaveResults(info RunInfo, startTime time.Time, outputPath string) error {
	data, err := json.MarshalIndent(m.Output(info, startTime), "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling metrics: %w", err)
	}
	if outputPath == "" {
		fmt.Println("=== Simulation Results ===")
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", outputPath, err)
	}
	logrus.Infof("Metrics written to: %s", outputPath)
	return nil
}
