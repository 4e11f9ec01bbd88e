// Package trace records the epidemic curve of a run and writes it as CSV.
// It stores plain data types and does not import sim.
package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// StepRecord is the population snapshot after one step.
// Step 0 is the initial grid.
type StepRecord struct {
	Step        int64
	Time        float64 // Step * dt
	Susceptible int
	Infected    int
	Recovered   int
}

// Total is S+I+R.
func (r StepRecord) Total() int {
	return r.Susceptible + r.Infected + r.Recovered
}

// csvColumns is the header row written by WriteCSV.
var csvColumns = []string{"step", "time", "susceptible", "infected", "recovered"}

// WriteCSV writes the header and one row per record.
func (et *EpidemicTrace) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range et.Records {
		row := []string{
			strconv.FormatInt(r.Step, 10),
			strconv.FormatFloat(r.Time, 'g', -1, 64),
			strconv.Itoa(r.Susceptible),
			strconv.Itoa(r.Infected),
			strconv.Itoa(r.Recovered),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for step %d: %w", r.Step, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the trace to path, truncating any existing file.
func (et *EpidemicTrace) SaveCSV(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing trace file: %w", closeErr)
		}
	}()
	return et.WriteCSV(f)
}
