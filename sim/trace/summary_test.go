package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	et := NewEpidemicTrace(TraceConfig{Level: TraceLevelSteps})

	// WHEN summarized
	summary := Summarize(et)

	// THEN all fields are zero
	if *summary != (TraceSummary{}) {
		t.Errorf("expected zero summary, got %+v", *summary)
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	if s := Summarize(nil); *s != (TraceSummary{}) {
		t.Errorf("expected zero summary, got %+v", *s)
	}
}

func TestSummarize_PopulatedTrace_FindsPeak(t *testing.T) {
	// GIVEN a rise-and-fall curve over a population of 25
	et := NewEpidemicTrace(TraceConfig{Level: TraceLevelSteps})
	et.Record(StepRecord{Step: 0, Time: 0, Susceptible: 24, Infected: 1, Recovered: 0})
	et.Record(StepRecord{Step: 1, Time: 0.5, Susceptible: 16, Infected: 8, Recovered: 1})
	et.Record(StepRecord{Step: 2, Time: 1.0, Susceptible: 0, Infected: 16, Recovered: 9})
	et.Record(StepRecord{Step: 3, Time: 1.5, Susceptible: 0, Infected: 0, Recovered: 25})

	// WHEN summarized
	s := Summarize(et)

	// THEN the peak, duration and final counts are reported
	if s.PeakInfected != 16 || s.PeakStep != 2 || s.PeakTime != 1.0 {
		t.Errorf("peak = (%d, step %d, t=%v), want (16, step 2, t=1)", s.PeakInfected, s.PeakStep, s.PeakTime)
	}
	if s.Steps != 3 {
		t.Errorf("Steps = %d, want 3", s.Steps)
	}
	if s.Duration != 1.5 {
		t.Errorf("Duration = %v, want 1.5", s.Duration)
	}
	if s.FinalRecovered != 25 || s.Population != 25 {
		t.Errorf("final recovered/population = %d/%d, want 25/25", s.FinalRecovered, s.Population)
	}
}

func TestSummarize_PeakTieKeepsEarliest(t *testing.T) {
	et := NewEpidemicTrace(TraceConfig{Level: TraceLevelSteps})
	et.Record(StepRecord{Step: 0, Infected: 4, Susceptible: 1})
	et.Record(StepRecord{Step: 1, Infected: 4, Recovered: 1})

	if s := Summarize(et); s.PeakStep != 0 {
		t.Errorf("PeakStep = %d, want 0", s.PeakStep)
	}
}
