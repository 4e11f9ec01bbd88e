package trace

// TraceSummary aggregates statistics from an EpidemicTrace.
type TraceSummary struct {
	Steps          int64   // steps taken after the initial record
	Duration       float64 // simulated time of the last record
	PeakInfected   int
	PeakStep       int64
	PeakTime       float64
	FinalRecovered int
	Population     int
}

// Summarize computes aggregate statistics from an EpidemicTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(et *EpidemicTrace) *TraceSummary {
	summary := &TraceSummary{}
	if et == nil || len(et.Records) == 0 {
		return summary
	}

	for _, r := range et.Records {
		if r.Infected > summary.PeakInfected {
			summary.PeakInfected = r.Infected
			summary.PeakStep = r.Step
			summary.PeakTime = r.Time
		}
	}

	first, last := et.Records[0], et.Records[len(et.Records)-1]
	summary.Steps = last.Step - first.Step
	summary.Duration = last.Time
	summary.FinalRecovered = last.Recovered
	summary.Population = last.Total()
	return summary
}
