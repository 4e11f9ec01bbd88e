package trace

// TraceLevel controls whether per-step population counts are kept.
type TraceLevel string

const (
	// TraceLevelNone disables recording (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps records S/I/R counts after every step.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSteps: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// EpidemicTrace is the recorded epidemic curve of one run.
type EpidemicTrace struct {
	Config  TraceConfig
	Records []StepRecord
}

// NewEpidemicTrace creates an EpidemicTrace ready for recording.
func NewEpidemicTrace(config TraceConfig) *EpidemicTrace {
	return &EpidemicTrace{
		Config:  config,
		Records: make([]StepRecord, 0),
	}
}

// Enabled reports whether Record keeps anything.
func (et *EpidemicTrace) Enabled() bool {
	return et != nil && et.Config.Level == TraceLevelSteps
}

// Record appends a step record. No-op unless the level is TraceLevelSteps.
func (et *EpidemicTrace) Record(record StepRecord) {
	if !et.Enabled() {
		return
	}
	et.Records = append(et.Records, record)
}
