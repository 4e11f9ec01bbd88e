package sim

import "fmt"

// HealthState is the epidemiological state of one agent.
// Transitions only move forward: Susceptible -> Infected -> Recovered.
type HealthState uint8

const (
	Susceptible HealthState = iota
	Infected
	Recovered
)

var stateNames = map[HealthState]string{
	Susceptible: "susceptible",
	Infected:    "infected",
	Recovered:   "recovered",
}

var stateSymbols = map[HealthState]byte{
	Susceptible: 'S',
	Infected:    'I',
	Recovered:   'R',
}

// AllStates lists every HealthState in transition order.
var AllStates = []HealthState{Susceptible, Infected, Recovered}

func (s HealthState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("HealthState(%d)", uint8(s))
}

// Symbol returns the single-letter form used by ParseGrid and Grid.String.
func (s HealthState) Symbol() byte {
	if sym, ok := stateSymbols[s]; ok {
		return sym
	}
	return '?'
}

// IsValid reports whether s is one of the three defined states.
func (s HealthState) IsValid() bool {
	_, ok := stateNames[s]
	return ok
}

// ParseHealthState maps a symbol (S, I, R) back to its state.
func ParseHealthState(sym byte) (HealthState, bool) {
	for state, b := range stateSymbols {
		if b == sym {
			return state, true
		}
	}
	return 0, false
}

// CanTransition reports whether a single step may move a cell from one
// state to another. Self-loops, S->I and I->R are the only legal edges.
func CanTransition(from, to HealthState) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	switch from {
	case Susceptible:
		return to == Susceptible || to == Infected
	case Infected:
		return to == Infected || to == Recovered
	default:
		return to == Recovered
	}
}
