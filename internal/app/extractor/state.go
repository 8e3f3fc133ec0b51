package extractor

import "time"

// State is a step of one extraction.
type State string

const (
	StatePending     State = "pending"
	StateFetching    State = "fetching"
	StateNormalizing State = "normalizing"
	StateCleaningUp  State = "cleaning_up"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// allowed lists the legal successors of each non-terminal state. FAILED is
// reachable from all of them.
var allowed = map[State][]State{
	StatePending:     {StateFetching, StateFailed},
	StateFetching:    {StateNormalizing, StateFailed},
	StateNormalizing: {StateCleaningUp, StateFailed},
	StateCleaningUp:  {StateDone, StateFailed},
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to State) bool {
	for _, next := range allowed[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition describes one state change.
type Transition struct {
	ExtractionID string
	From         State
	To           State
	// Elapsed is the time spent in From.
	Elapsed time.Duration
	// Err is set when To is StateFailed.
	Err error
}

// StateObserver receives every transition of an extraction, in order, on the
// extraction's goroutine.
type StateObserver interface {
	OnTransition(t Transition)
}

// ObserverFunc adapts a function to StateObserver.
type ObserverFunc func(t Transition)

func (f ObserverFunc) OnTransition(t Transition) { f(t) }
