package session

import "errors"

var (
	// ErrBusy is returned when a translation is already in flight.
	ErrBusy = errors.New("session: translation in progress")

	// ErrUnavailable is returned when the host lacks a capability.
	ErrUnavailable = errors.New("session: capability unavailable")

	// ErrReset is returned by Submit when Reset discarded the call.
	ErrReset = errors.New("session: reset during translation")
)

// State is the main translation state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StateChangeListener is called after every state change.
type StateChangeListener func(oldState, newState State)

var validTransitions = map[State][]State{
	StateIdle:       {StateSubmitting, StateSucceeded, StateIdle},
	StateSubmitting: {StateSucceeded, StateFailed, StateIdle},
	StateSucceeded:  {StateSubmitting, StateSucceeded, StateIdle},
	StateFailed:     {StateIdle},
}

func isValidTransition(from, to State) bool {
	for _, valid := range validTransitions[from] {
		if valid == to {
			return true
		}
	}
	return false
}
