package controller

import "github.com/jask/routefinder/internal/routing"

// Status tags the active member of a State.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// State is the request lifecycle a front end renders from. Exactly one of
// the four statuses is active; the payload accessors report whether they
// apply to the current one.
type State struct {
	status  Status
	result  routing.RouteResult
	message string
}

// Idle is the initial state: no query outstanding.
func Idle() State { return State{status: StatusIdle} }

// Loading means a query is in flight.
func Loading() State { return State{status: StatusLoading} }

// Succeeded carries the result of the last query.
func Succeeded(r routing.RouteResult) State {
	return State{status: StatusSucceeded, result: r}
}

// Failed carries a user-facing reason for the last query's failure.
func Failed(message string) State {
	return State{status: StatusFailed, message: message}
}

// Status reports the active member. The zero State is Idle.
func (s State) Status() Status {
	if s.status == "" {
		return StatusIdle
	}
	return s.status
}

func (s State) IsIdle() bool    { return s.Status() == StatusIdle }
func (s State) IsLoading() bool { return s.status == StatusLoading }

// Result returns the route when the state is Succeeded.
func (s State) Result() (routing.RouteResult, bool) {
	if s.status != StatusSucceeded {
		return routing.RouteResult{}, false
	}
	return s.result, true
}

// Message returns the failure reason when the state is Failed.
func (s State) Message() (string, bool) {
	if s.status != StatusFailed {
		return "", false
	}
	return s.message, true
}

func (s State) String() string {
	switch s.status {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed: " + s.message
	case StatusLoading:
		return "loading"
	default:
		return "idle"
	}
}
