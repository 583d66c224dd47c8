package routing

import (
	"fmt"
	"strings"
)

// ServiceRejection is returned when the service answered with a non-ok
// status, e.g. an unknown location or no path between the two.
// Detail is empty when the body carried no usable message.
type ServiceRejection struct {
	Status int
	Detail string
}

func (e *ServiceRejection) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("routing: rejected with status %d", e.Status)
	}
	return fmt.Sprintf("routing: rejected with status %d: %s", e.Status, e.Detail)
}

// TransportFailure is returned when a call could not be completed at all:
// connection errors, timeouts, unreadable or invalid response bodies.
type TransportFailure struct {
	Op  string
	Err error
}

func (e *TransportFailure) Error() string {
	if e.Err == nil {
		return "routing: " + e.Op
	}
	return fmt.Sprintf("routing: %s: %v", e.Op, e.Err)
}

func (e *TransportFailure) Unwrap() error { return e.Err }

// Message is the underlying failure's text, or "" when there is none.
func (e *TransportFailure) Message() string {
	if e.Err == nil {
		return ""
	}
	return strings.TrimSpace(e.Err.Error())
}
