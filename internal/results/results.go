// Package results carries the outcome of a service operation: either a
// success payload or a domain failure payload, plus the change notifications
// the operation wants delivered.
package results

import "github.com/exhuma/powonline-sub000/internal/eventbus"

// OperationResult holds exactly one of Success or Failure. Error is only set
// alongside Failure when the failure wraps an infrastructure error.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
	Error   error

	// Events are outbound change notifications. They are delivered by the
	// request layer fire-and-forget; delivery failure never rolls back the
	// mutation that produced them.
	Events []eventbus.Outbound
}

func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }

// Success builds a success result.
func Success[S any, F any](payload S, events ...eventbus.Outbound) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &payload, Events: events}
}

// Failure builds a domain-failure result.
func Failure[S any, F any](payload F, err error) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &payload, Error: err}
}
