package commands

import (
	"errors"

	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrDispatchNextCommandIsNotConstructed = errors.New(
		"DispatchNextCommand must be created via NewDispatchNextCommand constructor",
	)
)

// DispatchNextCommand ships the highest-priority warehouse parcel. Without an
// explicit route the shortest candidate path is taken.
type DispatchNextCommand struct { //nolint:recvcheck //using for validation
	route    int
	hasRoute bool

	guard guard.ConstructorGuard
}

// NewDispatchNextCommand creates a command that follows the recommended route.
func NewDispatchNextCommand() DispatchNextCommand {
	return DispatchNextCommand{guard: guard.NewConstructorGuard()}
}

// NewDispatchNextCommandWithRoute creates a command that picks the candidate
// path at index route. Indices past the candidate list fall back to the
// recommended path at dispatch time.
func NewDispatchNextCommandWithRoute(route int) (DispatchNextCommand, error) {
	if route < 0 {
		return DispatchNextCommand{}, errs.NewValueIsOutOfRangeError("route", route, 0, "candidate count")
	}

	return DispatchNextCommand{
		route:    route,
		hasRoute: true,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c DispatchNextCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNextCommandIsNotConstructed)
}

// Route returns the requested candidate index and whether one was given.
func (c DispatchNextCommand) Route() (int, bool) {
	return c.route, c.hasRoute
}

func (c DispatchNextCommand) selector() services.RouteSelector {
	if !c.hasRoute {
		return nil
	}
	return services.ChooseRoute(c.route)
}
