package commands

import (
	"errors"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrAdvanceLifecycleCommandIsNotConstructed = errors.New(
		"AdvanceLifecycleCommand must be created via NewAdvanceLifecycleCommand constructor",
	)
)

// AdvanceLifecycleCommand runs one lifecycle sweep at the given instant.
//
// Example:
//
//	cmd, _ := NewAdvanceLifecycleCommand(time.Now())
//	transitions, err := handler.Handle(ctx, cmd)
type AdvanceLifecycleCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

func NewAdvanceLifecycleCommand(now time.Time) (AdvanceLifecycleCommand, error) {
	cmd := AdvanceLifecycleCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setNow(now); err != nil {
		return AdvanceLifecycleCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceLifecycleCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceLifecycleCommandIsNotConstructed)
}

func (c AdvanceLifecycleCommand) Now() time.Time {
	return c.now
}

func (c *AdvanceLifecycleCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return errs.NewValueIsRequiredError("now")
	}

	c.now = now
	return nil
}
