package commands

import (
	"errors"
	"strings"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCancelParcelCommandIsNotConstructed = errors.New(
		"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
	)
)

// CancelParcelCommand withdraws a parcel that has not left the warehouse.
type CancelParcelCommand struct { //nolint:recvcheck //using for validation
	trackingID string

	guard guard.ConstructorGuard
}

func NewCancelParcelCommand(trackingID string) (CancelParcelCommand, error) {
	cmd := CancelParcelCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setTrackingID(trackingID); err != nil {
		return CancelParcelCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

func (c CancelParcelCommand) TrackingID() string {
	return c.trackingID
}

func (c *CancelParcelCommand) setTrackingID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("tracking id")
	}

	c.trackingID = id
	return nil
}
