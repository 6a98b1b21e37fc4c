package commands

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrIntakeParcelCommandIsNotConstructed = errors.New(
		"IntakeParcelCommand must be created via NewIntakeParcelCommand constructor",
	)
)

// IntakeParcelCommand registers a new parcel at the warehouse.
//
// Example:
//
//	cmd, err := NewIntakeParcelCommand("TRK-1001", "Karachi", 12.5, 2)
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//
//	handler := NewIntakeParcelCommandHandler(engine)
//	view, err := handler.Handle(ctx, cmd)
type IntakeParcelCommand struct { //nolint:recvcheck //using for validation
	trackingID  string
	destination string
	weight      float64
	priority    parcel.Priority

	guard guard.ConstructorGuard
}

// NewIntakeParcelCommand validates the request fields that do not depend on
// engine state. Destination membership and ID uniqueness are checked by the
// engine.
func NewIntakeParcelCommand(trackingID, destination string, weight float64, priority int) (IntakeParcelCommand, error) {
	cmd := IntakeParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingID(trackingID),
		cmd.setDestination(destination),
		cmd.setWeight(weight),
		cmd.setPriority(priority),
	); err != nil {
		return IntakeParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IntakeParcelCommand) Validate() error {
	return c.guard.Validate(ErrIntakeParcelCommandIsNotConstructed)
}

func (c IntakeParcelCommand) TrackingID() string        { return c.trackingID }
func (c IntakeParcelCommand) Destination() string       { return c.destination }
func (c IntakeParcelCommand) Weight() float64           { return c.weight }
func (c IntakeParcelCommand) Priority() parcel.Priority { return c.priority }

func (c *IntakeParcelCommand) setTrackingID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("tracking id")
	}

	c.trackingID = id
	return nil
}

func (c *IntakeParcelCommand) setDestination(destination string) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}

	c.destination = destination
	return nil
}

func (c *IntakeParcelCommand) setWeight(weight float64) error {
	if err := parcel.ValidateWeight(weight); err != nil {
		return err
	}

	c.weight = weight
	return nil
}

func (c *IntakeParcelCommand) setPriority(priority int) error {
	p := parcel.Priority(priority)
	if err := p.Validate(); err != nil {
		return err
	}

	c.priority = p
	return nil
}
