package commands

import (
	"context"
	"fmt"

	"fabmap/internal/application"
	"fabmap/internal/domain"
	"fabmap/internal/ports"
)

// CreatePinResult contains the result of placing a pin
type CreatePinResult struct {
	Pin     *domain.Pin
	Message string
}

// CreatePinCommand places a new pin with the default title and an empty description
type CreatePinCommand struct {
	repo      ports.PinRepository
	session   ports.Session
	Lat       float64
	Lng       float64
	Confirmed bool
}

// NewCreatePinCommand creates a new CreatePinCommand
func NewCreatePinCommand(repo ports.PinRepository, session ports.Session, lat, lng float64, confirmed bool) *CreatePinCommand {
	return &CreatePinCommand{
		repo:      repo,
		session:   session,
		Lat:       lat,
		Lng:       lng,
		Confirmed: confirmed,
	}
}

// Validate checks the placement was confirmed and the coordinate is usable
func (c *CreatePinCommand) Validate() error {
	if !c.Confirmed {
		return &application.PreconditionError{
			Reason: "pin placement was not confirmed",
			Err:    application.ErrNotConfirmed,
		}
	}
	return application.ValidateCoordinate(c.Lat, c.Lng)
}

// Execute runs the create pin command
func (c *CreatePinCommand) Execute(ctx context.Context) (*CreatePinResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ownerID, err := c.session.UserID()
	if err != nil || ownerID == "" {
		return nil, &application.PreconditionError{
			Reason: "no signed-in user",
			Err:    application.ErrNoSession,
		}
	}

	pin, err := c.repo.InsertPin(ctx, domain.NewPin{
		OwnerID:     ownerID,
		Lat:         c.Lat,
		Lng:         c.Lng,
		Title:       domain.DefaultPinTitle,
		Description: "",
	})
	if err != nil {
		return nil, &application.NetworkError{Op: "create pin", Err: err}
	}

	return &CreatePinResult{
		Pin:     pin,
		Message: fmt.Sprintf("Placed pin at %.5f, %.5f", pin.Lat, pin.Lng),
	}, nil
}
