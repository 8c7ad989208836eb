package commands

import (
	"context"
	"fmt"
	"strings"

	"fabmap/internal/application"
	"fabmap/internal/domain"
	"fabmap/internal/ports"
)

// AddFabricatorResult contains the result of adding a fabricator
type AddFabricatorResult struct {
	Fabricator *domain.Fabricator
	Message    string
}

// AddFabricatorCommand attaches a fabricator contact to a pin
type AddFabricatorCommand struct {
	repo    ports.PinRepository
	PinID   string
	Name    string
	Address string
	Phone   string
}

// NewAddFabricatorCommand creates a new AddFabricatorCommand
func NewAddFabricatorCommand(repo ports.PinRepository, pinID, name, address, phone string) *AddFabricatorCommand {
	return &AddFabricatorCommand{
		repo:    repo,
		PinID:   pinID,
		Name:    name,
		Address: address,
		Phone:   phone,
	}
}

// Validate checks the required fields. Nothing is sent when this fails.
func (c *AddFabricatorCommand) Validate() error {
	if err := application.ValidateRequired("pinID", c.PinID); err != nil {
		return err
	}
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	return application.ValidateRequired("address", c.Address)
}

// Execute runs the add fabricator command
func (c *AddFabricatorCommand) Execute(ctx context.Context) (*AddFabricatorResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	fab, err := c.repo.InsertFabricator(ctx, domain.NewFabricator{
		PinID:   c.PinID,
		Name:    strings.TrimSpace(c.Name),
		Address: strings.TrimSpace(c.Address),
		Phone:   strings.TrimSpace(c.Phone),
	})
	if err != nil {
		return nil, &application.NetworkError{Op: "add fabricator", Err: err}
	}

	return &AddFabricatorResult{
		Fabricator: fab,
		Message:    fmt.Sprintf("Added fabricator: %s", fab.Name),
	}, nil
}
