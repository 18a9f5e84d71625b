package reporting

import (
	"strings"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Dashboard is the aggregate root for a saved dashboard. The layout is a
// validated widget grid; invalid layouts never reach persistence.
type Dashboard struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	OwnerID     uuid.UUID
	Layout      Layout
	IsDefault   bool
}

// NewDashboard creates a dashboard with a validated layout
func NewDashboard(name, description string, ownerID uuid.UUID, layout Layout) (*Dashboard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Dashboard name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Dashboard name cannot exceed 200 characters")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Dashboard must have an owner")
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	return &Dashboard{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		OwnerID:           ownerID,
		Layout:            layout,
	}, nil
}

// Rename changes the dashboard's name and description
func (d *Dashboard) Rename(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Dashboard name cannot be empty")
	}
	d.Name = name
	d.Description = description
	d.Touch()
	return nil
}

// ReplaceLayout swaps in a new layout after validating it
func (d *Dashboard) ReplaceLayout(layout Layout) error {
	if err := layout.Validate(); err != nil {
		return err
	}
	d.Layout = layout
	d.Touch()
	return nil
}

// MarkDefault flags this dashboard as the landing view.
// The application layer clears the flag on the previous default.
func (d *Dashboard) MarkDefault() {
	d.IsDefault = true
	d.Touch()
}

// ClearDefault removes the landing-view flag
func (d *Dashboard) ClearDefault() {
	d.IsDefault = false
	d.Touch()
}
