package reporting

import (
	"context"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DashboardRepository defines the interface for dashboard persistence
type DashboardRepository interface {
	// FindByID finds a dashboard by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Dashboard, error)

	// FindByOwner finds the dashboards owned by an employee
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Dashboard, error)

	// FindDefault finds the owner's default dashboard, if any
	FindDefault(ctx context.Context, ownerID uuid.UUID) (*Dashboard, error)

	// FindAll finds all dashboards with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Dashboard, error)

	// Save creates or updates a dashboard
	Save(ctx context.Context, d *Dashboard) error

	// Delete deletes a dashboard
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts dashboards matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TemplateRepository defines the interface for report template persistence
type TemplateRepository interface {
	// FindByID finds a template by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)

	// FindByName finds a template by its name
	FindByName(ctx context.Context, name string) (*Template, error)

	// FindAll finds all templates with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Template, error)

	// FindActive finds active templates
	FindActive(ctx context.Context) ([]Template, error)

	// Save creates or updates a template
	Save(ctx context.Context, t *Template) error

	// Delete deletes a template
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts templates matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
