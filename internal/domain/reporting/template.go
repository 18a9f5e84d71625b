package reporting

import (
	"strings"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaperSize for rendered report documents
type PaperSize string

const (
	PaperA4     PaperSize = "A4"
	PaperLetter PaperSize = "LETTER"
)

// IsValid checks if the paper size is supported
func (p PaperSize) IsValid() bool {
	return p == PaperA4 || p == PaperLetter
}

// Orientation for rendered report documents
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// IsValid checks if the orientation is supported
func (o Orientation) IsValid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// Template is the aggregate root for a report template: a widget layout
// plus page setup, used for scheduled reports and document exports.
type Template struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	CreatedBy   uuid.UUID
	Layout      Layout
	PaperSize   PaperSize
	Orientation Orientation
	Active      bool
}

// NewTemplate creates a report template with a validated layout
func NewTemplate(name, description string, createdBy uuid.UUID, layout Layout, paperSize PaperSize, orientation Orientation) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Template must record its creator")
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if !paperSize.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAPER_SIZE", "Unsupported paper size: "+string(paperSize))
	}
	if !orientation.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORIENTATION", "Unsupported orientation: "+string(orientation))
	}

	return &Template{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		CreatedBy:         createdBy,
		Layout:            layout,
		PaperSize:         paperSize,
		Orientation:       orientation,
		Active:            true,
	}, nil
}

// Update changes the template's name, description and layout
func (t *Template) Update(name, description string, layout Layout) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if err := layout.Validate(); err != nil {
		return err
	}
	t.Name = name
	t.Description = description
	t.Layout = layout
	t.Touch()
	return nil
}

// SetPageSetup changes the render page setup
func (t *Template) SetPageSetup(paperSize PaperSize, orientation Orientation) error {
	if !paperSize.IsValid() {
		return shared.NewDomainError("INVALID_PAPER_SIZE", "Unsupported paper size: "+string(paperSize))
	}
	if !orientation.IsValid() {
		return shared.NewDomainError("INVALID_ORIENTATION", "Unsupported orientation: "+string(orientation))
	}
	t.PaperSize = paperSize
	t.Orientation = orientation
	t.Touch()
	return nil
}

// Deactivate retires the template; scheduled reports referencing it stop running
func (t *Template) Deactivate() error {
	if !t.Active {
		return shared.ErrInvalidState
	}
	t.Active = false
	t.Touch()
	return nil
}

// Activate restores a retired template
func (t *Template) Activate() error {
	if t.Active {
		return shared.ErrInvalidState
	}
	t.Active = true
	t.Touch()
	return nil
}
