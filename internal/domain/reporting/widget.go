package reporting

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/atelier/backend/internal/domain/shared"
)

// WidgetType identifies how a widget renders its data
type WidgetType string

const (
	WidgetMetric    WidgetType = "METRIC"
	WidgetLineChart WidgetType = "LINE_CHART"
	WidgetBarChart  WidgetType = "BAR_CHART"
	WidgetPieChart  WidgetType = "PIE_CHART"
	WidgetTable     WidgetType = "TABLE"
)

// IsValid checks if the widget type is valid
func (t WidgetType) IsValid() bool {
	switch t {
	case WidgetMetric, WidgetLineChart, WidgetBarChart, WidgetPieChart, WidgetTable:
		return true
	}
	return false
}

// DataSource identifies the analytics query backing a widget
type DataSource string

const (
	SourceOrderSummary         DataSource = "order_summary"
	SourceRevenueTrend         DataSource = "revenue_trend"
	SourceOutstandingInvoices  DataSource = "outstanding_invoices"
	SourceFabricConsumption    DataSource = "fabric_consumption"
	SourceLowStockFabrics      DataSource = "low_stock_fabrics"
	SourceEmployeeProductivity DataSource = "employee_productivity"
	SourceComplianceOpenItems  DataSource = "compliance_open_items"
)

// IsValid checks if the data source is a known analytics query
func (s DataSource) IsValid() bool {
	switch s {
	case SourceOrderSummary, SourceRevenueTrend, SourceOutstandingInvoices,
		SourceFabricConsumption, SourceLowStockFabrics,
		SourceEmployeeProductivity, SourceComplianceOpenItems:
		return true
	}
	return false
}

// Layout grid bounds. Positions are zero-based cells on a 12-column grid.
const (
	gridColumns = 12
	maxGridRows = 48
)

// Position places a widget on the dashboard grid
type Position struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Validate checks the position against the grid bounds
func (p Position) Validate() error {
	if p.Row < 0 || p.Col < 0 {
		return shared.NewDomainError("INVALID_LAYOUT", "Widget position cannot be negative")
	}
	if p.Width < 1 || p.Height < 1 {
		return shared.NewDomainError("INVALID_LAYOUT", "Widget size must be at least 1x1")
	}
	if p.Col+p.Width > gridColumns {
		return shared.NewDomainError("INVALID_LAYOUT", "Widget exceeds the 12-column grid")
	}
	if p.Row+p.Height > maxGridRows {
		return shared.NewDomainError("INVALID_LAYOUT", "Widget exceeds the maximum grid height")
	}
	return nil
}

// Widget is one tile in a dashboard or report template layout
type Widget struct {
	Type     WidgetType `json:"type"`
	Title    string     `json:"title"`
	Source   DataSource `json:"source"`
	Position Position   `json:"position"`
}

// Validate checks the widget definition
func (w Widget) Validate() error {
	if !w.Type.IsValid() {
		return shared.NewDomainError("INVALID_WIDGET", "Unknown widget type: "+string(w.Type))
	}
	if strings.TrimSpace(w.Title) == "" {
		return shared.NewDomainError("INVALID_WIDGET", "Widget title cannot be empty")
	}
	if !w.Source.IsValid() {
		return shared.NewDomainError("INVALID_WIDGET", "Unknown widget data source: "+string(w.Source))
	}
	return w.Position.Validate()
}

// Layout is an ordered set of widgets stored as a JSON document
type Layout []Widget

// Validate checks every widget and rejects overlapping tiles
func (l Layout) Validate() error {
	if len(l) == 0 {
		return shared.NewDomainError("INVALID_LAYOUT", "Layout must contain at least one widget")
	}
	if len(l) > 40 {
		return shared.NewDomainError("INVALID_LAYOUT", "Layout cannot contain more than 40 widgets")
	}

	occupied := make(map[[2]int]bool)
	for _, w := range l {
		if err := w.Validate(); err != nil {
			return err
		}
		for r := w.Position.Row; r < w.Position.Row+w.Position.Height; r++ {
			for c := w.Position.Col; c < w.Position.Col+w.Position.Width; c++ {
				cell := [2]int{r, c}
				if occupied[cell] {
					return shared.NewDomainError("INVALID_LAYOUT", "Widgets overlap at row "+strconv.Itoa(r)+", col "+strconv.Itoa(c))
				}
				occupied[cell] = true
			}
		}
	}
	return nil
}

// ParseLayout decodes and validates a JSON layout document
func ParseLayout(raw []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, shared.NewDomainError("INVALID_LAYOUT", "Layout is not valid JSON: "+err.Error())
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// ToJSON encodes the layout as a JSON document
func (l Layout) ToJSON() ([]byte, error) {
	return json.Marshal(l)
}
