package reporting

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLayout() Layout {
	return Layout{
		{Type: WidgetMetric, Title: "Open orders", Source: SourceOrderSummary, Position: Position{Row: 0, Col: 0, Width: 3, Height: 2}},
		{Type: WidgetLineChart, Title: "Revenue", Source: SourceRevenueTrend, Position: Position{Row: 0, Col: 3, Width: 9, Height: 4}},
		{Type: WidgetTable, Title: "Low stock", Source: SourceLowStockFabrics, Position: Position{Row: 4, Col: 0, Width: 12, Height: 6}},
	}
}

func TestLayout_Validate(t *testing.T) {
	require.NoError(t, validLayout().Validate())

	tests := []struct {
		name   string
		layout Layout
	}{
		{"empty layout", Layout{}},
		{"unknown widget type", Layout{
			{Type: WidgetType("GAUGE"), Title: "x", Source: SourceOrderSummary, Position: Position{Width: 1, Height: 1}},
		}},
		{"empty title", Layout{
			{Type: WidgetMetric, Title: " ", Source: SourceOrderSummary, Position: Position{Width: 1, Height: 1}},
		}},
		{"unknown data source", Layout{
			{Type: WidgetMetric, Title: "x", Source: DataSource("secret_query"), Position: Position{Width: 1, Height: 1}},
		}},
		{"exceeds grid width", Layout{
			{Type: WidgetMetric, Title: "x", Source: SourceOrderSummary, Position: Position{Col: 8, Width: 6, Height: 1}},
		}},
		{"zero size", Layout{
			{Type: WidgetMetric, Title: "x", Source: SourceOrderSummary, Position: Position{Width: 0, Height: 1}},
		}},
		{"overlapping widgets", Layout{
			{Type: WidgetMetric, Title: "a", Source: SourceOrderSummary, Position: Position{Row: 0, Col: 0, Width: 4, Height: 2}},
			{Type: WidgetMetric, Title: "b", Source: SourceOrderSummary, Position: Position{Row: 1, Col: 2, Width: 4, Height: 2}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.layout.Validate())
		})
	}
}

func TestParseLayout(t *testing.T) {
	raw, err := validLayout().ToJSON()
	require.NoError(t, err)

	parsed, err := ParseLayout(raw)
	require.NoError(t, err)
	assert.Len(t, parsed, 3)
	assert.Equal(t, SourceRevenueTrend, parsed[1].Source)

	_, err = ParseLayout([]byte(`{not json`))
	assert.Error(t, err)

	_, err = ParseLayout([]byte(`[]`))
	assert.Error(t, err)
}

func TestNewDashboard(t *testing.T) {
	owner := uuid.New()

	d, err := NewDashboard("Atelier overview", "Front desk view", owner, validLayout())
	require.NoError(t, err)
	assert.False(t, d.IsDefault)

	_, err = NewDashboard("", "", owner, validLayout())
	assert.Error(t, err)

	_, err = NewDashboard("Overview", "", uuid.Nil, validLayout())
	assert.Error(t, err)

	_, err = NewDashboard("Overview", "", owner, Layout{})
	assert.Error(t, err)
}

func TestDashboard_ReplaceLayout(t *testing.T) {
	d, err := NewDashboard("Atelier overview", "", uuid.New(), validLayout())
	require.NoError(t, err)

	bad := Layout{{Type: WidgetMetric, Title: "x", Source: SourceOrderSummary, Position: Position{Col: 10, Width: 6, Height: 1}}}
	assert.Error(t, d.ReplaceLayout(bad))
	assert.Len(t, d.Layout, 3, "layout unchanged after rejected replacement")

	next := Layout{{Type: WidgetPieChart, Title: "Orders by status", Source: SourceOrderSummary, Position: Position{Width: 6, Height: 4}}}
	require.NoError(t, d.ReplaceLayout(next))
	assert.Len(t, d.Layout, 1)
}

func TestNewTemplate(t *testing.T) {
	creator := uuid.New()

	tpl, err := NewTemplate("Monthly operations", "", creator, validLayout(), PaperA4, OrientationPortrait)
	require.NoError(t, err)
	assert.True(t, tpl.Active)

	_, err = NewTemplate("Monthly operations", "", creator, validLayout(), PaperSize("A5"), OrientationPortrait)
	assert.Error(t, err)

	_, err = NewTemplate("Monthly operations", "", creator, validLayout(), PaperA4, Orientation("DIAGONAL"))
	assert.Error(t, err)

	require.NoError(t, tpl.SetPageSetup(PaperLetter, OrientationLandscape))
	assert.Equal(t, PaperLetter, tpl.PaperSize)

	require.NoError(t, tpl.Deactivate())
	assert.Error(t, tpl.Deactivate())
	require.NoError(t, tpl.Activate())
}
