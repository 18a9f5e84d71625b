package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCSV(t *testing.T) {
	data, err := EncodeCSV(&Table{
		Columns: []string{"sku", "name", "notes"},
		Rows: [][]string{
			{"WOOL-120-CHR", "Super 120s Wool", "reorder, 8 june"},
			{"LIN-090-NAT", "Natural Linen", `said "shrinks"`},
		},
	})
	require.NoError(t, err)

	want := "sku,name,notes\n" +
		"WOOL-120-CHR,Super 120s Wool,\"reorder, 8 june\"\n" +
		"LIN-090-NAT,Natural Linen,\"said \"\"shrinks\"\"\"\n"
	assert.Equal(t, want, string(data))
}

func TestEncodeCSV_EmptyTable(t *testing.T) {
	data, err := EncodeCSV(&Table{Columns: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestBuildDocumentHTML(t *testing.T) {
	html, err := BuildDocumentHTML("Fabric Stock", "2026-01-01 to 2026-06-30",
		time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC),
		&Table{
			Columns: []string{"fabric_sku", "quantity_m"},
			Rows:    [][]string{{"WOOL-120-CHR", "87.5"}},
		})
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Fabric Stock</title>")
	assert.Contains(t, html, "<th>fabric sku</th>")
	assert.Contains(t, html, "<td>WOOL-120-CHR</td>")
	assert.Contains(t, html, "1 record")
	assert.Contains(t, html, "2026-01-01 to 2026-06-30")
}

func TestBuildDocumentHTML_EscapesContent(t *testing.T) {
	html, err := BuildDocumentHTML("T", "", time.Now(), &Table{
		Columns: []string{"notes"},
		Rows:    [][]string{{`<script>alert("x")</script>`}},
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}

func TestBuildDocumentHTML_EmptyTable(t *testing.T) {
	html, err := BuildDocumentHTML("T", "", time.Now(), &Table{Columns: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Contains(t, html, "No records in the selected period")
	assert.Contains(t, html, "0 records")
}

func TestPeriodLabel(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "", PeriodLabel(nil, nil))
	assert.Equal(t, "2026-01-01 to 2026-06-30", PeriodLabel(&start, &end))
	assert.Equal(t, "2026-01-01 to ...", PeriodLabel(&start, nil))
	assert.Equal(t, "... to 2026-06-30", PeriodLabel(nil, &end))
}
