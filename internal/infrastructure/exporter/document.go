package exporter

import (
	"bytes"
	"html/template"
	"strings"
	"time"
)

// documentTemplate is the HTML skeleton for rendered PDF exports. The
// inline stylesheet keeps Chrome's print output self-contained.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 10pt; color: #1a1a1a; margin: 0; }
  h1 { font-size: 16pt; margin: 0 0 2pt 0; }
  .meta { font-size: 8pt; color: #666; margin-bottom: 12pt; }
  table { width: 100%; border-collapse: collapse; }
  th { text-align: left; font-size: 8pt; text-transform: uppercase; letter-spacing: 0.04em;
       color: #444; border-bottom: 1.5pt solid #1a1a1a; padding: 4pt 6pt; }
  td { border-bottom: 0.5pt solid #ccc; padding: 4pt 6pt; vertical-align: top; }
  tr { page-break-inside: avoid; }
  thead { display: table-header-group; }
  .empty { color: #888; font-style: italic; padding: 16pt 6pt; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Generated {{.GeneratedAt}} &middot; {{.RowCount}} record{{if ne .RowCount 1}}s{{end}}{{if .Period}} &middot; {{.Period}}{{end}}</div>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- else}}
<tr><td class="empty" colspan="{{len .Columns}}">No records in the selected period</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>`

var documentTmpl = template.Must(template.New("export-document").Parse(documentTemplate))

type documentData struct {
	Title       string
	GeneratedAt string
	Period      string
	RowCount    int
	Columns     []string
	Rows        [][]string
}

// BuildDocumentHTML renders a table as a printable HTML document.
// Column names arrive in snake_case and are shown as words.
func BuildDocumentHTML(title, period string, generatedAt time.Time, t *Table) (string, error) {
	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = strings.ReplaceAll(c, "_", " ")
	}

	var buf bytes.Buffer
	err := documentTmpl.Execute(&buf, documentData{
		Title:       title,
		GeneratedAt: generatedAt.UTC().Format("2006-01-02 15:04 MST"),
		Period:      period,
		RowCount:    len(t.Rows),
		Columns:     columns,
		Rows:        t.Rows,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PeriodLabel formats a job's optional period bounds for display
func PeriodLabel(start, end *time.Time) string {
	if start == nil && end == nil {
		return ""
	}
	from, to := "...", "..."
	if start != nil {
		from = start.UTC().Format("2006-01-02")
	}
	if end != nil {
		to = end.UTC().Format("2006-01-02")
	}
	return from + " to " + to
}
