package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"text/tabwriter"

	"github.com/rustyeddy/dojiwatch/scan"
)

// Row is one line of the match table.
type Row struct {
	Symbol   string
	Type     string
	RangePct string // two decimals
}

func Rows(matches []scan.Match) []Row {
	rows := make([]Row, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, Row{
			Symbol:   m.Symbol,
			Type:     m.Kind.String(),
			RangePct: m.RangePercent().StringFixed(2),
		})
	}
	return rows
}

var htmlReport = template.Must(template.New("report").Parse(`<html><body>
<p>The following stocks formed a Doji/Gravestone Doji with &lt;{{.MaxRangePct}}% range:</p>
<table border="1" cellpadding="5" cellspacing="0">
<tr><th>Symbol</th><th>Type</th><th>Range (%)</th></tr>
{{- range .Rows}}
<tr><td>{{.Symbol}}</td><td>{{.Type}}</td><td>{{.RangePct}}</td></tr>
{{- end}}
</table>
</body></html>
`))

// RenderHTML renders the match table as an HTML document.
func RenderHTML(matches []scan.Match, maxRangePct float64) (string, error) {
	var buf bytes.Buffer
	err := htmlReport.Execute(&buf, struct {
		MaxRangePct string
		Rows        []Row
	}{
		MaxRangePct: formatPct(maxRangePct),
		Rows:        Rows(matches),
	})
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// RenderText renders the match table as aligned plain text.
func RenderText(matches []scan.Match) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Symbol\tType\tRange (%)")
	for _, r := range Rows(matches) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Symbol, r.Type, r.RangePct)
	}
	tw.Flush()
	return buf.String()
}

func formatPct(p float64) string {
	return fmt.Sprintf("%g", p)
}
