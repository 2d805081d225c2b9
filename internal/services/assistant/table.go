package assistant

import (
	"fmt"
	"html"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
)

const (
	maxTableRows = 20
	maxCellRunes = 100
	nullCellHTML = `<span class="cell-null">&mdash;</span>`
)

var cellPrinter = message.NewPrinter(language.English)

// rowSources and columnSources are the payload layouts query results have
// shipped in, tried in order.
var rowSources = [][]string{
	{"statement_response", "result", "data_array"},
	{"result", "data_array"},
	{"data_array"},
}

var columnSources = [][]string{
	{"manifest", "schema", "columns"},
	{"schema", "columns"},
	{"columns"},
}

// RenderTable renders a query result as a flat HTML table, capped at
// maxTableRows rows with a count footer. It returns the empty string when the
// result carries no rows.
func RenderTable(result models.QueryResult) string {
	rows := dataRows(result)
	if len(rows) == 0 {
		return ""
	}

	labels := columnLabels(result, len(rows[0]))

	var b strings.Builder
	b.WriteString(`<table class="result-table"><thead><tr>`)
	for _, label := range labels {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(label))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	shown := rows
	if len(shown) > maxTableRows {
		shown = shown[:maxTableRows]
	}
	for i, row := range shown {
		if i%2 == 0 {
			b.WriteString(`<tr class="row-even">`)
		} else {
			b.WriteString(`<tr class="row-odd">`)
		}
		for _, cell := range row {
			b.WriteString("<td>")
			b.WriteString(renderCell(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")

	b.WriteString(`<p class="table-footer">`)
	if len(rows) > maxTableRows {
		fmt.Fprintf(&b, "Showing %d of %d rows", maxTableRows, len(rows))
	} else {
		fmt.Fprintf(&b, "%d row(s)", len(rows))
	}
	b.WriteString("</p>")

	return b.String()
}

func dataRows(result models.QueryResult) [][]any {
	for _, path := range rowSources {
		raw := models.SliceAt(result, path...)
		if len(raw) == 0 {
			continue
		}
		rows := make([][]any, 0, len(raw))
		for _, item := range raw {
			if row, ok := item.([]any); ok {
				rows = append(rows, row)
			}
		}
		if len(rows) > 0 {
			return rows
		}
	}
	return nil
}

func columnLabels(result models.QueryResult, width int) []string {
	for _, path := range columnSources {
		raw := models.SliceAt(result, path...)
		if len(raw) == 0 {
			continue
		}
		labels := make([]string, 0, len(raw))
		for _, item := range raw {
			labels = append(labels, columnLabel(columnName(item)))
		}
		return labels
	}

	// No schema anywhere: synthesise placeholder names sized to the first row.
	labels := make([]string, width)
	for i := range labels {
		labels[i] = fmt.Sprintf("Column %d", i+1)
	}
	return labels
}

// columnName accepts either a bare string or an object with a name field.
func columnName(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case map[string]any:
		name, _ := v["name"].(string)
		return name
	default:
		return ""
	}
}

// columnLabel turns snake_case field names into display labels:
// underscores become spaces and each word is capitalised.
func columnLabel(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// renderCell formats one cell value as escaped HTML: nulls get a distinct
// marker, numbers get locale thousands grouping, long strings are truncated.
func renderCell(value any) string {
	switch v := value.(type) {
	case nil:
		return nullCellHTML
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return html.EscapeString(cellPrinter.Sprintf("%v", number.Decimal(int64(v))))
		}
		return html.EscapeString(cellPrinter.Sprintf("%v", number.Decimal(v)))
	case string:
		runes := []rune(v)
		if len(runes) > maxCellRunes {
			v = string(runes[:maxCellRunes]) + "…"
		}
		return html.EscapeString(v)
	default:
		return html.EscapeString(fmt.Sprintf("%v", v))
	}
}
