package assistant

import (
	"fmt"
	"strings"
	"testing"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
)

func statementResult(columns []any, rows []any) models.QueryResult {
	return models.QueryResult{
		"statement_response": map[string]any{
			"manifest": map[string]any{
				"schema": map[string]any{"columns": columns},
			},
			"result": map[string]any{"data_array": rows},
		},
	}
}

func TestRenderTableBasic(t *testing.T) {
	result := statementResult(
		[]any{
			map[string]any{"name": "product_id"},
			map[string]any{"name": "revenue"},
		},
		[]any{
			[]any{"Evian", 42.0},
		},
	)

	html := RenderTable(result)
	for _, want := range []string{
		"<th>Product Id</th>",
		"<th>Revenue</th>",
		"<td>Evian</td>",
		"<td>42</td>",
		"1 row(s)",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in:\n%s", want, html)
		}
	}
}

func TestRenderTableCapsRows(t *testing.T) {
	rows := make([]any, 25)
	for i := range rows {
		rows[i] = []any{fmt.Sprintf("row-%d", i)}
	}
	result := statementResult([]any{map[string]any{"name": "label"}}, rows)

	html := RenderTable(result)
	if got := strings.Count(html, "<tr class="); got != 20 {
		t.Errorf("expected 20 body rows, got %d", got)
	}
	if !strings.Contains(html, "Showing 20 of 25 rows") {
		t.Errorf("expected the overflow footer in:\n%s", html)
	}
	if strings.Contains(html, "row-20") {
		t.Error("rows past the cap must not render")
	}
}

func TestRenderTableRowBanding(t *testing.T) {
	result := statementResult(
		[]any{map[string]any{"name": "label"}},
		[]any{[]any{"a"}, []any{"b"}, []any{"c"}},
	)

	html := RenderTable(result)
	if strings.Count(html, `<tr class="row-even">`) != 2 {
		t.Errorf("expected 2 even rows in:\n%s", html)
	}
	if strings.Count(html, `<tr class="row-odd">`) != 1 {
		t.Errorf("expected 1 odd row in:\n%s", html)
	}
}

func TestRenderTableCells(t *testing.T) {
	long := strings.Repeat("x", 150)
	result := statementResult(
		[]any{
			map[string]any{"name": "a"},
			map[string]any{"name": "b"},
			map[string]any{"name": "c"},
			map[string]any{"name": "d"},
		},
		[]any{
			[]any{nil, 1234567.0, long, "<script>"},
		},
	)

	html := RenderTable(result)
	if !strings.Contains(html, nullCellHTML) {
		t.Errorf("expected the null marker in:\n%s", html)
	}
	if !strings.Contains(html, "1,234,567") {
		t.Errorf("expected grouped digits in:\n%s", html)
	}
	if !strings.Contains(html, strings.Repeat("x", 100)+"…") {
		t.Error("expected the long string truncated at 100 runes")
	}
	if strings.Contains(html, strings.Repeat("x", 101)) {
		t.Error("no more than 100 runes of a long string may render")
	}
	if strings.Contains(html, "<script>") {
		t.Error("cell content must be escaped")
	}
}

func TestRenderTableFallbackLayouts(t *testing.T) {
	// Rows under result.data_array, columns as bare strings.
	result := models.QueryResult{
		"result":  map[string]any{"data_array": []any{[]any{"v1", "v2"}}},
		"columns": []any{"first_name", "last_name"},
	}
	html := RenderTable(result)
	if !strings.Contains(html, "<th>First Name</th>") || !strings.Contains(html, "<th>Last Name</th>") {
		t.Errorf("expected labels from bare string columns in:\n%s", html)
	}

	// No schema at all: placeholder names sized to the first row.
	result = models.QueryResult{
		"data_array": []any{[]any{"v1", "v2", "v3"}},
	}
	html = RenderTable(result)
	for _, want := range []string{"<th>Column 1</th>", "<th>Column 2</th>", "<th>Column 3</th>"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in:\n%s", want, html)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if html := RenderTable(models.QueryResult{}); html != "" {
		t.Errorf("expected empty output for an empty result, got %q", html)
	}
	if html := RenderTable(statementResult(nil, []any{})); html != "" {
		t.Errorf("expected empty output for zero rows, got %q", html)
	}
}
