package ui

import "strings"

// Table aligns rows into padded columns without borders. Widths are
// computed when the table is rendered, so rows can arrive in any order.
type Table struct {
	cols int
	rows [][]string
}

// NewTable returns a table that renders cols columns per row.
func NewTable(cols int) *Table {
	return &Table{cols: cols}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, t.cols)
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// String renders the table with two spaces between columns. The last
// column is left ragged.
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	widths := make([]int, t.cols)
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for _, row := range t.rows {
		for i, cell := range row {
			if i == t.cols-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)+2))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// List renders bulleted items with a two-space indent.
type List struct {
	items []string
}

// NewList returns an empty list.
func NewList() *List { return &List{} }

// Add appends an item.
func (l *List) Add(item string) {
	l.items = append(l.items, item)
}

// String renders one "  • item" line per entry.
func (l *List) String() string {
	var b strings.Builder
	for _, item := range l.items {
		b.WriteString("  • ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}
