package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Alignment selects column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// ColumnRole names the package style a column renders with. Roles are
// resolved at render time so a configured accent color applies even
// though column definitions are package-level vars.
type ColumnRole int

const (
	RolePlain ColumnRole = iota
	RoleAccent
	RoleMuted
)

func (r ColumnRole) style() lipgloss.Style {
	switch r {
	case RoleAccent:
		return Accent
	case RoleMuted:
		return Muted
	}
	return lipgloss.NewStyle()
}

// ColumnDef describes one plan table column. Flex is the column's share
// of the width left after fixed columns; zero means fixed at Min.
type ColumnDef struct {
	Name  string
	Flex  int
	Min   int
	Max   int // 0 = unbounded
	Align Alignment
	Role  ColumnRole
}

func (c ColumnDef) clamp(w int) int {
	if w < c.Min {
		w = c.Min
	}
	if c.Max > 0 && w > c.Max {
		w = c.Max
	}
	return w
}

// Columns shared by every plan preview.
var (
	ColNum    = ColumnDef{Name: "num", Min: 4, Max: 6, Align: AlignRight, Role: RoleMuted}
	ColPath   = ColumnDef{Name: "path", Flex: 7, Min: 20, Max: 60, Role: RoleAccent}
	ColTitle  = ColumnDef{Name: "title", Flex: 5, Min: 12, Max: 40}
	ColDetail = ColumnDef{Name: "detail", Flex: 8, Min: 20, Max: 80, Role: RoleMuted}
)

// PlanLayout is the standard preview layout: row number, path, note
// title, and the per-operation detail.
var PlanLayout = []ColumnDef{ColNum, ColPath, ColTitle, ColDetail}

// PlanRow is one file in a plan preview.
type PlanRow struct {
	Num   int
	Cells []string
}

// PlanTable renders dry-run previews: which files a run would touch and
// what it would do to each.
type PlanTable struct {
	display *DisplayContext
	columns []ColumnDef
	rows    []PlanRow
}

// NewPlanTable returns an empty table sized to the display.
func NewPlanTable(display *DisplayContext, columns []ColumnDef) *PlanTable {
	return &PlanTable{display: display, columns: columns}
}

// AddRow appends a row.
func (t *PlanTable) AddRow(row PlanRow) {
	t.rows = append(t.rows, row)
}

// ContentWidth reports the computed width of the named column, so
// callers can truncate cell text to what will actually fit.
func (t *PlanTable) ContentWidth(name string) int {
	widths := t.columnWidths()
	for i, c := range t.columns {
		if c.Name == name {
			return widths[i]
		}
	}
	return 60
}

// columnWidths sizes fixed columns at their minimum, then splits the
// remaining terminal width across flex columns by weight.
func (t *PlanTable) columnWidths() []int {
	const gap = 2
	const indent = 2

	widths := make([]int, len(t.columns))
	remaining := t.display.TermWidth - gap*(len(t.columns)-1) - indent
	flexTotal := 0
	for i, c := range t.columns {
		if c.Flex == 0 {
			widths[i] = c.clamp(c.Min)
			remaining -= widths[i]
			continue
		}
		flexTotal += c.Flex
	}
	if remaining < 0 {
		remaining = 0
	}
	for i, c := range t.columns {
		if c.Flex > 0 {
			widths[i] = c.clamp(remaining * c.Flex / flexTotal)
		}
	}
	return widths
}

// Render draws the table: no outer border, a muted rule between rows.
func (t *PlanTable) Render() string {
	if len(t.rows) == 0 {
		return ""
	}

	widths := t.columnWidths()
	styles := make([]lipgloss.Style, len(t.columns))
	for i, c := range t.columns {
		st := c.Role.style().Width(widths[i])
		switch c.Align {
		case AlignRight:
			st = st.Align(lipgloss.Right)
		case AlignCenter:
			st = st.Align(lipgloss.Center)
		default:
			st = st.Align(lipgloss.Left)
		}
		if i < len(t.columns)-1 {
			st = st.PaddingRight(2)
		}
		styles[i] = st
	}

	cells := make([][]string, len(t.rows))
	for i, row := range t.rows {
		line := make([]string, len(t.columns))
		copy(line, row.Cells)
		cells[i] = line
	}

	return table.New().
		Border(lipgloss.Border{Middle: "─"}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(true).
		BorderStyle(Muted).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col < 0 || col >= len(styles) {
				return lipgloss.NewStyle()
			}
			return styles[col]
		}).
		Rows(cells...).
		Render()
}

// TruncateWithEllipsis shortens s to at most maxLen characters, preferring
// a word boundary when one falls in the second half.
func TruncateWithEllipsis(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	cut := s[:maxLen-3]
	if i := strings.LastIndexByte(cut, ' '); i > maxLen/2 {
		cut = cut[:i]
	}
	return cut + "..."
}

// FormatRowNum right-aligns num to the width of the largest row number,
// two characters minimum.
func FormatRowNum(num, maxNum int) string {
	width := len(strconv.Itoa(maxNum))
	if width < 2 {
		width = 2
	}
	return fmt.Sprintf("%*d", width, num)
}
