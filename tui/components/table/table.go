package table

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/plantview/tui/theme"
)

// Options configures a styled table.
type Options struct {
	Bordered bool
	Theme    *theme.Theme
	// CellStyle, when set, styles data cells; row is 0 for the first
	// data row.
	CellStyle func(row, col int) lipgloss.Style
}

// DefaultOptions returns the default table options.
func DefaultOptions() Options {
	return Options{
		Bordered: true,
		Theme:    theme.DefaultTheme,
	}
}

// Builder provides a fluent interface for creating styled tables.
type Builder struct {
	headers []string
	rows    [][]string
	options Options
}

// NewBuilder creates a new table builder.
func NewBuilder() *Builder {
	return &Builder{options: DefaultOptions()}
}

// WithTheme sets the theme.
func (b *Builder) WithTheme(t *theme.Theme) *Builder {
	b.options.Theme = t
	return b
}

// WithBorder enables or disables the border.
func (b *Builder) WithBorder(bordered bool) *Builder {
	b.options.Bordered = bordered
	return b
}

// WithCellStyle sets a per-cell style for data rows.
func (b *Builder) WithCellStyle(fn func(row, col int) lipgloss.Style) *Builder {
	b.options.CellStyle = fn
	return b
}

// WithHeaders sets the table headers.
func (b *Builder) WithHeaders(headers ...string) *Builder {
	b.headers = headers
	return b
}

// WithRows appends rows.
func (b *Builder) WithRows(rows ...[]string) *Builder {
	b.rows = append(b.rows, rows...)
	return b
}

// Build creates the styled table.
func (b *Builder) Build() *ltable.Table {
	opts := b.options
	t := opts.Theme
	if t == nil {
		t = theme.DefaultTheme
	}

	table := ltable.New()
	if opts.Bordered {
		table = table.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(t.TableBorder)
	} else {
		table = table.Border(lipgloss.HiddenBorder())
	}

	if len(b.headers) > 0 {
		table = table.Headers(b.headers...)
	}

	// Headers set via Headers() are passed to StyleFunc as ltable.HeaderRow;
	// data rows are numbered from 0.
	table = table.StyleFunc(func(row, col int) lipgloss.Style {
		if row == ltable.HeaderRow {
			return t.TableHeader.Padding(0, 1)
		}
		if opts.CellStyle != nil {
			return opts.CellStyle(row, col).Padding(0, 1)
		}
		return lipgloss.NewStyle().Padding(0, 1)
	})

	for _, r := range b.rows {
		table = table.Row(r...)
	}
	return table
}

// String renders the table.
func (b *Builder) String() string {
	return b.Build().String()
}


// KeyValueTable renders borderless label/value pairs.
func KeyValueTable(items [][]string) string {
	t := theme.DefaultTheme
	b := NewBuilder().WithBorder(false)
	for _, item := range items {
		if len(item) >= 2 {
			b.WithRows([]string{t.Muted.Render(item[0] + ":"), item[1]})
		}
	}
	return b.String()
}
