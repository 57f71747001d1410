package logger

import (
	"fmt"
	"strings"
)

const (
	IconSuccess = "✅"
	IconRefresh = "🔄"
	IconDot     = "•"
)

// Success logs a success message with a green checkmark
func Success(args ...interface{}) {
	defaultLogger.Info(IconSuccess + " " + fmt.Sprint(args...))
}

// Successf logs a formatted success message
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Progress logs a progress message with a refresh icon
func Progress(args ...interface{}) {
	defaultLogger.Info(IconRefresh + " " + fmt.Sprint(args...))
}

// Progressf logs a formatted progress message
func Progressf(format string, args ...interface{}) {
	Progress(fmt.Sprintf(format, args...))
}

// writeLines writes raw lines to the default logger's output
func writeLines(lines ...string) {
	l := defaultLogger.(*logger)
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range lines {
		_, _ = fmt.Fprintln(l.writer, line)
	}
}

// LogSection creates a visual section separator
func LogSection(title string) {
	l := defaultLogger.(*logger)
	line := strings.Repeat("=", 50)
	writeLines(l.paint(colorTitle, line), l.paint(colorTitle, title), l.paint(colorTitle, line))
}

// LogList logs a list of items with bullets
func LogList(title string, items []string) {
	Info(title)
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("  %s %s", IconDot, item)
	}
	writeLines(lines...)
}

// LogKeyValue logs a key-value pair
func LogKeyValue(key string, value interface{}) {
	l := defaultLogger.(*logger)
	writeLines(fmt.Sprintf("%s %v", l.paint(colorPrefix, key+":"), value))
}

// Table is a simple left-aligned text table
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a new table
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    [][]string{},
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Print writes the table to the default logger's output
func (t *Table) Print() {
	writeLines(t.Lines()...)
}

// Lines renders the table without trailing padding
func (t *Table) Lines() []string {
	if len(t.headers) == 0 {
		return nil
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	format := func(cells []string) string {
		var sb strings.Builder
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			fmt.Fprintf(&sb, "%-*s  ", widths[i], cell)
		}
		return strings.TrimRight(sb.String(), " ")
	}

	separators := make([]string, len(widths))
	for i, w := range widths {
		separators[i] = strings.Repeat("-", w)
	}

	lines := []string{format(t.headers), format(separators)}
	for _, row := range t.rows {
		lines = append(lines, format(row))
	}
	return lines
}
