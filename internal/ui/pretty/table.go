package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/mdcomment/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // FILE, PAGE, TITLE, SIZE
	minFileWidth     = 20
	minIDWidth       = 12
	minTitleWidth    = 20
	minSizeWidth     = 8
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableRow represents a single page in the table.
type TableRow struct {
	File   string
	ID     string
	Title  string
	Size   string
	Failed bool
}

// TableFormatter formats converted pages as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	file  int
	id    int
	title int
	size  int
}

// FormatTable formats runner results as a table of pages.
func (t *TableFormatter) FormatTable(result *runner.Result, workDir string) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, OutcomeToTableRow(file, workDir))
	}
	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths) + "\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths) + "\n")
	}
	builder.WriteString(t.formatSeparator(widths) + "\n")

	return builder.String()
}

// OutcomeToTableRow converts a file outcome to a table row.
func OutcomeToTableRow(outcome runner.FileOutcome, workDir string) TableRow {
	row := TableRow{File: DisplayPath(outcome.Path, workDir), ID: outcome.ID, Title: outcome.Title}
	if outcome.Error != nil {
		row.Failed = true
		row.Title = outcome.Error.Error()
		return row
	}
	row.Size = humanize.Bytes(uint64(max(outcome.BytesOut, 0)))
	return row
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{file: minFileWidth, id: minIDWidth, title: minTitleWidth, size: minSizeWidth}
	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.id = max(widths.id, len(row.ID))
		widths.title = max(widths.title, len(row.Title))
		widths.size = max(widths.size, len(row.Size))
	}

	// Titles give way first, then file paths.
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.title = max(minTitleWidth, widths.title-excess)
		if excess = t.totalWidth(widths) - t.termWidth; excess > 0 {
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return widths.file + widths.id + widths.title + widths.size + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %*s ",
		widths.file, "FILE",
		widths.id, "PAGE",
		widths.title, "TITLE",
		widths.size, "SIZE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.totalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %*s ",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.id, truncateString(row.ID, widths.id),
		widths.title, truncateString(row.Title, widths.title),
		widths.size, row.Size,
	)
	if row.Failed {
		return t.styles.TableErrorRow.Render(content)
	}
	return content
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
