package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/mdcomment/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 3 files (4.1 kB -> 5.0 kB), 2 written, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("Converted %d %s", stats.FilesConverted, plural(stats.FilesConverted))) +
			s.Dim.Render(fmt.Sprintf(" (%s -> %s)", bytesLabel(stats.BytesIn), bytesLabel(stats.BytesOut))),
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Written.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:     " + s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files converted: " + s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)) + "\n")
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:   " + s.Written.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:    " + s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Markdown in:     " + s.SummaryValue.Render(bytesLabel(stats.BytesIn)) + "\n")
	builder.WriteString("  Markup out:      " + s.SummaryValue.Render(bytesLabel(stats.BytesOut)) + "\n")
	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Conversion failed for " + strconv.Itoa(stats.FilesErrored) + " " +
			plural(stats.FilesErrored)))
	} else {
		builder.WriteString(s.Success.Render("Conversion complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}

func bytesLabel(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
