package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdcomment/pkg/runner"
)

// FormatOutcome formats one converted file for terminal output, with path
// shown relative to workDir when possible.
// Example: "  docs/guide.md  md_docs_guide  "User Guide"  -> out/md_docs_guide.dox".
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, workDir string) string {
	path := DisplayPath(outcome.Path, workDir)

	if outcome.Error != nil {
		return fmt.Sprintf("  %s  %s  %s\n",
			s.FilePath.Render(path),
			s.Error.Render("error"),
			outcome.Error.Error(),
		)
	}

	parts := []string{s.FilePath.Render(path), s.PageID.Render(outcome.ID)}
	if outcome.Title != "" {
		parts = append(parts, s.Title.Render(fmt.Sprintf("%q", outcome.Title)))
	}
	switch {
	case outcome.OutputPath != "" && outcome.Written:
		parts = append(parts, s.Written.Render("-> "+DisplayPath(outcome.OutputPath, workDir)))
	case outcome.OutputPath != "":
		parts = append(parts, s.Dim.Render("unchanged"))
	}

	return "  " + strings.Join(parts, "  ") + "\n"
}

// DisplayPath returns path relative to workDir, or path itself when it is
// outside workDir.
func DisplayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
