package runner

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/yaklabco/mdcomment/internal/logging"
	"github.com/yaklabco/mdcomment/pkg/fsutil"
	"github.com/yaklabco/mdcomment/pkg/langdetect"
	"github.com/yaklabco/mdcomment/pkg/markup"
	"github.com/yaklabco/mdcomment/pkg/page"
)

// OutputExt is the extension of the files written to the output directory.
const OutputExt = ".dox"

// commentEnd would close the comment wrapping a .dox file early.
var (
	commentEnd        = []byte("*/")
	commentEndEscaped = []byte("*&#47;")
)

// Runner converts Markdown files with a shared configuration.
type Runner struct {
	// Images resolves image references. May be nil.
	Images markup.ImageRegistry
}

// New creates a Runner that resolves images through images.
func New(images markup.ImageRegistry) *Runner {
	return &Runner{Images: images}
}

// ConvertFile reads and converts the file at path.
func (r *Runner) ConvertFile(ctx context.Context, path string, opts Options) FileOutcome {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}
	outcome := r.Convert(ctx, path, content, opts)
	outcome.Snapshot = snap
	return outcome
}

// Convert translates content, the text of name. With opts.Config.Page set
// the whole document becomes a page; otherwise it is translated the way a
// documentation comment is. The result is written to the output directory
// when one is configured.
func (r *Runner) Convert(ctx context.Context, name string, content []byte, opts Options) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Path: name, BytesIn: len(content)}
	cfg := opts.Config

	mo, err := r.markupOptions(opts)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	if cfg != nil && cfg.Page {
		pg := page.Build(name, content, page.Options{
			Markup:        mo,
			MainPageFile:  cfg.UseMDFileAsMainPage,
			StripFromPath: cfg.StripFromPath,
		})
		outcome.ID = pg.ID
		outcome.Title = pg.Title
		outcome.Markup = pg.Markup
	} else {
		var stripFromPath []string
		if cfg != nil {
			stripFromPath = cfg.StripFromPath
		}
		outcome.ID = page.FileNameToID(name, stripFromPath)
		outcome.Markup, _ = markup.New(name, 1, 0, mo).Process(content)
	}
	outcome.BytesOut = len(outcome.Markup)

	if cfg != nil && cfg.OutputDir != "" {
		if err := r.write(ctx, &outcome, cfg.OutputDir); err != nil {
			outcome.Error = err
			return outcome
		}
	}

	logging.FromContext(ctx).Debug("converted",
		logging.FieldPath, name,
		logging.FieldID, outcome.ID,
		logging.FieldBytes, outcome.BytesOut,
		logging.FieldDuration, time.Since(start),
	)
	return outcome
}

// markupOptions assembles the engine options and collaborators for a run.
func (r *Runner) markupOptions(opts Options) (markup.Options, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return markup.Options{}, fmt.Errorf("resolve working directory: %w", err)
	}

	mo := opts.Config.MarkupOptions()
	mo.IDs = opts.IDs
	mo.Images = r.Images
	mo.Files = fsutil.Prober{Dir: workDir}
	mo.Languages = opts.classifier()
	if opts.Config.InferLanguage() {
		mo.CodeGuess = langdetect.Guesser{}
	}
	return mo, nil
}

// write stores the markup of outcome as <dir>/<id>.dox.
func (r *Runner) write(ctx context.Context, outcome *FileOutcome, dir string) error {
	outcome.OutputPath = filepath.Join(dir, outcome.ID+OutputExt)
	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.OutputPath, WrapComment(outcome.Markup), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", outcome.OutputPath, err)
	}
	outcome.Written = written
	return nil
}

// WrapComment encloses markup in a documentation comment block.
func WrapComment(markup []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(markup) + 8)
	buf.WriteString("/**\n")
	buf.Write(bytes.ReplaceAll(markup, commentEnd, commentEndEscaped))
	if len(markup) > 0 && markup[len(markup)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString("*/\n")
	return buf.Bytes()
}
