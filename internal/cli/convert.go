package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdcomment/internal/configloader"
	"github.com/yaklabco/mdcomment/internal/logging"
	"github.com/yaklabco/mdcomment/pkg/config"
	"github.com/yaklabco/mdcomment/pkg/imageindex"
	"github.com/yaklabco/mdcomment/pkg/markup"
	"github.com/yaklabco/mdcomment/pkg/reporter"
	"github.com/yaklabco/mdcomment/pkg/runner"
)

// stdinPath is the argument that reads the document from standard input.
const stdinPath = "-"

type convertFlags struct {
	format         string
	stdinName      string
	include        []string
	ignore         []string
	imagePath      []string
	mainPage       string
	followSymlinks bool
	watch          bool
	summary        bool
}

func newConvertCommand(gflags *globalFlags) *cobra.Command {
	var cfg config.Config
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Translate Markdown files",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, gflags, &cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", "", "write one .dox file per page to this directory")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.Page, "page", false, "turn each file into a page")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "convert files again when they change")
	cmd.Flags().StringVar(&flags.stdinName, "stdin-name", "stdin.md", "file name used for standard input")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns a file must match")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.imagePath, "image-path", nil, "directories holding images")
	cmd.Flags().StringVar(&flags.mainPage, "mainpage", "", "Markdown file used as the main page")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary block after the run")

	return cmd
}

const convertLongDescription = `Translate Markdown files into documentation markup.

Without paths, converts standard input when it is not a terminal and every
Markdown file under the current directory otherwise. A path of "-" always
reads standard input.

By default the markup is printed. With --output-dir, every file becomes a
<page-id>.dox file in that directory and a table of pages is printed.

Examples:
  mdcomment convert README.md               # Print the markup of one file
  mdcomment convert --page docs/            # Convert docs/ as pages
  mdcomment convert -o build/dox --page .   # Write .dox files
  mdcomment convert --format json docs/     # Machine-readable results
  cat notes.md | mdcomment convert          # Convert standard input
  mdcomment convert -o build/dox --watch .  # Rebuild pages on change`

func runConvert(cmd *cobra.Command, args []string, gflags *globalFlags, cliCfg *config.Config, flags *convertFlags) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	cliCfg.Ignore = flags.ignore
	cliCfg.ImagePath = flags.imagePath
	cliCfg.UseMDFileAsMainPage = flags.mainPage

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(ctx, workDir, gflags.configPath, cliCfg)
	if err != nil {
		return err
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	images, err := buildImageIndex(ctx, cfg.ImagePath)
	if err != nil {
		return err
	}

	r := runner.New(images)
	opts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		IncludeGlobs:   flags.include,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		IDs:            markup.NewIDSequence(),
		Config:         cfg,
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      cfg.Format,
		Color:       gflags.color,
		ShowSummary: flags.summary,
		OutputDir:   cfg.OutputDir,
		WorkingDir:  workDir,
		Width:       terminalWidth(cmd.OutOrStdout()),
	})
	if err != nil {
		return err
	}

	if readsStdin(cmd, args) {
		if flags.watch {
			return errors.New("--watch cannot be used with standard input")
		}
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read standard input: %w", err)
		}
		outcome := r.Convert(ctx, filepath.Join(workDir, flags.stdinName), content, opts)
		result := &runner.Result{Files: []runner.FileOutcome{outcome}}
		result.Stats.FilesDiscovered = 1
		result.Stats.BytesIn = outcome.BytesIn
		result.Stats.BytesOut = outcome.BytesOut
		if outcome.Error != nil {
			result.Stats.FilesErrored = 1
		} else {
			result.Stats.FilesConverted = 1
		}
		return report(ctx, rep, result)
	}

	logger.Debug("starting conversion",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := r.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	logger.Debug("conversion finished",
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
	)

	if err := report(ctx, rep, result); err != nil && !flags.watch {
		return err
	}
	if !flags.watch {
		return nil
	}

	w, err := r.NewWatcher(opts, result)
	if err != nil {
		return err
	}
	logger.Info("watching for changes; press Ctrl-C to stop")
	return w.Run(ctx, func(outcome runner.FileOutcome) {
		if err := rep.ReportFile(ctx, outcome); err != nil {
			logger.Warn("report file", logging.FieldPath, outcome.Path, logging.FieldError, err)
		}
	})
}

// report prints a finished run and returns ErrConversionFailed when a
// file failed.
func report(ctx context.Context, rep reporter.Reporter, result *runner.Result) error {
	if err := rep.Report(ctx, result); err != nil {
		return err
	}
	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrConversionFailed
	}
	return nil
}

// commandContext returns the command's context, or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readsStdin reports whether the document comes from standard input.
func readsStdin(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == stdinPath {
		return true
	}
	if len(args) > 0 {
		return false
	}
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	return !term.IsTerminal(int(f.Fd()))
}

// loadConfig resolves the configuration and logs its warnings.
func loadConfig(ctx context.Context, workDir, configPath string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// buildImageIndex indexes the configured image directories that exist.
// Missing directories were already reported as configuration warnings.
func buildImageIndex(ctx context.Context, dirs []string) (*imageindex.Index, error) {
	var existing []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			existing = append(existing, dir)
		}
	}

	idx, err := imageindex.Build(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("index images: %w", err)
	}
	if len(existing) > 0 {
		logging.FromContext(ctx).Debug("indexed images", logging.FieldImages, idx.Len())
	}
	return idx, nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
