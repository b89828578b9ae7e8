package runner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdcomment/pkg/config"
	"github.com/yaklabco/mdcomment/pkg/runner"
)

type stubImages map[string]bool

func (s stubImages) Lookup(name string) (string, bool) {
	return name, s[name]
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup write: %v", err)
	}
}

func TestRunner_Run_Empty(t *testing.T) {
	t.Parallel()

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesDiscovered != 0 || len(result.Files) != 0 {
		t.Errorf("expected no files, got %+v", result.Stats)
	}
	if result.HasErrors() {
		t.Error("HasErrors() = true for an empty run")
	}
}

func TestRunner_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names := []string{"a.md", "b.md", "c.md", "d.md", "e.md"}
	for _, name := range names {
		writeFile(t, filepath.Join(dir, name), "# "+name+"\n\nSome *text*.\n")
	}

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       3,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != len(names) {
		t.Errorf("FilesDiscovered = %d, want %d", result.Stats.FilesDiscovered, len(names))
	}
	if result.Stats.FilesConverted != len(names) {
		t.Errorf("FilesConverted = %d, want %d", result.Stats.FilesConverted, len(names))
	}
	for i, outcome := range result.Files {
		if filepath.Base(outcome.Path) != names[i] {
			t.Errorf("Files[%d] = %s, want %s", i, outcome.Path, names[i])
		}
		if !bytes.Contains(outcome.Markup, []byte("<em>text</em>")) {
			t.Errorf("%s: markup %q lacks emphasis", names[i], outcome.Markup)
		}
		if outcome.Snapshot == nil {
			t.Errorf("%s: missing snapshot", names[i])
		}
	}
	if result.Stats.BytesIn == 0 || result.Stats.BytesOut == 0 {
		t.Errorf("byte counts not accumulated: %+v", result.Stats)
	}
}

func TestRunner_Run_UniqueAnchorsAcrossPages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "Title\n=====\n\n## Section\n")
	writeFile(t, filepath.Join(dir, "b.md"), "Title\n=====\n\n## Section\n")

	cfg := config.NewConfig()
	cfg.Page = true
	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       1,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(result.Files))
	}
	a, b := string(result.Files[0].Markup), string(result.Files[1].Markup)
	if !strings.Contains(a, "autotoc_md0") {
		t.Errorf("first page should use autotoc_md0:\n%s", a)
	}
	if !strings.Contains(b, "autotoc_md1") || strings.Contains(b, "autotoc_md0") {
		t.Errorf("second page should continue the sequence:\n%s", b)
	}
}

func TestRunner_Convert_Page(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.Page = true
	cfg.StripFromPath = []string{dir}

	outcome := runner.New(nil).Convert(context.Background(), filepath.Join(dir, "guide.md"),
		[]byte("# User Guide\n\nHello.\n"), runner.Options{WorkingDir: dir, Config: cfg})
	if outcome.Error != nil {
		t.Fatalf("Convert() error = %v", outcome.Error)
	}
	if outcome.ID != "md_guide" {
		t.Errorf("ID = %q, want md_guide", outcome.ID)
	}
	if outcome.Title != "User Guide" {
		t.Errorf("Title = %q, want User Guide", outcome.Title)
	}
	if !bytes.HasPrefix(outcome.Markup, []byte(`@page md_guide User Guide\ilinebr `)) {
		t.Errorf("Markup = %q", outcome.Markup)
	}
}

func TestRunner_Convert_Collaborators(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "other.md"), "# Other\n")

	cfg := config.NewConfig()
	cfg.InferCodeLanguage = new(bool)
	*cfg.InferCodeLanguage = true
	input := "![logo](logo.png)\n\n[other](other.md)\n\n```\n#!/usr/bin/env python3\nprint('hi')\n```\n"

	outcome := runner.New(stubImages{"logo.png": true}).Convert(context.Background(),
		filepath.Join(dir, "doc.md"), []byte(input), runner.Options{WorkingDir: dir, Config: cfg})
	if outcome.Error != nil {
		t.Fatalf("Convert() error = %v", outcome.Error)
	}

	out := string(outcome.Markup)
	for _, want := range []string{
		"@image html logo.png",
		"@ref " + filepath.Join(dir, "other.md"),
		"@icode{py}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markup lacks %q:\n%s", want, out)
		}
	}
}

func TestRunner_Convert_OutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	cfg := config.NewConfig()
	cfg.OutputDir = outDir
	cfg.StripFromPath = []string{dir}
	opts := runner.Options{WorkingDir: dir, Config: cfg}
	r := runner.New(nil)
	name := filepath.Join(dir, "notes.md")

	first := r.Convert(context.Background(), name, []byte("Some `code`.\n"), opts)
	if first.Error != nil {
		t.Fatalf("Convert() error = %v", first.Error)
	}
	if !first.Written {
		t.Error("first conversion should write the output")
	}
	if want := filepath.Join(outDir, "md_notes.dox"); first.OutputPath != want {
		t.Errorf("OutputPath = %s, want %s", first.OutputPath, want)
	}

	got, err := os.ReadFile(first.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Equal(got, runner.WrapComment(first.Markup)) {
		t.Errorf("output = %q", got)
	}

	second := r.Convert(context.Background(), name, []byte("Some `code`.\n"), opts)
	if second.Error != nil || second.Written {
		t.Errorf("unchanged conversion: Written = %v, Error = %v", second.Written, second.Error)
	}
}

func TestRunner_ConvertFile_Missing(t *testing.T) {
	t.Parallel()

	outcome := runner.New(nil).ConvertFile(context.Background(),
		filepath.Join(t.TempDir(), "missing.md"), runner.Options{Config: config.NewConfig()})
	if outcome.Error == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "text\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.New(nil).Run(ctx, runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestWrapComment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"adds newline", "text", "/**\ntext\n*/\n"},
		{"keeps newline", "text\n", "/**\ntext\n*/\n"},
		{"escapes comment end", "a */ b\n", "/**\na *&#47; b\n*/\n"},
		{"empty", "", "/**\n*/\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := string(runner.WrapComment([]byte(tt.input))); got != tt.want {
				t.Errorf("WrapComment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
