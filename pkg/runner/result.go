package runner

import "github.com/yaklabco/mdcomment/pkg/fsutil"

// FileOutcome is the conversion of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// ID and Title name the page. Title is empty unless the page builder ran.
	ID    string
	Title string

	// Markup is the translated document.
	Markup []byte

	// BytesIn and BytesOut are the sizes of the source and the markup.
	BytesIn  int
	BytesOut int

	// OutputPath is the .dox file the markup went to, if any.
	OutputPath string

	// Written is false when OutputPath already held the same markup.
	Written bool

	// Snapshot records the source as it was read, for change detection.
	Snapshot *fsutil.Snapshot `json:"-"`

	// Error is set if the file could not be processed.
	Error error `json:"-"`
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesConverted  int
	FilesErrored    int
	FilesWritten    int
	BytesIn         int
	BytesOut        int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed to convert.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesConverted++
	r.Stats.BytesIn += outcome.BytesIn
	r.Stats.BytesOut += outcome.BytesOut
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
