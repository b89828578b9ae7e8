package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Conversion fields.
	FieldID       = "id"
	FieldTitle    = "title"
	FieldBytes    = "bytes"
	FieldDuration = "duration"
	FieldJobs     = "jobs"
	FieldImages   = "images"
	FieldEvent    = "event"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesErrored    = "files_errored"
	FieldFilesWritten    = "files_written"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
