package config

// OutputFormat specifies how converted documents are printed.
type OutputFormat string

const (
	// FormatText prints the markup of each document.
	FormatText OutputFormat = "text"
	// FormatJSON prints one JSON object per document.
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// Formats lists the known output formats.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON}
}
