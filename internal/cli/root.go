// Package cli provides the Cobra command structure for mdcomment.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcomment/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by all subcommands.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root mdcomment command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdcomment",
		Short: "Translate Markdown into documentation markup",
		Long: `mdcomment translates Markdown documents and documentation comments into
the command markup of a documentation generator.

Headings become sections with anchors, links become references, fenced code
becomes code commands and whole files become pages named after their path.
The output is printed or written as .dox files, one per page.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newConvertCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(flags.color, rootCmd.OutOrStdout()).ApplyToCommand(rootCmd)

	return rootCmd
}
