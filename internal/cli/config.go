package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcomment/internal/logging"
	"github.com/yaklabco/mdcomment/pkg/config"
	"github.com/yaklabco/mdcomment/pkg/fsutil"
)

// defaultConfigFile is the file written by "config init".
const defaultConfigFile = ".mdcomment.yml"

// errConfigExists is returned when "config init" would overwrite a file.
var errConfigExists = errors.New("configuration file already exists")

type initFlags struct {
	force  bool
	full   bool
	output string
}

func newConfigCommand(gflags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the configuration",
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(gflags))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .mdcomment.yml configuration file",
		Long: `Create a .mdcomment.yml configuration file in the current directory.

Every setting is listed with its description. Without --full the settings
are commented out, so the file starts out with the built-in defaults.

Examples:
  mdcomment config init                     Create .mdcomment.yml
  mdcomment config init --full              Write every setting uncommented
  mdcomment config init -o docs/mdcomment.yml  Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runConfigInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigExists, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}

func newConfigShowCommand(gflags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Long: `Print the configuration mdcomment would use in the current directory,
after merging config files, MDCOMMENT_* environment variables and the .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			cfg, err := loadConfig(commandContext(cmd), workDir, gflags.configPath, nil)
			if err != nil {
				return err
			}
			data, err := cfg.ToYAMLWithHeader("# Resolved mdcomment configuration")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
