package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yaklabco/mdcomment/pkg/config"
)

// envVarPrefix is the prefix for all mdcomment environment variables.
const envVarPrefix = "MDCOMMENT_"

// envSetting binds one environment variable to a config field.
type envSetting struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

// envSettings maps variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envSettings = map[string]envSetting{
	"TAB_SIZE": {"Tab stop width", func(cfg *config.Config, v string) error {
		return parseInt(v, &cfg.TabSize)
	}},
	"TOC_INCLUDE_HEADINGS": {"Deepest heading level with an anchor (0 disables)", func(cfg *config.Config, v string) error {
		var n int
		if err := parseInt(v, &n); err != nil {
			return err
		}
		cfg.TOCIncludeHeadings = &n
		return nil
	}},
	"MARKDOWN_SUPPORT": {"Translate Markdown: true or false", boolSetter(func(c *config.Config) **bool { return &c.MarkdownSupport })},
	"HAVE_DOT":         {"Enable dot blocks: true or false", boolSetter(func(c *config.Config) **bool { return &c.HaveDot })},
	"EXT_LINKS_IN_WINDOW": {"Open external links in a new window: true or false",
		boolSetter(func(c *config.Config) **bool { return &c.ExtLinksInWindow })},
	"INFER_CODE_LANGUAGE": {"Guess languages of untagged code blocks: true or false",
		boolSetter(func(c *config.Config) **bool { return &c.InferCodeLanguage })},
	"PLANTUML_JAR_PATH": {"Path to plantuml.jar", func(cfg *config.Config, v string) error {
		cfg.PlantUMLJarPath = v
		return nil
	}},
	"USE_MDFILE_AS_MAINPAGE": {"Markdown file used as the main page", func(cfg *config.Config, v string) error {
		cfg.UseMDFileAsMainPage = v
		return nil
	}},
	"IMAGE_PATH": {"Comma-separated image directories", func(cfg *config.Config, v string) error {
		cfg.ImagePath = parseSliceValue(v)
		return nil
	}},
	"STRIP_FROM_PATH": {"Comma-separated prefixes stripped from page paths", func(cfg *config.Config, v string) error {
		cfg.StripFromPath = parseSliceValue(v)
		return nil
	}},
	"IGNORE": {"Comma-separated ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
	"EXTENSION_MAPPING": {"Comma-separated ext=language pairs", func(cfg *config.Config, v string) error {
		mapping, err := parseMapValue(v)
		if err != nil {
			return err
		}
		cfg.ExtensionMapping = mapping
		return nil
	}},
	"JOBS": {"Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		return parseInt(v, &cfg.Jobs)
	}},
	"FORMAT": {"Output format: text or json", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	"OUTPUT_DIR": {"Directory receiving .dox files", func(cfg *config.Config, v string) error {
		cfg.OutputDir = v
		return nil
	}},
}

// Environment looks variables up in the process environment first and
// then in the values read from a .env file.
type Environment struct {
	dotEnv map[string]string
}

// NewEnvironment reads the optional .env files. Missing files are an error;
// pass no files to use the process environment only.
func NewEnvironment(dotEnvFiles ...string) (*Environment, error) {
	env := &Environment{dotEnv: map[string]string{}}
	if len(dotEnvFiles) == 0 {
		return env, nil
	}
	values, err := godotenv.Read(dotEnvFiles...)
	if err != nil {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	env.dotEnv = values
	return env, nil
}

// Lookup returns the value of key.
func (e *Environment) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	if e == nil {
		return "", false
	}
	v, ok := e.dotEnv[key]
	return v, ok
}

// Apply sets every config field whose variable is present and non-empty.
func (e *Environment) Apply(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, name := range sortedEnvNames() {
		value, ok := e.Lookup(envVarPrefix + name)
		if !ok || value == "" {
			continue
		}
		if err := envSettings[name].apply(cfg, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("%s%s: %w", envVarPrefix, name, err)
		}
	}
	return nil
}

// LoadFromEnv applies the process environment to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return (&Environment{}).Apply(cfg)
}

// ListEnvVars returns the supported variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envSettings))
	for name, s := range envSettings {
		vars[envVarPrefix+name] = s.description
	}
	return vars
}

func sortedEnvNames() []string {
	names := make([]string, 0, len(envSettings))
	for name := range envSettings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func boolSetter(field func(*config.Config) **bool) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		*field(cfg) = &b
		return nil
	}
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer %q", v)
	}
	*dst = n
	return nil
}

// parseSliceValue parses a comma-separated string into trimmed elements.
func parseSliceValue(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseMapValue parses `key=value` pairs separated by commas.
func parseMapValue(value string) (map[string]string, error) {
	result := make(map[string]string)
	for _, pair := range parseSliceValue(value) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid mapping %q (expected ext=language)", pair)
		}
		result[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return result, nil
}
