package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdcomment/pkg/config"
	"github.com/yaklabco/mdcomment/pkg/markup"
)

func TestOutputFormatIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format config.OutputFormat
		want   bool
	}{
		{config.FormatText, true},
		{config.FormatJSON, true},
		{"sarif", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.format.IsValid())
		})
	}
}

func TestMarkupOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults match engine defaults", func(t *testing.T) {
		t.Parallel()
		opts := config.NewConfig().MarkupOptions()
		assert.Equal(t, markup.DefaultOptions(), opts)
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		var cfg *config.Config
		assert.Equal(t, markup.DefaultOptions(), cfg.MarkupOptions())
		assert.False(t, cfg.InferLanguage())
	})

	t.Run("settings are carried over", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(`
tab_size: 2
toc_include_headings: 0
markdown_support: false
plantuml_jar_path: /opt/plantuml.jar
have_dot: true
ext_links_in_window: true
infer_code_language: true
`))
		assert.NoError(t, err)

		opts := cfg.MarkupOptions()
		assert.Equal(t, 2, opts.TabSize)
		assert.Equal(t, 0, opts.TOCIncludeHeadings)
		assert.True(t, opts.Disabled)
		assert.Equal(t, "/opt/plantuml.jar", opts.PlantUMLJarPath)
		assert.True(t, opts.HaveDot)
		assert.True(t, opts.ExtLinksInWindow)
		assert.True(t, cfg.InferLanguage())
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses to an empty config", func(t *testing.T) {
		t.Parallel()
		data := config.GenerateTemplate(config.TemplateOptions{})
		assert.Contains(t, string(data), "# mdcomment configuration")
		assert.Contains(t, string(data), "# tab_size: 4")

		cfg, err := config.FromYAML(data)
		assert.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("full template parses to the defaults", func(t *testing.T) {
		t.Parallel()
		data := config.GenerateTemplate(config.TemplateOptions{Full: true})

		var keys map[string]any
		assert.NoError(t, yaml.Unmarshal(data, &keys))
		for _, s := range config.Settings() {
			assert.Contains(t, keys, s.Key)
		}

		cfg, err := config.FromYAML(data)
		assert.NoError(t, err)
		assert.Equal(t, config.NewConfig().MarkupOptions(), cfg.MarkupOptions())
	})
}
