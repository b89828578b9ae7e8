package configloader

import (
	"maps"

	"github.com/yaklabco/mdcomment/pkg/config"
)

// merge combines two configurations, with override taking precedence:
//   - scalars replace base when non-zero
//   - pointer settings replace base when non-nil, so an explicit false or 0 wins
//   - slices replace base when non-nil
//   - extension_mapping is merged key by key
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.TabSize != 0 {
		result.TabSize = override.TabSize
	}
	if override.PlantUMLJarPath != "" {
		result.PlantUMLJarPath = override.PlantUMLJarPath
	}
	if override.UseMDFileAsMainPage != "" {
		result.UseMDFileAsMainPage = override.UseMDFileAsMainPage
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.Page {
		result.Page = true
	}

	overridePtr(&result.TOCIncludeHeadings, override.TOCIncludeHeadings)
	overridePtr(&result.MarkdownSupport, override.MarkdownSupport)
	overridePtr(&result.HaveDot, override.HaveDot)
	overridePtr(&result.ExtLinksInWindow, override.ExtLinksInWindow)
	overridePtr(&result.InferCodeLanguage, override.InferCodeLanguage)

	overrideSlice(&result.ImagePath, override.ImagePath)
	overrideSlice(&result.StripFromPath, override.StripFromPath)
	overrideSlice(&result.Ignore, override.Ignore)

	if len(override.ExtensionMapping) > 0 {
		if result.ExtensionMapping == nil {
			result.ExtensionMapping = make(map[string]string, len(override.ExtensionMapping))
		}
		maps.Copy(result.ExtensionMapping, override.ExtensionMapping)
	}

	return result
}

func overridePtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func overrideSlice(dst *[]string, src []string) {
	if src != nil {
		*dst = append([]string(nil), src...)
	}
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
