package assets

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/theme"
)

//go:embed themes/*.yaml
var themes embed.FS

// EmbeddedLoader loads themes from the embedded filesystem.
// Implements ThemeLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTheme loads a theme from embedded assets by name.
// The name should not include the .yaml extension.
func (e *EmbeddedLoader) LoadTheme(name string) (*theme.Config, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	data, err := themes.ReadFile("themes/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", theme.ErrThemeNotFound, name)
	}

	cfg, err := theme.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("embedded theme %q: %w", name, err)
	}

	return cfg, nil
}

// ListThemes returns the names of the built-in themes, sorted.
func (e *EmbeddedLoader) ListThemes() ([]string, error) {
	entries, err := themes.ReadDir("themes")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)

	return names, nil
}

// Compile-time interface check.
var _ ThemeLoader = (*EmbeddedLoader)(nil)
