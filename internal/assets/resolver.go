package assets

import (
	"errors"
	"sort"

	"github.com/alnah/go-cv2pdf/internal/theme"
)

// ThemeResolver combines custom and embedded loaders with fallback logic.
// When a custom themes directory is configured, it tries custom first,
// then falls back to embedded if the theme is not found there.
type ThemeResolver struct {
	custom   ThemeLoader // nil if no custom directory configured
	embedded ThemeLoader
}

// NewThemeResolver creates a ThemeResolver.
// If customBasePath is empty, only embedded themes are used.
// If customBasePath is set, custom themes take precedence with fallback
// to embedded. Returns error if customBasePath is set but invalid.
func NewThemeResolver(customBasePath string) (*ThemeResolver, error) {
	resolver := &ThemeResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTheme loads a theme, trying the custom loader first if available.
func (r *ThemeResolver) LoadTheme(name string) (*theme.Config, error) {
	// If no custom loader, use embedded directly
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	// Try custom loader first
	cfg, err := r.custom.LoadTheme(name)
	if err == nil {
		return cfg, nil
	}

	// Only fall back for "not found" errors, not validation, parse, or
	// I/O errors. A broken custom theme must fail loudly instead of
	// silently rendering with the built-in of the same name.
	if !errors.Is(err, theme.ErrThemeNotFound) {
		return nil, err
	}

	// Fall back to embedded
	return r.embedded.LoadTheme(name)
}

// ListThemes returns the union of custom and embedded theme names,
// deduplicated and sorted.
func (r *ThemeResolver) ListThemes() ([]string, error) {
	names, err := r.embedded.ListThemes()
	if err != nil {
		return nil, err
	}

	if r.custom != nil {
		customNames, err := r.custom.ListThemes()
		if err != nil {
			return nil, err
		}
		names = append(names, customNames...)
	}

	seen := make(map[string]bool, len(names))
	unique := names[:0]
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	sort.Strings(unique)

	return unique, nil
}

// HasCustomLoader returns true if a custom themes directory is configured.
func (r *ThemeResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ ThemeLoader = (*ThemeResolver)(nil)
