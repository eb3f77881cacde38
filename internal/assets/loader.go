package assets

import "github.com/alnah/go-cv2pdf/internal/theme"

// ThemeLoader defines the contract for loading résumé themes by name.
// Implementations may load from embedded assets, a filesystem directory,
// or combine both with fallback.
type ThemeLoader interface {
	// LoadTheme loads and parses a theme by name (without .yaml extension).
	// Returns theme.ErrThemeNotFound if no theme with that name exists.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	// Parse and validation failures surface as theme package errors.
	LoadTheme(name string) (*theme.Config, error)

	// ListThemes returns the names of every loadable theme, sorted.
	ListThemes() ([]string, error)
}
