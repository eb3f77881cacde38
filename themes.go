package cv2pdf

import (
	"errors"

	"github.com/alnah/go-cv2pdf/internal/assets"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

// DefaultTheme is the name of the built-in theme used when none is
// selected.
const DefaultTheme = assets.DefaultThemeName

// ListThemes returns the available theme names in sorted order:
// built-ins plus any custom themes in themeDir. Pass "" for built-ins
// only. Custom themes shadowing a built-in name appear once.
func ListThemes(themeDir string) ([]string, error) {
	resolver, err := assets.NewThemeResolver(themeDir)
	if err != nil {
		return nil, convertThemeError(err)
	}
	names, err := resolver.ListThemes()
	if err != nil {
		return nil, convertThemeError(err)
	}
	return names, nil
}

// convertThemeError maps internal theme and asset errors to public errors.
func convertThemeError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isError(err, theme.ErrThemeNotFound):
		return wrapError(ErrThemeNotFound, err)
	case isError(err, theme.ErrThemeParse):
		return wrapError(ErrThemeInvalid, err)
	case isError(err, theme.ErrInvalidField):
		return wrapError(ErrThemeInvalid, err)
	case isError(err, theme.ErrFieldTooLong):
		return wrapError(ErrThemeInvalid, err)
	case isError(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidThemeDir, err)
	case isError(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidThemeDir, err)
	case isError(err, assets.ErrInvalidAssetName):
		return wrapError(ErrThemeNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// isError checks if err wraps or equals target using errors.Is semantics.
func isError(err, target error) bool {
	return errors.Is(err, target)
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
