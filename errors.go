package cv2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource = errors.New("résumé source cannot be empty")
	ErrSourceParse = errors.New("failed to parse résumé source")

	// Theme resolution errors.
	ErrThemeNotFound   = errors.New("theme not found")
	ErrThemeInvalid    = errors.New("invalid theme")
	ErrInvalidThemeDir = errors.New("invalid theme directory")

	// Date resolution errors ("updated: auto" frontmatter).
	ErrInvalidDateFormat = errors.New("invalid date format")

	// Browser and export errors.
	ErrPDFExport      = errors.New("PDF export failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrMeasure        = errors.New("geometry measurement failed")
)
