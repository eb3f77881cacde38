package main

import (
	"errors"
	"os"

	cv2pdf "github.com/alnah/go-cv2pdf"
)

// Exit codes for the cv2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, theme, or source content
	ExitIO      = 3 // File not found, permission denied, bind failure
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, cv2pdf.ErrBrowserConnect) ||
		errors.Is(err, cv2pdf.ErrPageCreate) ||
		errors.Is(err, cv2pdf.ErrPageLoad) ||
		errors.Is(err, cv2pdf.ErrMeasure) ||
		errors.Is(err, cv2pdf.ErrPDFExport) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrListen) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/content/validation errors (exit 2)
	if errors.Is(err, cv2pdf.ErrEmptySource) ||
		errors.Is(err, cv2pdf.ErrSourceParse) ||
		errors.Is(err, cv2pdf.ErrThemeNotFound) ||
		errors.Is(err, cv2pdf.ErrThemeInvalid) ||
		errors.Is(err, cv2pdf.ErrInvalidThemeDir) ||
		errors.Is(err, cv2pdf.ErrInvalidDateFormat) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, errBadFlags) {
		return ExitUsage
	}

	return ExitGeneral
}
