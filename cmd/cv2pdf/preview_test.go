package main

// Notes:
// - runPreview blocks serving until interrupted, so the happy path is
//   covered by the internal/preview package tests; here we exercise
//   argument validation and construction failures.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cv2pdf "github.com/alnah/go-cv2pdf"
)

func TestRunPreviewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no input", nil, ErrNoInput},
		{"two inputs", []string{"a.md", "b.md"}, errBadFlags},
		{"bad extension", []string{"cv.docx"}, ErrInvalidExtension},
		{"unknown flag", []string{"--workers", "2", "cv.md"}, errBadFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps, _, _ := testDeps()

			err := runPreview(tt.args, deps)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunPreviewHelp(t *testing.T) {
	t.Parallel()
	deps, _, _ := testDeps()

	if err := runPreview([]string{"--help"}, deps); err != nil {
		t.Errorf("--help should return nil, got %v", err)
	}
}

func TestRunPreviewMissingSource(t *testing.T) {
	t.Parallel()
	deps, _, _ := testDeps()

	err := runPreview([]string{filepath.Join("no", "such", "cv.md")}, deps)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestRunPreviewBadTheme(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	src := filepath.Join(dir, "cv.md")
	if err := os.WriteFile(src, []byte(renderSource), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	deps, _, _ := testDeps()

	err := runPreview([]string{src, "--theme", "no-such-theme"}, deps)
	if !errors.Is(err, cv2pdf.ErrThemeNotFound) {
		t.Fatalf("err = %v, want ErrThemeNotFound", err)
	}
	if !strings.Contains(err.Error(), "available:") {
		t.Errorf("err = %q, want available-themes hint", err.Error())
	}
}
