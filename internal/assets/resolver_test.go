package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-cv2pdf/internal/theme"
)

func TestNewThemeResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewThemeResolver("")
		if err != nil {
			t.Fatalf("NewThemeResolver(\"\") error = %v", err)
		}
		if resolver == nil {
			t.Fatal("NewThemeResolver() returned nil")
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()

		resolver, err := NewThemeResolver(tmpDir)
		if err != nil {
			t.Fatalf("NewThemeResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewThemeResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewThemeResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestThemeResolver_LoadTheme_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	resolver, err := NewThemeResolver("")
	if err != nil {
		t.Fatalf("NewThemeResolver() error = %v", err)
	}

	t.Run("loads embedded theme", func(t *testing.T) {
		t.Parallel()

		cfg, err := resolver.LoadTheme("default")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if cfg == nil {
			t.Fatal("LoadTheme() returned nil config")
		}
	})

	t.Run("returns error for nonexistent", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadTheme("nonexistent-xyz")
		if !errors.Is(err, theme.ErrThemeNotFound) {
			t.Errorf("LoadTheme() error = %v, want ErrThemeNotFound", err)
		}
	})
}

func TestThemeResolver_LoadTheme_CustomWithFallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// A custom theme, plus an override reusing a built-in name.
	custom := "colors:\n  primary: \"#be123c\"\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "ruby.yaml"), []byte(custom), 0644); err != nil {
		t.Fatalf("failed to write theme file: %v", err)
	}
	override := "layout:\n  mode: \"two-column\"\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "default.yaml"), []byte(override), 0644); err != nil {
		t.Fatalf("failed to write theme file: %v", err)
	}

	resolver, err := NewThemeResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewThemeResolver() error = %v", err)
	}

	t.Run("loads custom theme when available", func(t *testing.T) {
		t.Parallel()

		cfg, err := resolver.LoadTheme("ruby")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if cfg.Colors.Primary != "#be123c" {
			t.Errorf("LoadTheme() primary = %q, want %q", cfg.Colors.Primary, "#be123c")
		}
	})

	t.Run("custom overrides built-in of same name", func(t *testing.T) {
		t.Parallel()

		cfg, err := resolver.LoadTheme("default")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if cfg.Layout.Mode != "two-column" {
			t.Errorf("LoadTheme(\"default\") mode = %q, want the custom override", cfg.Layout.Mode)
		}
	})

	t.Run("falls back to embedded when custom not found", func(t *testing.T) {
		t.Parallel()

		cfg, err := resolver.LoadTheme("sidebar")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if cfg.Layout.Mode != "two-column" {
			t.Errorf("LoadTheme(\"sidebar\") mode = %q, want %q", cfg.Layout.Mode, "two-column")
		}
	})

	t.Run("returns error when neither has the theme", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadTheme("nonexistent-xyz")
		if !errors.Is(err, theme.ErrThemeNotFound) {
			t.Errorf("LoadTheme() error = %v, want ErrThemeNotFound", err)
		}
	})
}

func TestThemeResolver_BrokenCustomDoesNotFallBack(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// Shadow the built-in "default" with an unparseable file. The load
	// must fail rather than silently use the embedded theme.
	if err := os.WriteFile(filepath.Join(tmpDir, "default.yaml"), []byte("colours: nope\n"), 0644); err != nil {
		t.Fatalf("failed to write theme file: %v", err)
	}

	resolver, err := NewThemeResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewThemeResolver() error = %v", err)
	}

	_, err = resolver.LoadTheme("default")
	if !errors.Is(err, theme.ErrThemeParse) {
		t.Errorf("LoadTheme() error = %v, want ErrThemeParse", err)
	}
}

func TestThemeResolver_ListThemes(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewThemeResolver("")
		if err != nil {
			t.Fatalf("NewThemeResolver() error = %v", err)
		}

		names, err := resolver.ListThemes()
		if err != nil {
			t.Fatalf("ListThemes() error = %v", err)
		}
		if !containsName(names, "default") || !containsName(names, "sidebar") {
			t.Errorf("ListThemes() = %v, want built-ins included", names)
		}
	})

	t.Run("union with custom, deduplicated and sorted", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		for _, name := range []string{"ruby.yaml", "default.yaml"} {
			if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(validThemeYAML), 0644); err != nil {
				t.Fatalf("failed to write theme file: %v", err)
			}
		}

		resolver, err := NewThemeResolver(tmpDir)
		if err != nil {
			t.Fatalf("NewThemeResolver() error = %v", err)
		}

		names, err := resolver.ListThemes()
		if err != nil {
			t.Fatalf("ListThemes() error = %v", err)
		}

		count := 0
		for _, name := range names {
			if name == "default" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("ListThemes() = %v, want %q exactly once", names, "default")
		}
		if !containsName(names, "ruby") {
			t.Errorf("ListThemes() = %v, want custom theme included", names)
		}
		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("ListThemes() not sorted: %v", names)
				break
			}
		}
	})
}

func containsName(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}

func TestThemeResolver_ImplementsThemeLoader(t *testing.T) {
	t.Parallel()

	var _ ThemeLoader = (*ThemeResolver)(nil)
}
