// Package assets provides the built-in résumé themes and custom theme
// loading by name.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	ThemeLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in themes)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── ThemeResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in themes (default, sidebar)
// embedded at compile time.
//
// FilesystemLoader allows users to provide custom themes from a
// directory, with path traversal protection and symlink resolution.
//
// ThemeResolver is the loader the renderer and CLI use. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the
// theme is not found. This lets a custom directory override a built-in
// theme by reusing its name. A custom theme that exists but fails to
// parse never falls back; the error surfaces.
//
// # Directory Structure
//
// A custom themes directory holds theme files directly:
//
//	{basePath}/
//	├── minimal.yaml
//	└── corporate.yaml
//
// Each file is a theme tree as parsed by the theme package; its stem is
// the loadable name.
//
// # Security
//
// Theme names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within
// the configured directory.
package assets
