package assets

import "errors"

// Sentinel errors for theme asset operations. "Theme not found" itself
// is theme.ErrThemeNotFound, shared with path-based loading so callers
// can errors.Is against one sentinel no matter how the theme was named.
var (
	// ErrInvalidAssetName indicates the theme name contains invalid
	// characters such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid theme name")

	// ErrInvalidBasePath indicates the configured themes directory is not
	// a valid, readable directory.
	ErrInvalidBasePath = errors.New("invalid themes directory")

	// ErrAssetRead indicates an I/O error occurred while reading a theme file.
	ErrAssetRead = errors.New("failed to read theme")

	// ErrPathTraversal indicates an attempt to access files outside the
	// themes directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
