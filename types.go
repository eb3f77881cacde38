package cv2pdf

import "time"

// Input contains rendering parameters.
type Input struct {
	// Source is the résumé text: an optional YAML frontmatter block
	// followed by Markdown-shaped body content (required).
	Source string

	// SourceDir is the directory relative photo and link paths resolve
	// against during PDF export (optional).
	SourceDir string

	// ExtraCSS is appended after the generated stylesheet and the
	// theme's own extra CSS, so it can override both (optional).
	ExtraCSS string

	// HTMLOnly skips PDF generation; Result.PDF stays nil.
	HTMLOnly bool
}

// Result holds the rendered outputs.
type Result struct {
	// HTML is the themed standalone document, suitable for previewing.
	HTML []byte

	// PDF is the exported document, nil when Input.HTMLOnly was set.
	PDF []byte
}

// ThemeInfo reports the active theme's layout and export decisions for
// callers that coordinate pagination or printing with the rendered
// output. Enum fields are normalized to lowercase with defaults filled.
type ThemeInfo struct {
	Mode        string // "single", "two-column"
	PageSize    string // "a4", "letter", "legal"
	Orientation string // "portrait", "landscape"
	Estimator   string // "simple", "sections"
	PageNumbers bool
	FooterText  string
}

// AssetResolver maps an opaque asset reference from the résumé — a
// photo path, data URI, or URL — to something the output surface can
// display. Rendering degrades to a placeholder when resolution fails;
// the error never aborts the render.
type AssetResolver interface {
	ResolveAsset(ref string) (string, error)
}

// FontLoader is notified of the font families the compiled theme uses,
// so callers can warm caches or register web fonts. Calls are
// fire-and-forget: loading happens outside the render path and cannot
// fail it.
type FontLoader interface {
	LoadFonts(families []string)
}

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	timeout    time.Duration
	themeInput string // built-in name, file path, or inline YAML
	themeDir   string // custom themes directory, "" = embedded only
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the browser operation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("cv2pdf: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithTheme selects the theme: a built-in name ("default", "sidebar"),
// a YAML file path, or inline YAML content. Empty keeps the default
// theme.
func WithTheme(input string) Option {
	return func(r *Renderer) {
		r.cfg.themeInput = input
	}
}

// WithThemeDir adds a directory of custom {name}.yaml themes. Custom
// themes shadow built-ins by name, with fallback to the embedded set.
func WithThemeDir(path string) Option {
	return func(r *Renderer) {
		r.cfg.themeDir = path
	}
}

// WithAssetResolver installs the photo/asset resolution hook.
func WithAssetResolver(ar AssetResolver) Option {
	return func(r *Renderer) {
		r.assets = ar
	}
}

// WithFontLoader installs the font warm-up hook, invoked once per
// renderer with the compiled theme's font families.
func WithFontLoader(fl FontLoader) Option {
	return func(r *Renderer) {
		r.fonts = fl
	}
}
