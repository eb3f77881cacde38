// Package markup renders parsed résumé documents into HTML fragments.
// The same fragments feed both the live preview and the PDF export
// pipeline; a caller-supplied class prefix scopes every class name so
// the two surfaces can share a page without collisions.
package markup

// Rendering defaults applied by NewRenderer for zero-valued options.
const (
	DefaultTagStyle     = "pill"
	DefaultTagSeparator = " · "
	DefaultMetaJoin     = "middot"
)

// Options steers rendering. The zero value renders unscoped markup with
// the defaults above.
type Options struct {
	// ClassPrefix is prepended to every emitted class name. Typical
	// values: "cv-" for the preview, "pdf-" for export, "" for tests.
	ClassPrefix string

	// TagStyle picks the skill presentation: "pill" wraps each skill in
	// its own tag element, "inline" joins them with TagSeparator.
	TagStyle     string
	TagSeparator string

	// MetaJoin picks the entry date/location separator: "pipe",
	// "middot", or "lines" for one field per line.
	MetaJoin string
}

// AssetResolver maps an opaque asset reference (a file path, data URI,
// or URL) to something the browser can display. Implementations may
// fail; rendering degrades to a placeholder instead of propagating the
// error into the fragment.
type AssetResolver interface {
	ResolveAsset(ref string) (string, error)
}

// Renderer emits HTML fragments for résumé documents with one fixed set
// of options. Renderers are stateless after construction and safe for
// concurrent use.
type Renderer struct {
	opts   Options
	assets AssetResolver
}

// NewRenderer builds a Renderer, filling unset options with defaults.
// A nil resolver passes asset references through untouched.
func NewRenderer(opts Options, assets AssetResolver) *Renderer {
	if opts.TagStyle == "" {
		opts.TagStyle = DefaultTagStyle
	}
	if opts.TagSeparator == "" {
		opts.TagSeparator = DefaultTagSeparator
	}
	if opts.MetaJoin == "" {
		opts.MetaJoin = DefaultMetaJoin
	}
	return &Renderer{opts: opts, assets: assets}
}

// cls returns the prefixed form of a class name.
func (r *Renderer) cls(name string) string {
	return r.opts.ClassPrefix + name
}

// resolveAsset runs ref through the resolver, falling back to the
// untouched reference without one.
func (r *Renderer) resolveAsset(ref string) (string, error) {
	if r.assets == nil {
		return ref, nil
	}
	return r.assets.ResolveAsset(ref)
}
