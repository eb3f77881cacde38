package cv2pdf

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/alnah/go-cv2pdf/internal/assets"
	"github.com/alnah/go-cv2pdf/internal/document"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/htmlrewrite"
	"github.com/alnah/go-cv2pdf/internal/markup"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

// Class prefixes scoping the generated markup. The preview and the
// print pipeline share fragment structure; only the prefix differs, so
// both can coexist on one page without style collisions.
const (
	previewClassPrefix = "cv-"
	printClassPrefix   = "pdf-"
)

// htmlShell wraps the composed fragments in a complete HTML5 document.
const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s</style>
</head>
<body>
%s
</body>
</html>`

// Renderer turns résumé source into themed HTML and PDF. Create with
// NewRenderer, use Render for output, and Close when done.
type Renderer struct {
	cfg    rendererConfig
	theme  *theme.Config
	tokens theme.TokenMap
	themes assets.ThemeLoader
	assets AssetResolver
	fonts  FontLoader

	exporter pdfExporter
	clock    func() time.Time
}

// NewRenderer creates a Renderer with default configuration.
// Use options to customize behavior (e.g., WithTheme, WithTimeout).
// Returns an error if theme resolution or compilation fails.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg:   rendererConfig{timeout: defaultTimeout},
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	resolver, err := assets.NewThemeResolver(r.cfg.themeDir)
	if err != nil {
		return nil, convertThemeError(err)
	}
	r.themes = resolver

	cfg, err := r.resolveTheme(resolver)
	if err != nil {
		return nil, err
	}
	r.theme = cfg
	r.tokens = theme.Compile(cfg)

	// Font warm-up is advisory: the loader hears about the compiled
	// families once and can never fail the render.
	if r.fonts != nil {
		r.fonts.LoadFonts(r.fontFamilies())
	}

	// Create PDF exporter if not injected (e.g., by tests)
	if r.exporter == nil {
		r.exporter = newRodExporter(r.cfg.timeout)
	}

	return r, nil
}

// Render runs the full pipeline and returns themed HTML plus the
// exported PDF. The context is used for cancellation and timeout.
// If input.HTMLOnly is true, PDF export is skipped.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if input.Source == "" {
		return nil, ErrEmptySource
	}

	doc, err := document.Parse([]byte(input.Source))
	if err != nil {
		return nil, wrapError(ErrSourceParse, err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Stamp the "updated" field before composition so both surfaces
	// carry the same resolved date.
	if doc.Frontmatter.Updated != "" {
		stamped, derr := ResolveDate(doc.Frontmatter.Updated, r.clock())
		if derr != nil {
			return nil, fmt.Errorf("resolving updated date: %w", derr)
		}
		doc.Frontmatter.Updated = stamped
	}

	htmlContent := r.composeHTML(doc, previewClassPrefix, false, input.ExtraCSS)
	result = &Result{HTML: []byte(htmlContent)}

	if input.HTMLOnly {
		return result, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// The print flavor carries @page geometry and real break rules; the
	// shared fragments stay byte-identical up to the class prefix.
	printHTML := r.composeHTML(doc, printClassPrefix, true, input.ExtraCSS)

	// Rewrite relative refs to absolute file:// URLs so they survive the
	// move to a temp file (if a source directory was provided).
	if input.SourceDir != "" {
		printHTML, err = htmlrewrite.Absolutize(printHTML, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	pdfBytes, err := r.exporter.ExportPDF(ctx, printHTML, r.printOptions())
	if err != nil {
		return nil, fmt.Errorf("exporting PDF: %w", err)
	}
	result.PDF = pdfBytes
	return result, nil
}

// Close releases resources (headless Chrome browser).
func (r *Renderer) Close() error {
	if r.exporter != nil {
		return r.exporter.Close()
	}
	return nil
}

// Theme reports the active theme's layout and export decisions.
func (r *Renderer) Theme() ThemeInfo {
	return ThemeInfo{
		Mode:        normalized(r.theme.Layout.Mode, "single"),
		PageSize:    normalized(r.theme.PDF.PageSize, "a4"),
		Orientation: normalized(r.theme.PDF.Orientation, "portrait"),
		Estimator:   normalized(r.theme.Advanced.Estimator, "sections"),
		PageNumbers: r.theme.PDF.PageNumbers,
		FooterText:  r.theme.PDF.FooterText,
	}
}

// Tokens returns a copy of the compiled style tokens: CSS custom
// property name → resolved value.
func (r *Renderer) Tokens() map[string]string {
	out := make(map[string]string, len(r.tokens))
	for k, v := range r.tokens {
		out[k] = v
	}
	return out
}

// resolveTheme turns the theme input (built-in name, file path, or
// inline YAML) into a parsed config. Empty input loads the default
// built-in.
func (r *Renderer) resolveTheme(loader assets.ThemeLoader) (*theme.Config, error) {
	input := r.cfg.themeInput

	switch {
	case input == "":
		cfg, err := loader.LoadTheme(DefaultTheme)
		if err != nil {
			return nil, convertThemeError(err)
		}
		return cfg, nil

	// A path never spans lines; multi-line input is inline YAML even
	// when a value carries a slash.
	case fileutil.IsFilePath(input) && !strings.Contains(input, "\n"):
		cfg, err := theme.Load(input)
		if err != nil {
			return nil, convertThemeError(fmt.Errorf("theme file %q: %w", input, err))
		}
		return cfg, nil

	case isInlineTheme(input):
		cfg, err := theme.Parse([]byte(input))
		if err != nil {
			return nil, convertThemeError(fmt.Errorf("inline theme: %w", err))
		}
		return cfg, nil

	default:
		cfg, err := loader.LoadTheme(input)
		if err != nil {
			return nil, convertThemeError(err)
		}
		return cfg, nil
	}
}

// isInlineTheme reports whether the theme input is YAML content rather
// than a name: names never contain colons or newlines.
func isInlineTheme(s string) bool {
	return strings.ContainsAny(s, ":\n")
}

// composeHTML renders the document into a complete standalone page for
// one surface: class prefix scoping plus print geometry when exporting.
func (r *Renderer) composeHTML(doc *document.Document, prefix string, print bool, extraCSS string) string {
	mk := markup.NewRenderer(markup.Options{
		ClassPrefix:  prefix,
		TagStyle:     strings.ToLower(strings.TrimSpace(r.theme.Components.Tag.Style)),
		TagSeparator: r.theme.Components.Tag.Separator,
		MetaJoin:     strings.ToLower(strings.TrimSpace(r.theme.Components.DateLine.Join)),
	}, r.assets)

	body := mk.Compose(doc, r.Theme().Mode == "two-column")

	title := doc.Frontmatter.Name
	if title == "" {
		title = "Résumé"
	}

	return fmt.Sprintf(htmlShell, html.EscapeString(title), r.stylesheet(prefix, print, extraCSS), body)
}

// stylesheet assembles the document CSS. Order matters: compiled tokens
// first, generated base rules on top of them, print geometry for the
// export surface, and free-form extra CSS last so it can override
// everything before it.
func (r *Renderer) stylesheet(prefix string, print bool, extraCSS string) string {
	var b strings.Builder
	b.WriteString(r.tokens.CSS(":root"))
	b.WriteString(markup.BaseCSS(prefix, r.tokens))

	if print {
		info := r.Theme()
		b.WriteString(markup.PageRuleCSS(prefix, info.PageSize, info.Orientation, r.tokens))
	}

	if css := strings.TrimSpace(r.theme.Advanced.ExtraCSS); css != "" {
		b.WriteString("\n/* Theme extra CSS */\n")
		b.WriteString(markup.SanitizeCSS(css))
		b.WriteString("\n")
	}
	if css := strings.TrimSpace(extraCSS); css != "" {
		b.WriteString("\n/* Caller extra CSS */\n")
		b.WriteString(markup.SanitizeCSS(css))
		b.WriteString("\n")
	}
	return b.String()
}

// fontFamilies lists the distinct font stacks the compiled theme uses,
// in body, heading, mono order.
func (r *Renderer) fontFamilies() []string {
	var families []string
	seen := make(map[string]bool)
	for _, tok := range []string{theme.TokenFontFamily, theme.TokenFontFamilyHead, theme.TokenFontFamilyMono} {
		v := r.tokens.Get(tok)
		if v != "" && !seen[v] {
			seen[v] = true
			families = append(families, v)
		}
	}
	return families
}

// normalized lowercases a config enum, falling back to the default for
// empty values.
func normalized(value, def string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return def
	}
	return v
}
