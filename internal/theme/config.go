// Package theme turns a declarative résumé theme into a flat map of
// resolved style tokens. A theme is a nested, optional-everywhere YAML
// tree; compilation merges it over the built-in defaults so every token
// always has a concrete value, no matter how partial the input is.
package theme

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/yamlutil"
)

// Sentinel errors for theme operations.
var (
	ErrThemeNotFound = errors.New("theme not found")
	ErrThemeParse    = errors.New("failed to parse theme")
	ErrFieldTooLong  = errors.New("field exceeds maximum length")
	ErrInvalidField  = errors.New("invalid field value")
)

// Field length limits for multi-tenant safety.
const (
	MaxColorLength      = 50    // "#rrggbb", "rgba(...)", named colors
	MaxSizeLength       = 30    // "10pt", "2.5rem", "calc() inputs"
	MaxFontFamilyLength = 300   // full fallback stacks
	MaxModeLength       = 20    // "single", "two-column", "individual"
	MaxSeparatorLength  = 10    // skill separators like " · "
	MaxFooterTextLength = 200   // PDF footer free text
	MaxExtraCSSLength   = 65536 // 64KB of escape-hatch CSS
)

// Config is the full theme tree. Every field is optional; the compiler
// falls back to Defaults() per leaf. Colors accept either a semantic role
// name (for example "primary" or "textMuted") or a raw CSS color literal.
type Config struct {
	Colors     ColorsConfig     `yaml:"colors"`
	Typography TypographyConfig `yaml:"typography"`
	Layout     LayoutConfig     `yaml:"layout"`
	Components ComponentsConfig `yaml:"components"`
	PDF        PDFConfig        `yaml:"pdf"`
	Advanced   AdvancedConfig   `yaml:"advanced"`
}

// ColorsConfig is the palette: base roles, their "on" contrast
// counterparts, the text triad, surfaces, and four free custom slots.
// The legacy fields at the bottom are older names still honored by
// Normalize (see legacy.go).
type ColorsConfig struct {
	Primary     string `yaml:"primary"`
	OnPrimary   string `yaml:"onPrimary"`
	Secondary   string `yaml:"secondary"`
	OnSecondary string `yaml:"onSecondary"`
	Tertiary    string `yaml:"tertiary"`
	OnTertiary  string `yaml:"onTertiary"`
	Muted       string `yaml:"muted"`
	OnMuted     string `yaml:"onMuted"`

	Text          string `yaml:"text"`
	TextSecondary string `yaml:"textSecondary"`
	TextMuted     string `yaml:"textMuted"`

	Background        string `yaml:"background"`
	SidebarBackground string `yaml:"sidebarBackground"`

	Custom1 string `yaml:"custom1"`
	Custom2 string `yaml:"custom2"`
	Custom3 string `yaml:"custom3"`
	Custom4 string `yaml:"custom4"`

	// Legacy names from earlier theme versions.
	Accent   string `yaml:"accent"`   // renamed to primary
	OnAccent string `yaml:"onAccent"` // renamed to onPrimary
	Subtle   string `yaml:"subtle"`   // renamed to muted
	Caption  string `yaml:"caption"`  // renamed to textMuted
}

// TypographyConfig holds the base size every scale multiplies, font
// stacks, weights, and line heights.
type TypographyConfig struct {
	BaseSize      string        `yaml:"baseSize"`      // e.g. "10pt"; unit is preserved in derived sizes
	FontFamily    string        `yaml:"fontFamily"`    // body stack
	HeadingFamily string        `yaml:"headingFamily"` // empty = body stack
	MonoFamily    string        `yaml:"monoFamily"`    // inline code
	LineHeight    float64       `yaml:"lineHeight"`
	HeadingLine   float64       `yaml:"headingLineHeight"`
	Scales        ScalesConfig  `yaml:"scales"`
	Weights       WeightsConfig `yaml:"weights"`
}

// ScalesConfig is the fixed set of named size multipliers. Each derived
// size is scale × baseSize, one decimal, base unit preserved.
type ScalesConfig struct {
	Name     float64 `yaml:"name"`     // the big headline name
	Headline float64 `yaml:"headline"` // professional title under the name
	Section  float64 `yaml:"section"`  // section titles
	Entry    float64 `yaml:"entry"`    // entry (job/degree) titles
	Body     float64 `yaml:"body"`
	Small    float64 `yaml:"small"`
	Tiny     float64 `yaml:"tiny"`
	Tag      float64 `yaml:"tag"`  // skill pills
	Date     float64 `yaml:"date"` // entry meta lines
	Code     float64 `yaml:"code"` // inline code
}

// WeightsConfig holds numeric font weights.
type WeightsConfig struct {
	Name    int `yaml:"name"`
	Section int `yaml:"section"`
	Entry   int `yaml:"entry"`
	Body    int `yaml:"body"`
}

// LayoutConfig describes the page geometry shared by both outputs.
type LayoutConfig struct {
	Mode         string `yaml:"mode"` // "single" or "two-column"
	PageWidth    string `yaml:"pageWidth"`
	MarginTop    string `yaml:"marginTop"`
	MarginRight  string `yaml:"marginRight"`
	MarginBottom string `yaml:"marginBottom"`
	MarginLeft   string `yaml:"marginLeft"`
	SidebarWidth string `yaml:"sidebarWidth"`
	SectionGap   string `yaml:"sectionGap"`
	ParagraphGap string `yaml:"paragraphGap"`
}

// ComponentsConfig carries per-element overrides. A missing block means
// "all defaults" — compilation never requires any of these.
type ComponentsConfig struct {
	Name         ComponentConfig `yaml:"name"`
	Headline     ComponentConfig `yaml:"headline"`
	Contact      ComponentConfig `yaml:"contact"`
	SectionTitle ComponentConfig `yaml:"sectionTitle"`
	EntryTitle   ComponentConfig `yaml:"entryTitle"`
	Tag          TagConfig       `yaml:"tag"`
	DateLine     DateLineConfig  `yaml:"dateLine"`
	Link         LinkConfig      `yaml:"link"`
	List         ListConfig      `yaml:"list"`
	Divider      DividerConfig   `yaml:"divider"`
	Photo        PhotoConfig     `yaml:"photo"`
}

// ComponentConfig is the override block shared by most components.
// Color and Background accept a role name or a raw color. Opacity 0
// means unset (fully opaque); out-of-range values are clamped when
// resolved. Margin and padding each declare a mode: "uniform" applies
// the single value to all four edges, "individual" reads the four edge
// fields (unset edges become 0).
type ComponentConfig struct {
	Color      string  `yaml:"color"`
	Opacity    float64 `yaml:"opacity"`
	Background string  `yaml:"background"`
	Size       string  `yaml:"size"` // absolute override; wins over the derived scale size

	MarginMode   string `yaml:"marginMode"` // "uniform" (default) or "individual"
	Margin       string `yaml:"margin"`
	MarginTop    string `yaml:"marginTop"`
	MarginRight  string `yaml:"marginRight"`
	MarginBottom string `yaml:"marginBottom"`
	MarginLeft   string `yaml:"marginLeft"`

	PaddingMode   string `yaml:"paddingMode"`
	Padding       string `yaml:"padding"`
	PaddingTop    string `yaml:"paddingTop"`
	PaddingRight  string `yaml:"paddingRight"`
	PaddingBottom string `yaml:"paddingBottom"`
	PaddingLeft   string `yaml:"paddingLeft"`

	Radius        string `yaml:"radius"`
	Shadow        string `yaml:"shadow"`    // none, sm, md, lg, xl
	Transform     string `yaml:"transform"` // CSS text-transform
	LetterSpacing string `yaml:"letterSpacing"`
}

// TagConfig styles skill tags.
type TagConfig struct {
	ComponentConfig `yaml:",inline"`

	Style     string `yaml:"style"`     // "pill" or "inline"
	Separator string `yaml:"separator"` // inline style separator, default " · "
}

// DateLineConfig styles entry meta lines.
type DateLineConfig struct {
	ComponentConfig `yaml:",inline"`

	Join string `yaml:"join"` // "pipe", "middot", or "lines"
}

// LinkConfig styles hyperlinks.
type LinkConfig struct {
	Color     string  `yaml:"color"`
	Opacity   float64 `yaml:"opacity"`
	Underline bool    `yaml:"underline"`
}

// ListConfig styles flat bullet lists.
type ListConfig struct {
	Indent      string  `yaml:"indent"`
	MarkerColor string  `yaml:"markerColor"`
	Opacity     float64 `yaml:"opacity"`
	Gap         string  `yaml:"gap"`
}

// DividerConfig styles the rule under section titles. Dividers stay
// hidden unless Style is set to something other than "none".
type DividerConfig struct {
	Style   string  `yaml:"style"` // none, solid, dashed, dotted, double
	Width   string  `yaml:"width"`
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
}

// PhotoConfig styles the portrait block.
type PhotoConfig struct {
	Size   string `yaml:"size"`
	Radius string `yaml:"radius"`
	Filter string `yaml:"filter"` // none, grayscale, sepia
	Shadow string `yaml:"shadow"` // none, sm, md, lg, xl
}

// PDFConfig holds print/export settings.
type PDFConfig struct {
	PageSize    string `yaml:"pageSize"`    // "a4", "letter", "legal" (default: "a4")
	Orientation string `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	PageNumbers bool   `yaml:"pageNumbers"`
	FooterText  string `yaml:"footerText"`
}

// AdvancedConfig is the escape hatch.
type AdvancedConfig struct {
	ExtraCSS  string `yaml:"extraCSS"`  // appended after the generated stylesheet
	Estimator string `yaml:"estimator"` // "simple" or "sections" (default: "sections")
}

// Validate checks field lengths and enumerated values so a typo in a
// theme file fails at load time instead of silently styling nothing.
// Compilation itself never errors; this guards the file boundary only.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	colorFields := []struct {
		name  string
		value string
	}{
		{"colors.primary", c.Colors.Primary},
		{"colors.onPrimary", c.Colors.OnPrimary},
		{"colors.secondary", c.Colors.Secondary},
		{"colors.onSecondary", c.Colors.OnSecondary},
		{"colors.tertiary", c.Colors.Tertiary},
		{"colors.onTertiary", c.Colors.OnTertiary},
		{"colors.muted", c.Colors.Muted},
		{"colors.onMuted", c.Colors.OnMuted},
		{"colors.text", c.Colors.Text},
		{"colors.textSecondary", c.Colors.TextSecondary},
		{"colors.textMuted", c.Colors.TextMuted},
		{"colors.background", c.Colors.Background},
		{"colors.sidebarBackground", c.Colors.SidebarBackground},
		{"colors.custom1", c.Colors.Custom1},
		{"colors.custom2", c.Colors.Custom2},
		{"colors.custom3", c.Colors.Custom3},
		{"colors.custom4", c.Colors.Custom4},
		{"colors.accent", c.Colors.Accent},
		{"colors.onAccent", c.Colors.OnAccent},
		{"colors.subtle", c.Colors.Subtle},
		{"colors.caption", c.Colors.Caption},
		{"components.divider.color", c.Components.Divider.Color},
		{"components.link.color", c.Components.Link.Color},
		{"components.list.markerColor", c.Components.List.MarkerColor},
	}
	for _, f := range colorFields {
		if err := validateFieldLength(f.name, f.value, MaxColorLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("typography.fontFamily", c.Typography.FontFamily, MaxFontFamilyLength); err != nil {
		return err
	}
	if err := validateFieldLength("typography.headingFamily", c.Typography.HeadingFamily, MaxFontFamilyLength); err != nil {
		return err
	}
	if err := validateFieldLength("typography.monoFamily", c.Typography.MonoFamily, MaxFontFamilyLength); err != nil {
		return err
	}
	if err := validateFieldLength("typography.baseSize", c.Typography.BaseSize, MaxSizeLength); err != nil {
		return err
	}

	sizeFields := []struct {
		name  string
		value string
	}{
		{"layout.pageWidth", c.Layout.PageWidth},
		{"layout.marginTop", c.Layout.MarginTop},
		{"layout.marginRight", c.Layout.MarginRight},
		{"layout.marginBottom", c.Layout.MarginBottom},
		{"layout.marginLeft", c.Layout.MarginLeft},
		{"layout.sidebarWidth", c.Layout.SidebarWidth},
		{"layout.sectionGap", c.Layout.SectionGap},
		{"layout.paragraphGap", c.Layout.ParagraphGap},
	}
	for _, f := range sizeFields {
		if err := validateFieldLength(f.name, f.value, MaxSizeLength); err != nil {
			return err
		}
	}

	if err := validateEnum("layout.mode", c.Layout.Mode, "single", "two-column"); err != nil {
		return err
	}
	if err := validateEnum("pdf.pageSize", c.PDF.PageSize, "a4", "letter", "legal"); err != nil {
		return err
	}
	if err := validateEnum("pdf.orientation", c.PDF.Orientation, "portrait", "landscape"); err != nil {
		return err
	}
	if err := validateFieldLength("pdf.footerText", c.PDF.FooterText, MaxFooterTextLength); err != nil {
		return err
	}
	if err := validateEnum("advanced.estimator", c.Advanced.Estimator, "simple", "sections"); err != nil {
		return err
	}
	if err := validateFieldLength("advanced.extraCSS", c.Advanced.ExtraCSS, MaxExtraCSSLength); err != nil {
		return err
	}

	components := []struct {
		name string
		cc   *ComponentConfig
	}{
		{"components.name", &c.Components.Name},
		{"components.headline", &c.Components.Headline},
		{"components.contact", &c.Components.Contact},
		{"components.sectionTitle", &c.Components.SectionTitle},
		{"components.entryTitle", &c.Components.EntryTitle},
		{"components.tag", &c.Components.Tag.ComponentConfig},
		{"components.dateLine", &c.Components.DateLine.ComponentConfig},
	}
	for _, comp := range components {
		if err := comp.cc.validate(comp.name); err != nil {
			return err
		}
	}

	if err := validateEnum("components.tag.style", c.Components.Tag.Style, "pill", "inline"); err != nil {
		return err
	}
	if err := validateFieldLength("components.tag.separator", c.Components.Tag.Separator, MaxSeparatorLength); err != nil {
		return err
	}
	if err := validateEnum("components.dateLine.join", c.Components.DateLine.Join, "pipe", "middot", "lines"); err != nil {
		return err
	}
	if err := validateEnum("components.divider.style", c.Components.Divider.Style, "none", "solid", "dashed", "dotted", "double"); err != nil {
		return err
	}
	if err := validateEnum("components.photo.filter", c.Components.Photo.Filter, "none", "grayscale", "sepia"); err != nil {
		return err
	}
	if err := validateEnum("components.photo.shadow", c.Components.Photo.Shadow, "none", "sm", "md", "lg", "xl"); err != nil {
		return err
	}

	return nil
}

// validate checks one component override block.
func (cc *ComponentConfig) validate(name string) error {
	if cc == nil {
		return nil
	}
	if err := validateFieldLength(name+".color", cc.Color, MaxColorLength); err != nil {
		return err
	}
	if err := validateFieldLength(name+".background", cc.Background, MaxColorLength); err != nil {
		return err
	}
	sizes := []struct {
		field string
		value string
	}{
		{"size", cc.Size}, {"margin", cc.Margin},
		{"marginTop", cc.MarginTop}, {"marginRight", cc.MarginRight},
		{"marginBottom", cc.MarginBottom}, {"marginLeft", cc.MarginLeft},
		{"padding", cc.Padding},
		{"paddingTop", cc.PaddingTop}, {"paddingRight", cc.PaddingRight},
		{"paddingBottom", cc.PaddingBottom}, {"paddingLeft", cc.PaddingLeft},
		{"radius", cc.Radius}, {"letterSpacing", cc.LetterSpacing},
	}
	for _, s := range sizes {
		if err := validateFieldLength(name+"."+s.field, s.value, MaxSizeLength); err != nil {
			return err
		}
	}
	if err := validateEnum(name+".marginMode", cc.MarginMode, "uniform", "individual"); err != nil {
		return err
	}
	if err := validateEnum(name+".paddingMode", cc.PaddingMode, "uniform", "individual"); err != nil {
		return err
	}
	if err := validateEnum(name+".shadow", cc.Shadow, "none", "sm", "md", "lg", "xl"); err != nil {
		return err
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum checks that a non-empty value is one of the allowed set,
// case-insensitively. Empty means "use the default" and is always valid.
func validateEnum(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	lower := strings.ToLower(value)
	for _, a := range allowed {
		if lower == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s = %q (must be one of %s)", ErrInvalidField, fieldName, value, strings.Join(allowed, ", "))
}

// Parse decodes a theme from YAML, applies the legacy alias table, and
// validates it. Unknown fields are rejected so typos surface early.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThemeParse, err)
	}
	Normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses a theme file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- theme path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, path)
		}
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
