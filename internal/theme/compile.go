package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Shadow depth presets. Unknown names map to "none".
var shadowTable = map[string]string{
	"none": "none",
	"sm":   "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
	"md":   "0 4px 6px -1px rgba(0, 0, 0, 0.1)",
	"lg":   "0 10px 15px -3px rgba(0, 0, 0, 0.1)",
	"xl":   "0 20px 25px -5px rgba(0, 0, 0, 0.1)",
}

// Photo filter presets. Unknown names map to "none".
var filterTable = map[string]string{
	"none":      "none",
	"grayscale": "grayscale(100%)",
	"sepia":     "sepia(100%)",
}

// Compile flattens a theme into its token map. Pure and total: a nil or
// empty config compiles to the full default token set, and no token is
// ever absent or empty. The same map feeds the preview and export
// stylesheets, so everything here must be deterministic.
func Compile(cfg *Config) TokenMap {
	if cfg == nil {
		cfg = &Config{}
	}
	d := Defaults()
	m := TokenMap{}
	compileColors(m, cfg)
	compileTypography(m, cfg, d)
	compileLayout(m, cfg, d)
	compileComponents(m, cfg, d)
	return m
}

func compileColors(m TokenMap, cfg *Config) {
	roles := []struct {
		token string
		role  string
	}{
		{"--cv-color-primary", RolePrimary},
		{"--cv-color-on-primary", RoleOnPrimary},
		{"--cv-color-secondary", RoleSecondary},
		{"--cv-color-on-secondary", RoleOnSecondary},
		{"--cv-color-tertiary", RoleTertiary},
		{"--cv-color-on-tertiary", RoleOnTertiary},
		{"--cv-color-muted", RoleMuted},
		{"--cv-color-on-muted", RoleOnMuted},
		{"--cv-color-text", RoleText},
		{"--cv-color-text-secondary", RoleTextSecondary},
		{"--cv-color-text-muted", RoleTextMuted},
		{"--cv-color-background", RoleBackground},
		{"--cv-color-sidebar-background", RoleSidebarBackground},
		{"--cv-color-custom-1", RoleCustom1},
		{"--cv-color-custom-2", RoleCustom2},
		{"--cv-color-custom-3", RoleCustom3},
		{"--cv-color-custom-4", RoleCustom4},
	}
	for _, r := range roles {
		m[r.token] = Resolve(r.role, cfg, 1)
	}
}

func compileTypography(m TokenMap, cfg *Config, d *Config) {
	ty, dt := &cfg.Typography, &d.Typography

	base := pick(ty.BaseSize, dt.BaseSize)
	family := pick(ty.FontFamily, dt.FontFamily)
	m[TokenFontFamily] = family
	m[TokenFontFamilyHead] = pick(ty.HeadingFamily, family)
	m[TokenFontFamilyMono] = pick(ty.MonoFamily, dt.MonoFamily)
	m["--cv-font-size-base"] = base

	s, ds := &ty.Scales, &dt.Scales
	scales := []struct {
		token string
		v     float64
		def   float64
	}{
		{TokenFontSizeName, s.Name, ds.Name},
		{"--cv-font-size-headline", s.Headline, ds.Headline},
		{"--cv-font-size-section", s.Section, ds.Section},
		{"--cv-font-size-entry", s.Entry, ds.Entry},
		{TokenFontSizeBody, s.Body, ds.Body},
		{"--cv-font-size-small", s.Small, ds.Small},
		{"--cv-font-size-tiny", s.Tiny, ds.Tiny},
		{"--cv-font-size-tag", s.Tag, ds.Tag},
		{"--cv-font-size-date", s.Date, ds.Date},
		{"--cv-font-size-code", s.Code, ds.Code},
	}
	for _, sc := range scales {
		m[sc.token] = FontSize(pickFloat(sc.v, sc.def), base)
	}

	m[TokenLineHeight] = formatNumber(pickFloat(ty.LineHeight, dt.LineHeight))
	m["--cv-line-height-heading"] = formatNumber(pickFloat(ty.HeadingLine, dt.HeadingLine))

	w, dw := &ty.Weights, &dt.Weights
	m["--cv-font-weight-name"] = strconv.Itoa(pickInt(w.Name, dw.Name))
	m["--cv-font-weight-section"] = strconv.Itoa(pickInt(w.Section, dw.Section))
	m["--cv-font-weight-entry"] = strconv.Itoa(pickInt(w.Entry, dw.Entry))
	m["--cv-font-weight-body"] = strconv.Itoa(pickInt(w.Body, dw.Body))
}

func compileLayout(m TokenMap, cfg *Config, d *Config) {
	l, dl := &cfg.Layout, &d.Layout

	pageWidth := pick(l.PageWidth, dl.PageWidth)
	sidebarWidth := pick(l.SidebarWidth, dl.SidebarWidth)
	top := pick(l.MarginTop, dl.MarginTop)
	right := pick(l.MarginRight, dl.MarginRight)
	bottom := pick(l.MarginBottom, dl.MarginBottom)
	left := pick(l.MarginLeft, dl.MarginLeft)

	m[TokenPageWidth] = pageWidth
	m[TokenPageMarginTop] = top
	m[TokenPageMarginRight] = right
	m[TokenPageMarginBottom] = bottom
	m[TokenPageMarginLeft] = left
	m["--cv-page-margin"] = top + " " + right + " " + bottom + " " + left
	m[TokenSidebarWidth] = sidebarWidth
	m[TokenMainWidth] = SubtractWidths(pageWidth, sidebarWidth)
	m[TokenSectionGap] = pick(l.SectionGap, dl.SectionGap)
	m["--cv-paragraph-gap"] = pick(l.ParagraphGap, dl.ParagraphGap)
}

func compileComponents(m TokenMap, cfg *Config, d *Config) {
	c, dc := &cfg.Components, &d.Components
	base := pick(cfg.Typography.BaseSize, d.Typography.BaseSize)

	// Derived sizes each component's absolute override competes with.
	sizeOf := func(scale, defScale float64) string {
		return FontSize(pickFloat(scale, defScale), base)
	}
	s, ds := &cfg.Typography.Scales, &d.Typography.Scales

	// name
	m["--cv-name-color"] = componentColor(&c.Name, &dc.Name, cfg)
	m["--cv-name-size"] = pick(c.Name.Size, sizeOf(s.Name, ds.Name))
	m["--cv-name-transform"] = pick(c.Name.Transform, dc.Name.Transform)
	m["--cv-name-letter-spacing"] = pick(c.Name.LetterSpacing, dc.Name.LetterSpacing)
	m["--cv-name-margin"] = marginOf(&c.Name, dc.Name.Margin)

	// headline
	m["--cv-headline-color"] = componentColor(&c.Headline, &dc.Headline, cfg)
	m["--cv-headline-size"] = pick(c.Headline.Size, sizeOf(s.Headline, ds.Headline))
	m["--cv-headline-margin"] = marginOf(&c.Headline, dc.Headline.Margin)

	// contact block
	m["--cv-contact-color"] = componentColor(&c.Contact, &dc.Contact, cfg)
	m["--cv-contact-size"] = pick(c.Contact.Size, sizeOf(s.Small, ds.Small))
	m["--cv-contact-margin"] = marginOf(&c.Contact, dc.Contact.Margin)

	// section titles
	m["--cv-section-title-color"] = componentColor(&c.SectionTitle, &dc.SectionTitle, cfg)
	m["--cv-section-title-size"] = pick(c.SectionTitle.Size, sizeOf(s.Section, ds.Section))
	m["--cv-section-title-margin"] = marginOf(&c.SectionTitle, dc.SectionTitle.Margin)
	m["--cv-section-title-transform"] = pick(c.SectionTitle.Transform, dc.SectionTitle.Transform)
	m["--cv-section-title-letter-spacing"] = pick(c.SectionTitle.LetterSpacing, dc.SectionTitle.LetterSpacing)
	m["--cv-section-title-border"] = dividerBorder(&c.Divider, &dc.Divider, cfg)

	// entry titles
	m["--cv-entry-title-color"] = componentColor(&c.EntryTitle, &dc.EntryTitle, cfg)
	m["--cv-entry-title-size"] = pick(c.EntryTitle.Size, sizeOf(s.Entry, ds.Entry))
	m["--cv-entry-title-margin"] = marginOf(&c.EntryTitle, dc.EntryTitle.Margin)

	// tags: background resolves as a pair so the foreground stays legible
	// when only the background is themed.
	tagBg := pick(c.Tag.Background, dc.Tag.Background)
	pair := ResolvePair(tagBg, cfg)
	m["--cv-tag-background"] = Resolve(tagBg, cfg, opacityOr1(c.Tag.Opacity))
	if c.Tag.Color != "" {
		m["--cv-tag-color"] = Resolve(c.Tag.Color, cfg, 1)
	} else {
		m["--cv-tag-color"] = pair.On
	}
	m["--cv-tag-size"] = pick(c.Tag.Size, sizeOf(s.Tag, ds.Tag))
	m["--cv-tag-padding"] = paddingOf(&c.Tag.ComponentConfig, dc.Tag.Padding)
	m["--cv-tag-radius"] = pick(c.Tag.Radius, dc.Tag.Radius)
	m["--cv-tag-shadow"] = shadowValue(pick(c.Tag.Shadow, dc.Tag.Shadow))
	m["--cv-tag-margin"] = marginOf(&c.Tag.ComponentConfig, dc.Tag.Margin)

	// entry meta lines
	m["--cv-date-color"] = componentColor(&c.DateLine.ComponentConfig, &dc.DateLine.ComponentConfig, cfg)
	m["--cv-date-size"] = pick(c.DateLine.Size, sizeOf(s.Date, ds.Date))

	// links
	m["--cv-link-color"] = Resolve(pick(c.Link.Color, dc.Link.Color), cfg, opacityOr1(c.Link.Opacity))
	if c.Link.Underline {
		m["--cv-link-decoration"] = "underline"
	} else {
		m["--cv-link-decoration"] = "none"
	}

	// lists
	m["--cv-list-indent"] = pick(c.List.Indent, dc.List.Indent)
	m["--cv-list-marker-color"] = Resolve(pick(c.List.MarkerColor, dc.List.MarkerColor), cfg, opacityOr1(c.List.Opacity))
	m["--cv-list-gap"] = pick(c.List.Gap, dc.List.Gap)

	// photo
	m["--cv-photo-size"] = pick(c.Photo.Size, dc.Photo.Size)
	m["--cv-photo-radius"] = pick(c.Photo.Radius, dc.Photo.Radius)
	m["--cv-photo-filter"] = filterValue(pick(c.Photo.Filter, dc.Photo.Filter))
	m["--cv-photo-shadow"] = shadowValue(pick(c.Photo.Shadow, dc.Photo.Shadow))
}

// componentColor resolves a component's color through the palette,
// applying its opacity. Empty falls back to the default block's color.
func componentColor(cc, def *ComponentConfig, cfg *Config) string {
	return Resolve(pick(cc.Color, def.Color), cfg, opacityOr1(cc.Opacity))
}

// dividerBorder turns the divider block into a border shorthand.
// Dividers stay off unless a non-"none" style is configured.
func dividerBorder(dv, def *DividerConfig, cfg *Config) string {
	style := strings.ToLower(strings.TrimSpace(pick(dv.Style, def.Style)))
	switch style {
	case "solid", "dashed", "dotted", "double":
		width := pick(dv.Width, def.Width)
		color := Resolve(pick(dv.Color, def.Color), cfg, opacityOr1(dv.Opacity))
		return width + " " + style + " " + color
	}
	return "none"
}

// FontSize derives a size from a scale multiplier and a base size
// string, formatted to one decimal with the base's unit preserved:
// FontSize(3.2, "10pt") == "32.0pt". Non-positive scales count as 1 and
// an unparsable base falls back to the built-in 10pt.
func FontSize(scale float64, base string) string {
	if scale <= 0 {
		scale = 1
	}
	n, unit, ok := splitLength(base)
	if !ok {
		n, unit = 10, "pt"
	}
	return fmt.Sprintf("%.1f%s", n*scale, unit)
}

// SubtractWidths computes main-content width = page width − sidebar
// width. When both values share a non-percentage unit the subtraction
// happens here (clamped at 0); percentages and mixed units defer to a
// calc() expression evaluated by the consumer at render time.
func SubtractWidths(page, sidebar string) string {
	pn, pu, pok := splitLength(page)
	sn, su, sok := splitLength(sidebar)
	if pok && sok && pu == su && pu != "%" {
		diff := pn - sn
		if diff < 0 {
			diff = 0
		}
		return formatNumber(diff) + pu
	}
	return fmt.Sprintf("calc(%s - %s)", strings.TrimSpace(page), strings.TrimSpace(sidebar))
}

// splitLength separates a CSS length into number and unit suffix.
func splitLength(s string) (float64, string, bool) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, "", false
	}
	return n, strings.TrimSpace(s[i:]), true
}

// formatNumber prints a float without trailing zeros ("146", "1.5").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// marginOf emits the margin shorthand for a component: the uniform
// value (or fallback) in uniform mode, or a four-value
// top/right/bottom/left shorthand in individual mode with unset edges
// as 0.
func marginOf(cc *ComponentConfig, fallback string) string {
	return spacing(cc.MarginMode, cc.Margin, cc.MarginTop, cc.MarginRight, cc.MarginBottom, cc.MarginLeft, fallback)
}

// paddingOf is marginOf for padding fields.
func paddingOf(cc *ComponentConfig, fallback string) string {
	return spacing(cc.PaddingMode, cc.Padding, cc.PaddingTop, cc.PaddingRight, cc.PaddingBottom, cc.PaddingLeft, fallback)
}

func spacing(mode, uniform, top, right, bottom, left, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "individual":
		return orZero(top) + " " + orZero(right) + " " + orZero(bottom) + " " + orZero(left)
	default:
		return pick(uniform, fallback)
	}
}

func orZero(v string) string {
	if strings.TrimSpace(v) == "" {
		return "0"
	}
	return v
}

// opacityOr1 maps the config zero value (unset) to fully opaque.
func opacityOr1(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func shadowValue(name string) string {
	if v, ok := shadowTable[strings.ToLower(strings.TrimSpace(name))]; ok {
		return v
	}
	return "none"
}

func filterValue(name string) string {
	if v, ok := filterTable[strings.ToLower(strings.TrimSpace(name))]; ok {
		return v
	}
	return "none"
}
