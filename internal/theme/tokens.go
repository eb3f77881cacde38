package theme

import (
	"sort"
	"strings"
)

// TokenMap is the flat, fully-resolved output of compilation: CSS custom
// property name → concrete value. It is the only contract markup and
// layout code depend on. Emission is key-sorted so identical inputs
// produce byte-identical CSS on every path.
type TokenMap map[string]string

// Token names read back by other packages. The full vocabulary is
// emitted by Compile; only cross-package lookups get named constants.
const (
	TokenPageWidth        = "--cv-page-width"
	TokenPageMarginTop    = "--cv-page-margin-top"
	TokenPageMarginRight  = "--cv-page-margin-right"
	TokenPageMarginBottom = "--cv-page-margin-bottom"
	TokenPageMarginLeft   = "--cv-page-margin-left"
	TokenSidebarWidth     = "--cv-sidebar-width"
	TokenMainWidth        = "--cv-main-width"
	TokenSectionGap       = "--cv-section-gap"
	TokenFontSizeBody     = "--cv-font-size-body"
	TokenFontSizeName     = "--cv-font-size-name"
	TokenLineHeight       = "--cv-line-height"
	TokenFontFamily       = "--cv-font-family"
	TokenFontFamilyHead   = "--cv-font-family-heading"
	TokenFontFamilyMono   = "--cv-font-family-mono"
)

// Get returns the token value, or empty when absent. Compiled maps never
// hold empty values, so empty reliably means "no such token".
func (m TokenMap) Get(name string) string {
	return m[name]
}

// Names returns every token name in sorted order.
func (m TokenMap) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// CSS renders the map as a declaration block under the given selector.
// Deterministic: tokens appear in sorted order.
func (m TokenMap) CSS(selector string) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, name := range m.Names() {
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(m[name])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}
