package markup

import (
	"fmt"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/theme"
)

// BaseCSS builds the stylesheet for one compiled theme under one class
// prefix. Preview and export both call this with the same token map, so
// the two surfaces can only differ by prefix, never by styling.
func BaseCSS(prefix string, tokens theme.TokenMap) string {
	var buf strings.Builder

	buf.WriteString(tokens.CSS(":root"))

	buf.WriteString(fmt.Sprintf(`
/* Page frame */
.%[1]spage {
  width: var(--cv-page-width);
  margin: 0 auto;
  padding: var(--cv-page-margin);
  background: var(--cv-color-background);
  color: var(--cv-color-text);
  font-family: var(--cv-font-family);
  font-size: var(--cv-font-size-body);
  line-height: var(--cv-line-height);
  box-sizing: border-box;
}
.%[1]spage * {
  box-sizing: border-box;
}
.%[1]spage-two-column {
  display: flex;
  padding: 0;
}
.%[1]ssidebar {
  flex: 0 0 var(--cv-sidebar-width);
  width: var(--cv-sidebar-width);
  background: var(--cv-color-sidebar-background);
  padding: var(--cv-page-margin-top) 6mm var(--cv-page-margin-bottom) var(--cv-page-margin-left);
}
.%[1]smain {
  flex: 1 1 auto;
  min-width: 0;
  padding: var(--cv-page-margin-top) var(--cv-page-margin-right) var(--cv-page-margin-bottom) 6mm;
}
.%[1]spage-break {
  height: 0;
}
`, prefix))

	buf.WriteString(fmt.Sprintf(`
/* Header */
.%[1]sname {
  font-family: var(--cv-font-family-heading);
  font-size: var(--cv-name-size);
  font-weight: var(--cv-font-weight-name);
  color: var(--cv-name-color);
  text-transform: var(--cv-name-transform);
  letter-spacing: var(--cv-name-letter-spacing);
  line-height: var(--cv-line-height-heading);
  margin: var(--cv-name-margin);
}
.%[1]sheadline {
  font-size: var(--cv-headline-size);
  color: var(--cv-headline-color);
  margin: var(--cv-headline-margin);
}
.%[1]scontact {
  list-style: none;
  display: flex;
  flex-wrap: wrap;
  gap: 0.4em 1.2em;
  margin: var(--cv-contact-margin);
  padding: 0;
  font-size: var(--cv-contact-size);
  color: var(--cv-contact-color);
}
.%[1]scontact-stacked {
  display: block;
}
.%[1]scontact-stacked .%[1]scontact-item {
  margin-bottom: 0.4em;
}
.%[1]supdated {
  font-size: var(--cv-font-size-tiny);
  color: var(--cv-color-text-muted);
  margin: 0.6em 0 0 0;
}
.%[1]sphoto {
  display: block;
  width: var(--cv-photo-size);
  height: var(--cv-photo-size);
  border-radius: var(--cv-photo-radius);
  object-fit: cover;
  filter: var(--cv-photo-filter);
  box-shadow: var(--cv-photo-shadow);
  margin-bottom: 8px;
}
.%[1]sphoto-placeholder {
  background: var(--cv-color-muted);
}
`, prefix))

	buf.WriteString(fmt.Sprintf(`
/* Sections */
.%[1]ssection {
  margin-bottom: var(--cv-section-gap);
}
.%[1]ssection-title {
  font-family: var(--cv-font-family-heading);
  font-size: var(--cv-section-title-size);
  font-weight: var(--cv-font-weight-section);
  color: var(--cv-section-title-color);
  text-transform: var(--cv-section-title-transform);
  letter-spacing: var(--cv-section-title-letter-spacing);
  line-height: var(--cv-line-height-heading);
  margin: var(--cv-section-title-margin);
  border-bottom: var(--cv-section-title-border);
  padding-bottom: 2px;
}
.%[1]ssection-body p {
  margin: 0 0 var(--cv-paragraph-gap) 0;
}
.%[1]ssection-body ul {
  margin: 0 0 var(--cv-paragraph-gap) 0;
  padding-left: var(--cv-list-indent);
}
.%[1]ssection-body li {
  margin-bottom: var(--cv-list-gap);
}
.%[1]ssection-body li::marker {
  color: var(--cv-list-marker-color);
}
`, prefix))

	buf.WriteString(fmt.Sprintf(`
/* Entries */
.%[1]sentry {
  margin-bottom: var(--cv-paragraph-gap);
}
.%[1]sentry-head {
  display: flex;
  align-items: baseline;
  gap: 6px;
}
.%[1]sentry-title {
  font-size: var(--cv-entry-title-size);
  font-weight: var(--cv-font-weight-entry);
  color: var(--cv-entry-title-color);
  margin: var(--cv-entry-title-margin);
}
.%[1]sentry-company {
  color: var(--cv-color-text-secondary);
}
.%[1]sentry-meta {
  font-size: var(--cv-date-size);
  color: var(--cv-date-color);
  margin: 1px 0 3px 0;
}
.%[1]sentry-meta-lines span {
  display: block;
}
`, prefix))

	buf.WriteString(fmt.Sprintf(`
/* Skills */
.%[1]sskill-group {
  margin-bottom: var(--cv-paragraph-gap);
}
.%[1]sskill-category {
  display: block;
  font-weight: var(--cv-font-weight-entry);
  margin-bottom: 4px;
}
.%[1]stags {
  display: flex;
  flex-wrap: wrap;
}
.%[1]stag {
  display: inline-block;
  background: var(--cv-tag-background);
  color: var(--cv-tag-color);
  font-size: var(--cv-tag-size);
  padding: var(--cv-tag-padding);
  border-radius: var(--cv-tag-radius);
  box-shadow: var(--cv-tag-shadow);
  margin: var(--cv-tag-margin);
}
.%[1]sskill-run {
  color: var(--cv-color-text-secondary);
}
`, prefix))

	buf.WriteString(fmt.Sprintf(`
/* Inline */
.%[1]spage a {
  color: var(--cv-link-color);
  text-decoration: var(--cv-link-decoration);
}
.%[1]spage code {
  font-family: var(--cv-font-family-mono);
  font-size: var(--cv-font-size-code);
  background: var(--cv-color-muted);
  padding: 1px 4px;
  border-radius: 3px;
}
`, prefix))

	return buf.String()
}

// PageRuleCSS emits print geometry. Chromium does not resolve custom
// properties inside @page, so size and margins are inlined from the
// resolved tokens. Break markers become real page breaks here and
// nowhere else; on screen they stay invisible.
func PageRuleCSS(prefix, size, orientation string, tokens theme.TokenMap) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf(`
/* Print geometry */
@page {
  size: %s %s;
  margin: %s %s %s %s;
}
`, size, orientation,
		tokens.Get(theme.TokenPageMarginTop),
		tokens.Get(theme.TokenPageMarginRight),
		tokens.Get(theme.TokenPageMarginBottom),
		tokens.Get(theme.TokenPageMarginLeft)))

	buf.WriteString(fmt.Sprintf(`
/* Print flow */
body {
  margin: 0;
}
.%[1]spage {
  width: auto;
  margin: 0;
  padding: 0;
}
.%[1]spage-break {
  break-after: page;
  page-break-after: always;
}
.%[1]ssidebar {
  padding: 0 6mm 0 0;
}
.%[1]smain {
  padding: 0 0 0 6mm;
}
.%[1]ssection-title, .%[1]sentry-title {
  break-after: avoid;
  page-break-after: avoid;
}
.%[1]sentry, .%[1]sskill-group {
  break-inside: avoid;
  page-break-inside: avoid;
}
`, prefix))

	return buf.String()
}

// SanitizeCSS escapes sequences that could close a <style> block, so
// user-supplied extra CSS cannot break out into markup.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
