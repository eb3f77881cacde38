package markup

import (
	"regexp"
	"strings"
	"unicode"
)

// The inline subset is applied in one fixed order: escape, bold,
// italic, inline code, links, line breaks. The order is part of the
// contract (nested markers resolve predictably, and escaping first
// means no user text can smuggle tags past the later passes).
var (
	boldStarRe    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderRe   = regexp.MustCompile(`__(.+?)__`)
	italicStarRe  = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicUnderRe = regexp.MustCompile(`\b_([^_\n]+)_\b`)
	codeRe        = regexp.MustCompile("`([^`\n]+)`")
	linkRe        = regexp.MustCompile(`\[([^\[\]]*)\]\(([^()\s]+)\)`)
)

// htmlEscaper escapes the five HTML metacharacters in a single pass.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// FormatInline converts one span of raw résumé text to inline HTML.
// Escaping runs first, so the replacement passes only ever see entity
// text plus the tags they emit themselves. Newlines become explicit
// break tags; block structure is the caller's problem.
func FormatInline(raw string) string {
	s := htmlEscaper.Replace(raw)
	s = boldStarRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = boldUnderRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicStarRe.ReplaceAllString(s, "<em>$1</em>")
	s = italicUnderRe.ReplaceAllString(s, "<em>$1</em>")
	s = codeRe.ReplaceAllString(s, "<code>$1</code>")
	s = linkRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		return `<a href="` + SanitizeURL(sub[2]) + `" target="_blank" rel="noopener">` + sub[1] + `</a>`
	})
	return strings.ReplaceAll(s, "\n", "<br>\n")
}

// safeSchemes is the href allow-list. Everything else is neutralized.
var safeSchemes = []string{"http://", "https://", "mailto:", "tel:"}

// SanitizeURL admits http(s), mailto and tel URLs plus scheme-less
// relative references ("/about", "./cv.pdf", "#section"). Any other
// scheme, including ones obscured by case tricks or embedded
// whitespace, collapses to "#". Admitted URLs pass through trimmed but
// otherwise unchanged.
func SanitizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "#"
	}
	probe := strings.ToLower(stripSpace(u))
	for _, scheme := range safeSchemes {
		if strings.HasPrefix(probe, scheme) {
			return u
		}
	}
	// A colon before any slash marks a scheme we did not recognize.
	if i := strings.IndexByte(probe, ':'); i >= 0 {
		slash := strings.IndexByte(probe, '/')
		if slash == -1 || i < slash {
			return "#"
		}
	}
	return u
}

// stripSpace drops every space and control rune so "java\tscript:"
// cannot sneak past the scheme check.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r < ' ' {
			return -1
		}
		return r
	}, s)
}
