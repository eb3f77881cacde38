package markup

import (
	"strings"

	"github.com/alnah/go-cv2pdf/internal/document"
)

// sidebarTypes always route to the sidebar column.
var sidebarTypes = map[document.Type]bool{
	document.TypeSkills:    true,
	document.TypeLanguages: true,
	document.TypeInterests: true,
	document.TypeTools:     true,
}

// sidebarTitleWords route by title when the type alone is not decisive.
var sidebarTitleWords = []string{"skills", "languages", "interests", "tools"}

// IsSidebarSection reports whether a section belongs in the sidebar: a
// sidebar type tag, or a title containing one of the sidebar words
// case-insensitively ("Technical Skills" counts).
func IsSidebarSection(s document.Section) bool {
	if sidebarTypes[s.Type] {
		return true
	}
	title := strings.ToLower(s.Title)
	for _, word := range sidebarTitleWords {
		if strings.Contains(title, word) {
			return true
		}
	}
	return false
}

// SplitSections routes sections into the two columns. Break-only
// markers carry no type or title of their own, so each one follows the
// column of the preceding content section; a marker before any content
// defaults to main.
func SplitSections(sections []document.Section) (sidebar, main []document.Section) {
	lastSidebar := false
	for _, s := range sections {
		switch {
		case s.IsBreakOnly() && lastSidebar:
			sidebar = append(sidebar, s)
		case s.IsBreakOnly():
			main = append(main, s)
		case IsSidebarSection(s):
			sidebar = append(sidebar, s)
			lastSidebar = true
		default:
			main = append(main, s)
			lastSidebar = false
		}
	}
	return sidebar, main
}

// Compose renders the whole document body for the configured column
// mode.
func (r *Renderer) Compose(doc *document.Document, twoColumn bool) string {
	if twoColumn {
		sidebar, main := SplitSections(doc.Sections)
		return r.ComposeTwoColumn(doc.Frontmatter, sidebar, main)
	}
	return r.ComposeSingleColumn(doc.Frontmatter, doc.Sections)
}

// ComposeTwoColumn lays out a sidebar block (contact card plus sidebar
// sections) next to a main block (name header plus main sections).
func (r *Renderer) ComposeTwoColumn(fm document.Frontmatter, sidebar, main []document.Section) string {
	var b strings.Builder
	b.WriteString(`<div class="` + r.cls("page") + ` ` + r.cls("page-two-column") + `">`)

	b.WriteString(`<aside class="` + r.cls("sidebar") + `">`)
	b.WriteString(r.ContactCard(fm))
	b.WriteString(r.Sections(sidebar))
	b.WriteString(`</aside>`)

	b.WriteString(`<div class="` + r.cls("main") + `">`)
	b.WriteString(`<header class="` + r.cls("header") + `">` + r.nameBlock(fm) + `</header>`)
	b.WriteString(r.Sections(main))
	b.WriteString(`</div>`)

	b.WriteString(`</div>`)
	return b.String()
}

// ComposeSingleColumn stacks the full header and all sections linearly,
// ignoring the sidebar split entirely.
func (r *Renderer) ComposeSingleColumn(fm document.Frontmatter, sections []document.Section) string {
	var b strings.Builder
	b.WriteString(`<div class="` + r.cls("page") + `">`)
	b.WriteString(r.Header(fm))
	b.WriteString(r.Sections(sections))
	b.WriteString(`</div>`)
	return b.String()
}
