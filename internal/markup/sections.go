package markup

import (
	"strings"

	"github.com/alnah/go-cv2pdf/internal/document"
)

// Section renders one section. Dispatch happens on the type tag alone;
// titles only influence what the parser tagged, never the rendering
// path. A break-only marker renders as a bare element so the paged
// stylesheet can turn it into a forced page break.
func (r *Renderer) Section(s document.Section) string {
	if s.IsBreakOnly() {
		return r.breakMarker()
	}

	var body string
	switch s.Type {
	case document.TypeEntries:
		body = r.entriesBody(s)
	case document.TypeSkills:
		body = r.skillsBody(s)
	case document.TypeList, document.TypeLanguages, document.TypeInterests, document.TypeTools:
		body = r.listBody(s)
	default:
		body = r.paragraphBody(s.Text)
	}

	var b strings.Builder
	if s.BreakBefore {
		b.WriteString(r.breakMarker())
	}
	b.WriteString(`<section class="` + r.cls("section") + ` ` + r.cls("section-"+string(s.Type)) + `">`)
	if s.Title != "" {
		b.WriteString(`<h2 class="` + r.cls("section-title") + `">` + FormatInline(s.Title) + `</h2>`)
	}
	b.WriteString(`<div class="` + r.cls("section-body") + `">` + body + `</div>`)
	b.WriteString(`</section>`)
	return b.String()
}

// Sections renders a slice in document order.
func (r *Renderer) Sections(sections []document.Section) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(r.Section(s))
	}
	return b.String()
}

func (r *Renderer) breakMarker() string {
	return `<div class="` + r.cls("page-break") + `"></div>`
}

// paragraphBody renders blank-line-delimited blocks as paragraphs.
func (r *Renderer) paragraphBody(text string) string {
	var b strings.Builder
	for _, block := range splitBlocks(text) {
		b.WriteString(`<p>` + FormatInline(block) + `</p>`)
	}
	return b.String()
}

func (r *Renderer) listBody(s document.Section) string {
	var b strings.Builder
	if s.Text != "" {
		b.WriteString(r.paragraphBody(s.Text))
	}
	b.WriteString(r.bulletList(s.Items))
	return b.String()
}

func (r *Renderer) bulletList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ul>`)
	for _, item := range items {
		b.WriteString(`<li>` + FormatInline(item) + `</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// skillsBody renders grouped skills either as pill tags or as an inline
// run joined by the configured separator.
func (r *Renderer) skillsBody(s document.Section) string {
	var b strings.Builder
	for _, g := range s.Groups {
		b.WriteString(`<div class="` + r.cls("skill-group") + `">`)
		if g.Category != "" {
			b.WriteString(`<span class="` + r.cls("skill-category") + `">` + escape(g.Category) + `</span>`)
		}
		if r.opts.TagStyle == "inline" {
			b.WriteString(`<span class="` + r.cls("skill-run") + `">` + escape(strings.Join(g.Skills, r.opts.TagSeparator)) + `</span>`)
		} else {
			b.WriteString(`<span class="` + r.cls("tags") + `">`)
			for _, skill := range g.Skills {
				b.WriteString(`<span class="` + r.cls("tag") + `">` + escape(skill) + `</span>`)
			}
			b.WriteString(`</span>`)
		}
		b.WriteString(`</div>`)
	}
	return b.String()
}

func (r *Renderer) entriesBody(s document.Section) string {
	var b strings.Builder
	if s.Text != "" {
		b.WriteString(r.paragraphBody(s.Text))
	}
	for _, e := range s.Entries {
		b.WriteString(r.entry(e))
	}
	return b.String()
}

func (r *Renderer) entry(e document.Entry) string {
	var b strings.Builder
	b.WriteString(`<article class="` + r.cls("entry") + `">`)

	if e.Title != "" || e.Company != "" {
		b.WriteString(`<div class="` + r.cls("entry-head") + `">`)
		if e.Title != "" {
			b.WriteString(`<h3 class="` + r.cls("entry-title") + `">` + FormatInline(e.Title) + `</h3>`)
		}
		if e.Company != "" {
			b.WriteString(`<span class="` + r.cls("entry-company") + `">` + FormatInline(e.Company) + `</span>`)
		}
		b.WriteString(`</div>`)
	}

	b.WriteString(r.entryMeta(e))

	if e.Description != "" {
		b.WriteString(r.paragraphBody(e.Description))
	}
	b.WriteString(r.bulletList(e.Bullets))

	b.WriteString(`</article>`)
	return b.String()
}

// entryMeta joins date and location per the configured style. With
// "lines" the fields stack as blocks; otherwise a separator span sits
// between them so the stylesheet never needs generated content.
func (r *Renderer) entryMeta(e document.Entry) string {
	if e.Date == "" && e.Location == "" {
		return ""
	}
	class := r.cls("entry-meta")
	if r.opts.MetaJoin == "lines" {
		class += " " + r.cls("entry-meta-lines")
	}
	var b strings.Builder
	b.WriteString(`<div class="` + class + `">`)
	if e.Date != "" {
		b.WriteString(`<span class="` + r.cls("entry-date") + `">` + escape(e.Date) + `</span>`)
	}
	if e.Date != "" && e.Location != "" && r.opts.MetaJoin != "lines" {
		b.WriteString(`<span class="` + r.cls("entry-sep") + `">` + metaSeparator(r.opts.MetaJoin) + `</span>`)
	}
	if e.Location != "" {
		b.WriteString(`<span class="` + r.cls("entry-location") + `">` + escape(e.Location) + `</span>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func metaSeparator(join string) string {
	if join == "pipe" {
		return " | "
	}
	return " · "
}

// splitBlocks divides text on blank lines, dropping empty blocks.
func splitBlocks(text string) []string {
	var blocks []string
	for _, block := range strings.Split(text, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}
