package document

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parse turns résumé source into a Document. The body subset is small
// and deterministic: "##" headings open sections, "###" headings open
// structured entries inside a section, lists become items or bullets,
// and a paragraph holding only \newpage (or an HTML comment containing
// "pagebreak") becomes a forced-break marker. Unsupported block types
// (code fences, quotes, tables) are skipped. Inline markup is preserved
// verbatim for the renderer's own formatting pass.
func Parse(source []byte) (*Document, error) {
	fmBytes, body := splitFrontmatter(source)
	doc := &Document{}
	if len(bytes.TrimSpace(fmBytes)) > 0 {
		fm, err := parseFrontmatter(fmBytes)
		if err != nil {
			return nil, err
		}
		doc.Frontmatter = *fm
	}
	doc.Sections = parseSections(body)
	return doc, nil
}

func parseSections(body []byte) []Section {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var sections []Section
	b := &sectionBuilder{}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level <= 2 {
				sections = b.flush(sections)
				b = &sectionBuilder{title: rawLines(node, body)}
			} else {
				b.startEntry(rawLines(node, body))
			}
		case *ast.Paragraph:
			raw := rawLines(node, body)
			if isBreakMarker(raw) {
				sections = b.flush(sections)
				sections = append(sections, Section{Type: TypeBreak})
				b = &sectionBuilder{}
				continue
			}
			b.addParagraph(raw)
		case *ast.List:
			b.addItems(listItems(node, body))
		case *ast.HTMLBlock:
			if strings.Contains(strings.ToLower(rawLines(node, body)), "pagebreak") {
				sections = b.flush(sections)
				sections = append(sections, Section{Type: TypeBreak})
				b = &sectionBuilder{}
			}
		}
	}
	return b.flush(sections)
}

// rawLines reads a block node's source lines verbatim, joined by
// newlines, so inline markers survive for the formatting pass.
func rawLines(n ast.Node, source []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		seg := lines.At(i)
		b.Write(bytes.TrimRight(seg.Value(source), "\r\n"))
	}
	return b.String()
}

func listItems(list *ast.List, source []byte) []string {
	var items []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var parts []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.(type) {
			case *ast.TextBlock, *ast.Paragraph:
				if raw := rawLines(c, source); raw != "" {
					parts = append(parts, raw)
				}
			}
		}
		if len(parts) > 0 {
			items = append(items, strings.Join(parts, "\n"))
		}
	}
	return items
}

func isBreakMarker(raw string) bool {
	t := strings.TrimSpace(raw)
	return t == `\newpage` || t == `\pagebreak`
}

// sectionBuilder accumulates one section's blocks until the next
// boundary, then decides the type tag exactly once.
type sectionBuilder struct {
	title    string
	blocks   []string
	items    []string
	entries  []Entry
	cur      *Entry
	metaDone bool
}

func (b *sectionBuilder) startEntry(titleLine string) {
	b.closeEntry()
	title, company := splitPair(titleLine)
	b.cur = &Entry{Title: title, Company: company}
	b.metaDone = false
}

func (b *sectionBuilder) closeEntry() {
	if b.cur != nil {
		b.entries = append(b.entries, *b.cur)
		b.cur = nil
	}
}

func (b *sectionBuilder) addParagraph(raw string) {
	if b.cur == nil {
		b.blocks = append(b.blocks, raw)
		return
	}
	if !b.metaDone && b.cur.Description == "" && isMetaLine(raw) {
		b.cur.Date, b.cur.Location = splitPair(raw)
		b.metaDone = true
		return
	}
	if b.cur.Description == "" {
		b.cur.Description = raw
	} else {
		b.cur.Description += "\n\n" + raw
	}
}

func (b *sectionBuilder) addItems(items []string) {
	if b.cur != nil {
		b.cur.Bullets = append(b.cur.Bullets, items...)
		return
	}
	b.items = append(b.items, items...)
}

// flush appends the built section, dropping empty builders.
func (b *sectionBuilder) flush(sections []Section) []Section {
	s, ok := b.build()
	if !ok {
		return sections
	}
	return append(sections, s)
}

func (b *sectionBuilder) build() (Section, bool) {
	b.closeEntry()
	s := Section{Title: strings.TrimSpace(b.title)}
	switch {
	case len(b.entries) > 0:
		s.Type = TypeEntries
		s.Entries = b.entries
		s.Text = strings.Join(b.blocks, "\n\n")
	case len(b.items) > 0 && len(b.blocks) == 0 && allSkillShaped(b.items):
		s.Type = TypeSkills
		s.Groups = skillGroups(b.items)
	case len(b.items) > 0 && strings.EqualFold(s.Title, "skills"):
		s.Type = TypeSkills
		s.Groups = []SkillGroup{{Skills: b.items}}
	case len(b.items) > 0:
		s.Type = listTypeFor(s.Title)
		s.Items = b.items
		s.Text = strings.Join(b.blocks, "\n\n")
	case len(b.blocks) > 0:
		s.Type = TypeParagraph
		s.Text = strings.Join(b.blocks, "\n\n")
	default:
		if s.Title == "" {
			return Section{}, false
		}
		s.Type = TypeParagraph
	}
	return s, true
}

// splitPair divides "left | right" on the first pipe; no pipe means
// everything is left.
func splitPair(s string) (string, string) {
	if i := strings.Index(s, "|"); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return strings.TrimSpace(s), ""
}

// isMetaLine decides whether an entry's first paragraph is its
// date/location line: a single line carrying either a pipe separator or
// a digit without sentence punctuation.
func isMetaLine(raw string) bool {
	if strings.Contains(raw, "\n") {
		return false
	}
	t := strings.TrimSpace(raw)
	if strings.Contains(t, "|") {
		return true
	}
	return strings.ContainsAny(t, "0123456789") && !strings.HasSuffix(t, ".")
}

// skillGroupRe matches "Category: skill, skill, skill" items. The
// optional marker run after the colon lets bold categories through
// ("**Backend:** Go").
var skillGroupRe = regexp.MustCompile(`^([^:]{1,40}):(?:\*\*|__)?\s+(.+)$`)

func allSkillShaped(items []string) bool {
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if !skillGroupRe.MatchString(strings.TrimSpace(it)) {
			return false
		}
	}
	return true
}

func skillGroups(items []string) []SkillGroup {
	groups := make([]SkillGroup, 0, len(items))
	for _, it := range items {
		m := skillGroupRe.FindStringSubmatch(strings.TrimSpace(it))
		if m == nil {
			continue
		}
		group := SkillGroup{Category: strings.Trim(m[1], "*_ ")}
		for _, skill := range strings.Split(strings.Trim(m[2], "*_ "), ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				group.Skills = append(group.Skills, skill)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func listTypeFor(title string) Type {
	switch strings.ToLower(strings.TrimSpace(title)) {
	case "languages":
		return TypeLanguages
	case "interests":
		return TypeInterests
	case "tools":
		return TypeTools
	}
	return TypeList
}
