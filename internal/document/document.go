// Package document parses résumé source — a YAML frontmatter block
// followed by Markdown-shaped body text — into the typed section model
// the renderer consumes. Section content is a tagged union: the type tag
// is decided once here, and every consumer switches on it instead of
// probing content shapes.
package document

import "errors"

// ErrFrontmatter reports an unparsable frontmatter block.
var ErrFrontmatter = errors.New("invalid frontmatter")

// Type tags a section's content variant.
type Type string

const (
	// TypeParagraph is plain prose: one paragraph per blank-line block.
	TypeParagraph Type = "paragraph"
	// TypeList is a flat bullet list.
	TypeList Type = "list"
	// TypeSkills is categorized skill groups rendered as tags.
	TypeSkills Type = "skills"
	// TypeEntries is structured entries (roles, degrees, projects).
	TypeEntries Type = "entries"
	// TypeLanguages, TypeInterests and TypeTools are list sections with
	// a canonical sidebar identity.
	TypeLanguages Type = "languages"
	TypeInterests Type = "interests"
	TypeTools     Type = "tools"
	// TypeBreak is a content-less marker that forces a page boundary.
	TypeBreak Type = "break"
)

// Document is a parsed résumé: header fields plus ordered sections.
type Document struct {
	Frontmatter Frontmatter
	Sections    []Section
}

// Frontmatter holds the header fields. Unknown keys land in Extra and
// render as additional contact items.
type Frontmatter struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
	Website  string `yaml:"website"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Photo    string `yaml:"photo"`
	Updated  string `yaml:"updated"`

	Extra map[string]string `yaml:"-"`
}

// Section is one titled (or break-only) block of content. Exactly the
// fields matching Type are populated; Text may accompany Items or
// Entries as a lead-in paragraph.
type Section struct {
	Type        Type
	Title       string
	BreakBefore bool

	Text    string       // paragraph blocks joined by blank lines
	Items   []string     // list items
	Groups  []SkillGroup // skills
	Entries []Entry      // structured entries
}

// IsBreakOnly reports whether the section is a bare forced-break marker.
func (s *Section) IsBreakOnly() bool {
	return s.Type == TypeBreak && s.Title == "" && s.Text == "" &&
		len(s.Items) == 0 && len(s.Groups) == 0 && len(s.Entries) == 0
}

// SkillGroup is one labeled run of skills.
type SkillGroup struct {
	Category string
	Skills   []string
}

// Entry is one structured item: a role, degree, or project.
type Entry struct {
	Title       string
	Company     string
	Date        string
	Location    string
	Description string
	Bullets     []string
}
