package document

import (
	"errors"
	"strings"
	"testing"
)

// Notes:
// - Parse is exercised end to end on a realistic résumé source, then
//   the individual decisions (frontmatter split, section typing, entry
//   meta lines, skill shapes, break markers) get focused tables.
// - Raw inline markup must survive parsing untouched; the renderer owns
//   formatting. Tests assert on raw text for that reason.

const sampleSource = `---
name: Ada Lovelace
title: Analytical Engineer
email: ada@example.com
pronouns: she/her
---

Profile paragraph with **bold** intact.

## Experience

Short intro line about the career.

### Senior Engineer | Initech

Mar 2020 – Present | Berlin

Led the platform team.

- Cut build times by 60%
- Mentored four engineers

### Engineer | Hooli

2016 – 2020 | Remote

## Skills

- Languages: Go, Python, SQL
- Tools: Docker, Kubernetes

## Languages

- English (fluent)
- French (B2)

\newpage

## Education

### MSc Computer Science | TU Berlin

2014 – 2016
`

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

// ---------------------------------------------------------------------------
// Full document
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, sampleSource)

	fm := doc.Frontmatter
	if fm.Name != "Ada Lovelace" || fm.Title != "Analytical Engineer" {
		t.Errorf("frontmatter = %q / %q, want Ada Lovelace / Analytical Engineer", fm.Name, fm.Title)
	}
	if fm.Email != "ada@example.com" {
		t.Errorf("Email = %q", fm.Email)
	}
	if got := fm.Extra["pronouns"]; got != "she/her" {
		t.Errorf("Extra[pronouns] = %v, want she/her", got)
	}
	if _, ok := fm.Extra["name"]; ok {
		t.Error("known key leaked into Extra")
	}

	secs := doc.Sections
	if len(secs) != 6 {
		t.Fatalf("len(Sections) = %d, want 6", len(secs))
	}

	if secs[0].Type != TypeParagraph || secs[0].Title != "" {
		t.Errorf("preamble = %v %q, want untitled paragraph", secs[0].Type, secs[0].Title)
	}
	if !strings.Contains(secs[0].Text, "**bold**") {
		t.Errorf("preamble text lost raw markup: %q", secs[0].Text)
	}

	exp := secs[1]
	if exp.Type != TypeEntries || exp.Title != "Experience" {
		t.Fatalf("section 1 = %v %q, want entries Experience", exp.Type, exp.Title)
	}
	if exp.Text != "Short intro line about the career." {
		t.Errorf("entries lead text = %q", exp.Text)
	}
	if len(exp.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(exp.Entries))
	}
	first := exp.Entries[0]
	if first.Title != "Senior Engineer" || first.Company != "Initech" {
		t.Errorf("entry 0 head = %q / %q", first.Title, first.Company)
	}
	if first.Date != "Mar 2020 – Present" || first.Location != "Berlin" {
		t.Errorf("entry 0 meta = %q / %q", first.Date, first.Location)
	}
	if first.Description != "Led the platform team." {
		t.Errorf("entry 0 description = %q", first.Description)
	}
	if len(first.Bullets) != 2 || first.Bullets[0] != "Cut build times by 60%" {
		t.Errorf("entry 0 bullets = %v", first.Bullets)
	}
	second := exp.Entries[1]
	if second.Company != "Hooli" || second.Date != "2016 – 2020" || second.Location != "Remote" {
		t.Errorf("entry 1 = %+v", second)
	}

	skills := secs[2]
	if skills.Type != TypeSkills || len(skills.Groups) != 2 {
		t.Fatalf("section 2 = %v with %d groups, want skills with 2", skills.Type, len(skills.Groups))
	}
	if skills.Groups[0].Category != "Languages" {
		t.Errorf("group 0 category = %q", skills.Groups[0].Category)
	}
	if got := skills.Groups[0].Skills; len(got) != 3 || got[2] != "SQL" {
		t.Errorf("group 0 skills = %v", got)
	}

	langs := secs[3]
	if langs.Type != TypeLanguages || len(langs.Items) != 2 {
		t.Errorf("section 3 = %v with %d items, want languages with 2", langs.Type, len(langs.Items))
	}

	if !secs[4].IsBreakOnly() {
		t.Errorf("section 4 = %+v, want bare break marker", secs[4])
	}

	edu := secs[5]
	if edu.Type != TypeEntries || edu.Title != "Education" {
		t.Fatalf("section 5 = %v %q", edu.Type, edu.Title)
	}
	if len(edu.Entries) != 1 || edu.Entries[0].Date != "2014 – 2016" || edu.Entries[0].Location != "" {
		t.Errorf("education entry = %+v", edu.Entries[0])
	}
}

// ---------------------------------------------------------------------------
// Frontmatter
// ---------------------------------------------------------------------------

func TestParseFrontmatterHandling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		wantName string
		wantSecs int
		wantErr  error
	}{
		{
			name:     "no frontmatter",
			source:   "Just a paragraph.\n",
			wantName: "",
			wantSecs: 1,
		},
		{
			name:     "crlf fence",
			source:   "---\r\nname: Ada\r\n---\r\nBody text.\r\n",
			wantName: "Ada",
			wantSecs: 1,
		},
		{
			name:     "unterminated fence is body",
			source:   "---\nname: Ada\nno closing fence",
			wantName: "",
			wantSecs: 1,
		},
		{
			name:     "frontmatter only",
			source:   "---\nname: Ada\n---\n",
			wantName: "Ada",
			wantSecs: 0,
		},
		{
			name:    "invalid yaml",
			source:  "---\nname: [unclosed\n---\nBody.\n",
			wantErr: ErrFrontmatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse([]byte(tt.source))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if doc.Frontmatter.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", doc.Frontmatter.Name, tt.wantName)
			}
			if len(doc.Sections) != tt.wantSecs {
				t.Errorf("len(Sections) = %d, want %d", len(doc.Sections), tt.wantSecs)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Section typing
// ---------------------------------------------------------------------------

func TestSectionTyping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantType Type
	}{
		{
			name:     "plain paragraphs",
			body:     "## About\n\nOne.\n\nTwo.\n",
			wantType: TypeParagraph,
		},
		{
			name:     "plain list",
			body:     "## Highlights\n\n- one\n- two\n",
			wantType: TypeList,
		},
		{
			name:     "interests by title",
			body:     "## Interests\n\n- chess\n- rowing\n",
			wantType: TypeInterests,
		},
		{
			name:     "tools by title case-insensitive",
			body:     "## TOOLS\n\n- vim\n",
			wantType: TypeTools,
		},
		{
			name:     "grouped skills by shape",
			body:     "## Stack\n\n- Backend: Go, Rust\n- Frontend: TypeScript\n",
			wantType: TypeSkills,
		},
		{
			name:     "skills title without shape",
			body:     "## Skills\n\n- Go\n- Rust\n",
			wantType: TypeSkills,
		},
		{
			name:     "mixed shape falls back to list",
			body:     "## Stack\n\n- Backend: Go\n- highly motivated\n",
			wantType: TypeList,
		},
		{
			name:     "title only",
			body:     "## References\n",
			wantType: TypeParagraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, tt.body)
			if len(doc.Sections) != 1 {
				t.Fatalf("len(Sections) = %d, want 1", len(doc.Sections))
			}
			if got := doc.Sections[0].Type; got != tt.wantType {
				t.Errorf("Type = %v, want %v", got, tt.wantType)
			}
		})
	}
}

func TestSkillsTitleWithoutShape(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "## Skills\n\n- Go\n- Rust\n")
	groups := doc.Sections[0].Groups
	if len(groups) != 1 || groups[0].Category != "" {
		t.Fatalf("Groups = %+v, want one anonymous group", groups)
	}
	if len(groups[0].Skills) != 2 || groups[0].Skills[1] != "Rust" {
		t.Errorf("Skills = %v", groups[0].Skills)
	}
}

func TestBoldSkillCategories(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "## Skills\n\n- **Backend:** Go, Rust\n- **Cloud**: AWS\n")
	groups := doc.Sections[0].Groups
	if len(groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(groups))
	}
	if groups[0].Category != "Backend" || groups[1].Category != "Cloud" {
		t.Errorf("categories = %q, %q", groups[0].Category, groups[1].Category)
	}
	if groups[0].Skills[0] != "Go" || groups[1].Skills[0] != "AWS" {
		t.Errorf("skills = %v, %v", groups[0].Skills, groups[1].Skills)
	}
}

// ---------------------------------------------------------------------------
// Entry meta lines
// ---------------------------------------------------------------------------

func TestEntryMetaLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		para     string
		wantDate string
		wantLoc  string
		wantDesc string
	}{
		{
			name:     "pipe separated",
			para:     "2020 – 2022 | Lisbon",
			wantDate: "2020 – 2022",
			wantLoc:  "Lisbon",
		},
		{
			name:     "date only",
			para:     "Summer 2019",
			wantDate: "Summer 2019",
		},
		{
			name:     "sentence with digits stays description",
			para:     "Shipped 3 products.",
			wantDesc: "Shipped 3 products.",
		},
		{
			name:     "plain sentence stays description",
			para:     "Taught weekend coding classes",
			wantDesc: "Taught weekend coding classes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, "## Work\n\n### Role | Org\n\n"+tt.para+"\n")
			entry := doc.Sections[0].Entries[0]
			if entry.Date != tt.wantDate || entry.Location != tt.wantLoc {
				t.Errorf("meta = %q / %q, want %q / %q", entry.Date, entry.Location, tt.wantDate, tt.wantLoc)
			}
			if entry.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", entry.Description, tt.wantDesc)
			}
		})
	}
}

func TestEntryMetaConsumedOnce(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "## Work\n\n### Role | Org\n\n2020 | Lisbon\n\n2021 was a good year\n")
	entry := doc.Sections[0].Entries[0]
	if entry.Date != "2020" {
		t.Errorf("Date = %q, want 2020", entry.Date)
	}
	if entry.Description != "2021 was a good year" {
		t.Errorf("Description = %q", entry.Description)
	}
}

// ---------------------------------------------------------------------------
// Break markers
// ---------------------------------------------------------------------------

func TestBreakMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want int // break sections
	}{
		{name: "latex newpage", body: "One.\n\n\\newpage\n\nTwo.\n", want: 1},
		{name: "latex pagebreak", body: "One.\n\n\\pagebreak\n\nTwo.\n", want: 1},
		{name: "html comment", body: "One.\n\n<!-- pagebreak -->\n\nTwo.\n", want: 1},
		{name: "html comment no spaces", body: "One.\n\n<!--pagebreak-->\n\nTwo.\n", want: 1},
		{name: "marker alone", body: "\\newpage\n", want: 1},
		{name: "plain comment ignored", body: "One.\n\n<!-- note to self -->\n\nTwo.\n", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, tt.body)
			got := 0
			for _, s := range doc.Sections {
				if s.IsBreakOnly() {
					got++
				}
			}
			if got != tt.want {
				t.Errorf("break sections = %d, want %d (sections %+v)", got, tt.want, doc.Sections)
			}
		})
	}
}

func TestBreakSplitsSection(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "## Log\n\nBefore.\n\n\\newpage\n\nAfter.\n")
	if len(doc.Sections) != 3 {
		t.Fatalf("len(Sections) = %d, want 3", len(doc.Sections))
	}
	if doc.Sections[0].Text != "Before." || !doc.Sections[1].IsBreakOnly() {
		t.Errorf("sections = %+v", doc.Sections)
	}
	after := doc.Sections[2]
	if after.Title != "" || after.Text != "After." {
		t.Errorf("trailing section = %+v", after)
	}
}

// ---------------------------------------------------------------------------
// Unsupported blocks
// ---------------------------------------------------------------------------

func TestUnsupportedBlocksSkipped(t *testing.T) {
	t.Parallel()

	body := "## Notes\n\nKept.\n\n```go\nfmt.Println(\"dropped\")\n```\n\n> also dropped\n"
	doc := mustParse(t, body)
	if len(doc.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(doc.Sections))
	}
	if got := doc.Sections[0].Text; got != "Kept." {
		t.Errorf("Text = %q, want Kept.", got)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func TestSplitPair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in          string
		left, right string
	}{
		{"Engineer | Initech", "Engineer", "Initech"},
		{"Engineer", "Engineer", ""},
		{"a | b | c", "a", "b | c"},
		{"  padded  |  both  ", "padded", "both"},
		{"", "", ""},
	}

	for _, tt := range tests {
		left, right := splitPair(tt.in)
		if left != tt.left || right != tt.right {
			t.Errorf("splitPair(%q) = %q, %q, want %q, %q", tt.in, left, right, tt.left, tt.right)
		}
	}
}
