package paginate

import (
	"math"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/document"
)

// HeightSource supplies vertical extents for packing. The preview
// swaps in real DOM measurements once available; until then the text
// estimator below fills in.
type HeightSource interface {
	HeaderHeight(fm document.Frontmatter) float64
	SectionHeight(s document.Section) float64
}

// TextEstimator approximates heights from text metrics alone: average
// glyph width against the column width gives lines, lines times line
// height gives pixels. It is deliberately crude; its job is a stable
// first paint, not typography.
type TextEstimator struct {
	// ContentWidth is the text column width in pixels.
	ContentWidth float64
	// BodyFont is the body font size in pixels.
	BodyFont float64
	// LineHeight is the unitless body line height.
	LineHeight float64
}

// Geometry constants for the estimator. Glyph width is tuned for
// ordinary latin text; paddings mirror the default stylesheet.
const (
	estGlyphWidthEm   = 0.52
	estTitleMargin    = 14.0
	estSectionPadding = 16.0
	estEntryPadding   = 8.0
	estTagRowEm       = 2.0
	estTagWidthEm     = 5.5
)

var _ HeightSource = (*TextEstimator)(nil)

// NewTextEstimator builds an estimator with guards against degenerate
// geometry: non-positive inputs fall back to a plain A4-ish column.
func NewTextEstimator(contentWidth, bodyFont, lineHeight float64) *TextEstimator {
	if contentWidth <= 0 {
		contentWidth = 660
	}
	if bodyFont <= 0 {
		bodyFont = 13.3
	}
	if lineHeight <= 0 {
		lineHeight = 1.5
	}
	return &TextEstimator{ContentWidth: contentWidth, BodyFont: bodyFont, LineHeight: lineHeight}
}

func (e *TextEstimator) linePx() float64 {
	return e.BodyFont * e.LineHeight
}

// charsPerLine is how many average glyphs fit one column line.
func (e *TextEstimator) charsPerLine() float64 {
	return math.Max(1, e.ContentWidth/(e.BodyFont*estGlyphWidthEm))
}

// textLines counts wrapped lines for a text span. Explicit newlines
// wrap unconditionally; everything else wraps at the estimated column
// capacity.
func (e *TextEstimator) textLines(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	perLine := e.charsPerLine()
	var lines float64
	for _, l := range strings.Split(text, "\n") {
		n := float64(len([]rune(strings.TrimSpace(l))))
		lines += math.Max(1, math.Ceil(n/perLine))
	}
	return lines
}

// HeaderHeight estimates the rendered header: name, headline, one
// contact row, and stamp spacing.
func (e *TextEstimator) HeaderHeight(fm document.Frontmatter) float64 {
	h := estSectionPadding
	if fm.Name != "" {
		h += e.linePx() * 2.4 // display-size name line
	}
	if fm.Title != "" {
		h += e.linePx() * 1.2
	}
	if fm.Email != "" || fm.Phone != "" || fm.Location != "" || fm.Website != "" || fm.GitHub != "" || fm.LinkedIn != "" || len(fm.Extra) > 0 {
		h += e.linePx() * 1.4
	}
	if fm.Updated != "" {
		h += e.linePx()
	}
	return h
}

// SectionHeight estimates one rendered section, dispatching on the type
// tag the same way the renderer does. Break markers are zero-height.
func (e *TextEstimator) SectionHeight(s document.Section) float64 {
	if s.IsBreakOnly() {
		return 0
	}
	h := estSectionPadding
	if s.Title != "" {
		h += e.linePx()*1.2 + estTitleMargin
	}
	switch s.Type {
	case document.TypeEntries:
		h += e.textLines(s.Text) * e.linePx()
		for _, entry := range s.Entries {
			h += e.entryHeight(entry)
		}
	case document.TypeSkills:
		for _, g := range s.Groups {
			if g.Category != "" {
				h += e.linePx()
			}
			h += e.tagRows(g.Skills) * e.BodyFont * estTagRowEm
		}
	default:
		h += e.textLines(s.Text) * e.linePx()
		for _, item := range s.Items {
			h += e.textLines(item) * e.linePx()
		}
	}
	return h
}

func (e *TextEstimator) entryHeight(entry document.Entry) float64 {
	h := estEntryPadding
	if entry.Title != "" || entry.Company != "" {
		h += e.linePx() * 1.1
	}
	if entry.Date != "" || entry.Location != "" {
		h += e.linePx() * 0.9
	}
	h += e.textLines(entry.Description) * e.linePx()
	for _, b := range entry.Bullets {
		h += e.textLines(b) * e.linePx()
	}
	return h
}

// tagRows estimates how many pill rows a skill list wraps into.
func (e *TextEstimator) tagRows(skills []string) float64 {
	if len(skills) == 0 {
		return 0
	}
	var width float64
	for _, s := range skills {
		w := float64(len([]rune(s)))*e.BodyFont*estGlyphWidthEm + e.BodyFont*estTagWidthEm*0.4
		width += w
	}
	return math.Max(1, math.Ceil(width/e.ContentWidth))
}
