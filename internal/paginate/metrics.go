// Package paginate estimates page boundaries for the interactive
// preview. Estimates are advisory only: the export pipeline lets the
// browser engine paginate for real, and nothing here feeds back into
// printed output.
package paginate

import (
	"strconv"
	"strings"
)

// pxPerMM converts physical lengths at CSS resolution (96dpi).
const pxPerMM = 96.0 / 25.4

// pageSizeMM maps the supported page size names to width×height in
// millimeters (portrait orientation).
var pageSizeMM = map[string][2]float64{
	"a4":     {210, 297},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

// PageMetrics carries the vertical geometry pagination works in. All
// values are CSS pixels.
type PageMetrics struct {
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
}

// NewPageMetrics resolves a page size name and orientation into pixel
// geometry. Unknown sizes fall back to A4; margins that fail to parse
// count as zero.
func NewPageMetrics(size, orientation string, marginTop, marginBottom string) PageMetrics {
	dims, ok := pageSizeMM[strings.ToLower(strings.TrimSpace(size))]
	if !ok {
		dims = pageSizeMM["a4"]
	}
	heightMM := dims[1]
	if strings.EqualFold(strings.TrimSpace(orientation), "landscape") {
		heightMM = dims[0]
	}
	return PageMetrics{
		PageHeight:   heightMM * pxPerMM,
		MarginTop:    LengthPx(marginTop, 0),
		MarginBottom: LengthPx(marginBottom, 0),
	}
}

// UsableHeight is the per-page content height after margins. Degenerate
// margins never push it below zero.
func (m PageMetrics) UsableHeight() float64 {
	h := m.PageHeight - m.MarginTop - m.MarginBottom
	if h < 0 {
		return 0
	}
	return h
}

// LengthPx converts a CSS length to pixels. Supported units: px, pt,
// mm, cm, in, and em/rem against the given font size. Unparsable input
// or unknown units return the fallback 0.
func LengthPx(s string, emBase float64) float64 {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0
	}
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.' || s[i] == '-') {
		i++
	}
	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	switch strings.TrimSpace(s[i:]) {
	case "", "px":
		return n
	case "pt":
		return n * 96.0 / 72.0
	case "mm":
		return n * pxPerMM
	case "cm":
		return n * 10 * pxPerMM
	case "in":
		return n * 96.0
	case "em", "rem":
		return n * emBase
	}
	return 0
}
