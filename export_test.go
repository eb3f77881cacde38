package cv2pdf

import (
	"math"
	"strings"
	"testing"
	"time"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestPaperSizeInches(t *testing.T) {
	tests := []struct {
		name        string
		size        string
		orientation string
		wantWidth   float64
		wantHeight  float64
	}{
		{
			name:        "a4 portrait",
			size:        "a4",
			orientation: "portrait",
			wantWidth:   210 / 25.4,
			wantHeight:  297 / 25.4,
		},
		{
			name:        "a4 landscape swaps dimensions",
			size:        "a4",
			orientation: "landscape",
			wantWidth:   297 / 25.4,
			wantHeight:  210 / 25.4,
		},
		{
			name:        "letter portrait",
			size:        "letter",
			orientation: "portrait",
			wantWidth:   8.5,
			wantHeight:  11.0,
		},
		{
			name:        "legal portrait",
			size:        "legal",
			orientation: "portrait",
			wantWidth:   8.5,
			wantHeight:  14.0,
		},
		{
			name:        "unknown size falls back to a4",
			size:        "tabloid",
			orientation: "portrait",
			wantWidth:   210 / 25.4,
			wantHeight:  297 / 25.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width, height := paperSizeInches(tt.size, tt.orientation)
			if !almostEqual(width, tt.wantWidth) {
				t.Errorf("width = %v, want %v", width, tt.wantWidth)
			}
			if !almostEqual(height, tt.wantHeight) {
				t.Errorf("height = %v, want %v", height, tt.wantHeight)
			}
		})
	}
}

func TestBuildPrintOptions(t *testing.T) {
	t.Run("basic geometry", func(t *testing.T) {
		opts := &printOptions{
			pageSize:    "letter",
			orientation: "portrait",
			marginTop:   0.75, marginRight: 0.7,
			marginBottom: 0.75, marginLeft: 0.7,
		}
		got := buildPrintOptions(opts)

		if !almostEqual(*got.PaperWidth, 8.5) || !almostEqual(*got.PaperHeight, 11.0) {
			t.Errorf("paper = %v x %v, want 8.5 x 11", *got.PaperWidth, *got.PaperHeight)
		}
		if !almostEqual(*got.MarginTop, 0.75) || !almostEqual(*got.MarginLeft, 0.7) {
			t.Error("margins should pass through unchanged")
		}
		if !got.PrintBackground {
			t.Error("PrintBackground should be enabled")
		}
		if got.DisplayHeaderFooter {
			t.Error("no footer configured, DisplayHeaderFooter should be false")
		}
	})

	t.Run("footer enables header and footer templates", func(t *testing.T) {
		opts := &printOptions{pageSize: "a4", pageNumbers: true, marginBottom: 0.8}
		got := buildPrintOptions(opts)

		if !got.DisplayHeaderFooter {
			t.Fatal("DisplayHeaderFooter should be true with page numbers")
		}
		if got.HeaderTemplate != "<span></span>" {
			t.Errorf("HeaderTemplate = %q, want empty span", got.HeaderTemplate)
		}
		if !strings.Contains(got.FooterTemplate, `class="pageNumber"`) {
			t.Error("FooterTemplate should reference the pageNumber class")
		}
	})

	t.Run("tight bottom margin is widened for the footer", func(t *testing.T) {
		opts := &printOptions{pageSize: "a4", pageNumbers: true, marginBottom: 0.3}
		got := buildPrintOptions(opts)

		if !almostEqual(*got.MarginBottom, minFooterMarginInches) {
			t.Errorf("MarginBottom = %v, want %v", *got.MarginBottom, minFooterMarginInches)
		}
	})

	t.Run("generous bottom margin is kept", func(t *testing.T) {
		opts := &printOptions{pageSize: "a4", footerText: "Confidential", marginBottom: 0.9}
		got := buildPrintOptions(opts)

		if !almostEqual(*got.MarginBottom, 0.9) {
			t.Errorf("MarginBottom = %v, want 0.9", *got.MarginBottom)
		}
	})

	t.Run("tight bottom margin without footer is kept", func(t *testing.T) {
		opts := &printOptions{pageSize: "a4", marginBottom: 0.3}
		got := buildPrintOptions(opts)

		if !almostEqual(*got.MarginBottom, 0.3) {
			t.Errorf("MarginBottom = %v, want 0.3", *got.MarginBottom)
		}
	})
}

func TestBuildFooterTemplate(t *testing.T) {
	tests := []struct {
		name        string
		pageNumbers bool
		text        string
		want        []string
		wantAbsent  []string
	}{
		{
			name:       "nothing configured",
			want:       []string{"<span></span>"},
			wantAbsent: []string{"pageNumber", "div"},
		},
		{
			name:        "page numbers only",
			pageNumbers: true,
			want:        []string{`<span class="pageNumber"></span>`, `<span class="totalPages"></span>`},
			wantAbsent:  []string{"·"},
		},
		{
			name:       "text only",
			text:       "Confidential",
			want:       []string{"Confidential"},
			wantAbsent: []string{"pageNumber", "·"},
		},
		{
			name:        "text and page numbers joined",
			pageNumbers: true,
			text:        "Ada Lovelace",
			want:        []string{"Ada Lovelace · ", `class="pageNumber"`},
		},
		{
			name:       "text is HTML-escaped",
			text:       `<img src=x onerror="alert(1)">`,
			want:       []string{"&lt;img"},
			wantAbsent: []string{"<img"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildFooterTemplate(tt.pageNumbers, tt.text)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("template missing %q in %q", want, got)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("template should not contain %q: %q", absent, got)
				}
			}
		})
	}
}

func TestCSSLengthInches(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1in", 1.0},
		{"96px", 1.0},
		{"25.4mm", 1.0},
		{"2.54cm", 1.0},
		{"72pt", 1.0},
		{"2em", 1.0 / 3.0}, // 32px at the 16px browser base
		{"20mm", 20.0 / 25.4},
		{"", 0},
		{"wide", 0},
	}

	for _, tt := range tests {
		if got := cssLengthInches(tt.input); !almostEqual(got, tt.want) {
			t.Errorf("cssLengthInches(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRendererPrintOptions(t *testing.T) {
	r, err := NewRenderer(withExporter(&mockExporter{}))
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}
	defer r.Close()

	opts := r.printOptions()
	if opts.pageSize != "a4" {
		t.Errorf("pageSize = %q, want %q", opts.pageSize, "a4")
	}
	if opts.orientation != "portrait" {
		t.Errorf("orientation = %q, want %q", opts.orientation, "portrait")
	}
	// Default theme margins: 20mm vertical, 18mm horizontal
	if !almostEqual(opts.marginTop, 20.0/25.4) {
		t.Errorf("marginTop = %v, want %v", opts.marginTop, 20.0/25.4)
	}
	if !almostEqual(opts.marginLeft, 18.0/25.4) {
		t.Errorf("marginLeft = %v, want %v", opts.marginLeft, 18.0/25.4)
	}
}

func TestNewRodExporter(t *testing.T) {
	e := newRodExporter(5 * time.Second)
	if e.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", e.timeout)
	}
	if e.session.browser != nil {
		t.Error("browser must launch lazily, not at construction")
	}

	// Closing before any export is a no-op
	if err := e.Close(); err != nil {
		t.Errorf("Close() on unused exporter: %v", err)
	}
}
