//go:build bench

package theme

import (
	"testing"
)

// BenchmarkCompile benchmarks token map compilation. Runs once per
// renderer construction, but pools construct a renderer per slot.
func BenchmarkCompile(b *testing.B) {
	configs := []struct {
		name string
		cfg  *Config
	}{
		{"nil", nil},
		{"empty", &Config{}},
		{"palette_only", &Config{
			Colors: ColorsConfig{Primary: "#0f766e", Secondary: "#c2410c"},
		}},
		{"full_override", &Config{
			Colors: ColorsConfig{
				Primary:           "#1d4ed8",
				OnPrimary:         "#ffffff",
				Text:              "#111827",
				TextMuted:         "#6b7280",
				SidebarBackground: "#eef2ff",
			},
			Typography: TypographyConfig{
				BaseSize:   "11pt",
				FontFamily: "Georgia, serif",
				LineHeight: 1.5,
				Scales:     ScalesConfig{Name: 2.6, Section: 1.3},
			},
			Layout: LayoutConfig{
				Mode:         "two-column",
				SidebarWidth: "64mm",
				SectionGap:   "14pt",
			},
		}},
	}

	for _, cfg := range configs {
		b.Run(cfg.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				result := Compile(cfg.cfg)
				_ = result
			}
		})
	}
}

// BenchmarkTokenMapCSS benchmarks flattening a compiled map into a CSS
// custom-property block. Called twice per render (preview and print).
func BenchmarkTokenMapCSS(b *testing.B) {
	tokens := Compile(nil)

	selectors := []struct {
		name     string
		selector string
	}{
		{"root", ":root"},
		{"scoped", ".cv-root"},
	}

	for _, sel := range selectors {
		b.Run(sel.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				result := tokens.CSS(sel.selector)
				_ = result
			}
		})
	}
}

// BenchmarkResolve benchmarks palette resolution with opacity blending,
// the hot path inside component compilation.
func BenchmarkResolve(b *testing.B) {
	cfg := &Config{Colors: ColorsConfig{Primary: "#0f766e"}}

	inputs := []struct {
		name    string
		key     string
		opacity float64
	}{
		{"role_opaque", "primary", 1},
		{"role_blended", "primary", 0.12},
		{"hex_literal", "#334155", 1},
		{"fallback", "no-such-role", 1},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				result := Resolve(input.key, cfg, input.opacity)
				_ = result
			}
		})
	}
}
