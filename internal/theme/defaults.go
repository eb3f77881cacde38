package theme

// Defaults returns the complete built-in theme. Every leaf the compiler
// reads has a value here; partial user themes merge over this table, so
// no token can ever come out empty.
func Defaults() *Config {
	return &Config{
		Colors: ColorsConfig{
			Primary:     "#2563eb",
			OnPrimary:   "#ffffff",
			Secondary:   "#475569",
			OnSecondary: "#ffffff",
			Tertiary:    "#0d9488",
			OnTertiary:  "#ffffff",
			Muted:       "#e2e8f0",
			OnMuted:     "#334155",

			Text:          "#1f2937",
			TextSecondary: "#4b5563",
			TextMuted:     "#9ca3af",

			Background:        "#ffffff",
			SidebarBackground: "#f8fafc",

			Custom1: "#2563eb",
			Custom2: "#0d9488",
			Custom3: "#d97706",
			Custom4: "#be185d",
		},
		Typography: TypographyConfig{
			BaseSize:      "10pt",
			FontFamily:    "'Inter', 'Helvetica Neue', Arial, sans-serif",
			HeadingFamily: "", // empty = body stack
			MonoFamily:    "'JetBrains Mono', 'SFMono-Regular', Consolas, monospace",
			LineHeight:    1.5,
			HeadingLine:   1.25,
			Scales: ScalesConfig{
				Name:     2.8,
				Headline: 1.3,
				Section:  1.2,
				Entry:    1.05,
				Body:     1.0,
				Small:    0.9,
				Tiny:     0.8,
				Tag:      0.85,
				Date:     0.9,
				Code:     0.9,
			},
			Weights: WeightsConfig{
				Name:    700,
				Section: 600,
				Entry:   600,
				Body:    400,
			},
		},
		Layout: LayoutConfig{
			Mode:         "single",
			PageWidth:    "210mm",
			MarginTop:    "20mm",
			MarginRight:  "18mm",
			MarginBottom: "20mm",
			MarginLeft:   "18mm",
			SidebarWidth: "64mm",
			SectionGap:   "16px",
			ParagraphGap: "8px",
		},
		Components: ComponentsConfig{
			Name: ComponentConfig{
				Color:         "text",
				Transform:     "none",
				LetterSpacing: "0",
				Margin:        "0",
			},
			Headline: ComponentConfig{
				Color:  "textSecondary",
				Margin: "2px 0 0 0",
			},
			Contact: ComponentConfig{
				Color:  "textSecondary",
				Margin: "8px 0 0 0",
			},
			SectionTitle: ComponentConfig{
				Color:         "primary",
				Margin:        "0 0 8px 0",
				Transform:     "uppercase",
				LetterSpacing: "0.05em",
			},
			EntryTitle: ComponentConfig{
				Color:  "text",
				Margin: "0",
			},
			Tag: TagConfig{
				ComponentConfig: ComponentConfig{
					Background: "muted",
					Padding:    "2px 8px",
					Radius:     "4px",
					Shadow:     "none",
					Margin:     "0 6px 6px 0",
				},
				Style:     "pill",
				Separator: " · ",
			},
			DateLine: DateLineConfig{
				ComponentConfig: ComponentConfig{
					Color: "textMuted",
				},
				Join: "middot",
			},
			Link: LinkConfig{
				Color:     "primary",
				Underline: false,
			},
			List: ListConfig{
				Indent:      "18px",
				MarkerColor: "primary",
				Gap:         "4px",
			},
			Divider: DividerConfig{
				Style: "none",
				Width: "1px",
				Color: "muted",
			},
			Photo: PhotoConfig{
				Size:   "96px",
				Radius: "50%",
				Filter: "none",
				Shadow: "none",
			},
		},
		PDF: PDFConfig{
			PageSize:    "a4",
			Orientation: "portrait",
			PageNumbers: false,
			FooterText:  "",
		},
		Advanced: AdvancedConfig{
			ExtraCSS:  "",
			Estimator: "sections",
		},
	}
}
