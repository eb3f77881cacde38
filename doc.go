// Package cv2pdf renders Markdown résumés into themed HTML and PDF
// using headless Chrome.
//
// # Quick Start
//
// Create a renderer, render a résumé, and close when done:
//
//	r, err := cv2pdf.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	result, err := r.Render(ctx, cv2pdf.Input{
//	    Source: "---\nname: Ada Lovelace\n---\n\n## Experience\n...",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("resume.pdf", result.PDF, 0644)
//
// The result contains both the PDF bytes (result.PDF) and the themed
// HTML (result.HTML). Use Input.HTMLOnly to skip PDF generation.
//
// # Rendering Pipeline
//
// Rendering follows these stages:
//
//  1. Source parsing: YAML frontmatter plus Markdown-shaped body into
//     typed sections (headings, entries, skills, lists, break markers)
//  2. Theme compilation: declarative YAML theme into a flat token map
//     of CSS custom properties
//  3. Markup composition: sections into class-prefixed HTML fragments,
//     single-column or sidebar layout per the theme
//  4. PDF export via headless Chrome (go-rod), with page geometry and
//     optional page-number footer taken from the theme
//
// # Themes
//
// A theme is selected by built-in name, file path, or inline YAML:
//
//	r, err := cv2pdf.NewRenderer(
//	    cv2pdf.WithTheme("sidebar"),           // built-in name
//	    cv2pdf.WithThemeDir("/path/to/themes"), // custom themes override built-ins
//	)
//
// Built-in themes ship embedded; a custom theme directory shadows them
// by name with fallback to the embedded set.
//
// # Pagination Preview
//
// The pagination estimator predicts page breaks for interactive
// previews without printing. It is advisory: the export path lets the
// browser engine paginate for real. BrowserMeasurer supplies measured
// block geometry for the estimator when an exact preview is wanted.
//
// # Parallel Processing
//
// For batch rendering, use RendererPool to manage multiple browser
// instances:
//
//	pool := cv2pdf.NewRendererPool(4)
//	defer pool.Close()
//
//	r, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(r)
//	result, err := r.Render(ctx, input)
//
// # Browser Requirements
//
// PDF export requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package cv2pdf
