package main

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-cv2pdf/internal/preview"
)

// renderFlags holds flags for the render command.
type renderFlags struct {
	output   string
	theme    string
	themeDir string
	format   string
	timeout  string
	css      string
	workers  int
	quiet    bool
	verbose  bool
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	addr     string
	theme    string
	themeDir string
	measure  bool
	verbose  bool
}

// themesFlags holds flags for the themes command.
type themesFlags struct {
	themeDir string
}

// addThemeFlags adds the theme selection flags shared across commands.
func addThemeFlags(fs *flag.FlagSet, theme, themeDir *string) {
	fs.StringVar(theme, "theme", "", "theme name, file path, or inline YAML")
	fs.StringVar(themeDir, "theme-dir", "", "custom theme directory overlaying the built-ins")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file, or directory for multiple inputs")
	fs.StringVarP(&f.format, "format", "f", "pdf", "output format: pdf, html, both")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g. 30s, 2m)")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the theme styles")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for multiple inputs (0 = auto)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file timing")
	addThemeFlags(fs, &f.theme, &f.themeDir)

	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string) (*previewFlags, []string, error) {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	f := &previewFlags{}

	fs.StringVar(&f.addr, "addr", "", "listen address (default "+preview.DefaultAddr+")")
	fs.BoolVar(&f.measure, "measure", false, "measure real geometry with headless Chrome")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log requests and renders")
	addThemeFlags(fs, &f.theme, &f.themeDir)

	fs.Usage = func() { printPreviewUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseThemesFlags parses themes command flags.
func parseThemesFlags(args []string) (*themesFlags, []string, error) {
	fs := flag.NewFlagSet("themes", flag.ContinueOnError)
	f := &themesFlags{}

	fs.StringVar(&f.themeDir, "theme-dir", "", "custom theme directory overlaying the built-ins")

	fs.Usage = func() { printThemesUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
