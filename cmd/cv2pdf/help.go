package main

import (
	"fmt"
	"io"

	"github.com/alnah/go-cv2pdf/internal/preview"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render résumé files to PDF or HTML")
	fmt.Fprintln(w, "  preview    Serve a live preview with page boundaries")
	fmt.Fprintln(w, "  themes     List available themes")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cv2pdf help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf render <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render résumé markdown files to PDF or HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    One or more .md or .markdown files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>     Output file (single input) or directory")
	fmt.Fprintln(w, "  -f, --format <s>        Output format: pdf, html, both")
	fmt.Fprintln(w, "  -w, --workers <n>       Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintln(w, "      --theme <s>         Theme name, YAML file path, or inline YAML")
	fmt.Fprintln(w, "      --theme-dir <path>  Directory of custom {name}.yaml themes")
	fmt.Fprintln(w, "      --css <path>        External CSS appended after the theme")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Frontmatter date:")
	fmt.Fprintln(w, "  The 'updated' field accepts \"auto\", \"auto:FORMAT\", or a literal.")
	fmt.Fprintln(w, "  Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "  Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "  Use [text] to escape literals: [Updated ]MMM YYYY")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "  -t, --timeout <d>       PDF export timeout (e.g. 60s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet             Only show errors")
	fmt.Fprintln(w, "  -v, --verbose           Show detailed timing")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf preview <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve a live preview that re-renders on save and overlays the")
	fmt.Fprintln(w, "page boundaries the PDF export will produce.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    A .md or .markdown résumé file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --addr <host:port>  Listen address (default "+preview.DefaultAddr+")")
	fmt.Fprintln(w, "      --theme <s>         Theme name, YAML file path, or inline YAML")
	fmt.Fprintln(w, "      --theme-dir <path>  Directory of custom {name}.yaml themes")
	fmt.Fprintln(w, "      --measure           Measure section heights in a headless browser")
	fmt.Fprintln(w, "                          instead of estimating from text metrics")
	fmt.Fprintln(w, "  -v, --verbose           Log every request and render")
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf themes [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List available themes, built-in and custom.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --theme-dir <path>  Directory of custom {name}.yaml themes")
}

// runHelp prints help for a specific command.
func runHelp(args []string, deps *Dependencies) {
	if len(args) == 0 {
		printUsage(deps.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(deps.Stdout)
	case "preview":
		printPreviewUsage(deps.Stdout)
	case "themes":
		printThemesUsage(deps.Stdout)
	case "version":
		fmt.Fprintln(deps.Stdout, "Usage: cv2pdf version")
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(deps.Stdout, "Usage: cv2pdf help [command]")
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(deps.Stderr, "Unknown command: %s\n", args[0])
		printUsage(deps.Stderr)
	}
}
