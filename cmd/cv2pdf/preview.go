package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/hints"
	"github.com/alnah/go-cv2pdf/internal/preview"
)

// ErrListen indicates the preview server could not start.
var ErrListen = errors.New("failed to start preview server")

// runPreview serves a live-reloading preview of a single résumé file.
func runPreview(args []string, deps *Dependencies) error {
	flags, files, err := parsePreviewFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errBadFlags, err)
	}
	if len(files) == 0 {
		printPreviewUsage(deps.Stderr)
		return ErrNoInput
	}
	if len(files) > 1 {
		printPreviewUsage(deps.Stderr)
		return fmt.Errorf("%w: preview takes exactly one file", errBadFlags)
	}
	source := files[0]
	if ext := strings.ToLower(filepath.Ext(source)); ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, source)
	}

	cfg := preview.Config{
		SourcePath: source,
		Theme:      flags.theme,
		ThemeDir:   flags.themeDir,
		Addr:       flags.addr,
		Logger:     newLogger(deps.Stderr, flags.verbose),
	}
	if flags.measure {
		measurer := cv2pdf.NewBrowserMeasurer(0)
		defer func() { _ = measurer.Close() }()
		cfg.Measure = measurer.MeasureGeometry
	}

	srv, err := preview.NewServer(cfg)
	if err != nil {
		return decorate(err, flags.themeDir)
	}
	defer srv.Close()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	fmt.Fprintf(deps.Stdout, "Previewing %s at http://%s\n", source, srv.Addr())
	fmt.Fprintln(deps.Stdout, "Press Ctrl+C to stop")

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("%w: %v%s", ErrListen, err, hints.ForPreviewPort())
	}
	return nil
}
