package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	flag "github.com/spf13/pflag"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/hints"
)

// Sentinel errors for render operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadSource         = errors.New("failed to read résumé file")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// renderJob is one source file with its resolved output base path; the
// format decides which extensions get written next to it.
type renderJob struct {
	InputPath  string
	OutputBase string
}

// renderParams groups settings shared across a batch.
type renderParams struct {
	format   string
	extraCSS string
}

// renderResult holds the outcome of a single render.
type renderResult struct {
	InputPath string
	Outputs   []string
	Err       error
	Duration  time.Duration
}

// runRender renders one or more résumé files to PDF and/or HTML,
// spreading multiple inputs across a renderer pool.
func runRender(args []string, deps *Dependencies) error {
	flags, files, err := parseRenderFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errBadFlags, err)
	}

	format := strings.ToLower(strings.TrimSpace(flags.format))
	switch format {
	case "pdf", "html", "both":
	default:
		return fmt.Errorf("%w: %q (want pdf, html, or both)", ErrInvalidFormat, flags.format)
	}
	if flags.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, flags.workers)
	}
	if len(files) == 0 {
		printRenderUsage(deps.Stderr)
		return ErrNoInput
	}
	for _, f := range files {
		if ext := strings.ToLower(filepath.Ext(f)); ext != ".md" && ext != ".markdown" {
			return fmt.Errorf("%w: %s", ErrInvalidExtension, f)
		}
	}

	opts, err := rendererOptions(flags)
	if err != nil {
		return err
	}
	params := &renderParams{format: format}
	if flags.css != "" {
		css, err := os.ReadFile(flags.css) // #nosec G304 -- user-supplied path
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		params.extraCSS = string(css)
	}

	jobs, err := resolveOutputs(files, flags.output)
	if err != nil {
		return err
	}

	pool := cv2pdf.NewRendererPool(cv2pdf.ResolvePoolSize(flags.workers), opts...)
	defer pool.Close()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	results := renderBatch(ctx, pool, jobs, params)
	failed := printResults(results, flags.quiet, flags.verbose, deps)
	if failed == 0 {
		return nil
	}
	return decorate(fmt.Errorf("%d render(s) failed: %w", failed, firstError(results)), flags.themeDir)
}

// rendererOptions translates flags into renderer options.
func rendererOptions(flags *renderFlags) ([]cv2pdf.Option, error) {
	var opts []cv2pdf.Option
	if flags.theme != "" {
		opts = append(opts, cv2pdf.WithTheme(flags.theme))
	}
	if flags.themeDir != "" {
		opts = append(opts, cv2pdf.WithThemeDir(flags.themeDir))
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: invalid timeout %q", errBadFlags, flags.timeout)
		}
		opts = append(opts, cv2pdf.WithTimeout(d))
	}
	return opts, nil
}

// resolveOutputs pairs every input with an output base path. A single
// input honors --output as a file path; multiple inputs treat it as a
// directory.
func resolveOutputs(files []string, output string) ([]renderJob, error) {
	jobs := make([]renderJob, len(files))

	if len(files) == 1 {
		base := trimSourceExt(files[0])
		if output != "" {
			if isDir(output) {
				base = filepath.Join(output, filepath.Base(base))
			} else {
				base = trimOutputExt(output)
			}
		}
		jobs[0] = renderJob{InputPath: files[0], OutputBase: base}
		return jobs, nil
	}

	dir := output
	if dir == "" {
		dir = "."
	}
	for i, f := range files {
		jobs[i] = renderJob{
			InputPath:  f,
			OutputBase: filepath.Join(dir, filepath.Base(trimSourceExt(f))),
		}
	}
	return jobs, nil
}

// trimSourceExt drops the markdown extension.
func trimSourceExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// trimOutputExt drops a .pdf or .html extension from an explicit
// --output value so the format decides what gets written.
func trimOutputExt(path string) string {
	for _, ext := range []string{".pdf", ".html"} {
		if strings.HasSuffix(strings.ToLower(path), ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// renderBatch processes jobs concurrently using the renderer pool.
func renderBatch(ctx context.Context, pool *cv2pdf.RendererPool, jobs []renderJob, params *renderParams) []renderResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	results := make([]renderResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := pool.Acquire()
			if err != nil {
				// Renderer creation failed (a broken theme, say): fail
				// this worker's share of the queue with the cause.
				for idx := range queue {
					results[idx] = renderResult{InputPath: jobs[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(r)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = renderResult{InputPath: jobs[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = renderFile(ctx, r, jobs[idx], params)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(ctx context.Context, r *cv2pdf.Renderer, job renderJob, params *renderParams) renderResult {
	start := time.Now()
	result := renderResult{InputPath: job.InputPath}

	content, err := os.ReadFile(job.InputPath) // #nosec G304 -- user-supplied path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadSource, err)
		result.Duration = time.Since(start)
		return result
	}

	if dir := filepath.Dir(job.OutputBase); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			result.Duration = time.Since(start)
			return result
		}
	}

	out, err := r.Render(ctx, cv2pdf.Input{
		Source:    string(content),
		SourceDir: filepath.Dir(job.InputPath),
		ExtraCSS:  params.extraCSS,
		HTMLOnly:  params.format == "html",
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if params.format != "pdf" {
		htmlPath := job.OutputBase + ".html"
		// #nosec G306 -- rendered output is meant to be readable
		if err := os.WriteFile(htmlPath, out.HTML, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			result.Duration = time.Since(start)
			return result
		}
		result.Outputs = append(result.Outputs, htmlPath)
	}
	if params.format != "html" {
		pdfPath := job.OutputBase + ".pdf"
		// #nosec G306 -- rendered output is meant to be readable
		if err := os.WriteFile(pdfPath, out.PDF, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			result.Duration = time.Since(start)
			return result
		}
		result.Outputs = append(result.Outputs, pdfPath)
	}

	result.Duration = time.Since(start)
	return result
}

// printResults reports per-file outcomes and returns the failure count.
func printResults(results []renderResult, quiet, verbose bool, deps *Dependencies) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(deps.Stdout, "%s -> %s (%v)\n", r.InputPath,
				strings.Join(r.Outputs, ", "), r.Duration.Round(time.Millisecond))
		} else {
			for _, out := range r.Outputs {
				fmt.Fprintf(deps.Stdout, "Created %s\n", out)
			}
		}
	}
	if !quiet && len(results) > 1 {
		fmt.Fprintf(deps.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return failed
}

// firstError returns the first failure in order, for exit-code mapping.
func firstError(results []renderResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// decorate appends an actionable hint to errors that have one.
func decorate(err error, themeDir string) error {
	if err == nil {
		return nil
	}
	var hint string
	switch {
	case errors.Is(err, cv2pdf.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, ErrWriteOutput):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, cv2pdf.ErrThemeNotFound):
		if names, lerr := cv2pdf.ListThemes(themeDir); lerr == nil {
			hint = hints.ForThemeNotFound(names)
		}
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
