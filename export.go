package cv2pdf

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/paginate"
	"github.com/alnah/go-cv2pdf/internal/process"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

// pdfExporter abstracts HTML to PDF export to enable testing without a browser.
type pdfExporter interface {
	ExportPDF(ctx context.Context, htmlContent string, opts *printOptions) ([]byte, error)
	Close() error
}

// Compile-time interface check
var _ pdfExporter = (*rodExporter)(nil)

// printOptions carries the theme's print geometry in browser units.
type printOptions struct {
	pageSize    string // "a4", "letter", "legal"
	orientation string // "portrait", "landscape"

	marginTop    float64 // inches
	marginRight  float64
	marginBottom float64
	marginLeft   float64

	pageNumbers bool
	footerText  string
}

// printOptions derives Chrome print settings from the compiled theme.
func (r *Renderer) printOptions() *printOptions {
	info := r.Theme()
	return &printOptions{
		pageSize:     info.PageSize,
		orientation:  info.Orientation,
		marginTop:    cssLengthInches(r.tokens.Get(theme.TokenPageMarginTop)),
		marginRight:  cssLengthInches(r.tokens.Get(theme.TokenPageMarginRight)),
		marginBottom: cssLengthInches(r.tokens.Get(theme.TokenPageMarginBottom)),
		marginLeft:   cssLengthInches(r.tokens.Get(theme.TokenPageMarginLeft)),
		pageNumbers:  info.PageNumbers,
		footerText:   info.FooterText,
	}
}

// paperSizeMM maps supported page sizes to width×height in millimeters
// (portrait orientation).
var paperSizeMM = map[string][2]float64{
	"a4":     {210, 297},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

const (
	mmPerInch       = 25.4
	browserEmBasePx = 16.0

	// minFooterMarginInches is the bottom margin floor when Chrome's
	// native footer is shown; anything tighter clips the footer text.
	minFooterMarginInches = 0.6
)

// browserSession manages one lazily-launched headless Chrome instance.
// Rod automatically downloads Chromium on first run if not found.
type browserSession struct {
	browser *rod.Browser
	pid     int
}

// ensure lazily launches and connects to the browser.
func (s *browserSession) ensure() error {
	if s.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") != "" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	s.browser = rod.New().ControlURL(u)
	if err := s.browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		s.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	s.pid = l.PID()
	return nil
}

// close releases browser resources, then sweeps the Chrome process
// group so helper processes do not outlive the session.
func (s *browserSession) close() error {
	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.browser = nil
	if s.pid != 0 {
		process.KillProcessGroup(s.pid)
		s.pid = 0
	}
	return err
}

// openFile loads a local HTML file into a new page and waits for it.
// The effective timeout shrinks to the context deadline when that is
// sooner. The caller owns the returned page.
func (s *browserSession) openFile(ctx context.Context, filePath string, timeout time.Duration) (*rod.Page, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.ensure(); err != nil {
		return nil, err
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			page.Close()
			return nil, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		page.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return page, nil
}

// rodExporter prints HTML to PDF using headless Chrome via go-rod.
type rodExporter struct {
	session browserSession
	timeout time.Duration
}

// newRodExporter creates a rodExporter with the given timeout.
func newRodExporter(timeout time.Duration) *rodExporter {
	return &rodExporter{timeout: timeout}
}

// ExportPDF prints HTML content to PDF bytes using headless Chrome.
// Page dimensions and margins come from the theme via printOptions.
func (e *rodExporter) ExportPDF(ctx context.Context, htmlContent string, opts *printOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	page, err := e.session.openFile(ctx, tmpPath, e.timeout)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFExport, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFExport, err)
	}

	return pdfBuf, nil
}

// Close releases browser resources.
func (e *rodExporter) Close() error {
	return e.session.close()
}

// buildPrintOptions constructs proto.PagePrintToPDF with optional footer.
func buildPrintOptions(opts *printOptions) *proto.PagePrintToPDF {
	width, height := paperSizeInches(opts.pageSize, opts.orientation)

	marginBottom := opts.marginBottom
	hasFooter := opts.pageNumbers || opts.footerText != ""
	if hasFooter && marginBottom < minFooterMarginInches {
		marginBottom = minFooterMarginInches
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(opts.marginTop),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(opts.marginLeft),
		MarginRight:     floatPtr(opts.marginRight),
		PrintBackground: true,
	}

	if hasFooter {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>" // Empty header
		pdfOpts.FooterTemplate = buildFooterTemplate(opts.pageNumbers, opts.footerText)
	}

	return pdfOpts
}

// paperSizeInches resolves a page size name and orientation into paper
// dimensions in inches. Unknown sizes fall back to A4.
func paperSizeInches(size, orientation string) (width, height float64) {
	dims, ok := paperSizeMM[size]
	if !ok {
		dims = paperSizeMM["a4"]
	}
	width, height = dims[0]/mmPerInch, dims[1]/mmPerInch
	if orientation == "landscape" {
		width, height = height, width
	}
	return width, height
}

// footerFontFamily keeps Chrome's native footer legible without
// depending on the theme's stacks; footer templates render outside the
// page CSS.
const footerFontFamily = "Helvetica, Arial, sans-serif"

// buildFooterTemplate generates an HTML template for Chrome's native footer.
// Page numbers use the pageNumber/totalPages CSS classes Chrome fills in.
func buildFooterTemplate(pageNumbers bool, text string) string {
	var parts []string

	if text != "" {
		parts = append(parts, html.EscapeString(text))
	}
	if pageNumbers {
		parts = append(parts, `<span class="pageNumber"></span> / <span class="totalPages"></span>`)
	}

	if len(parts) == 0 {
		return "<span></span>"
	}

	content := strings.Join(parts, " · ")
	return fmt.Sprintf(`<div style="font-size: 9px; font-family: %s; color: #9ca3af; width: 100%%; text-align: center;">%s</div>`, footerFontFamily, content)
}

// cssLengthInches converts a compiled CSS length token to inches for
// Chrome's print margins. Unparsable values count as zero.
func cssLengthInches(v string) float64 {
	return paginate.LengthPx(v, browserEmBasePx) / 96.0
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
