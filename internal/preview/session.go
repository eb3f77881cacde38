package preview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/document"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/paginate"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

var errNothingRendered = errors.New("nothing rendered yet")

// session owns the mutable preview state: the last good render, its
// parsed document, and the pagination scheduler. Handlers call refresh
// before reading; the scheduler calls measure from its own goroutine,
// so every field lives behind mu.
type session struct {
	logger    *log.Logger
	measureFn MeasureGeometry
	scheduler *paginate.Scheduler

	sourcePath string
	sourceDir  string
	themePath  string // non-empty when the theme input is a watched file
	opts       []cv2pdf.Option

	mu          sync.Mutex
	renderer    *cv2pdf.Renderer
	html        []byte
	doc         *document.Document
	tokens      map[string]string
	info        cv2pdf.ThemeInfo
	renderErr   error
	renderedAt  time.Time
	sourceMtime time.Time
	themeMtime  time.Time
	zoom        float64
	markers     bool
}

// newSession builds the renderer, performs the first render, and
// schedules the first measurement. A missing source file or a broken
// theme fails construction; a source that fails to parse does not, so
// the preview can start mid-edit.
func newSession(cfg Config, logger *log.Logger, schedOpts ...paginate.SchedulerOption) (*session, error) {
	sourcePath, err := filepath.Abs(cfg.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("resolving source path: %w", err)
	}

	opts := []cv2pdf.Option{cv2pdf.WithAssetResolver(routeResolver{})}
	if cfg.Theme != "" {
		opts = append(opts, cv2pdf.WithTheme(cfg.Theme))
	}
	if cfg.ThemeDir != "" {
		opts = append(opts, cv2pdf.WithThemeDir(cfg.ThemeDir))
	}

	renderer, err := cv2pdf.NewRenderer(opts...)
	if err != nil {
		return nil, err
	}

	s := &session{
		logger:     logger,
		measureFn:  cfg.Measure,
		sourcePath: sourcePath,
		sourceDir:  filepath.Dir(sourcePath),
		opts:       opts,
		renderer:   renderer,
		zoom:       1,
		markers:    true,
	}
	if fileutil.IsFilePath(cfg.Theme) {
		if st, err := os.Stat(cfg.Theme); err == nil && !st.IsDir() {
			s.themePath = cfg.Theme
		}
	}
	schedOpts = append([]paginate.SchedulerOption{
		paginate.WithOnSettled(func(out *paginate.Outcome) {
			s.logger.Debug("pagination settled",
				"breaks", len(out.Breaks), "warnings", len(out.Warnings))
		}),
	}, schedOpts...)
	s.scheduler = paginate.NewScheduler(s.measure, schedOpts...)

	if err := s.refresh(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// refresh re-reads and re-renders when the source or theme file changed
// on disk. Read failures are returned; render failures are recorded and
// served through the pagination payload while the last good render
// stays up.
func (s *session) refresh() error {
	srcStat, err := os.Stat(s.sourcePath)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	var themeStat os.FileInfo
	if s.themePath != "" {
		themeStat, _ = os.Stat(s.themePath)
	}

	s.mu.Lock()
	if s.renderer == nil {
		s.mu.Unlock()
		return errors.New("preview session closed")
	}
	srcChanged := !srcStat.ModTime().Equal(s.sourceMtime)
	themeChanged := themeStat != nil && !themeStat.ModTime().Equal(s.themeMtime)
	first := s.html == nil && s.renderErr == nil
	s.mu.Unlock()
	if !first && !srcChanged && !themeChanged {
		return nil
	}

	raw, err := os.ReadFile(s.sourcePath)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	if themeChanged {
		s.reloadTheme()
	}

	s.mu.Lock()
	renderer := s.renderer
	s.mu.Unlock()

	res, renderErr := renderer.Render(context.Background(), cv2pdf.Input{
		Source:   string(raw),
		HTMLOnly: true,
	})
	var doc *document.Document
	if renderErr == nil {
		doc, renderErr = document.Parse(raw)
	}

	s.mu.Lock()
	s.sourceMtime = srcStat.ModTime()
	if themeStat != nil {
		s.themeMtime = themeStat.ModTime()
	}
	s.renderErr = renderErr
	if renderErr == nil {
		s.html = res.HTML
		s.doc = doc
		s.tokens = renderer.Tokens()
		s.info = renderer.Theme()
		s.renderedAt = time.Now()
	}
	s.mu.Unlock()

	if renderErr != nil {
		s.logger.Warn("render failed", "source", s.sourcePath, "err", renderErr)
	} else {
		s.logger.Debug("rendered", "source", s.sourcePath, "bytes", len(res.HTML))
	}
	s.scheduler.Schedule()
	return nil
}

// reloadTheme rebuilds the renderer after the theme file changed. A
// theme broken mid-edit keeps the previous renderer running.
func (s *session) reloadTheme() {
	renderer, err := cv2pdf.NewRenderer(s.opts...)
	if err != nil {
		s.logger.Warn("theme reload failed", "theme", s.themePath, "err", err)
		return
	}
	s.mu.Lock()
	old := s.renderer
	s.renderer = renderer
	s.mu.Unlock()
	if old != nil {
		old.Close()
	}
	s.logger.Info("theme reloaded", "theme", s.themePath)
}

// previewHTML returns the last good render. Before the first success it
// surfaces the render error instead.
func (s *session) previewHTML() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.html == nil {
		if s.renderErr != nil {
			return nil, s.renderErr
		}
		return nil, errNothingRendered
	}
	return s.html, nil
}

// setViewport records the client's zoom and marker visibility. Changes
// re-schedule a measurement; offsets themselves stay in unscaled
// content pixels, the client applies the zoom.
func (s *session) setViewport(zoom float64, markers bool) {
	if zoom <= 0 {
		zoom = 1
	}
	s.mu.Lock()
	changed := zoom != s.zoom || markers != s.markers
	s.zoom = zoom
	s.markers = markers
	s.mu.Unlock()
	if changed {
		s.scheduler.Schedule()
	}
}

// measure computes one pagination outcome for the scheduler: heights
// from the browser when a measurer is plugged in, from the text
// estimator otherwise, packed according to the theme's estimator mode.
func (s *session) measure(ctx context.Context) (*paginate.Outcome, error) {
	s.mu.Lock()
	doc := s.doc
	tokens := s.tokens
	info := s.info
	htmlContent := string(s.html)
	s.mu.Unlock()
	if doc == nil {
		return nil, errNothingRendered
	}

	usable := metricsFor(info, tokens).UsableHeight()
	header, blocks, err := s.geometry(ctx, doc, tokens, info, htmlContent)
	if err != nil {
		return nil, err
	}

	out := &paginate.Outcome{}
	if info.Estimator == "simple" {
		total := header
		for _, b := range blocks {
			total += b.Height
		}
		out.Breaks = paginate.SimpleBreaks(total, usable)
		return out, nil
	}

	res := paginate.Pack(header, blocks, usable)
	out.Pages = res.Pages
	out.Warnings = res.Warnings
	out.Breaks = boundaryOffsets(res.Pages)
	return out, nil
}

// geometry produces the header height and one Block per section, in
// document order.
func (s *session) geometry(ctx context.Context, doc *document.Document, tokens map[string]string, info cv2pdf.ThemeInfo, htmlContent string) (float64, []paginate.Block, error) {
	if s.measureFn != nil {
		header, heights, breaks, err := s.measureFn(ctx, htmlContent)
		if err != nil {
			return 0, nil, fmt.Errorf("measuring geometry: %w", err)
		}
		blocks := make([]paginate.Block, len(heights))
		for i := range heights {
			blocks[i] = paginate.Block{
				Height:     heights[i],
				ForceBreak: i < len(breaks) && breaks[i],
			}
		}
		return header, blocks, nil
	}

	est := estimatorFor(tokens, info)
	header := est.HeaderHeight(doc.Frontmatter)
	blocks := make([]paginate.Block, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		if sec.IsBreakOnly() {
			blocks = append(blocks, paginate.Block{ForceBreak: true})
			continue
		}
		blocks = append(blocks, paginate.Block{Height: est.SectionHeight(sec)})
	}
	return header, blocks, nil
}

// Close stops the scheduler and releases the renderer.
func (s *session) Close() error {
	s.scheduler.Close()
	s.mu.Lock()
	renderer := s.renderer
	s.renderer = nil
	s.mu.Unlock()
	if renderer != nil {
		return renderer.Close()
	}
	return nil
}

// ---

// metricsFor derives page geometry from the theme's page size and the
// compiled margin tokens.
func metricsFor(info cv2pdf.ThemeInfo, tokens map[string]string) paginate.PageMetrics {
	return paginate.NewPageMetrics(info.PageSize, info.Orientation,
		tokens[theme.TokenPageMarginTop], tokens[theme.TokenPageMarginBottom])
}

// estimatorFor builds a text estimator from the compiled tokens: the
// body column width, body font size, and line height. Two-column
// layouts estimate against the main column. Missing or calc-valued
// tokens fall back to the estimator's defaults.
func estimatorFor(tokens map[string]string, info cv2pdf.ThemeInfo) *paginate.TextEstimator {
	body := paginate.LengthPx(tokens[theme.TokenFontSizeBody], 16)
	width := paginate.LengthPx(tokens[theme.TokenPageWidth], body) -
		paginate.LengthPx(tokens[theme.TokenPageMarginLeft], body) -
		paginate.LengthPx(tokens[theme.TokenPageMarginRight], body)
	if info.Mode == "two-column" {
		if main := paginate.LengthPx(tokens[theme.TokenMainWidth], body); main > 0 {
			width = main
		}
	}
	lineHeight, _ := strconv.ParseFloat(tokens[theme.TokenLineHeight], 64)
	return paginate.NewTextEstimator(width, body, lineHeight)
}

// boundaryOffsets converts packed pages to drawable break offsets in
// content pixels: each page's fill accumulates into the y position of
// the boundary after it. The last page has no boundary.
func boundaryOffsets(pages []paginate.Page) []float64 {
	if len(pages) < 2 {
		return nil
	}
	offsets := make([]float64, 0, len(pages)-1)
	var y float64
	for _, p := range pages[:len(pages)-1] {
		y += p.Fill
		offsets = append(offsets, y)
	}
	return offsets
}
