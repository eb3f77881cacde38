package cv2pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

// measureScript reads real layout geometry from the rendered document:
// the header height and every section block in document order. Break
// markers report zero height with the brk flag set so the caller can
// rebuild the packing sequence. %[1]s is the dotted class prefix for
// selectors, %[2]s the bare prefix for classList checks.
const measureScript = `() => {
	const blocks = [];
	for (const el of document.querySelectorAll('%[1]ssection, %[1]spage-break')) {
		if (el.classList.contains('%[2]spage-break')) {
			blocks.push({ h: 0, brk: true });
		} else {
			blocks.push({ h: el.getBoundingClientRect().height, brk: false });
		}
	}
	const header = document.querySelector('%[1]sheader');
	return {
		header: header ? header.getBoundingClientRect().height : 0,
		blocks: blocks,
	};
}`

// BrowserMeasurer measures rendered block geometry in headless Chrome
// for the pagination estimator: real layout heights where the text
// estimator only approximates. Construction is cheap; the browser
// launches lazily on first measurement.
type BrowserMeasurer struct {
	session browserSession
	timeout time.Duration
	prefix  string
}

// NewBrowserMeasurer creates a measurer with the given timeout.
// A non-positive timeout uses the default.
func NewBrowserMeasurer(timeout time.Duration) *BrowserMeasurer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &BrowserMeasurer{timeout: timeout, prefix: previewClassPrefix}
}

// MeasureGeometry loads the rendered document and reads the header
// height plus every section block's height, in document order. For each
// index, breaks[i] marks a forced break marker (always zero height).
// A document without sections yields empty slices and no error.
func (m *BrowserMeasurer) MeasureGeometry(ctx context.Context, htmlContent string) (header float64, heights []float64, breaks []bool, err error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return 0, nil, nil, err
	}
	defer cleanup()

	page, err := m.session.openFile(ctx, tmpPath, m.timeout)
	if err != nil {
		return 0, nil, nil, err
	}
	defer page.Close()

	obj, err := page.Eval(fmt.Sprintf(measureScript, "."+m.prefix, m.prefix))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: %v", ErrMeasure, err)
	}

	v := obj.Value
	header = v.Get("header").Num()
	for _, b := range v.Get("blocks").Arr() {
		heights = append(heights, b.Get("h").Num())
		breaks = append(breaks, b.Get("brk").Bool())
	}
	return header, heights, breaks, nil
}

// Close releases browser resources.
func (m *BrowserMeasurer) Close() error {
	return m.session.close()
}
