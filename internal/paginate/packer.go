package paginate

import "fmt"

// Packing thresholds. Warnings are advisory; the packer always
// produces a valid result.
const (
	// UnderfullThreshold flags pages closed below this fill fraction.
	UnderfullThreshold = 0.20
	// HeaderShareThreshold flags headers eating more than this share of
	// the first page.
	HeaderShareThreshold = 0.40

	// packEpsilon absorbs sub-pixel measurement noise so an
	// exactly-full page still counts as fitting.
	packEpsilon = 0.01
)

// Block is one atomic unit of vertical content: a rendered section, or
// a forced break marker with zero height. Blocks never split across
// pages.
type Block struct {
	Height     float64
	ForceBreak bool
}

// Page is one packed page: indexes into the input blocks plus the
// content height placed on it.
type Page struct {
	Blocks []int
	Fill   float64
}

// Warning codes attached to advisory packing diagnostics.
const (
	WarnPageUnderfull = "page-underfull"
	WarnBlockTall     = "block-taller-than-page"
	WarnHeaderTall    = "header-tall"
)

// Warning is an advisory diagnostic. Index is a block index for
// block-scoped codes and a page number (1-based) for page-scoped ones.
type Warning struct {
	Code    string
	Index   int
	Message string
}

// Result is the packed layout.
type Result struct {
	Pages    []Page
	Warnings []Warning
}

// PageCount is a convenience for the preview's page indicator.
func (r *Result) PageCount() int {
	return len(r.Pages)
}

// Pack distributes blocks onto pages greedily. The first page starts
// pre-filled with the header height; every block is atomic. A page
// closes when the next block would overflow it and it already holds at
// least one block, or when a forced break marker arrives on a non-empty
// page. Break markers occupy no space themselves.
func Pack(headerHeight float64, blocks []Block, usableHeight float64) *Result {
	res := &Result{}
	if usableHeight <= 0 {
		// Degenerate geometry: everything lands on one page.
		page := Page{}
		for i, b := range blocks {
			if !b.ForceBreak {
				page.Blocks = append(page.Blocks, i)
				page.Fill += b.Height
			}
		}
		res.Pages = []Page{page}
		return res
	}

	if headerHeight > HeaderShareThreshold*usableHeight {
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnHeaderTall,
			Index:   1,
			Message: fmt.Sprintf("header occupies %.0f%% of the first page", 100*headerHeight/usableHeight),
		})
	}

	cur := Page{Fill: headerHeight}
	count := 0 // blocks on the current page

	closePage := func() {
		if cur.Fill < UnderfullThreshold*usableHeight {
			res.Warnings = append(res.Warnings, Warning{
				Code:    WarnPageUnderfull,
				Index:   len(res.Pages) + 1,
				Message: fmt.Sprintf("page %d closed at %.0f%% capacity", len(res.Pages)+1, 100*cur.Fill/usableHeight),
			})
		}
		res.Pages = append(res.Pages, cur)
		cur = Page{}
		count = 0
	}

	for i, b := range blocks {
		if b.ForceBreak {
			if count > 0 || cur.Fill > 0 {
				closePage()
			}
			continue
		}
		if b.Height > usableHeight {
			res.Warnings = append(res.Warnings, Warning{
				Code:    WarnBlockTall,
				Index:   i,
				Message: fmt.Sprintf("section %d is taller than one page", i),
			})
		}
		if cur.Fill+b.Height > usableHeight+packEpsilon && count > 0 {
			closePage()
		}
		cur.Blocks = append(cur.Blocks, i)
		cur.Fill += b.Height
		count++
	}
	// A trailing break marker must not leave an empty ghost page, but a
	// document with no blocks still renders one page.
	if count > 0 || cur.Fill > 0 || len(res.Pages) == 0 {
		res.Pages = append(res.Pages, cur)
	}
	return res
}
