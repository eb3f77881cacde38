package preview

// paginationPayload is the wire shape of /api/pagination. Offsets are
// page-boundary y positions in unscaled content pixels, ready to draw;
// Pages and Warnings carry the packer's detail when the sections
// estimator ran.
type paginationPayload struct {
	State        string           `json:"state"`
	Mode         string           `json:"mode"`
	PageHeight   float64          `json:"pageHeight"`
	UsableHeight float64          `json:"usableHeight"`
	PageCount    int              `json:"pageCount"`
	RenderedAt   int64            `json:"renderedAt"`
	Offsets      []float64        `json:"offsets"`
	Pages        []pagePayload    `json:"pages,omitempty"`
	Warnings     []warningPayload `json:"warnings,omitempty"`
	Error        string           `json:"error,omitempty"`
}

type pagePayload struct {
	Blocks []int   `json:"blocks"`
	Fill   float64 `json:"fill"`
}

type warningPayload struct {
	Code    string `json:"code"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// payload snapshots the scheduler and the last render into one
// response. Before the first settle only state, geometry, and any
// render error are populated.
func (s *session) payload() paginationPayload {
	s.mu.Lock()
	info := s.info
	tokens := s.tokens
	renderErr := s.renderErr
	renderedAt := s.renderedAt
	s.mu.Unlock()

	p := paginationPayload{
		State:   s.scheduler.State().String(),
		Mode:    info.Estimator,
		Offsets: []float64{},
	}
	if !renderedAt.IsZero() {
		p.RenderedAt = renderedAt.UnixMilli()
	}
	if renderErr != nil {
		p.Error = renderErr.Error()
	}
	if tokens != nil {
		m := metricsFor(info, tokens)
		p.PageHeight = m.PageHeight
		p.UsableHeight = m.UsableHeight()
	}

	out := s.scheduler.Latest()
	if out == nil {
		return p
	}
	p.Offsets = append(p.Offsets, out.Breaks...)
	if len(out.Pages) > 0 {
		p.PageCount = len(out.Pages)
		for _, pg := range out.Pages {
			p.Pages = append(p.Pages, pagePayload{Blocks: pg.Blocks, Fill: pg.Fill})
		}
	} else {
		p.PageCount = len(out.Breaks) + 1
	}
	for _, w := range out.Warnings {
		p.Warnings = append(p.Warnings, warningPayload{Code: w.Code, Index: w.Index, Message: w.Message})
	}
	return p
}
