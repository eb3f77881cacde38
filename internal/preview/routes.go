package preview

import (
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const assetRoutePrefix = "/assets/"

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/api/pagination", s.handlePagination)
	r.Get(assetRoutePrefix+"*", s.handleAsset)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start),
		)
	})
}

// handlePage serves the rendered document with the polling client
// injected. The last good render stays up while the source is broken
// mid-edit; only a failed first render turns into an error response.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if err := s.session.refresh(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	page, err := s.session.previewHTML()
	if err != nil {
		http.Error(w, "render failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(injectClient(page))
}

// handlePagination reports scheduler state and the latest outcome. The
// client's zoom and marker parameters ride along; a change in either
// re-schedules a measurement.
func (s *Server) handlePagination(w http.ResponseWriter, r *http.Request) {
	if err := s.session.refresh(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	zoom, _ := strconv.ParseFloat(r.URL.Query().Get("zoom"), 64)
	markers := r.URL.Query().Get("markers") != "0"
	s.session.setViewport(zoom, markers)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(s.session.payload()); err != nil {
		s.logger.Error("encoding pagination payload", "err", err)
	}
}

// handleAsset serves files from the résumé's directory so relative
// photo paths resolve in the browser. Paths that would escape the
// directory 404.
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	rel, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || rel == "" {
		http.NotFound(w, r)
		return
	}
	rel = filepath.FromSlash(rel)
	if !filepath.IsLocal(rel) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.session.sourceDir, rel))
}

// injectClient splices the preview client before </body>; fragment
// output without a body gets it appended.
func injectClient(page []byte) []byte {
	script := "<script>" + previewScript + "</script>"
	html := string(page)
	if i := strings.LastIndex(html, "</body>"); i >= 0 {
		return []byte(html[:i] + script + "\n" + html[i:])
	}
	return append(page, []byte("\n"+script)...)
}
