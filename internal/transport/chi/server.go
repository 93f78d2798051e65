package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/aristotle/internal/domain/search/mode"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/aristotle/internal/logger"
	healthuc "github.com/kailas-cloud/aristotle/internal/usecase/health"
	searchuc "github.com/kailas-cloud/aristotle/internal/usecase/search"
)

// Options tunes request defaults.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	// RootPID is browsed when /browse is called without a pid.
	RootPID string
}

// Server serves the catalog search API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	opts          Options
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	opts Options,
	logger *zap.Logger,
) *Server {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = request.DefaultSize
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = request.MaxSize
	}
	return &Server{
		search:        search,
		health:        health,
		opts:          opts,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/search", s.Search)
	r.Post("/advanced-search", s.AdvancedSearch)
	r.Get("/browse", s.Browse)
	r.Get("/detail/{pid}", s.Detail)
	r.Get("/pid/{esid}", s.PID)
	r.Get("/title/{pid}", s.Title)
	r.Get("/facets", s.Facets)
	r.Get("/genres", s.Genres)
	r.Get("/topics", s.Topics)
	r.Get("/about", s.About)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
}

// Search handles GET /search?q&mode&facet&val&parent&offset&size.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var p struct{ q, mode, facet, val, parent string }
	for name, dst := range map[string]*string{
		"q": &p.q, "mode": &p.mode, "facet": &p.facet, "val": &p.val, "parent": &p.parent,
	} {
		v, err := queryString(r, name)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		*dst = v
	}
	page, err := s.queryPage(r, "offset")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	m, err := mode.Parse(p.mode)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	ctx := logpkg.With(r.Context(), zap.String("mode", string(m)), zap.String("parent", p.parent))

	if p.parent != "" && m != mode.Facet {
		if p.mode == "" {
			m = ""
		}
		req, err := request.NewSpecific(p.q, m, p.parent, page)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		res, err := s.search.SpecificSearch(ctx, req)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	req, err := request.NewSimple(p.q, m, p.facet, p.val, page)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	res, err := s.search.SimpleSearch(ctx, req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AdvancedSearch handles POST /advanced-search.
func (s *Server) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var body AdvancedSearchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	page, err := s.page(body.Offset, body.Size)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	req, err := advancedFromBody(&body, page)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx := logpkg.With(r.Context(),
		zap.String("collection", string(req.Collection())),
		zap.Int("clauses", len(body.Clauses)),
	)
	res, err := s.search.AdvancedSearch(ctx, req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Browse handles GET /browse?pid&from&size.
func (s *Server) Browse(w http.ResponseWriter, r *http.Request) {
	pid, err := queryString(r, "pid")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if pid == "" {
		pid = s.opts.RootPID
	}
	page, err := s.queryPage(r, "from")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	req, err := request.NewBrowse(pid, page)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	res, err := s.search.Browse(logpkg.With(r.Context(), zap.String("pid", pid)), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Detail handles GET /detail/{pid}.
func (s *Server) Detail(w http.ResponseWriter, r *http.Request) {
	res, err := s.search.GetDetail(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PID handles GET /pid/{esid}.
func (s *Server) PID(w http.ResponseWriter, r *http.Request) {
	pid, err := s.search.GetPID(r.Context(), chi.URLParam(r, "esid"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PIDResponse{PID: pid})
}

// Title handles GET /title/{pid}.
func (s *Server) Title(w http.ResponseWriter, r *http.Request) {
	title, err := s.search.GetTitle(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TitleResponse{Title: title})
}

// Facets handles GET /facets?pid.
func (s *Server) Facets(w http.ResponseWriter, r *http.Request) {
	scope, err := queryString(r, "pid")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	aggs, err := s.search.Facets(r.Context(), scope)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, aggs)
}

// Genres handles GET /genres.
func (s *Server) Genres(w http.ResponseWriter, r *http.Request) {
	choices, err := s.search.GenreChoices(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, choices)
}

// Topics handles GET /topics.
func (s *Server) Topics(w http.ResponseWriter, r *http.Request) {
	choices, err := s.search.TopicChoices(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, choices)
}

// About handles GET /about.
func (s *Server) About(w http.ResponseWriter, r *http.Request) {
	about, err := s.search.About(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, about)
}

// HealthCheck handles GET /health. Only an unreachable backend fails the check.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
