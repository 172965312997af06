package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
	logpkg "github.com/kailas-cloud/hotelsearch/internal/logger"
	healthuc "github.com/kailas-cloud/hotelsearch/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/hotelsearch/internal/usecase/indexing"
	searchuc "github.com/kailas-cloud/hotelsearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Pagination bounds the page size clients may request.
type Pagination struct {
	DefaultSize int
	MaxSize     int
}

// Server exposes the hotel search and admin indexing endpoints.
type Server struct {
	search        *searchuc.Service
	indexing      *indexinguc.Service
	health        *healthuc.Service
	pagination    Pagination
	validate      *validator.Validate
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	indexing *indexinguc.Service,
	health *healthuc.Service,
	pagination Pagination,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:     search,
		indexing:   indexing,
		health:     health,
		pagination: pagination,
		validate:   newValidator(),
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrHotelNotFound, http.StatusNotFound, codeHotelNotFound),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrSearchFailed, http.StatusBadGateway, codeSearchFailed),
	}
	return s
}

// Register mounts all routes on r.
func (s *Server) Register(r chirouter.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})

	r.Post("/hotel/list", s.ListHotels)
	r.Post("/hotel/filters", s.HotelFilters)
	r.Get("/hotel/suggestion", s.Suggestion)

	r.Put("/admin/hotels/{id}/index", s.IndexHotel)
	r.Delete("/admin/hotels/{id}/index", s.UnindexHotel)
	r.Post("/admin/reindex", s.Reindex)

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// ListHotels handles POST /hotel/list.
func (s *Server) ListHotels(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearchRequest(w, r)
	if !ok {
		return
	}

	page, err := s.search.Search(r.Context(), req.toParams(s.pagination.DefaultSize))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, pageToResponse(page))
}

// HotelFilters handles POST /hotel/filters.
func (s *Server) HotelFilters(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearchRequest(w, r)
	if !ok {
		return
	}

	facets, err := s.search.Facets(r.Context(), req.toParams(s.pagination.DefaultSize))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, facetsToResponse(facets))
}

// Suggestion handles GET /hotel/suggestion?key=.
func (s *Server) Suggestion(w http.ResponseWriter, r *http.Request) {
	var key string
	if err := runtime.BindQueryParameter("form", true, false, "key", r.URL.Query(), &key); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid key parameter")
		return
	}

	out, err := s.search.Suggest(r.Context(), key)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, out)
}

// IndexHotel handles PUT /admin/hotels/{id}/index.
func (s *Server) IndexHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := hotelID(w, r)
	if !ok {
		return
	}

	if err := s.indexing.IndexByID(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnindexHotel handles DELETE /admin/hotels/{id}/index.
func (s *Server) UnindexHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := hotelID(w, r)
	if !ok {
		return
	}

	if err := s.indexing.DeleteByID(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reindex handles POST /admin/reindex.
func (s *Server) Reindex(w http.ResponseWriter, r *http.Request) {
	rep, err := s.indexing.Reindex(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, reportToResponse(rep))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	s.respond(w, r, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decodeSearchRequest reads and validates a search body. An empty body is
// an unfiltered first page.
func (s *Server) decodeSearchRequest(w http.ResponseWriter, r *http.Request) (searchRequest, bool) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return req, false
	}

	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, validationMessage(err))
		return req, false
	}
	if req.Size != nil && s.pagination.MaxSize > 0 && *req.Size > s.pagination.MaxSize {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("size must be at most %d", s.pagination.MaxSize))
		return req, false
	}
	return req, true
}

func hotelID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chirouter.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid hotel id")
		return 0, false
	}
	return id, true
}

// internalErrorBody is sent when a response value cannot be encoded.
var internalErrorBody = []byte(`{"code":"internal_error","message":"internal error"}` + "\n")

// writeJSON encodes v before committing the status, so an unencodable value
// becomes a 500 instead of a 200 with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(internalErrorBody)
		return fmt.Errorf("encode response: %w", err)
	}
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
	return nil
}

// respond writes v and logs encode failures with the request logger.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		logpkg.FromContextOr(r.Context(), s.logger).Error("Failed to write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	_ = writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrHotelNotFound,
		domain.ErrDocumentNotFound,
		domain.ErrSearchFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
