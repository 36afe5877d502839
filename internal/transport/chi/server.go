package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/fedsearch/internal/logger"
	healthuc "github.com/kailas-cloud/fedsearch/internal/usecase/health"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeInternalError    = "internal_error"
)

// filterParamPrefix marks query parameters that are metadata equality filters.
const filterParamPrefix = "filter."

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the federated search HTTP API.
type Server struct {
	search           SearchService
	health           HealthService
	defaultThreshold float64
	logger           *zap.Logger
	errorHandlers    []errorHandler
}

// NewServer creates an HTTP API server. defaultThreshold applies when a request omits one.
func NewServer(search SearchService, health HealthService, defaultThreshold float64, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:           search,
		health:           health,
		defaultThreshold: defaultThreshold,
		logger:           logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnrecognizedOption, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// SearchGet handles GET /search.
func (s *Server) SearchGet(w http.ResponseWriter, r *http.Request) {
	params, err := s.paramsFromQuery(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.runSearch(w, r, params)
}

// SearchPost handles POST /search.
func (s *Server) SearchPost(w http.ResponseWriter, r *http.Request) {
	var body searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.runSearch(w, r, s.paramsFromBody(body))
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, params request.Params) {
	req, err := request.New(params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, responseToDTO(resp))
}

// Suggest handles GET /suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	suggestions, err := s.search.Suggest(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}

// Trending handles GET /trending.
func (s *Server) Trending(w http.ResponseWriter, _ *http.Request) {
	trending := s.search.Trending()
	if trending == nil {
		trending = []string{}
	}
	writeJSON(w, http.StatusOK, trendingResponse{Trending: trending})
}

// Types handles GET /types.
func (s *Server) Types(w http.ResponseWriter, _ *http.Request) {
	types := s.search.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	writeJSON(w, http.StatusOK, typesResponse{Types: names})
}

// HealthCheck handles GET /health.
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

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) paramsFromQuery(r *http.Request) (request.Params, error) {
	q := r.URL.Query()

	limit, err := intParam(r, "limit")
	if err != nil {
		return request.Params{}, err
	}
	offset, err := intParam(r, "offset")
	if err != nil {
		return request.Params{}, err
	}

	threshold := s.defaultThreshold
	raw := q.Get("fuzzyThreshold")
	if raw == "" {
		raw = q.Get("threshold")
	}
	if raw != "" {
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return request.Params{}, fmt.Errorf("%w: fuzzyThreshold %q is not a number", domain.ErrInvalidRequest, raw)
		}
	}

	var filters map[string]string
	for key, values := range q {
		name, ok := strings.CutPrefix(key, filterParamPrefix)
		if !ok || len(values) == 0 {
			continue
		}
		if filters == nil {
			filters = make(map[string]string)
		}
		filters[name] = values[0]
	}

	sort := q.Get("sort")
	if sort == "" {
		sort = q.Get("sortBy")
	}

	return request.Params{
		Query:     q.Get("q"),
		Types:     splitList(q["type"]),
		Filters:   filters,
		Limit:     limit,
		Offset:    offset,
		SortBy:    sort,
		Threshold: &threshold,
	}, nil
}

func (s *Server) paramsFromBody(body searchRequestBody) request.Params {
	threshold := s.defaultThreshold
	if body.FuzzyThreshold != nil {
		threshold = *body.FuzzyThreshold
	}
	return request.Params{
		Query:     body.Query,
		Types:     splitList(body.Types),
		Filters:   body.Filters,
		Limit:     body.Limit,
		Offset:    body.Offset,
		SortBy:    body.SortBy,
		Threshold: &threshold,
	}
}

// splitList flattens repeated and comma-separated values, dropping blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// intParam parses an optional integer query parameter. Missing means 0.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", domain.ErrInvalidRequest, name, raw)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message for validation errors and hides everything else.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrUnrecognizedOption) || errors.Is(err, domain.ErrInvalidRequest) {
		return err.Error()
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
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
