package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/gridtile/pkg/buildinfo"
	"github.com/matzehuels/gridtile/pkg/errors"
	"github.com/matzehuels/gridtile/pkg/observability"
	"github.com/matzehuels/gridtile/pkg/pipeline"
	"github.com/matzehuels/gridtile/pkg/render/sink"
	"github.com/matzehuels/gridtile/pkg/scene"
)

const (
	// maxSceneBytes bounds request bodies.
	maxSceneBytes = 1 << 20

	// requestTimeout bounds a single tile or render request.
	requestTimeout = 30 * time.Second

	headerRequestID = "X-Request-ID"
)

// =============================================================================
// Server
// =============================================================================

// Server serves the tiling pipeline over HTTP. Every request builds its own
// grid; the runner only shares the cache.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server backed by runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	return &Server{runner: runner, logger: logger}
}

// Routes returns the HTTP handler with all routes and middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(serverHeader)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/tile", s.handleTile)
		r.Post("/render/{format}", s.handleRender)
	})
	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	sc, opts, err := s.decodeRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	layout, err := s.runner.Tile(r.Context(), sc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := sink.RenderJSON(layout)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeBytes(w, sink.ContentType(sink.FormatJSON), data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}

	sc, opts, err := s.decodeRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Run(r.Context(), sc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if rejected := result.Layout.Rejected; len(rejected) > 0 {
		ids := make([]string, len(rejected))
		for i, rj := range rejected {
			ids[i] = rj.ID
		}
		w.Header().Set("X-Rejected-Widgets", strings.Join(ids, ","))
	}
	writeBytes(w, sink.ContentType(format), result.Artifacts[format])
}

// decodeRequest reads the scene from the body and the pipeline options
// from the query string. TOML bodies are accepted when the content type
// says so; everything else is read as JSON.
func (s *Server) decodeRequest(r *http.Request) (*scene.Scene, pipeline.Options, error) {
	var opts pipeline.Options

	data, err := io.ReadAll(io.LimitReader(r.Body, maxSceneBytes+1))
	if err != nil {
		return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) > maxSceneBytes {
		return nil, opts, errors.New(errors.ErrCodeInvalidInput, "scene exceeds %d bytes", maxSceneBytes)
	}

	format := scene.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		format = scene.FormatTOML
	}
	sc, err := pipeline.Decode(data, format)
	if err != nil {
		return nil, opts, err
	}

	q := r.URL.Query()
	if opts.Width, err = queryInt(q.Get("width")); err != nil {
		return nil, opts, err
	}
	if opts.Height, err = queryInt(q.Get("height")); err != nil {
		return nil, opts, err
	}
	if v := q.Get("spacing"); v != "" {
		spacing, err := queryInt(v)
		if err != nil {
			return nil, opts, err
		}
		opts.Spacing = &spacing
	}
	opts.Style = q.Get("style")
	opts.Labels = queryBool(q.Get("labels"))
	opts.GridLines = queryBool(q.Get("grid_lines"))
	opts.Refresh = queryBool(q.Get("refresh"))
	opts.Logger = s.logger.With("request_id", requestIDFrom(r.Context()))

	return sc, opts, nil
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%q is not an integer", v)
	}
	return n, nil
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}

	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      errors.GetCode(err),
		RequestID: requestIDFrom(r.Context()),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// =============================================================================
// Middleware
// =============================================================================

type requestIDKey struct{}

// requestID tags every request with the caller's X-Request-ID or a fresh
// UUID and echoes it in the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(w, r)
	})
}

// observe reports requests and responses to the HTTP hooks. Both events
// fire after the handler so they carry the matched route.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := routePattern(r)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", requestIDFrom(r.Context()))
	})
}

// routePattern returns the matched chi route, or the raw path when no
// route matched.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
