package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/notify-agent/notify-agent-mcp/internal/build"
	notifyerrors "github.com/notify-agent/notify-agent-mcp/internal/errors"
	"github.com/notify-agent/notify-agent-mcp/internal/notify"
)

// Router returns the HTTP routes:
//
//	/mcp          streamable HTTP MCP endpoint
//	POST /notify  REST dispatch
//	GET /healthz  liveness and backend availability
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(httprate.LimitByIP(s.rateLimit, time.Minute))

	r.Get("/healthz", s.handleHealth)
	r.Post("/notify", s.handleNotifyREST)
	r.Handle("/mcp", mcpserver.NewStreamableHTTPServer(s.mcp))

	return r
}

// ListenAndServe listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.log.Info().Str("transport", "http").Str("addr", addr).Msg("MCP notification server running")

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

type notifyResponse struct {
	Success bool           `json:"success"`
	Result  *notify.Result `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type healthResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	Active           bool   `json:"active"`
	Policy           string `json:"policy"`
	BackendAvailable bool   `json:"backendAvailable"`
}

func (s *Server) handleNotifyREST(w http.ResponseWriter, r *http.Request) {
	cfg := s.dispatcher.Config()
	if !cfg.Active() {
		writeJSON(w, http.StatusNotFound, notifyResponse{Error: notifyerrors.NotificationsDisabled().Message})
		return
	}

	var event notify.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeJSON(w, http.StatusBadRequest, notifyResponse{Error: notifyerrors.InvalidArguments(err).Message})
		return
	}

	res, err := s.dispatcher.Dispatch(r.Context(), event)
	if err != nil {
		status := statusFor(err)
		msg := err.Error()
		if status >= http.StatusInternalServerError {
			msg = "Failed to send notification: " + s.reportFailure(r.Context(), err)
		}
		writeJSON(w, status, notifyResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, notifyResponse{Success: true, Result: &res})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	cfg := s.dispatcher.Config()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:           "ok",
		Version:          build.Version,
		Active:           cfg.Active(),
		Policy:           s.dispatcher.Policy().Name(),
		BackendAvailable: s.dispatcher.SenderAvailable(),
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

func statusFor(err error) int {
	switch notifyerrors.CategoryOf(err) {
	case notifyerrors.InvalidParams, notifyerrors.Argument:
		return http.StatusBadRequest
	case notifyerrors.Disabled:
		return http.StatusNotFound
	case notifyerrors.PlatformUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
