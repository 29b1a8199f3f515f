//go:build !libretro

package standalone

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	"github.com/rs/zerolog"

	"github.com/bji/libretromame/logging"
)

// NewDebugRouter serves host diagnostics:
//
//	GET /debug/session  latest HostStats as JSON
//	GET /debug/vars     expvar counters
func NewDebugRouter(board *StatsBoard) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(debugLogMiddleware())

	r.Get("/debug/session", sessionHandler(board))
	r.Get("/debug/vars", expvar.Handler().ServeHTTP)
	return r
}

func debugLogMiddleware() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(logging.Writer(), &slog.HandlerOptions{})),
		&httplog.Options{
			Level:              slog.LevelDebug,
			Schema:             httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogRequestBody:     func(*http.Request) bool { return false },
			LogResponseBody:    func(*http.Request) bool { return false },
			LogRequestHeaders:  []string{},
			LogResponseHeaders: []string{},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("path", req.URL.Path),
				}
			},
		},
	)
}

func sessionHandler(board *StatsBoard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(board.Get())
	}
}

// DebugServer is the optional diagnostics HTTP listener.
type DebugServer struct {
	srv  *http.Server
	log  zerolog.Logger
	done chan struct{}
}

// StartDebugServer listens on addr in the background.
func StartDebugServer(addr string, handler http.Handler, log zerolog.Logger) *DebugServer {
	ds := &DebugServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log:  log,
		done: make(chan struct{}),
	}
	go func() {
		defer close(ds.done)
		log.Info().Str("addr", addr).Msg("debug server listening")
		if err := ds.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("debug server stopped")
		}
	}()
	return ds
}

// Close shuts the server down, waiting briefly for open requests.
func (ds *DebugServer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := ds.srv.Shutdown(ctx); err != nil {
		ds.log.Warn().Err(err).Msg("debug server shutdown")
	}
	<-ds.done
}
