// Package pprofserver serves the net/http/pprof handlers on a loopback-only
// listener, kept off the game server's mux so profiling is never reachable
// from the outside.
package pprofserver

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
)

// Handle registers the pprof handlers on the given mux.
func Handle(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
}

// Launch starts a pprof server on the IPv6 loopback address at the given
// port, e.g. ":6060". An empty port disables the server. Listen failures are
// logged and otherwise ignored since profiling is best-effort.
func Launch(port string, logger *slog.Logger) {
	if port == "" {
		return
	}

	mux := http.NewServeMux()
	Handle(mux)
	srv := &http.Server{
		Addr:              "[::1]" + port,
		Handler:           mux,
		ReadHeaderTimeout: time.Second,
	}

	go func() {
		logger.Info("starting pprof server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil {
			logger.LogAttrs(context.Background(), slog.LevelWarn, "pprof server stopped", errors.SlogError(err))
		}
	}()
}
