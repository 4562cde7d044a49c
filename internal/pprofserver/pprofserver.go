// Package pprofserver serves the runtime profiling endpoints on a separate
// listener so that they never pass through the public routing table.
package pprofserver

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/pprof"

	"github.com/mtoivan/samplab/internal/errors"
)

func Handle(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
}

func newServer(addr string) *http.Server {
	mux := http.NewServeMux()
	Handle(mux)
	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}

// Launch serves the profiling endpoints on addr in a background goroutine.
// Bind it to a loopback address so that the profiles stay private.
func Launch(ctx context.Context, addr string, logger *slog.Logger) {
	go func() {
		logger.LogAttrs(ctx, slog.LevelInfo, "starting pprof server", slog.String("pprofAddr", addr))
		if err := newServer(addr).ListenAndServe(); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "pprof server error", errors.SlogError(err))
		}
	}()
}
