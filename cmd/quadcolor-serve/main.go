// Command quadcolor-serve serves the browser build of quadcolor.
//
// Build the wasm binary first:
//
//	GOOS=js GOARCH=wasm go build -o build/main.wasm ./cmd/quadcolor
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" build/
package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

//go:embed static
var static embed.FS

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dir := flag.String("dir", "build", "directory holding main.wasm and wasm_exec.js")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	page, err := fs.Sub(static, "static")
	if err != nil {
		logger.Error("embedded page", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{Addr: *addr, Handler: logRequests(logger, newHandler(page, *dir))}

	go func() {
		logger.Info("serving", "url", "http://localhost"+*addr, "dir", *dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

// newHandler serves the page at / and everything else from dir.
func newHandler(page fs.FS, dir string) http.Handler {
	mux := http.NewServeMux()
	assets := http.FileServer(http.Dir(dir))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			http.ServeFileFS(w, r, page, "index.html")
			return
		}
		assets.ServeHTTP(w, r)
	})
	return mux
}

func logRequests(logger *slog.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		h.ServeHTTP(w, r)
	})
}
