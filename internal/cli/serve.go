package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	pkgerrors "github.com/vegagallery/vegagallery/pkg/errors"
	"github.com/vegagallery/vegagallery/pkg/gallery"
)

// serveCommand creates the serve command for previewing a generated gallery.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		dir       string
		rateLimit float64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a generated gallery over HTTP",
		Long: `Serve a generated gallery over HTTP for local preview.

The server is a plain static file server. An optional request rate limit
helps approximate constrained environments during render performance tests.

Examples:
  vegagallery serve
  vegagallery serve --dir public --addr :9000
  vegagallery serve --rate-limit 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, dir, rateLimit)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Tool.Serve.Addr, "listen address")
	cmd.Flags().StringVar(&dir, "dir", gallery.DefaultOutput, "gallery directory to serve")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", c.Tool.Serve.RateLimit, "max requests per second (0 = unlimited)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, dir string, rateLimit float64) error {
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		return pkgerrors.New(pkgerrors.ErrCodeFileNotFound,
			"no gallery found in %s (run %s generate first)", dir, appName)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(c.requestLogger)
	if rateLimit > 0 {
		r.Use(throttle(rateLimit))
	}
	r.Handle("/*", http.FileServer(http.Dir(dir)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	printSuccess("Serving %s", dir)
	printDetail("http://%s", displayAddr(addr))
	printDetail("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs each request with method, path, status and duration.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		c.Logger.Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

// throttle rejects requests over the per-second budget with 429.
func throttle(perSecond float64) func(http.Handler) http.Handler {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

// displayAddr turns a listen address into something clickable.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return fmt.Sprintf("localhost%s", addr)
	}
	return addr
}
