package cli

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/stackplot/stackplot/pkg/cache"
	xerrors "github.com/stackplot/stackplot/pkg/errors"
	"github.com/stackplot/stackplot/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	dir       string // chart document directory
	redisAddr string // optional shared Redis cache
}

// newServeCmd creates the serve command for previewing charts over HTTP.
// Charts are re-read from disk on every request, so edits show up on
// refresh; rendered artifacts are cached by content hash.
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr: ":8080",
		dir:  ".",
	}

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve live chart previews over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.dir = args[0]
			}
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address (host:port) for a shared artifact cache")

	return cmd
}

// runServe starts the preview server and blocks until ctx is cancelled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}
	defer c.Close()

	keyer := cache.NewScopedKeyer(nil, "serve:"+opts.dir+":")
	srv := &previewServer{
		dir:    opts.dir,
		runner: pipeline.NewRunner(c, keyer),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/", srv.handleIndex)
	r.Get("/charts/{name}", srv.handleChart)

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Infof("Serving charts from %s on %s", opts.dir, opts.addr)
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// serveCache picks the artifact cache backend for the server.
// Redis when configured, in-process file cache otherwise.
func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.redisAddr != "" {
		return cache.NewRedisCache(ctx, opts.redisAddr)
	}
	return openCache(&renderOpts{})
}

// previewServer renders charts from a directory on demand.
type previewServer struct {
	dir    string
	runner *pipeline.Runner
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>stackplot</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
li { margin: 0.25rem 0; }
</style>
</head>
<body>
<h1>Charts</h1>
<ul>
{{range .}}<li><a href="/charts/{{.}}">{{.}}</a></li>
{{else}}<li>No chart files found.</li>
{{end}}</ul>
</body>
</html>
`))

// handleIndex lists the chart documents available in the directory.
func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	files, err := chartFiles(s.dir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = indexTemplate.Execute(w, names)
}

// handleChart renders one chart document as SVG.
func (s *previewServer) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}
	path := filepath.Join(s.dir, name)

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Input:   path,
		Formats: []string{pipeline.FormatSVG},
		Logger:  loggerFromContext(r.Context()),
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch xerrors.GetCode(err) {
		case xerrors.ErrCodeFileNotFound, xerrors.ErrCodeNotFound:
			status = http.StatusNotFound
		case xerrors.ErrCodeInvalidInput, xerrors.ErrCodeInvalidFormat, xerrors.ErrCodeUnsupported:
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, xerrors.UserMessage(err), status)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Render-Id", result.RenderID)
	if result.CacheInfo.AllHit() {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}
