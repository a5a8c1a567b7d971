package ui

import (
	"context"
	"embed"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"limaprices/domain/prices"
	"limaprices/internal"
	"limaprices/internal/config"
	"limaprices/ui/templates/fragments"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates static
var embeddedFiles embed.FS

// Server is the dashboard web server. Everything it holds is read-only after
// NewServer returns, so handlers share it without locking.
type Server struct {
	router    *gin.Engine
	cfg       *config.Config
	table     *prices.Table
	view      prices.ViewModel
	templates *template.Template
	renderer  ChartRenderer
	about     template.HTML
	logger    *internal.Logger
}

// NewServer composes the page layout for a loaded table
func NewServer(cfg *config.Config, table *prices.Table, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	about, err := loadAbout(cfg.UI.AboutFile)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   gin.Default(),
		cfg:      cfg,
		table:    table,
		view:     prices.NewViewModel(table),
		renderer: ChartRenderer{Width: cfg.Chart.Width, Height: cfg.Chart.Height},
		about:    about,
		logger:   logger,
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) parseTemplates() error {
	templatesFS, err := fs.Sub(embeddedFiles, "templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	files1, err := fs.Glob(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to glob root templates: %w", err)
	}
	files2, err := fs.Glob(templatesFS, "*/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob nested templates: %w", err)
	}
	files := append(files1, files2...)
	s.logger.Debug("[TemplateInit] Found %d template files: %v", len(files), files)

	s.templates = template.New("").Funcs(templateFuncs())
	for _, file := range files {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		// templates are named by their path below templates/
		if _, err := s.templates.New(file).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}

	for _, name := range fragments.GetAllTemplatePaths() {
		if s.templates.Lookup(name) == nil {
			return fmt.Errorf("template %s is missing", name)
		}
	}
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		// Search trigger: HTMX gets the results fragment, everything else JSON
		api.POST("/search", s.handleSearch)

		api.GET("/chart", s.handleChart)
		api.GET("/chart.svg", s.handleChartSVG)

		api.GET("/districts", s.handleDistricts)
		api.GET("/districts/:name/info", s.handleDistrictInfo)
		api.GET("/districts/:name/stats", s.handleDistrictStats)
	}
}

// Handler mounts the gin engine in a chi router carrying request ids,
// compression and, when enabled, the pprof endpoints under /debug.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Compress(5))

	if s.cfg.Profiling.Enabled {
		s.logger.Warn("Profiling endpoints enabled at /debug/pprof")
		r.Mount("/debug", middleware.Profiler())
	}

	r.Mount("/", s.router)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting %s on http://localhost:%s", s.cfg.UI.Title, s.cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server (timeout %s)", s.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}
