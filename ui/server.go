package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"titanicdash/app"

	"github.com/gin-gonic/gin"
)

// PageTitle is shown in the browser tab and the page header
const PageTitle = "Titanic Dataset Analysis"

// Server represents the web server for the dashboard UI
type Server struct {
	router    *gin.Engine
	dashboard *app.DashboardService
	templates *template.Template
	assets    fs.FS
}

// NewServer creates a new web server instance with templates parsed and routes registered
func NewServer(dashboard *app.DashboardService) (*Server, error) {
	s := &Server{
		router:    gin.Default(),
		dashboard: dashboard,
		assets:    Assets,
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) parseTemplates() error {
	templatesFS, err := fs.Sub(s.assets, "templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	s.templates, err = template.New("").Funcs(funcMap()).ParseFS(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	log.Printf("[TemplateInit] Parsed templates: %s", s.templates.DefinedTemplates())
	return nil
}

func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(s.assets, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/export.xlsx", s.handleExport)
	s.router.GET("/healthz", s.handleHealth)
}

// Handler exposes the router, mainly for tests and custom http.Server setups
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves the UI until the listener fails
func (s *Server) Start(addr string) error {
	log.Printf("Starting dashboard UI on http://%s", addr)
	return s.router.Run(addr)
}
