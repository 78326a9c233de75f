package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"biascope/app"
	"biascope/internal"
	"biascope/internal/config"
)

//go:embed templates/*
var embeddedFiles embed.FS

// Server is the dashboard: upload a dataset, pick the sensitive and target
// columns, and render the bias report with corrective-action guidance.
type Server struct {
	router    *gin.Engine
	svc       *app.AnalysisService
	templates *template.Template
	upload    config.UploadConfig
	log       *internal.Logger
}

// NewServer creates the dashboard server
func NewServer(svc *app.AnalysisService, upload config.UploadConfig, log *internal.Logger) (*Server, error) {
	if log == nil {
		log = internal.DefaultLogger
	}

	funcMap := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
		"f2":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"f4":  func(v float64) string { return fmt.Sprintf("%.4f", v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		svc:       svc,
		templates: templates,
		upload:    upload,
		log:       log,
	}
	s.router.MaxMultipartMemory = upload.MaxBytes
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/datasets", s.handleUpload)
	s.router.GET("/datasets/:id", s.handleDataset)
	s.router.POST("/datasets/:id/analyze", s.handleAnalyze)
	s.router.POST("/datasets/:id/delete", s.handleDelete)
}

// Start runs the dashboard on the given address
func (s *Server) Start(addr string) error {
	s.log.Info("dashboard listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) renderTemplate(c *gin.Context, name string, data interface{}) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		s.log.Error("failed to render %s: %v", name, err)
		c.String(http.StatusInternalServerError, "template error")
	}
}

func (s *Server) renderError(c *gin.Context, status int, message string) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "error.html", gin.H{"Message": message}); err != nil {
		c.String(status, message)
	}
}
