package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"biascope/adapters/tabular"
	"biascope/app"
	"biascope/domain/core"
	"biascope/domain/table"
	"biascope/internal"
)

// Server is the JSON API surface: callers POST an inline dataset plus two
// column selections and get the analysis result back.
type Server struct {
	router *chi.Mux
	svc    *app.AnalysisService
	log    *internal.Logger
}

// AnalyzeRequest is the inline-dataset analysis payload
type AnalyzeRequest struct {
	Columns         []string                 `json:"columns"`
	Rows            []map[string]interface{} `json:"rows"`
	SensitiveColumn string                   `json:"sensitive_column"`
	TargetColumn    string                   `json:"target_column"`
}

// NewServer creates the API server with its routes mounted
func NewServer(svc *app.AnalysisService, log *internal.Logger) *Server {
	if log == nil {
		log = internal.DefaultLogger
	}
	s := &Server{router: chi.NewRouter(), svc: svc, log: log}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/analyze", s.handleAnalyze)
	s.router.Get("/api/datasets", s.handleListDatasets)

	return s
}

// Handler exposes the router for mounting and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the API server on the given address
func (s *Server) Start(addr string) error {
	s.log.Info("JSON API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.svc.ListDatasets(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, datasets)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if len(req.Columns) == 0 {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "columns are required"})
		return
	}

	tbl := table.New(req.Columns)
	for _, raw := range req.Rows {
		row := make(table.Row, len(req.Columns))
		for _, name := range req.Columns {
			row[name] = tabular.CoerceAny(raw[name])
		}
		tbl.Append(row)
	}

	result, err := s.svc.AnalyzeTable(r.Context(), tbl, req.SensitiveColumn, req.TargetColumn)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsInvalidInputError(err):
		status = http.StatusUnprocessableEntity
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.log.Error("api request failed: %v", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response: %v", err)
	}
}
