package ui

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"biascope/domain/core"
)

var allowedExtensions = []string{".csv", ".xlsx", ".xls"}

// handleIndex shows the upload form and the registered datasets
func (s *Server) handleIndex(c *gin.Context) {
	datasets, err := s.svc.ListDatasets(c.Request.Context())
	if err != nil {
		s.log.Error("failed to list datasets: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to load datasets")
		return
	}
	s.renderTemplate(c, "index.html", gin.H{"Datasets": datasets})
}

// handleUpload ingests an uploaded CSV or Excel file
func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > s.upload.MaxBytes {
		s.renderError(c, http.StatusBadRequest,
			fmt.Sprintf("File size exceeds the %d MB limit", s.upload.MaxBytes/(1024*1024)))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	valid := false
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		s.renderError(c, http.StatusBadRequest, "Only CSV and Excel files are supported")
		return
	}

	dst := filepath.Join(s.upload.Dir, fmt.Sprintf("%s%s", core.NewID(), ext))
	if err := c.SaveUploadedFile(header, dst); err != nil {
		s.log.Error("failed to save upload: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to save uploaded file")
		return
	}

	ds, err := s.svc.RegisterFile(c.Request.Context(), dst, header.Filename, header.Size)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, fmt.Sprintf("Failed to load dataset: %v", err))
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/datasets/%s", ds.ID))
}

// handleDataset shows the column-selection form for a dataset
func (s *Server) handleDataset(c *gin.Context) {
	id := core.DatasetID(c.Param("id"))
	ds, err := s.svc.Dataset(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, http.StatusNotFound, "Dataset not found")
		return
	}
	s.renderTemplate(c, "dataset.html", gin.H{"Dataset": ds})
}

// handleAnalyze runs the bias analysis and renders the report
func (s *Server) handleAnalyze(c *gin.Context) {
	id := core.DatasetID(c.Param("id"))
	sensitive := c.PostForm("sensitive")
	target := c.PostForm("target")

	ds, err := s.svc.Dataset(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, http.StatusNotFound, "Dataset not found")
		return
	}

	result, err := s.svc.Analyze(c.Request.Context(), id, sensitive, target)
	if err != nil {
		if core.IsInvalidInputError(err) {
			s.renderError(c, http.StatusUnprocessableEntity, fmt.Sprintf("Analysis rejected: %v", err))
			return
		}
		s.log.Error("analysis failed for dataset %s: %v", id, err)
		s.renderError(c, http.StatusInternalServerError, "Analysis failed")
		return
	}

	s.renderTemplate(c, "report.html", gin.H{
		"Dataset":  ds,
		"Report":   result.Report,
		"Advice":   renderAdvice(result.Advice),
		"Profiles": result.Profiles,
	})
}

// handleDelete removes a dataset from the registry
func (s *Server) handleDelete(c *gin.Context) {
	id := core.DatasetID(c.Param("id"))
	if err := s.svc.DeleteDataset(c.Request.Context(), id); err != nil {
		s.renderError(c, http.StatusNotFound, "Dataset not found")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
