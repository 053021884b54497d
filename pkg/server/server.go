// Package server exposes the import pipeline over HTTP as a small JSON API.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/danwoo/gagyebu/pkg/config"
	"github.com/danwoo/gagyebu/pkg/importer"
	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/notify"
	"github.com/danwoo/gagyebu/pkg/parser"
	"github.com/danwoo/gagyebu/pkg/rules"
)

// maxUploadBytes caps statement uploads.
const maxUploadBytes = 20 << 20

type Server struct {
	config   *config.Config
	logger   *log.Logger
	mux      *http.ServeMux
	importer *importer.Importer
	capture  *notify.Capture
	rules    rules.Store
	store    importer.Store
}

func New(cfg *config.Config, imp *importer.Importer, capture *notify.Capture, ruleStore rules.Store, entryStore importer.Store, logger *log.Logger) *Server {
	return &Server{
		config:   cfg,
		logger:   logger,
		mux:      http.NewServeMux(),
		importer: imp,
		capture:  capture,
		rules:    ruleStore,
		store:    entryStore,
	}
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	s.setupRoutes()
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/import", s.withLogging(s.handleImport))
	s.mux.HandleFunc("/api/notifications", s.withLogging(s.handleNotification))
	s.mux.HandleFunc("/api/entries", s.withLogging(s.handleEntries))
	s.mux.HandleFunc("/api/rules", s.withLogging(s.handleRules))
	s.mux.HandleFunc("/api/rules/", s.withLogging(s.handleRuleByID))
	s.mux.HandleFunc("/api/rules/reapply", s.withLogging(s.handleReapply))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid multipart form", err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "missing file field", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "failed to read upload", err)
		return
	}

	result, err := s.importer.ImportFile(data, header.Filename, header.Header.Get("Content-Type"))
	switch {
	case errors.Is(err, parser.ErrUnsupportedFormat):
		s.respondError(w, r, http.StatusUnsupportedMediaType, err.Error(), nil)
		return
	case errors.Is(err, parser.ErrNoTransactions):
		s.respondError(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	case err != nil:
		s.respondError(w, r, http.StatusInternalServerError, "import failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	var ev notify.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid notification payload", err)
		return
	}

	entry, err := s.capture.Handle(ev)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "notification import failed", err)
		return
	}
	if entry == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.respondJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	entries, err := s.store.ListAll()
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to list entries", err)
		return
	}
	s.respondJSON(w, http.StatusOK, entries)
}

type ruleRequest struct {
	Keyword  string `json:"keyword"`
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.respondJSON(w, http.StatusOK, s.rules.List())
	case http.MethodPost:
		var req ruleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, r, http.StatusBadRequest, "invalid rule payload", err)
			return
		}
		var forced *models.TxType
		if req.Type != "" {
			t := models.TxTypeFromString(req.Type)
			forced = &t
		}
		rule, err := models.NewRule(req.Keyword, models.SpendingKindFromString(req.Kind), req.Category, forced)
		if err != nil {
			s.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		if err := s.rules.Add(rule); err != nil {
			s.respondError(w, r, http.StatusInternalServerError, "failed to store rule", err)
			return
		}
		s.respondJSON(w, http.StatusCreated, rule)
	default:
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}

func (s *Server) handleRuleByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/rules/")
	if id == "" {
		s.respondError(w, r, http.StatusNotFound, "rule id required", nil)
		return
	}
	if r.Method != http.MethodDelete {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	if err := s.rules.Remove(id); err != nil {
		s.respondError(w, r, http.StatusNotFound, err.Error(), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReapply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	updated, err := s.importer.ReapplyRules()
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to reapply rules", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next(w, r)
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if err != nil {
		s.logger.Error(msg, "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Warn(msg, "method", r.Method, "path", r.URL.Path)
	}
	s.respondJSON(w, status, map[string]string{"error": msg})
}
