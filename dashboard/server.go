package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"companyintel/model"
	"companyintel/store"
	"companyintel/tracker"
)

// Tracker is the part of the tracking workflow the dashboard drives.
type Tracker interface {
	Track(ctx context.Context, rawURL string) (tracker.Outcome, error)
	Companies(ctx context.Context) ([]store.Entry, error)
	Company(ctx context.Context, key string) (model.CompanyRecord, error)
}

// Server serves the dashboard page and its JSON API.
type Server struct {
	tracker  Tracker
	logosDir string
	logger   *zap.Logger
}

// NewServer creates a Server. logosDir is where saved logos are read from.
func NewServer(t Tracker, logosDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{tracker: t, logosDir: logosDir, logger: logger}
}

// Router returns the routes without middleware.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/companies", s.handleAddCompany).Methods(http.MethodPost)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/logos/{file}", s.handleLogo).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/extract", s.handleExtract).Methods(http.MethodPost)
	api.HandleFunc("/companies", s.handleListCompanies).Methods(http.MethodGet)
	api.HandleFunc("/companies/{key}", s.handleGetCompany).Methods(http.MethodGet)
	return router
}

// Handler returns the routes wrapped in recovery, access logging and CORS.
func (s *Server) Handler() http.Handler {
	accessLog, err := zap.NewStdLogAt(s.logger.Named("http"), zap.InfoLevel)
	if err != nil {
		accessLog = zap.NewStdLog(s.logger)
	}

	var h http.Handler = s.Router()
	h = handlers.CombinedLoggingHandler(accessLog.Writer(), h)
	h = handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.logger}),
		handlers.PrintRecoveryStack(false),
	)(h)
	return h
}

type recoveryLogger struct{ logger *zap.Logger }

func (l recoveryLogger) Println(v ...any) {
	l.logger.Error("dashboard: recovered from panic", zap.Any("panic", v))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{}
	if key := r.URL.Query().Get("company"); key != "" {
		rec, err := s.tracker.Company(r.Context(), key)
		switch {
		case errors.Is(err, store.ErrNotFound):
			data.View.Error = "Company not found"
		case err != nil:
			s.logger.Error("dashboard: load company", zap.String("key", key), zap.Error(err))
			data.View.Error = "Error: " + err.Error()
		default:
			data.View = BuildView(rec, s.savedLogo(key))
		}
	}
	s.render(w, r, data, http.StatusOK)
}

func (s *Server) handleAddCompany(w http.ResponseWriter, r *http.Request) {
	rawURL := strings.TrimSpace(r.FormValue("url"))
	if rawURL == "" {
		s.render(w, r, pageData{}, http.StatusOK)
		return
	}

	data := pageData{URL: rawURL}
	out, err := s.tracker.Track(r.Context(), rawURL)
	switch {
	case err != nil:
		s.logger.Error("dashboard: track company", zap.String("url", rawURL), zap.Error(err))
		data.View.Error = "Error: " + err.Error()
	case !out.Stored():
		data.View.Error = out.Message
	default:
		data.View = BuildView(out.Record, out.LogoPath)
	}
	s.render(w, r, data, http.StatusOK)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, data pageData, status int) {
	entries, err := s.tracker.Companies(r.Context())
	if err != nil {
		s.logger.Error("dashboard: list companies", zap.Error(err))
	}
	for _, e := range entries {
		data.Companies = append(data.Companies, SidebarFor(e.Key, e.Record))
	}

	var buf bytes.Buffer
	if err := renderPage(&buf, data); err != nil {
		s.logger.Error("dashboard: render page", zap.Error(err))
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url is required"})
		return
	}

	out, err := s.tracker.Track(r.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		s.logger.Error("dashboard: track company", zap.String("url", req.URL), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	entries, err := s.tracker.Companies(r.Context())
	if err != nil {
		s.logger.Error("dashboard: list companies", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list companies"})
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	rec, err := s.tracker.Company(r.Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "company not found"})
		return
	}
	if err != nil {
		s.logger.Error("dashboard: load company", zap.String("key", key), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load company"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	if s.logosDir == "" || file != filepath.Base(file) || strings.HasPrefix(file, ".") {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.logosDir, file))
}

// savedLogo finds a previously saved logo for key.
func (s *Server) savedLogo(key string) string {
	if s.logosDir == "" {
		return ""
	}
	matches, err := filepath.Glob(filepath.Join(s.logosDir, store.LogoFileName(key, ".*")))
	if err != nil || len(matches) == 0 {
		return ""
	}
	return matches[0]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		http.Error(w, "Error marshaling to JSON", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
