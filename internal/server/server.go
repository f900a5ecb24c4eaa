package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"astrodash/internal/session"
)

// Server exposes the chart pipeline to the rendering layer as a JSON API.
// It holds no state of its own beyond the session; every charts request is
// one synchronous recompute.
type Server struct {
	session *session.Session
}

func New(s *session.Session) *Server {
	return &Server{session: s}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/filters", s.handleFilters).Methods(http.MethodGet)
	r.HandleFunc("/api/charts", s.handleCharts).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type filtersResponse struct {
	YearMin       int      `json:"year_min"`
	YearMax       int      `json:"year_max"`
	Genders       []string `json:"genders"`
	Nationalities []string `json:"nationalities"`
}

func (s *Server) handleFilters(w http.ResponseWriter, _ *http.Request) {
	idx := s.session.Index()
	writeJSON(w, http.StatusOK, filtersResponse{
		YearMin:       idx.YearMin,
		YearMax:       idx.YearMax,
		Genders:       idx.Genders,
		Nationalities: idx.Nationalities,
	})
}

// handleCharts answers one filter-changed event. Absent parameters default
// to everything present in the data; repeated gender/nationality parameters
// restrict. An empty filtered set is a valid zero-row response.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	f := s.session.DefaultFilters()
	query := r.URL.Query()

	var err error
	if f.YearFrom, err = intParam(query.Get("from"), f.YearFrom); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad from: %w", err))
		return
	}
	if f.YearTo, err = intParam(query.Get("to"), f.YearTo); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad to: %w", err))
		return
	}
	if f.YearFrom > f.YearTo {
		writeError(w, http.StatusBadRequest, fmt.Errorf("from %d exceeds to %d", f.YearFrom, f.YearTo))
		return
	}
	if values, ok := query["gender"]; ok {
		f.Genders = values
	}
	if values, ok := query["nationality"]; ok {
		f.Nationalities = values
	}

	writeJSON(w, http.StatusOK, s.session.Charts(f))
}

func intParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
