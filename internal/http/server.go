// Package httpapi exposes the preference engine and its stores as a JSON
// API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/jomtravel/group-trip-engine/internal/domain"
	"github.com/jomtravel/group-trip-engine/internal/engine"
)

// TravelerStore is the persistence surface the handlers need for member
// preference records.
type TravelerStore interface {
	SaveTraveler(p domain.PreferenceRecord) error
	GetTraveler(id string) (domain.PreferenceRecord, bool, error)
	ListTravelers() ([]domain.PreferenceRecord, error)
	DeleteTraveler(id string) (bool, error)
}

// DestinationStore is the persistence surface for the candidate catalog.
type DestinationStore interface {
	CreateDestination(c domain.Candidate) (domain.Candidate, error)
	GetDestination(id string) (domain.Candidate, bool, error)
	DeleteDestination(id string) (bool, error)
	ListDestinationsFiltered(limit, offset int, region string, season domain.Season,
		interest domain.ActivityType, maxCost float64, sortBy string) ([]domain.Candidate, int, error)
}

type Server struct {
	Engine       *engine.Engine
	Travelers    TravelerStore
	Destinations DestinationStore
	Log          zerolog.Logger
}

func NewServer(eng *engine.Engine, travelers TravelerStore, destinations DestinationStore, log zerolog.Logger) *Server {
	return &Server{Engine: eng, Travelers: travelers, Destinations: destinations, Log: log}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/travelers", func(r chi.Router) {
			r.Get("/", s.handleTravelersList)
			r.Post("/", s.handleTravelerCreate)
			r.Get("/{id}", s.handleTravelerGet)
			r.Put("/{id}", s.handleTravelerUpdate)
			r.Delete("/{id}", s.handleTravelerDelete)
		})

		r.Route("/destinations", func(r chi.Router) {
			r.Get("/", s.handleDestinationsList)
			r.Post("/", s.handleDestinationCreate)
			r.Get("/{id}", s.handleDestinationGet)
			r.Delete("/{id}", s.handleDestinationDelete)
		})

		r.Route("/group", func(r chi.Router) {
			r.Get("/summary", s.handleGroupSummary)
			r.Post("/score", s.handleGroupScore)
			r.Post("/conflicts", s.handleGroupConflicts)
			r.Post("/itinerary", s.handleGroupItinerary)
		})
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
