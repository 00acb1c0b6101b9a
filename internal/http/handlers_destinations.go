package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

type destinationPayload struct {
	Name        string   `json:"name" validate:"required"`
	Region      string   `json:"region"`
	Cost        float64  `json:"cost" validate:"gt=0"`
	Season      string   `json:"season" validate:"omitempty,oneof=raya cny deepavali christmas school-holidays"`
	Interests   []string `json:"interests" validate:"required,min=1,dive,oneof=adventure culture nature food relaxation nightlife shopping"`
	Description string   `json:"description"`
}

type destinationsListResponse struct {
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
	Total  int                `json:"total"`
	Items  []domain.Candidate `json:"items"`
}

func (s *Server) handleDestinationsList(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 20, 0)
	q := r.URL.Query()

	maxCost, _ := strconv.ParseFloat(q.Get("max_cost"), 64)

	items, total, err := s.Destinations.ListDestinationsFiltered(
		limit, offset,
		q.Get("region"),
		domain.Season(q.Get("season")),
		domain.ActivityType(q.Get("interest")),
		maxCost,
		q.Get("sort"),
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	if items == nil {
		items = []domain.Candidate{}
	}
	writeJSON(w, http.StatusOK, destinationsListResponse{
		Limit:  limit,
		Offset: offset,
		Total:  total,
		Items:  items,
	})
}

func (s *Server) handleDestinationCreate(w http.ResponseWriter, r *http.Request) {
	var req destinationPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_destination")
		return
	}

	c := domain.Candidate{
		Name:        req.Name,
		Region:      req.Region,
		Cost:        req.Cost,
		Season:      domain.Season(req.Season),
		Description: req.Description,
	}
	for _, in := range req.Interests {
		c.Interests = append(c.Interests, domain.ActivityType(in))
	}

	created, err := s.Destinations.CreateDestination(c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDestinationGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok, err := s.Destinations.GetDestination(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDestinationDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := s.Destinations.DeleteDestination(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func parseLimitOffset(r *http.Request, defLimit, defOffset int) (int, int) {
	q := r.URL.Query()

	limit := defLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defLimit
	}
	// safety cap
	if limit > 200 {
		limit = 200
	}

	offset := defOffset
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = defOffset
	}

	return limit, offset
}
