package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type budgetRangePayload struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// travelerPayload is the write shape for a preference record. A record is
// fully set or absent: activities must carry at least one entry before the
// record is accepted at all.
type travelerPayload struct {
	DisplayName      string              `json:"display_name" validate:"required"`
	TravelStyle      string              `json:"travel_style" validate:"omitempty,oneof=budget comfort luxury"`
	DailyBudget      float64             `json:"daily_budget" validate:"gte=0"`
	BudgetRange      *budgetRangePayload `json:"budget_range"`
	Pacing           string              `json:"pacing" validate:"omitempty,oneof=relaxed moderate packed"`
	Accommodation    string              `json:"accommodation" validate:"omitempty,oneof=hostel hotel resort airbnb any"`
	Activities       []string            `json:"activities" validate:"required,min=1,dive,oneof=adventure culture nature food relaxation nightlife shopping"`
	PreferredSeasons []string            `json:"preferred_seasons" validate:"omitempty,dive,oneof=raya cny deepavali christmas school-holidays"`
	WakeUpTime       string              `json:"wake_up_time" validate:"omitempty,oneof=early normal late"`
	CrowdTolerance   string              `json:"crowd_tolerance" validate:"omitempty,oneof=avoid some no-preference"`
}

func (p travelerPayload) toRecord(memberID string) domain.PreferenceRecord {
	rec := domain.PreferenceRecord{
		MemberID:       memberID,
		DisplayName:    p.DisplayName,
		TravelStyle:    domain.TravelStyle(p.TravelStyle),
		DailyBudget:    p.DailyBudget,
		Pacing:         domain.Pacing(p.Pacing),
		Accommodation:  domain.Accommodation(p.Accommodation),
		WakeUpTime:     domain.WakeUpTime(p.WakeUpTime),
		CrowdTolerance: domain.CrowdTolerance(p.CrowdTolerance),
	}
	if p.BudgetRange != nil {
		rec.BudgetRange = &domain.BudgetRange{Min: p.BudgetRange.Min, Max: p.BudgetRange.Max}
	}
	for _, a := range p.Activities {
		rec.Activities = append(rec.Activities, domain.ActivityType(a))
	}
	for _, s := range p.PreferredSeasons {
		rec.PreferredSeasons = append(rec.PreferredSeasons, domain.Season(s))
	}
	return rec
}

type travelersListResponse struct {
	Count int                       `json:"count"`
	Items []domain.PreferenceRecord `json:"items"`
}

func (s *Server) handleTravelersList(w http.ResponseWriter, r *http.Request) {
	items, err := s.Travelers.ListTravelers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	if items == nil {
		items = []domain.PreferenceRecord{}
	}
	writeJSON(w, http.StatusOK, travelersListResponse{Count: len(items), Items: items})
}

func (s *Server) handleTravelerCreate(w http.ResponseWriter, r *http.Request) {
	var req travelerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_preferences")
		return
	}

	rec := req.toRecord(uuid.NewString())
	if err := s.Travelers.SaveTraveler(rec); err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleTravelerGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok, err := s.Travelers.GetTraveler(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleTravelerUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req travelerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_preferences")
		return
	}

	rec := req.toRecord(id)
	if err := s.Travelers.SaveTraveler(rec); err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleTravelerDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := s.Travelers.DeleteTraveler(id)
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
