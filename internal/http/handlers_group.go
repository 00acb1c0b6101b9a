package httpapi

import (
	"errors"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/jomtravel/group-trip-engine/internal/domain"
	"github.com/jomtravel/group-trip-engine/internal/engine"
)

// candidateRef selects the target of a score or conflict request: a catalog
// destination by id, or an inline candidate. Both empty means "against the
// group aggregate" where the endpoint allows it.
type candidateRef struct {
	DestinationID string            `json:"destination_id"`
	Candidate     *domain.Candidate `json:"candidate"`
}

// resolve returns the referenced candidate. ok is false when the ref is
// empty; a lookup miss or storage failure has already been written to w.
func (ref candidateRef) resolve(s *Server, w http.ResponseWriter) (domain.Candidate, bool, bool) {
	if ref.Candidate != nil {
		return *ref.Candidate, true, true
	}
	if ref.DestinationID == "" {
		return domain.Candidate{}, false, true
	}
	c, found, err := s.Destinations.GetDestination(ref.DestinationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return domain.Candidate{}, false, false
	}
	if !found {
		writeError(w, http.StatusNotFound, "destination_not_found")
		return domain.Candidate{}, false, false
	}
	return c, true, true
}

type groupSummaryResponse struct {
	MemberCount int                          `json:"member_count"`
	Aggregate   domain.AggregatedPreferences `json:"aggregate"`
	Feasible    bool                         `json:"feasible"`
}

func (s *Server) handleGroupSummary(w http.ResponseWriter, r *http.Request) {
	members, err := s.Travelers.ListTravelers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	agg := s.Engine.Aggregate(members)
	writeJSON(w, http.StatusOK, groupSummaryResponse{
		MemberCount: len(members),
		Aggregate:   agg,
		Feasible:    agg.BudgetRange.Feasible(),
	})
}

type groupScoreResponse struct {
	CandidateID string         `json:"candidate_id,omitempty"`
	Group       int            `json:"group"`
	PerMember   map[string]int `json:"per_member"`
}

func (s *Server) handleGroupScore(w http.ResponseWriter, r *http.Request) {
	var ref candidateRef
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	c, hasCandidate, ok := ref.resolve(s, w)
	if !ok {
		return
	}
	if !hasCandidate {
		writeError(w, http.StatusBadRequest, "missing_candidate")
		return
	}

	members, err := s.Travelers.ListTravelers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}

	breakdown := s.Engine.ScoreCandidate(c, members)
	writeJSON(w, http.StatusOK, groupScoreResponse{
		CandidateID: c.ID,
		Group:       breakdown.Group,
		PerMember:   breakdown.PerMember,
	})
}

type groupConflictsResponse struct {
	Target    string                  `json:"target"`
	Count     int                     `json:"count"`
	Conflicts []domain.ConflictRecord `json:"conflicts"`
}

// handleGroupConflicts reports conflicts against a candidate when one is
// referenced, and against the group's own aggregate profile otherwise. An
// empty request body is the group-aggregate path.
func (s *Server) handleGroupConflicts(w http.ResponseWriter, r *http.Request) {
	var ref candidateRef
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	c, hasCandidate, ok := ref.resolve(s, w)
	if !ok {
		return
	}

	members, err := s.Travelers.ListTravelers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}

	var target engine.MatchTarget
	if hasCandidate {
		target = engine.CandidateTarget(c)
	} else {
		target = engine.GroupTarget(members)
	}

	conflicts := s.Engine.DetectConflicts(members, target)
	if conflicts == nil {
		conflicts = []domain.ConflictRecord{}
	}
	writeJSON(w, http.StatusOK, groupConflictsResponse{
		Target:    target.Label,
		Count:     len(conflicts),
		Conflicts: conflicts,
	})
}

type itineraryRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Seed      *int64 `json:"seed"`
}

type itineraryResponse struct {
	Aggregate domain.AggregatedPreferences `json:"aggregate"`
	Days      []domain.ItineraryDay        `json:"days"`
}

func (s *Server) handleGroupItinerary(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_dates")
		return
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	members, err := s.Travelers.ListTravelers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	agg := s.Engine.Aggregate(members)

	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	}

	days, err := s.Engine.SynthesizeItinerary(engine.TripWindow{Start: start, End: end}, agg, members, rng)
	if err != nil {
		if errors.Is(err, engine.ErrNoActivities) {
			writeError(w, http.StatusBadRequest, "no_activities")
			return
		}
		writeError(w, http.StatusInternalServerError, "itinerary_error")
		return
	}
	if days == nil {
		days = []domain.ItineraryDay{}
	}
	writeJSON(w, http.StatusOK, itineraryResponse{Aggregate: agg, Days: days})
}
