package domain

// BudgetRange is an inclusive per-trip budget window in RM.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PreferenceRecord captures one traveler's constraints. DailyBudget
// (itinerary costing) and BudgetRange (destination matching) are independent
// fields.
type PreferenceRecord struct {
	MemberID         string         `json:"member_id"`
	DisplayName      string         `json:"display_name"`
	TravelStyle      TravelStyle    `json:"travel_style,omitempty"`
	DailyBudget      float64        `json:"daily_budget,omitempty"`
	BudgetRange      *BudgetRange   `json:"budget_range,omitempty"`
	Pacing           Pacing         `json:"pacing,omitempty"`
	Accommodation    Accommodation  `json:"accommodation,omitempty"`
	Activities       []ActivityType `json:"activities"`
	PreferredSeasons []Season       `json:"preferred_seasons,omitempty"`
	WakeUpTime       WakeUpTime     `json:"wake_up_time,omitempty"`
	CrowdTolerance   CrowdTolerance `json:"crowd_tolerance,omitempty"`
}

// IsSet reports whether the record counts as "preferences set". The write
// path requires at least one activity; everything else may stay unset.
func (p PreferenceRecord) IsSet() bool {
	return len(p.Activities) > 0
}

// LikesActivity reports whether the member's activity set contains t.
func (p PreferenceRecord) LikesActivity(t ActivityType) bool {
	for _, a := range p.Activities {
		if a == t {
			return true
		}
	}
	return false
}

// Candidate is a destination or activity template scored against the group.
// Sourced from the catalog; immutable.
type Candidate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Region      string         `json:"region,omitempty"`
	Cost        float64        `json:"cost"`
	Season      Season         `json:"season"`
	Interests   []ActivityType `json:"interests"`
	Description string         `json:"description,omitempty"`
}

// AggregatedBudget is the group-feasible budget window. Min may exceed Max
// when member ranges do not overlap; infeasibility is data, not an error.
type AggregatedBudget struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// Feasible reports whether the group window is non-empty.
func (b AggregatedBudget) Feasible() bool {
	return b.Min <= b.Max
}

// AggregatedPreferences is the group-level summary derived from all members'
// records. It is recomputed on demand and never mutated in place.
type AggregatedPreferences struct {
	BudgetRange     AggregatedBudget `json:"budget_range"`
	TopActivities   []ActivityType   `json:"top_activities"`
	PreferredPacing Pacing           `json:"preferred_pacing"`
}

type ConflictSeverity string

const (
	SeverityHigh   ConflictSeverity = "high"
	SeverityMedium ConflictSeverity = "medium"
	SeverityLow    ConflictSeverity = "low"
)

// ConflictRecord is one member's mismatch against a group or candidate
// target. Severity is fixed by the failed criterion: budget is high (it can
// block the trip outright), interest is medium, season is low.
type ConflictRecord struct {
	MemberID    string           `json:"member_id"`
	Description string           `json:"description"`
	Severity    ConflictSeverity `json:"severity"`
}

// ScoreBreakdown pairs the whole-group score with every member's own score,
// each 0..100. Callers display both; collapsing them into one number loses
// the per-member signal the conflict detector relies on.
type ScoreBreakdown struct {
	Group     int            `json:"group"`
	PerMember map[string]int `json:"per_member"`
}

// ScheduledActivity is one slot of an itinerary day. SuitableFor lists the
// members whose activity set contains the slot's type; an empty list is a
// valid "general activity" slot.
type ScheduledActivity struct {
	Slot         string       `json:"slot"`
	Title        string       `json:"title"`
	ActivityType ActivityType `json:"activity_type"`
	Cost         float64      `json:"cost"`
	Duration     string       `json:"duration"`
	SuitableFor  []string     `json:"suitable_for"`
}

// ItineraryDay is one day of a synthesized plan. Date is YYYY-MM-DD.
type ItineraryDay struct {
	Day        int                 `json:"day"`
	Date       string              `json:"date"`
	Activities []ScheduledActivity `json:"activities"`
}
