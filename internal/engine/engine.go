// Package engine implements the group-trip preference engine: budget
// aggregation, candidate scoring, conflict detection, and itinerary
// synthesis. Every operation is a pure function of its inputs (itinerary
// synthesis draws from an injectable random source); the engine holds no
// member state and never retains a reference to the caller's member list.
package engine

import (
	"math/rand"
	"sort"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

// Engine wires the pipeline together. It owns only immutable configuration
// (the phrase bank); members and candidates are passed per call.
type Engine struct {
	phrases PhraseBank
}

func NewEngine(bank PhraseBank) *Engine {
	if bank == nil {
		bank = DefaultPhraseBank()
	}
	return &Engine{phrases: bank}
}

// Aggregate recomputes the group summary from the full member list. Cheap
// pure computation; no caching, no invalidation.
func (e *Engine) Aggregate(members []domain.PreferenceRecord) domain.AggregatedPreferences {
	return domain.AggregatedPreferences{
		BudgetRange:     AggregateBudgets(budgetRanges(members)),
		TopActivities:   topActivities(members),
		PreferredPacing: preferredPacing(members),
	}
}

// ScoreCandidate scores a candidate against the whole group and against each
// member individually.
func (e *Engine) ScoreCandidate(c domain.Candidate, members []domain.PreferenceRecord) domain.ScoreBreakdown {
	return ScoreCandidate(c, members)
}

// DetectConflicts classifies every member's mismatches against the target.
// Build the target with CandidateTarget or GroupTarget; both call paths go
// through the same detector.
func (e *Engine) DetectConflicts(members []domain.PreferenceRecord, target MatchTarget) []domain.ConflictRecord {
	return DetectConflicts(members, target)
}

// SynthesizeItinerary fills the trip window with scheduled activities based
// on the aggregated group profile. rng may be nil for time-seeded variety.
func (e *Engine) SynthesizeItinerary(
	trip TripWindow,
	agg domain.AggregatedPreferences,
	members []domain.PreferenceRecord,
	rng *rand.Rand,
) ([]domain.ItineraryDay, error) {
	return SynthesizeItinerary(trip, agg.PreferredPacing, agg.TopActivities,
		agg.BudgetRange.Average, members, e.phrases, rng)
}

// topActivities ranks activity types by total member votes, descending.
// Ties break by first-seen order across the member list.
func topActivities(members []domain.PreferenceRecord) []domain.ActivityType {
	votes := make(map[domain.ActivityType]int)
	firstSeen := make(map[domain.ActivityType]int)
	var order []domain.ActivityType

	for _, m := range members {
		for _, a := range m.Activities {
			if _, seen := votes[a]; !seen {
				firstSeen[a] = len(order)
				order = append(order, a)
			}
			votes[a]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if votes[order[i]] != votes[order[j]] {
			return votes[order[i]] > votes[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})
	return order
}

// preferredPacing is the majority vote over members who set a pacing. Any
// tie for the top resolves toward moderate, as does an empty vote.
func preferredPacing(members []domain.PreferenceRecord) domain.Pacing {
	counts := make(map[domain.Pacing]int)
	for _, m := range members {
		if m.Pacing != domain.PacingUnset {
			counts[m.Pacing]++
		}
	}

	best := domain.PacingModerate
	bestCount := 0
	tied := false
	for _, p := range []domain.Pacing{domain.PacingRelaxed, domain.PacingModerate, domain.PacingPacked} {
		switch {
		case counts[p] > bestCount:
			best, bestCount, tied = p, counts[p], false
		case counts[p] == bestCount && bestCount > 0:
			tied = true
		}
	}
	if tied || bestCount == 0 {
		return domain.PacingModerate
	}
	return best
}
