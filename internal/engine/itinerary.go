package engine

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

// ErrNoActivities is returned when an itinerary is requested for a group
// with an empty top-activity list. A days-long trip with no activity slots
// is never a valid state, so this is the one input the synthesizer rejects
// instead of degrading.
var ErrNoActivities = errors.New("itinerary: top activities list is empty")

// TripWindow is the inclusive date range of the trip.
type TripWindow struct {
	Start time.Time
	End   time.Time
}

// Days counts calendar days, inclusive of both boundary dates. A window
// whose end precedes its start has zero days.
func (w TripWindow) Days() int {
	start := truncateDay(w.Start)
	end := truncateDay(w.End)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var slotLabels = [...]string{"Morning", "Midday", "Afternoon", "Evening", "Night"}

func slotLabel(i int) string {
	if i >= len(slotLabels) {
		return slotLabels[len(slotLabels)-1]
	}
	return slotLabels[i]
}

var activitiesPerDay = map[domain.Pacing]int{
	domain.PacingRelaxed:  2,
	domain.PacingModerate: 3,
	domain.PacingPacked:   5,
}

func slotsForPacing(p domain.Pacing) int {
	if n, ok := activitiesPerDay[p]; ok {
		return n
	}
	return activitiesPerDay[domain.PacingModerate]
}

// SynthesizeItinerary produces one ItineraryDay per calendar day of the trip.
// Each day draws its own random permutation of topActivities and fills
// slotsForPacing slots, wrapping around when the list is shorter than the
// slot count. Slot cost lands between 50% and 100% of the per-slot share of
// averageBudget, so a day never exceeds the daily average. SuitableFor tags
// the members whose activity set contains the slot's type; an empty tag list
// is a valid "general activity" slot.
//
// rng drives all randomness; pass a seeded source for reproducible output.
// With rng == nil a time-seeded source is used, and two calls with identical
// inputs will differ. That variance is a presentation convenience, not a
// planning guarantee.
func SynthesizeItinerary(
	trip TripWindow,
	pacing domain.Pacing,
	topActivities []domain.ActivityType,
	averageBudget float64,
	members []domain.PreferenceRecord,
	bank PhraseBank,
	rng *rand.Rand,
) ([]domain.ItineraryDay, error) {
	if len(topActivities) == 0 {
		return nil, ErrNoActivities
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if bank == nil {
		bank = DefaultPhraseBank()
	}

	days := trip.Days()
	perDay := slotsForPacing(pacing)
	share := averageBudget / float64(perDay)
	start := truncateDay(trip.Start)

	out := make([]domain.ItineraryDay, 0, days)
	for d := 0; d < days; d++ {
		day := domain.ItineraryDay{
			Day:        d + 1,
			Date:       start.AddDate(0, 0, d).Format("2006-01-02"),
			Activities: make([]domain.ScheduledActivity, 0, perDay),
		}

		order := rng.Perm(len(topActivities))
		for slot := 0; slot < perDay; slot++ {
			t := topActivities[order[slot%len(order)]]
			day.Activities = append(day.Activities, domain.ScheduledActivity{
				Slot:         slotLabel(slot),
				Title:        pickTitle(bank, t, rng),
				ActivityType: t,
				Cost:         slotCost(share, rng),
				Duration:     durationFor(t),
				SuitableFor:  suitableMembers(members, t),
			})
		}
		out = append(out, day)
	}
	return out, nil
}

func pickTitle(bank PhraseBank, t domain.ActivityType, rng *rand.Rand) string {
	phrases := bank[t]
	if len(phrases) == 0 {
		return string(t) + " activity"
	}
	return phrases[rng.Intn(len(phrases))]
}

// slotCost draws 50-100% of the even per-slot share, rounded to whole RM.
// Rounding is capped at the share so the cost-bound invariant holds even
// when the draw lands just under it.
func slotCost(share float64, rng *rand.Rand) float64 {
	if share <= 0 {
		return 0
	}
	cost := math.Round(share * (0.5 + rng.Float64()*0.5))
	if cost > share {
		cost = math.Floor(share)
	}
	return cost
}

func suitableMembers(members []domain.PreferenceRecord, t domain.ActivityType) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		if m.LikesActivity(t) {
			out = append(out, m.MemberID)
		}
	}
	return out
}
