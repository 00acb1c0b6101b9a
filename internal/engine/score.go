package engine

import (
	"math"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

// MatchTarget is the thing a member is evaluated against: a concrete
// candidate, or the group's own aggregate profile. The scorer and the
// conflict detector share this shape so both call paths apply one rule set.
//
// The Has* flags distinguish "no constraint" from "constrained but empty":
// a group where nobody picked a season imposes no season constraint, while a
// group whose season sets do not overlap constrains everyone and satisfies
// no one.
type MatchTarget struct {
	Label        string // human-readable, used in conflict descriptions
	Cost         float64
	HasCost      bool
	Seasons      []domain.Season
	HasSeasons   bool
	Interests    []domain.ActivityType
	HasInterests bool
}

// CandidateTarget builds the match target for a catalog candidate. Catalog
// data is curated, so every criterion is considered constrained.
func CandidateTarget(c domain.Candidate) MatchTarget {
	label := c.Name
	if label == "" {
		label = c.ID
	}
	return MatchTarget{
		Label:        label,
		Cost:         c.Cost,
		HasCost:      true,
		Seasons:      []domain.Season{c.Season},
		HasSeasons:   c.Season != "",
		Interests:    c.Interests,
		HasInterests: true,
	}
}

// GroupTarget builds the match target representing the group itself: the
// cheapest trip the aggregated budget window allows, and the seasons and
// interests every contributing member shares. Fields nobody has set are left
// unconstrained.
func GroupTarget(members []domain.PreferenceRecord) MatchTarget {
	agg := AggregateBudgets(budgetRanges(members))
	t := MatchTarget{
		Label:   "the group",
		Cost:    agg.Min,
		HasCost: true,
	}

	var seasonSets [][]domain.Season
	var interestSets [][]domain.ActivityType
	for _, m := range members {
		if len(m.PreferredSeasons) > 0 {
			seasonSets = append(seasonSets, m.PreferredSeasons)
		}
		if len(m.Activities) > 0 {
			interestSets = append(interestSets, m.Activities)
		}
	}
	if len(seasonSets) > 0 {
		t.Seasons = intersect(seasonSets)
		t.HasSeasons = true
	}
	if len(interestSets) > 0 {
		t.Interests = intersect(interestSets)
		t.HasInterests = true
	}
	return t
}

// checklist holds the three pass/fail criteria for one member against one
// target. Criteria are equally weighted and independent on purpose: a
// destination can fit everyone's wallet while matching nobody's interests,
// and callers need to know which axis failed.
type checklist struct {
	budget   bool
	season   bool
	interest bool
}

func (c checklist) points() int {
	n := 0
	if c.budget {
		n++
	}
	if c.season {
		n++
	}
	if c.interest {
		n++
	}
	return n
}

// evaluate applies the shared rule set. Member-side absence of data satisfies
// a criterion (benefit of the doubt) with one exception: an empty activities
// set never satisfies the interest criterion, so "haven't set preferences
// yet" shows up as a miss on that axis.
func evaluate(m domain.PreferenceRecord, t MatchTarget) checklist {
	c := checklist{budget: true, season: true, interest: true}

	if t.HasCost && m.BudgetRange != nil {
		c.budget = t.Cost <= m.BudgetRange.Max
	}
	if t.HasSeasons && len(m.PreferredSeasons) > 0 {
		c.season = overlapsSeasons(t.Seasons, m.PreferredSeasons)
	}
	if t.HasInterests {
		c.interest = overlapsActivities(t.Interests, m.Activities)
	}
	return c
}

// ScoreMember computes one member's 0..100 compatibility with a candidate,
// in increments of one third of the scale.
func ScoreMember(m domain.PreferenceRecord, c domain.Candidate) int {
	return scoreFromPoints(evaluate(m, CandidateTarget(c)).points(), 1)
}

// ScoreCandidate computes the whole-group score plus every member's own
// score against the candidate. An empty group scores zero.
func ScoreCandidate(c domain.Candidate, members []domain.PreferenceRecord) domain.ScoreBreakdown {
	out := domain.ScoreBreakdown{PerMember: make(map[string]int, len(members))}
	if len(members) == 0 {
		return out
	}

	target := CandidateTarget(c)
	total := 0
	for _, m := range members {
		pts := evaluate(m, target).points()
		total += pts
		out.PerMember[m.MemberID] = scoreFromPoints(pts, 1)
	}
	out.Group = scoreFromPoints(total, len(members))
	return out
}

func scoreFromPoints(points, memberCount int) int {
	return int(math.Round(float64(points) / (3 * float64(memberCount)) * 100))
}

func overlapsSeasons(a, b []domain.Season) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func overlapsActivities(a, b []domain.ActivityType) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// intersect returns the elements common to all sets, preserving the order of
// the first set.
func intersect[T comparable](sets [][]T) []T {
	out := make([]T, 0, len(sets[0]))
	for _, v := range sets[0] {
		inAll := true
		for _, s := range sets[1:] {
			found := false
			for _, w := range s {
				if w == v {
					found = true
					break
				}
			}
			if !found {
				inAll = false
				break
			}
		}
		if inAll && !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func contains[T comparable](s []T, v T) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
