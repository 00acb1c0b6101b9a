package engine

import (
	"testing"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

func TestDetectConflicts_SeverityFixedByCriterion(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		ID:        "d1",
		Name:      "Cameron Highlands",
		Cost:      2000,
		Season:    domain.SeasonChristmas,
		Interests: []domain.ActivityType{domain.ActivityNature},
	}
	m := member("a", 500, []domain.Season{domain.SeasonRaya}, []domain.ActivityType{domain.ActivityShopping})

	got := DetectConflicts([]domain.PreferenceRecord{m}, CandidateTarget(c))
	if len(got) != 3 {
		t.Fatalf("records = %d, want 3", len(got))
	}
	wantSeverities := []domain.ConflictSeverity{
		domain.SeverityHigh,   // budget
		domain.SeverityMedium, // interest
		domain.SeverityLow,    // season
	}
	for i, w := range wantSeverities {
		if got[i].Severity != w {
			t.Fatalf("record %d severity = %s, want %s", i, got[i].Severity, w)
		}
		if got[i].MemberID != "a" {
			t.Fatalf("record %d member = %s, want a", i, got[i].MemberID)
		}
	}
}

func TestDetectConflicts_NoFailuresNoRecords(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		ID:        "d1",
		Cost:      300,
		Season:    domain.SeasonRaya,
		Interests: []domain.ActivityType{domain.ActivityFood},
	}
	m := member("a", 500, []domain.Season{domain.SeasonRaya}, []domain.ActivityType{domain.ActivityFood})

	if got := DetectConflicts([]domain.PreferenceRecord{m}, CandidateTarget(c)); len(got) != 0 {
		t.Fatalf("clean member produced %d records: %+v", len(got), got)
	}
}

func TestDetectConflicts_StableMemberOrder(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		ID:        "d1",
		Cost:      5000,
		Season:    domain.SeasonRaya,
		Interests: []domain.ActivityType{domain.ActivityFood},
	}
	members := []domain.PreferenceRecord{
		member("first", 100, []domain.Season{domain.SeasonRaya}, []domain.ActivityType{domain.ActivityFood}),
		member("second", 200, []domain.Season{domain.SeasonRaya}, []domain.ActivityType{domain.ActivityFood}),
	}

	got := DetectConflicts(members, CandidateTarget(c))
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	if got[0].MemberID != "first" || got[1].MemberID != "second" {
		t.Fatalf("records out of input order: %s, %s", got[0].MemberID, got[1].MemberID)
	}
	// No deduplication: both members report their own budget conflict.
	if got[0].Severity != domain.SeverityHigh || got[1].Severity != domain.SeverityHigh {
		t.Fatalf("both records should be high severity")
	}
}

func TestDetectConflicts_MissingDataNeverConflicts(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		ID:        "d1",
		Cost:      99999,
		Season:    domain.SeasonDeepavali,
		Interests: []domain.ActivityType{domain.ActivityFood},
	}
	// No budget range and no seasons: those checks pass on absence. The
	// shared interest keeps the member conflict-free.
	m := member("a", 0, nil, []domain.ActivityType{domain.ActivityFood})

	if got := DetectConflicts([]domain.PreferenceRecord{m}, CandidateTarget(c)); len(got) != 0 {
		t.Fatalf("absent data manufactured conflicts: %+v", got)
	}
}

func TestDetectConflicts_UnsetActivitiesStillMissInterest(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		ID:        "d1",
		Cost:      100,
		Season:    domain.SeasonRaya,
		Interests: []domain.ActivityType{domain.ActivityFood},
	}
	m := member("a", 1000, []domain.Season{domain.SeasonRaya}, nil)

	got := DetectConflicts([]domain.PreferenceRecord{m}, CandidateTarget(c))
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	if got[0].Severity != domain.SeverityMedium {
		t.Fatalf("severity = %s, want medium", got[0].Severity)
	}
}

// The two-member worked example: disjoint budgets, no shared season, no
// shared activity.
func TestDetectConflicts_AgainstInfeasibleAggregate(t *testing.T) {
	t.Parallel()

	a := member("a", 1000,
		[]domain.Season{domain.SeasonRaya},
		[]domain.ActivityType{domain.ActivityCulture, domain.ActivityFood})
	b := domain.PreferenceRecord{
		MemberID:         "b",
		DisplayName:      "b",
		BudgetRange:      &domain.BudgetRange{Min: 1500, Max: 3000},
		PreferredSeasons: []domain.Season{domain.SeasonCNY},
		Activities:       []domain.ActivityType{domain.ActivityShopping},
	}
	members := []domain.PreferenceRecord{a, b}

	agg := AggregateBudgets(budgetRanges(members))
	if agg.Min != 1500 || agg.Max != 1000 {
		t.Fatalf("aggregate = [%v, %v], want [1500, 1000]", agg.Min, agg.Max)
	}
	if agg.Average != 1375 {
		t.Fatalf("aggregate average = %v, want 1375", agg.Average)
	}

	got := DetectConflicts(members, GroupTarget(members))

	// a: budget (group floor 1500 > cap 1000), interest, season.
	// b: interest, season.
	if len(got) != 5 {
		t.Fatalf("records = %d, want 5: %+v", len(got), got)
	}
	highForA := false
	for _, rec := range got {
		if rec.MemberID == "a" && rec.Severity == domain.SeverityHigh {
			highForA = true
		}
		if rec.MemberID == "b" && rec.Severity == domain.SeverityHigh {
			t.Fatalf("b can afford the group floor; no high conflict expected")
		}
	}
	if !highForA {
		t.Fatalf("infeasible aggregate must produce a high conflict for a")
	}

	wantSeq := []struct {
		id  string
		sev domain.ConflictSeverity
	}{
		{"a", domain.SeverityHigh},
		{"a", domain.SeverityMedium},
		{"a", domain.SeverityLow},
		{"b", domain.SeverityMedium},
		{"b", domain.SeverityLow},
	}
	for i, w := range wantSeq {
		if got[i].MemberID != w.id || got[i].Severity != w.sev {
			t.Fatalf("record %d = %s/%s, want %s/%s", i, got[i].MemberID, got[i].Severity, w.id, w.sev)
		}
	}
}
