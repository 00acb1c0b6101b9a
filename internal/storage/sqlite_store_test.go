package storage

import (
	"testing"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.EnsureSchema(); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return s
}

func TestTravelers_Roundtrip(t *testing.T) {
	s := openTestStore(t)

	rec := domain.PreferenceRecord{
		MemberID:         "m-1",
		DisplayName:      "Aina",
		TravelStyle:      domain.StyleComfort,
		DailyBudget:      250,
		BudgetRange:      &domain.BudgetRange{Min: 500, Max: 2000},
		Pacing:           domain.PacingRelaxed,
		Accommodation:    domain.AccommodationHotel,
		Activities:       []domain.ActivityType{domain.ActivityFood, domain.ActivityCulture},
		PreferredSeasons: []domain.Season{domain.SeasonRaya},
		WakeUpTime:       domain.WakeUpLate,
		CrowdTolerance:   domain.CrowdSome,
	}
	if err := s.SaveTraveler(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := s.GetTraveler("m-1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.DisplayName != "Aina" || got.Pacing != domain.PacingRelaxed {
		t.Fatalf("got %+v", got)
	}
	if got.BudgetRange == nil || got.BudgetRange.Min != 500 || got.BudgetRange.Max != 2000 {
		t.Fatalf("budget range = %+v", got.BudgetRange)
	}
	if len(got.Activities) != 2 || got.Activities[0] != domain.ActivityFood {
		t.Fatalf("activities = %v", got.Activities)
	}
}

func TestTravelers_ListKeepsInsertionOrder(t *testing.T) {
	s := openTestStore(t)

	// Insert in non-lexical order; list must follow insertion, and an
	// update must not move a member to the back.
	for _, id := range []string{"m-zul", "m-aina", "m-ben"} {
		if err := s.SaveTraveler(domain.PreferenceRecord{
			MemberID:    id,
			DisplayName: id,
			Activities:  []domain.ActivityType{domain.ActivityFood},
		}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	if err := s.SaveTraveler(domain.PreferenceRecord{
		MemberID:    "m-zul",
		DisplayName: "Zul updated",
		Activities:  []domain.ActivityType{domain.ActivityNature},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.ListTravelers()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("count = %d, want 3", len(got))
	}
	wantOrder := []string{"m-zul", "m-aina", "m-ben"}
	for i, id := range wantOrder {
		if got[i].MemberID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].MemberID, id)
		}
	}
	if got[0].DisplayName != "Zul updated" {
		t.Fatalf("update not applied: %+v", got[0])
	}
}

func TestTravelers_Delete(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveTraveler(domain.PreferenceRecord{
		MemberID:    "m-1",
		DisplayName: "Aina",
		Activities:  []domain.ActivityType{domain.ActivityFood},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	ok, err := s.DeleteTraveler("m-1")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	ok, err = s.DeleteTraveler("m-1")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if ok {
		t.Fatalf("second delete reported a row")
	}
	if _, found, _ := s.GetTraveler("m-1"); found {
		t.Fatalf("deleted traveler still readable")
	}
}

func seedDestinations(t *testing.T, s *SQLiteStore) {
	t.Helper()
	err := s.UpsertManyDestinations([]domain.Candidate{
		{ID: "d-langkawi", Name: "Langkawi", Region: "Kedah", Cost: 1200, Season: domain.SeasonRaya,
			Interests: []domain.ActivityType{domain.ActivityNature, domain.ActivityRelaxation}},
		{ID: "d-penang", Name: "George Town", Region: "Penang", Cost: 800, Season: domain.SeasonCNY,
			Interests: []domain.ActivityType{domain.ActivityFood, domain.ActivityCulture}},
		{ID: "d-genting", Name: "Genting Highlands", Region: "Pahang", Cost: 600, Season: domain.SeasonSchoolHoliday,
			Interests: []domain.ActivityType{domain.ActivityShopping, domain.ActivityNightlife}},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestDestinations_FiltersAndSort(t *testing.T) {
	s := openTestStore(t)
	seedDestinations(t, s)

	items, total, err := s.ListDestinationsFiltered(20, 0, "", "", "", 1000, "cost_desc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total=%d items=%d, want 2/2", total, len(items))
	}
	if items[0].ID != "d-penang" || items[1].ID != "d-genting" {
		t.Fatalf("sort order wrong: %s, %s", items[0].ID, items[1].ID)
	}

	items, total, err = s.ListDestinationsFiltered(20, 0, "", domain.SeasonRaya, "", 0, "")
	if err != nil {
		t.Fatalf("season filter: %v", err)
	}
	if total != 1 || items[0].ID != "d-langkawi" {
		t.Fatalf("season filter: total=%d items=%v", total, items)
	}

	items, total, err = s.ListDestinationsFiltered(20, 0, "", "", domain.ActivityFood, 0, "")
	if err != nil {
		t.Fatalf("interest filter: %v", err)
	}
	if total != 1 || items[0].ID != "d-penang" {
		t.Fatalf("interest filter: total=%d items=%v", total, items)
	}
}

func TestDestinations_SeedIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	seedDestinations(t, s)
	seedDestinations(t, s)

	n, err := s.CountDestinations()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}
}

func TestDestinations_CreateAndGet(t *testing.T) {
	s := openTestStore(t)

	created, err := s.CreateDestination(domain.Candidate{
		Name:      "Tioman",
		Region:    "Pahang",
		Cost:      950,
		Season:    domain.SeasonSchoolHoliday,
		Interests: []domain.ActivityType{domain.ActivityAdventure},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("create must assign an id")
	}

	got, ok, err := s.GetDestination(created.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "Tioman" || len(got.Interests) != 1 {
		t.Fatalf("got %+v", got)
	}
}
