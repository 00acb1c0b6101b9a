package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

// SQLiteStore persists traveler preference records and the destination
// catalog. Set-valued fields are stored as JSON columns.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema() error {
	const createTravelers = `
CREATE TABLE IF NOT EXISTS travelers (
  member_id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  travel_style TEXT NOT NULL DEFAULT '',
  daily_budget REAL NOT NULL DEFAULT 0,
  budget_range_json TEXT NOT NULL DEFAULT 'null',
  pacing TEXT NOT NULL DEFAULT '',
  accommodation TEXT NOT NULL DEFAULT '',
  activities_json TEXT NOT NULL DEFAULT '[]',
  seasons_json TEXT NOT NULL DEFAULT '[]',
  wake_up_time TEXT NOT NULL DEFAULT '',
  crowd_tolerance TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
`
	const createDestinations = `
CREATE TABLE IF NOT EXISTS destinations (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  region TEXT NOT NULL DEFAULT '',
  cost REAL NOT NULL,
  season TEXT NOT NULL DEFAULT '',
  interests_json TEXT NOT NULL DEFAULT '[]',
  description TEXT NOT NULL DEFAULT ''
);
`
	if _, err := s.db.Exec(createTravelers); err != nil {
		return err
	}
	if _, err := s.db.Exec(createDestinations); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_destinations_cost ON destinations(cost);`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_destinations_season ON destinations(season);`); err != nil {
		return err
	}
	return nil
}

// ---- Travelers ----

// SaveTraveler inserts or fully replaces one member's preference record.
// Insertion time is preserved across replacements so member order stays
// stable for conflict reporting.
func (s *SQLiteStore) SaveTraveler(p domain.PreferenceRecord) error {
	br, _ := json.Marshal(p.BudgetRange)
	acts, _ := json.Marshal(p.Activities)
	seasons, _ := json.Marshal(p.PreferredSeasons)

	_, err := s.db.Exec(`
INSERT INTO travelers
(member_id, display_name, travel_style, daily_budget, budget_range_json, pacing, accommodation, activities_json, seasons_json, wake_up_time, crowd_tolerance, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(member_id) DO UPDATE SET
  display_name=excluded.display_name,
  travel_style=excluded.travel_style,
  daily_budget=excluded.daily_budget,
  budget_range_json=excluded.budget_range_json,
  pacing=excluded.pacing,
  accommodation=excluded.accommodation,
  activities_json=excluded.activities_json,
  seasons_json=excluded.seasons_json,
  wake_up_time=excluded.wake_up_time,
  crowd_tolerance=excluded.crowd_tolerance
`,
		p.MemberID, p.DisplayName, string(p.TravelStyle), p.DailyBudget, string(br),
		string(p.Pacing), string(p.Accommodation), string(acts), string(seasons),
		string(p.WakeUpTime), string(p.CrowdTolerance), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) GetTraveler(id string) (domain.PreferenceRecord, bool, error) {
	row := s.db.QueryRow(`
SELECT member_id, display_name, travel_style, daily_budget, budget_range_json, pacing, accommodation, activities_json, seasons_json, wake_up_time, crowd_tolerance
FROM travelers WHERE member_id = ?
`, id)
	p, err := scanTraveler(row)
	if err == sql.ErrNoRows {
		return domain.PreferenceRecord{}, false, nil
	}
	if err != nil {
		return domain.PreferenceRecord{}, false, err
	}
	return p, true, nil
}

// ListTravelers returns all members in insertion order. That order is the
// member order conflict records come out in.
func (s *SQLiteStore) ListTravelers() ([]domain.PreferenceRecord, error) {
	rows, err := s.db.Query(`
SELECT member_id, display_name, travel_style, daily_budget, budget_range_json, pacing, accommodation, activities_json, seasons_json, wake_up_time, crowd_tolerance
FROM travelers
ORDER BY created_at, member_id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PreferenceRecord
	for rows.Next() {
		p, err := scanTraveler(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteTraveler(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM travelers WHERE member_id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTraveler(r rowScanner) (domain.PreferenceRecord, error) {
	var p domain.PreferenceRecord
	var brJSON, actsJSON, seasonsJSON string

	err := r.Scan(
		&p.MemberID, &p.DisplayName, &p.TravelStyle, &p.DailyBudget, &brJSON,
		&p.Pacing, &p.Accommodation, &actsJSON, &seasonsJSON,
		&p.WakeUpTime, &p.CrowdTolerance,
	)
	if err != nil {
		return domain.PreferenceRecord{}, err
	}
	_ = json.Unmarshal([]byte(brJSON), &p.BudgetRange)
	_ = json.Unmarshal([]byte(actsJSON), &p.Activities)
	_ = json.Unmarshal([]byte(seasonsJSON), &p.PreferredSeasons)
	return p, nil
}

// ---- Destinations ----

func (s *SQLiteStore) CountDestinations() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM destinations`).Scan(&n)
	return n, err
}

// UpsertManyDestinations inserts a seed catalog without duplicating by id.
func (s *SQLiteStore) UpsertManyDestinations(items []domain.Candidate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO destinations (id, name, region, cost, season, interests_json, description)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range items {
		in, _ := json.Marshal(c.Interests)
		if _, err := stmt.Exec(c.ID, c.Name, c.Region, c.Cost, string(c.Season), string(in), c.Description); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) CreateDestination(c domain.Candidate) (domain.Candidate, error) {
	if c.ID == "" {
		c.ID = fmt.Sprintf("d-%d", time.Now().UnixNano())
	}
	in, _ := json.Marshal(c.Interests)
	_, err := s.db.Exec(`
INSERT INTO destinations (id, name, region, cost, season, interests_json, description)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.Name, c.Region, c.Cost, string(c.Season), string(in), c.Description)
	return c, err
}

func (s *SQLiteStore) GetDestination(id string) (domain.Candidate, bool, error) {
	var c domain.Candidate
	var inJSON string

	err := s.db.QueryRow(`
SELECT id, name, region, cost, season, interests_json, description
FROM destinations WHERE id = ?
`, id).Scan(&c.ID, &c.Name, &c.Region, &c.Cost, &c.Season, &inJSON, &c.Description)
	if err == sql.ErrNoRows {
		return domain.Candidate{}, false, nil
	}
	if err != nil {
		return domain.Candidate{}, false, err
	}
	_ = json.Unmarshal([]byte(inJSON), &c.Interests)
	return c, true, nil
}

func (s *SQLiteStore) DeleteDestination(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM destinations WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

// ListDestinationsFiltered pages through the catalog with optional filters.
// interest matches destinations whose interest list contains the given type.
func (s *SQLiteStore) ListDestinationsFiltered(
	limit, offset int,
	region string,
	season domain.Season,
	interest domain.ActivityType,
	maxCost float64,
	sortBy string,
) ([]domain.Candidate, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := make([]string, 0, 4)
	args := make([]any, 0, 8)

	if strings.TrimSpace(region) != "" {
		where = append(where, "LOWER(region) LIKE '%' || LOWER(?) || '%'")
		args = append(args, region)
	}
	if season != "" {
		where = append(where, "season = ?")
		args = append(args, string(season))
	}
	if interest != "" {
		// interests_json is a JSON array of strings; a quoted substring
		// match is enough for the closed enum vocabulary.
		where = append(where, "interests_json LIKE '%\"' || ? || '\"%'")
		args = append(args, string(interest))
	}
	if maxCost > 0 {
		where = append(where, "cost <= ?")
		args = append(args, maxCost)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	orderSQL := "ORDER BY id"
	switch sortBy {
	case "cost_asc":
		orderSQL = "ORDER BY cost ASC"
	case "cost_desc":
		orderSQL = "ORDER BY cost DESC"
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM destinations "+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rowsSQL := `
SELECT id, name, region, cost, season, interests_json, description
FROM destinations
` + whereSQL + "\n" + orderSQL + "\nLIMIT ? OFFSET ?"
	rowsArgs := append(append([]any{}, args...), limit, offset)

	rows, err := s.db.Query(rowsSQL, rowsArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		var inJSON string
		if err := rows.Scan(&c.ID, &c.Name, &c.Region, &c.Cost, &c.Season, &inJSON, &c.Description); err != nil {
			return nil, 0, err
		}
		_ = json.Unmarshal([]byte(inJSON), &c.Interests)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
