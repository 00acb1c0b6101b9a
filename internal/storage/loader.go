package storage

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

// LoadDestinationsFromFile reads the seed destination catalog from a JSON
// file.
func LoadDestinationsFromFile(path string) ([]domain.Candidate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read destinations file: %w", err)
	}

	var items []domain.Candidate
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("unmarshal destinations: %w", err)
	}
	for _, c := range items {
		if c.Season != "" && !domain.ValidSeasons[c.Season] {
			return nil, fmt.Errorf("destination %s: unknown season %q", c.ID, c.Season)
		}
		for _, in := range c.Interests {
			if !domain.ValidActivityTypes[in] {
				return nil, fmt.Errorf("destination %s: unknown interest %q", c.ID, in)
			}
		}
	}
	return items, nil
}
