package engine

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

// PhraseBank maps an activity type to the human-readable titles the
// synthesizer picks from when filling a slot of that type.
type PhraseBank map[domain.ActivityType][]string

// DefaultPhraseBank returns the built-in titles.
func DefaultPhraseBank() PhraseBank {
	return PhraseBank{
		domain.ActivityAdventure: {
			"Jungle trekking", "White-water rafting", "Zipline canopy tour", "Sunrise hike",
		},
		domain.ActivityCulture: {
			"Heritage walking tour", "Temple and mosque visit", "Batik painting workshop", "Local museum visit",
		},
		domain.ActivityNature: {
			"Mangrove river cruise", "Waterfall picnic", "Firefly watching", "Island hopping",
		},
		domain.ActivityFood: {
			"Street food tour", "Cooking class", "Night market food crawl", "Kopitiam breakfast",
		},
		domain.ActivityRelaxation: {
			"Spa afternoon", "Beach lounging", "Hot spring soak", "Sunset picnic",
		},
		domain.ActivityNightlife: {
			"Rooftop bar hop", "Live music night", "Night bazaar stroll", "Karaoke session",
		},
		domain.ActivityShopping: {
			"Mall shopping spree", "Weekend market browse", "Souvenir hunt", "Outlet village trip",
		},
	}
}

// LoadPhraseBankFromFile overlays titles from a JSON file onto the defaults,
// falling back to defaults alone on read errors.
func LoadPhraseBankFromFile(path string) (PhraseBank, error) {
	bank := DefaultPhraseBank()
	b, err := os.ReadFile(path)
	if err != nil {
		return bank, fmt.Errorf("read phrase bank file: %w", err)
	}
	var overlay PhraseBank
	if err := json.Unmarshal(b, &overlay); err != nil {
		return bank, fmt.Errorf("unmarshal phrase bank: %w", err)
	}
	for t, phrases := range overlay {
		if len(phrases) > 0 {
			bank[t] = phrases
		}
	}
	return bank, nil
}

// durations gives each activity type a rough time budget shown on the slot.
var durations = map[domain.ActivityType]string{
	domain.ActivityAdventure:  "4 hours",
	domain.ActivityCulture:    "2 hours",
	domain.ActivityNature:     "3 hours",
	domain.ActivityFood:       "2 hours",
	domain.ActivityRelaxation: "3 hours",
	domain.ActivityNightlife:  "3 hours",
	domain.ActivityShopping:   "2 hours",
}

func durationFor(t domain.ActivityType) string {
	if d, ok := durations[t]; ok {
		return d
	}
	return "2 hours"
}
