package engine

import (
	"fmt"

	"github.com/jomtravel/group-trip-engine/internal/domain"
)

// DetectConflicts evaluates every member against the target with the same
// rule set as the scorer and emits one record per failed criterion. Severity
// is fixed by criterion: budget high, interest medium, season low. Records
// come out in input member order, then budget/interest/season within a
// member. Detection never fails: a member missing the data for a check
// passes that check.
//
// No deduplication and no cross-member reasoning happen here; two members
// each report their own budget conflict, and the detector never says
// "A and B disagree with each other".
func DetectConflicts(members []domain.PreferenceRecord, target MatchTarget) []domain.ConflictRecord {
	var out []domain.ConflictRecord
	for _, m := range members {
		c := evaluate(m, target)
		name := m.DisplayName
		if name == "" {
			name = m.MemberID
		}

		if !c.budget {
			out = append(out, domain.ConflictRecord{
				MemberID: m.MemberID,
				Description: fmt.Sprintf("%s's budget tops out at RM%.0f, below the RM%.0f needed for %s",
					name, m.BudgetRange.Max, target.Cost, target.Label),
				Severity: domain.SeverityHigh,
			})
		}
		if !c.interest {
			out = append(out, domain.ConflictRecord{
				MemberID:    m.MemberID,
				Description: fmt.Sprintf("%s shares no activity interests with %s", name, target.Label),
				Severity:    domain.SeverityMedium,
			})
		}
		if !c.season {
			out = append(out, domain.ConflictRecord{
				MemberID:    m.MemberID,
				Description: fmt.Sprintf("%s's preferred travel seasons do not line up with %s", name, target.Label),
				Severity:    domain.SeverityLow,
			})
		}
	}
	return out
}
