package dailyupdate

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MohamedAbuthar/gas/feature/dailyupdate/models"
)

// PlaceholderPrefix marks entry ids synthesized for imported rows that
// matched no roster member.
const PlaceholderPrefix = "temp_"

// ReconcileWithRoster rekeys an imported batch from sheet member names to
// roster member ids. Names match case-insensitively after trimming
// whitespace. Rows with no roster match are kept under a fresh placeholder id
// so no imported figures are lost; the placeholder prefix makes them easy to
// spot downstream.
func ReconcileWithRoster(imported map[string]*models.LedgerEntry, roster []Member) map[string]*models.LedgerEntry {
	result := make(map[string]*models.LedgerEntry, len(imported))

	for name, entry := range imported {
		m, ok := matchMember(name, roster)
		if ok {
			entry.MemberID = m.ID
			entry.MemberName = m.Name
		} else {
			entry.MemberID = PlaceholderPrefix + uuid.NewString()
		}
		result[entry.MemberID] = entry
	}

	return result
}

// UnmatchedCount reports how many entries in a reconciled batch carry a
// placeholder id.
func UnmatchedCount(entries map[string]*models.LedgerEntry) int {
	n := 0
	for id := range entries {
		if strings.HasPrefix(id, PlaceholderPrefix) {
			n++
		}
	}
	return n
}

func matchMember(name string, roster []Member) (Member, bool) {
	want := strings.TrimSpace(name)
	for _, m := range roster {
		if strings.EqualFold(strings.TrimSpace(m.Name), want) {
			return m, true
		}
	}
	return Member{}, false
}
