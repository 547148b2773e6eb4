package dailyupdate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedAbuthar/gas/feature/dailyupdate/models"
)

func TestReconcileWithRosterMatchesLoosely(t *testing.T) {
	imported := map[string]*models.LedgerEntry{
		"  arun  ": models.NewLedgerEntry("", "  arun  ", "2024-03-15"),
		"BALA":     models.NewLedgerEntry("", "BALA", "2024-03-15"),
	}

	batch := ReconcileWithRoster(imported, testRoster())

	require.Len(t, batch, 2)
	require.Contains(t, batch, "m1")
	require.Contains(t, batch, "m2")
	assert.Equal(t, "Arun", batch["m1"].MemberName, "roster spelling wins")
	assert.Equal(t, "Bala", batch["m2"].MemberName)
}

func TestReconcileWithRosterKeepsUnmatchedRows(t *testing.T) {
	imported := map[string]*models.LedgerEntry{
		"Visitor": models.NewLedgerEntry("", "Visitor", "2024-03-15"),
	}

	batch := ReconcileWithRoster(imported, testRoster())

	require.Len(t, batch, 1)
	for id, e := range batch {
		assert.True(t, strings.HasPrefix(id, "temp_"))
		assert.Equal(t, id, e.MemberID)
		assert.Equal(t, "Visitor", e.MemberName)
	}
}

func TestReconcileWithRosterPlaceholdersAreUnique(t *testing.T) {
	imported := map[string]*models.LedgerEntry{
		"Visitor One": models.NewLedgerEntry("", "Visitor One", "2024-03-15"),
		"Visitor Two": models.NewLedgerEntry("", "Visitor Two", "2024-03-15"),
	}

	batch := ReconcileWithRoster(imported, nil)
	assert.Len(t, batch, 2)
}
