package dailyupdate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedAbuthar/gas/feature/dailyupdate/models"
)

func testRoster() []Member {
	return []Member{
		{ID: "m1", Name: "Arun"},
		{ID: "m2", Name: "Bala"},
	}
}

func fixedEngine(t *testing.T) *Engine {
	t.Helper()
	en := NewEngine(testRoster())
	en.today = func() string { return "2024-03-15" }
	return en
}

func TestSelectMemberDoesNotInsert(t *testing.T) {
	en := fixedEngine(t)

	entry, err := en.SelectMember("m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", entry.MemberID)
	assert.Equal(t, "Arun", entry.MemberName)
	assert.Equal(t, "2024-03-15", entry.Date)
	assert.Zero(t, en.Len(), "selecting alone must not add to the batch")
}

func TestSelectMemberUnknown(t *testing.T) {
	en := fixedEngine(t)

	_, err := en.SelectMember("ghost")
	assert.Error(t, err)
}

func TestFirstMutationInsertsEntry(t *testing.T) {
	en := fixedEngine(t)

	entry, err := en.UpdateCylinderLine("m1", models.Size14_2Kg, FieldAmount, 905)
	require.NoError(t, err)
	assert.Equal(t, 1, en.Len())

	again, err := en.SelectMember("m1")
	require.NoError(t, err)
	assert.Same(t, entry, again, "subsequent selects return the batch entry")
}

func TestUpdateCylinderLineRecomputes(t *testing.T) {
	en := fixedEngine(t)

	_, err := en.UpdateCylinderLine("m1", models.Size14_2Kg, FieldAmount, "905")
	require.NoError(t, err)
	entry, err := en.UpdateCylinderLine("m1", models.Size14_2Kg, FieldQuantity, 10)
	require.NoError(t, err)

	assert.True(t, entry.Cylinder14_2Kg.Total.Equal(decimal.NewFromInt(9050)))
	assert.True(t, entry.CylinderTotal.Equal(decimal.NewFromInt(9050)))
	assert.True(t, entry.GrandTotal.Equal(decimal.NewFromInt(9050)))
}

func TestUpdateCylinderLineQuantityTruncated(t *testing.T) {
	en := fixedEngine(t)

	entry, err := en.UpdateCylinderLine("m1", models.Size10Kg, FieldQuantity, "7.9")
	require.NoError(t, err)
	assert.True(t, entry.Cylinder10Kg.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestUpdateCylinderLineClampsNegative(t *testing.T) {
	en := fixedEngine(t)

	entry, err := en.UpdateCylinderLine("m1", models.Size5Kg, FieldAmount, -450)
	require.NoError(t, err)
	assert.True(t, entry.Cylinder5Kg.Amount.IsZero())
}

func TestUpdateCylinderLineGarbageBecomesZero(t *testing.T) {
	en := fixedEngine(t)

	entry, err := en.UpdateCylinderLine("m1", models.Size19Kg, FieldAmount, "not a number")
	require.NoError(t, err)
	assert.True(t, entry.Cylinder19Kg.Amount.IsZero())
}

func TestUpdateCylinderLineUnknownFieldAndSize(t *testing.T) {
	en := fixedEngine(t)

	_, err := en.UpdateCylinderLine("m1", models.Size14_2Kg, "total", 5)
	assert.Error(t, err)

	_, err = en.UpdateCylinderLine("m1", models.CylinderSize("42kg"), FieldAmount, 5)
	assert.Error(t, err)
}

func TestUpdatePayment(t *testing.T) {
	en := fixedEngine(t)

	_, err := en.UpdateCylinderLine("m1", models.Size14_2Kg, FieldAmount, 905)
	require.NoError(t, err)
	_, err = en.UpdateCylinderLine("m1", models.Size14_2Kg, FieldQuantity, 10)
	require.NoError(t, err)
	_, err = en.UpdatePayment("m1", FieldOnlinePayment, 500)
	require.NoError(t, err)
	entry, err := en.UpdatePayment("m1", FieldCash, "200")
	require.NoError(t, err)

	assert.True(t, entry.GrandTotal.Equal(decimal.NewFromInt(9750)))

	_, err = en.UpdatePayment("m1", "cheque", 10)
	assert.Error(t, err)
}

func TestUpdateCashBreakdown(t *testing.T) {
	en := fixedEngine(t)

	_, err := en.UpdateCashBreakdown("m1", "denomination500", 2)
	require.NoError(t, err)
	_, err = en.UpdateCashBreakdown("m1", "denomination100", 4)
	require.NoError(t, err)
	entry, err := en.UpdateCashBreakdown("m1", "coins", "5.50")
	require.NoError(t, err)

	assert.True(t, entry.CashDenomination.GrandTotal.Equal(decimal.NewFromFloat(1405.50)))
	assert.True(t, entry.GrandTotal.IsZero(), "breakdown never feeds the entry grand total")
}

func TestUpdateCashBreakdownNegativeAdjustments(t *testing.T) {
	en := fixedEngine(t)

	// Note counts clamp at zero, carry-over adjustments keep their sign.
	entry, err := en.UpdateCashBreakdown("m1", "denomination50", -3)
	require.NoError(t, err)
	assert.True(t, entry.CashDenomination.Denomination50.IsZero())

	entry, err = en.UpdateCashBreakdown("m1", "oldBalance", -300)
	require.NoError(t, err)
	assert.True(t, entry.CashDenomination.OldBalance.Equal(decimal.NewFromInt(-300)))
	assert.True(t, entry.CashDenomination.GrandTotal.Equal(decimal.NewFromInt(-300)))

	_, err = en.UpdateCashBreakdown("m1", "denomination2000", 1)
	assert.Error(t, err)
}

func TestEntriesSortedByName(t *testing.T) {
	en := fixedEngine(t)

	_, err := en.UpdateCylinderLine("m2", models.Size14_2Kg, FieldAmount, 1)
	require.NoError(t, err)
	_, err = en.UpdateCylinderLine("m1", models.Size14_2Kg, FieldAmount, 1)
	require.NoError(t, err)

	entries := en.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Arun", entries[0].MemberName)
	assert.Equal(t, "Bala", entries[1].MemberName)
}

func TestLoadRecomputesEntries(t *testing.T) {
	en := fixedEngine(t)

	stale := models.NewLedgerEntry("temp_x", "Visitor", "2024-03-15")
	stale.Cylinder14_2Kg.Amount = decimal.NewFromInt(905)
	stale.Cylinder14_2Kg.Quantity = decimal.NewFromInt(2)

	en.Load(map[string]*models.LedgerEntry{"temp_x": stale})

	require.Equal(t, 1, en.Len())
	got := en.Entries()[0]
	assert.True(t, got.GrandTotal.Equal(decimal.NewFromInt(1810)))
}

func TestLoadDropsNilEntries(t *testing.T) {
	en := fixedEngine(t)

	en.Load(map[string]*models.LedgerEntry{
		"m1":     models.NewLedgerEntry("m1", "Arun", "2024-03-15"),
		"broken": nil,
	})

	assert.Equal(t, 1, en.Len())
}
