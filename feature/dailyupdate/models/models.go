package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CylinderSize identifies one of the four fixed cylinder variants sold by
// the agency.
type CylinderSize string

const (
	Size14_2Kg CylinderSize = "14.2kg"
	Size10Kg   CylinderSize = "10kg"
	Size5Kg    CylinderSize = "5kg"
	Size19Kg   CylinderSize = "19kg"
)

// AllSizes lists the cylinder variants in their reporting order.
var AllSizes = []CylinderSize{Size14_2Kg, Size10Kg, Size5Kg, Size19Kg}

// Label returns the human column label used in spreadsheets ("14.2 Kg" etc).
func (s CylinderSize) Label() string {
	switch s {
	case Size14_2Kg:
		return "14.2 Kg"
	case Size10Kg:
		return "10 Kg"
	case Size5Kg:
		return "5 Kg"
	case Size19Kg:
		return "19 Kg"
	default:
		return string(s)
	}
}

// CylinderLine is one size variant's unit price, quantity, and derived total.
type CylinderLine struct {
	// Amount is the unit price per cylinder.
	Amount decimal.Decimal `json:"amount"`
	// Quantity is the number of cylinders delivered.
	Quantity decimal.Decimal `json:"quantity"`
	// Total is derived: Amount × Quantity. Never set directly.
	Total decimal.Decimal `json:"total"`
}

func (l *CylinderLine) recompute() {
	l.Total = l.Amount.Mul(l.Quantity)
}

// CashBreakdown is the banknote/coin count structure used to manually
// reconcile physical cash against the declared cash figure. It is a
// reconciliation aid only; it never feeds the entry's grand total.
type CashBreakdown struct {
	Denomination500 decimal.Decimal `json:"denomination500"`
	Denomination200 decimal.Decimal `json:"denomination200"`
	Denomination100 decimal.Decimal `json:"denomination100"`
	Denomination50  decimal.Decimal `json:"denomination50"`
	Denomination20  decimal.Decimal `json:"denomination20"`
	Denomination10  decimal.Decimal `json:"denomination10"`
	// OldPending, OldBalance and Coins are free-form adjustments; unlike the
	// note counts they may carry either sign.
	OldPending decimal.Decimal `json:"oldPending"`
	OldBalance decimal.Decimal `json:"oldBalance"`
	Coins      decimal.Decimal `json:"coins"`
	// GrandTotal is the derived denomination total:
	// sum of count×face value plus the three adjustments.
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

var noteFaceValues = []struct {
	value decimal.Decimal
	count func(*CashBreakdown) decimal.Decimal
}{
	{decimal.NewFromInt(500), func(b *CashBreakdown) decimal.Decimal { return b.Denomination500 }},
	{decimal.NewFromInt(200), func(b *CashBreakdown) decimal.Decimal { return b.Denomination200 }},
	{decimal.NewFromInt(100), func(b *CashBreakdown) decimal.Decimal { return b.Denomination100 }},
	{decimal.NewFromInt(50), func(b *CashBreakdown) decimal.Decimal { return b.Denomination50 }},
	{decimal.NewFromInt(20), func(b *CashBreakdown) decimal.Decimal { return b.Denomination20 }},
	{decimal.NewFromInt(10), func(b *CashBreakdown) decimal.Decimal { return b.Denomination10 }},
}

func (b *CashBreakdown) recompute() {
	total := decimal.Zero
	for _, note := range noteFaceValues {
		total = total.Add(note.count(b).Mul(note.value))
	}
	b.GrandTotal = total.Add(b.OldPending).Add(b.OldBalance).Add(b.Coins)
}

// LedgerEntry is one member's full daily reconciliation record: cylinder
// sales, payments, and the cash denomination breakdown.
//
// MemberName is a point-in-time snapshot taken when the entry is created;
// it is deliberately not refreshed if the member record changes later.
type LedgerEntry struct {
	MemberID   string `json:"memberId"`
	MemberName string `json:"memberName"`
	Date       string `json:"date"` // YYYY-MM-DD

	Cylinder14_2Kg CylinderLine `json:"cylinder14_2kg"`
	Cylinder10Kg   CylinderLine `json:"cylinder10kg"`
	Cylinder5Kg    CylinderLine `json:"cylinder5kg"`
	Cylinder19Kg   CylinderLine `json:"cylinder19kg"`

	// CylinderTotal is derived: the sum of the four line totals.
	CylinderTotal decimal.Decimal `json:"cylinderTotal"`

	OnlinePayment decimal.Decimal `json:"onlinePayment"`
	Cash          decimal.Decimal `json:"cash"`

	CashDenomination CashBreakdown `json:"cashDenomination"`

	// GrandTotal is derived: CylinderTotal + OnlinePayment + Cash.
	// The cash denomination breakdown never contributes to it.
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// NewLedgerEntry returns a zero-valued entry seeded with the member snapshot
// and date.
func NewLedgerEntry(memberID, memberName, date string) *LedgerEntry {
	e := &LedgerEntry{
		MemberID:   memberID,
		MemberName: memberName,
		Date:       date,
	}
	e.Recompute()
	return e
}

// Line returns the cylinder line for the given size.
func (e *LedgerEntry) Line(size CylinderSize) *CylinderLine {
	switch size {
	case Size14_2Kg:
		return &e.Cylinder14_2Kg
	case Size10Kg:
		return &e.Cylinder10Kg
	case Size5Kg:
		return &e.Cylinder5Kg
	case Size19Kg:
		return &e.Cylinder19Kg
	default:
		return nil
	}
}

// Recompute rederives every derived field from the current raw inputs.
// It is called synchronously on every mutation; there is no cached derived
// state that can go stale while visible.
func (e *LedgerEntry) Recompute() {
	total := decimal.Zero
	for _, size := range AllSizes {
		line := e.Line(size)
		line.recompute()
		total = total.Add(line.Total)
	}
	e.CylinderTotal = total
	e.CashDenomination.recompute()
	e.GrandTotal = e.CylinderTotal.Add(e.OnlinePayment).Add(e.Cash)
}

// Batch statuses.
const (
	StatusCompleted = "completed"
)

// Batch is the persisted form of one day's updates: a metadata wrapper
// around the full set of ledger entries, serialized as a single JSON string
// so one document always holds one internally consistent snapshot.
type Batch struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

// Entries decodes the ledger entries carried in the batch description.
// JSON nulls in the stored blob are dropped rather than decoded as nil
// pointers.
func (b *Batch) Entries() (map[string]*LedgerEntry, error) {
	entries := make(map[string]*LedgerEntry)
	if err := json.Unmarshal([]byte(b.Description), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode batch %s: %w", b.ID, err)
	}
	for id, e := range entries {
		if e == nil {
			delete(entries, id)
			continue
		}
		e.Recompute()
	}
	return entries, nil
}

// SetEntries serializes the ledger entries into the batch description.
func (b *Batch) SetEntries(entries map[string]*LedgerEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode batch entries: %w", err)
	}
	b.Description = string(data)
	return nil
}
