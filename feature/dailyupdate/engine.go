package dailyupdate

import (
	"fmt"
	"sort"
	"time"

	"github.com/MohamedAbuthar/gas/core/utils"
	"github.com/MohamedAbuthar/gas/feature/dailyupdate/models"
)

// Member is the minimal roster view the engine needs.
type Member struct {
	ID   string
	Name string
}

// Cylinder line field names accepted by UpdateCylinderLine.
const (
	FieldAmount   = "amount"
	FieldQuantity = "quantity"
)

// Payment field names accepted by UpdatePayment.
const (
	FieldOnlinePayment = "onlinePayment"
	FieldCash          = "cash"
)

// Engine maintains one in-progress ledger entry per member and guarantees
// every derived field is recomputed before any read, export, or persistence
// operation.
//
// The engine is owned by a single task; edits are always scoped to one
// selected member at a time, so it needs no locking.
type Engine struct {
	roster  map[string]Member
	entries map[string]*models.LedgerEntry
	today   func() string
}

// NewEngine creates an engine over the given member roster.
func NewEngine(roster []Member) *Engine {
	byID := make(map[string]Member, len(roster))
	for _, m := range roster {
		byID[m.ID] = m
	}
	return &Engine{
		roster:  byID,
		entries: make(map[string]*models.LedgerEntry),
		today: func() string {
			return time.Now().Format("2006-01-02")
		},
	}
}

// SelectMember returns the in-progress entry for the member, or a zero-valued
// entry seeded from the roster and today's date. Selecting alone never adds
// the entry to the batch; that happens on the first field edit, so an
// untouched selection cannot produce a spurious persisted row.
func (en *Engine) SelectMember(memberID string) (*models.LedgerEntry, error) {
	if entry, ok := en.entries[memberID]; ok {
		return entry, nil
	}
	m, ok := en.roster[memberID]
	if !ok {
		return nil, fmt.Errorf("member %s not in roster", memberID)
	}
	return models.NewLedgerEntry(m.ID, m.Name, en.today()), nil
}

// entry returns the batch entry for the member, inserting a fresh one on the
// first mutation.
func (en *Engine) entry(memberID string) (*models.LedgerEntry, error) {
	if e, ok := en.entries[memberID]; ok {
		return e, nil
	}
	m, ok := en.roster[memberID]
	if !ok {
		return nil, fmt.Errorf("member %s not in roster", memberID)
	}
	e := models.NewLedgerEntry(m.ID, m.Name, en.today())
	en.entries[memberID] = e
	return e, nil
}

// UpdateCylinderLine sets the unit price or quantity on one cylinder size and
// recomputes the entry. Values coerce leniently: non-numeric input becomes
// zero, negatives are clamped, and quantities are truncated to whole numbers.
func (en *Engine) UpdateCylinderLine(memberID string, size models.CylinderSize, field string, value any) (*models.LedgerEntry, error) {
	e, err := en.entry(memberID)
	if err != nil {
		return nil, err
	}
	line := e.Line(size)
	if line == nil {
		return nil, fmt.Errorf("unknown cylinder size %q", size)
	}

	v := utils.NonNegative(utils.ToDecimal(value))
	switch field {
	case FieldAmount:
		line.Amount = v
	case FieldQuantity:
		line.Quantity = v.Truncate(0)
	default:
		return nil, fmt.Errorf("unknown cylinder field %q", field)
	}

	e.Recompute()
	return e, nil
}

// UpdatePayment sets the online payment or cash figure and recomputes the
// entry.
func (en *Engine) UpdatePayment(memberID, field string, value any) (*models.LedgerEntry, error) {
	e, err := en.entry(memberID)
	if err != nil {
		return nil, err
	}

	v := utils.NonNegative(utils.ToDecimal(value))
	switch field {
	case FieldOnlinePayment:
		e.OnlinePayment = v
	case FieldCash:
		e.Cash = v
	default:
		return nil, fmt.Errorf("unknown payment field %q", field)
	}

	e.Recompute()
	return e, nil
}

// UpdateCashBreakdown sets one denomination-breakdown field and recomputes
// the entry. The breakdown is informational reconciliation: it updates the
// denomination total but never the entry's grand total.
func (en *Engine) UpdateCashBreakdown(memberID, field string, value any) (*models.LedgerEntry, error) {
	e, err := en.entry(memberID)
	if err != nil {
		return nil, err
	}

	v := utils.ToDecimal(value)
	b := &e.CashDenomination
	switch field {
	case "denomination500":
		b.Denomination500 = utils.NonNegative(v).Truncate(0)
	case "denomination200":
		b.Denomination200 = utils.NonNegative(v).Truncate(0)
	case "denomination100":
		b.Denomination100 = utils.NonNegative(v).Truncate(0)
	case "denomination50":
		b.Denomination50 = utils.NonNegative(v).Truncate(0)
	case "denomination20":
		b.Denomination20 = utils.NonNegative(v).Truncate(0)
	case "denomination10":
		b.Denomination10 = utils.NonNegative(v).Truncate(0)
	case "oldPending":
		b.OldPending = v
	case "oldBalance":
		b.OldBalance = v
	case "coins":
		b.Coins = v
	default:
		return nil, fmt.Errorf("unknown breakdown field %q", field)
	}

	e.Recompute()
	return e, nil
}

// SetDate changes the entry's date.
func (en *Engine) SetDate(memberID, date string) (*models.LedgerEntry, error) {
	e, err := en.entry(memberID)
	if err != nil {
		return nil, err
	}
	e.Date = date
	return e, nil
}

// Entries returns the batch entries ordered by member name for deterministic
// export.
func (en *Engine) Entries() []*models.LedgerEntry {
	entries := make([]*models.LedgerEntry, 0, len(en.entries))
	for _, e := range en.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].MemberName != entries[j].MemberName {
			return entries[i].MemberName < entries[j].MemberName
		}
		return entries[i].MemberID < entries[j].MemberID
	})
	return entries
}

// Batch returns the batch keyed by member id, ready for persistence.
func (en *Engine) Batch() map[string]*models.LedgerEntry {
	out := make(map[string]*models.LedgerEntry, len(en.entries))
	for id, e := range en.entries {
		out[id] = e
	}
	return out
}

// Load replaces the batch with the given entries, recomputing every derived
// field. Keys outside the roster are accepted: the import path supplies
// placeholder ids for unmatched rows. Nil entries are dropped.
func (en *Engine) Load(entries map[string]*models.LedgerEntry) {
	en.entries = make(map[string]*models.LedgerEntry, len(entries))
	for id, e := range entries {
		if e == nil {
			continue
		}
		e.Recompute()
		en.entries[id] = e
	}
}

// Len reports the number of entries currently in the batch.
func (en *Engine) Len() int {
	return len(en.entries)
}
