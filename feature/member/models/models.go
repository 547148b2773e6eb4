package models

// Member statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Record is one team member (delivery staff or office) in the roster.
type Record struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	JoinDate   string `json:"joinDate"` // YYYY-MM-DD
	Status     string `json:"status"`   // active | inactive
}

// IsActive reports whether the member should appear in operational rosters.
func (r Record) IsActive() bool {
	return r.Status == StatusActive
}
