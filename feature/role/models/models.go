package models

// Record is one staff role definition.
type Record struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Department  string   `json:"department"`
	Permissions []string `json:"permissions"`
}
