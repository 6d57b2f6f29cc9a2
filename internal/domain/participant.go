package domain

import "time"

const (
	DefaultDepartment = "General"
	UnknownDepartment = "unknown"
)

type Participant struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Department    string    `json:"department"`
	Email         string    `json:"email,omitempty"`
	PINCode       string    `json:"-"`
	IsChosen      bool      `json:"is_chosen"`
	RecipientID   *uint     `json:"recipient_id,omitempty"`
	RecipientName string    `json:"recipient_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasDrawn reports whether the participant already owns an assignment.
func (p Participant) HasDrawn() bool {
	return p.RecipientID != nil
}

type PoolStats struct {
	Total    int64 `json:"total"`
	Drawn    int64 `json:"drawn"`
	Claimed  int64 `json:"claimed"`
	Orphaned int64 `json:"orphaned"`
}
