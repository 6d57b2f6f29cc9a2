package domain

import "time"

// Registration is a join request waiting for admin approval.
type Registration struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}
