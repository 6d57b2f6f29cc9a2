package domain

import "time"

type DrawRequest struct {
	Name       string
	Phone      string
	PIN        string
	Department string
}

// Assignment is the outcome of a draw. When AlreadyAssigned is set the
// recipient's department is not known and RecipientDepartment is
// UnknownDepartment.
type Assignment struct {
	AlreadyAssigned     bool
	RecipientID         uint
	RecipientName       string
	RecipientDepartment string
}

type PoolEvent struct {
	Type  string    `json:"type"`
	Stats PoolStats `json:"stats"`
	At    time.Time `json:"at"`
}
