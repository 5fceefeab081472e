package domain

import "time"

// Interest is a node in the hierarchical interest taxonomy. Level 0 nodes
// have no parent; deeper nodes reference an existing parent. Deleting a
// parent cascades to its children.
type Interest struct {
	ID          int       `json:"id" db:"id"`
	ParentID    *int      `json:"parent_id" db:"parent_id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Level       int       `json:"level" db:"level"`
	IsCustom    bool      `json:"is_custom" db:"is_custom"`
	Icon        string    `json:"icon" db:"icon"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// UserInterest joins a user to a declared interest, unique per pair.
type UserInterest struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	InterestID int       `json:"interest_id" db:"interest_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
