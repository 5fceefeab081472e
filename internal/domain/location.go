package domain

import "time"

// Location is a user's last known coordinate. A user may accumulate
// historical rows, but at most one row per user has is_active = true;
// only that row counts for matching.
type Location struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}
