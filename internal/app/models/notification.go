package models

import (
	"time"
)

// Notification tells the asking student their query was answered. There is
// at most one per query (unique on query_id); only the read flag mutates,
// and only from false to true.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	QueryID   int64     `json:"query_id" db:"query_id"`
	CourseID  int64     `json:"course_id" db:"course_id"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
