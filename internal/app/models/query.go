package models

import (
	"time"
)

// Query is a student question tied to one course. It moves Pending to
// Answered exactly once; Answer and AnsweredAt are set together with the
// Answered flag, never independently.
type Query struct {
	ID         int64      `json:"id" db:"id"`
	CourseID   int64      `json:"course_id" db:"course_id"`
	StudentID  int64      `json:"student_id" db:"student_id"`
	Question   string     `json:"question" db:"question"`
	Answer     *string    `json:"answer" db:"answer"`
	Answered   bool       `json:"answered" db:"answered"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	AnsweredAt *time.Time `json:"answered_at" db:"answered_at"`

	// Display fields joined from courses/users (populated by list queries)
	CourseName  string `json:"course_name,omitempty"`
	StudentName string `json:"student_name,omitempty"`
	StudentRoll string `json:"student_roll,omitempty"`
}

// Pending reports whether the query still awaits an answer
func (q *Query) Pending() bool {
	return !q.Answered
}

// RosterEntry is one student in a course roster: someone who has asked at
// least one question there, flagged if any of them is still pending.
type RosterEntry struct {
	StudentID   int64  `json:"student_id" db:"student_id"`
	StudentName string `json:"student_name" db:"student_name"`
	StudentRoll string `json:"student_roll" db:"student_roll"`
	HasPending  bool   `json:"has_pending" db:"has_pending"`
}
