package models

// Course represents a course with exactly one owning teacher. Enrollment is
// kept in the 'enrollments' relation, not embedded here.
type Course struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	TeacherID int64  `json:"teacher_id" db:"teacher_id"`

	// Relations (populated when needed)
	TeacherName string `json:"teacher_name,omitempty"`
}
