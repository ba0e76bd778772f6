package dto

import (
	"time"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
)

// CreateQueryRequest is the body of POST /queries
type CreateQueryRequest struct {
	CourseID int64  `json:"course_id" binding:"required"`
	Question string `json:"question" binding:"required,notblank"`
}

// CreateQueryResponse carries the id of the newly created query
type CreateQueryResponse struct {
	ID int64 `json:"id"`
}

// AnswerQueryRequest is the body of PATCH /queries/:id/answer
type AnswerQueryRequest struct {
	Answer string `json:"answer" binding:"required,notblank"`
}

// QueryResponse is the query shape the client renders
type QueryResponse struct {
	ID          int64      `json:"id"`
	CourseID    int64      `json:"course_id"`
	CourseName  string     `json:"course_name"`
	StudentID   int64      `json:"student_id"`
	StudentName string     `json:"student_name"`
	StudentRoll string     `json:"student_roll"`
	Question    string     `json:"question"`
	Answer      *string    `json:"answer"`
	Answered    bool       `json:"answered"`
	CreatedAt   time.Time  `json:"created_at"`
	AnsweredAt  *time.Time `json:"answered_at"`
}

// RosterEntryResponse is one row of the teacher's course roster: a student
// who has asked at least one question, flagged if any is still pending.
type RosterEntryResponse struct {
	StudentID   int64  `json:"student_id"`
	StudentName string `json:"student_name"`
	StudentRoll string `json:"student_roll"`
	HasPending  bool   `json:"has_pending"`
}

// ToQueryResponse converts a Query model to its response DTO
func ToQueryResponse(q *models.Query) QueryResponse {
	return QueryResponse{
		ID:          q.ID,
		CourseID:    q.CourseID,
		CourseName:  q.CourseName,
		StudentID:   q.StudentID,
		StudentName: q.StudentName,
		StudentRoll: q.StudentRoll,
		Question:    q.Question,
		Answer:      q.Answer,
		Answered:    q.Answered,
		CreatedAt:   q.CreatedAt,
		AnsweredAt:  q.AnsweredAt,
	}
}

// ToQueryResponses converts a slice of Query models, keeping order
func ToQueryResponses(queries []models.Query) []QueryResponse {
	responses := make([]QueryResponse, 0, len(queries))
	for i := range queries {
		responses = append(responses, ToQueryResponse(&queries[i]))
	}
	return responses
}
