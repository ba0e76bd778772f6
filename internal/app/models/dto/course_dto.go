package dto

import (
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
)

// CourseResponse is the course shape the client renders
type CourseResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TeacherID   int64  `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
}

// ToCourseResponse converts a Course model to its response DTO
func ToCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		TeacherID:   c.TeacherID,
		TeacherName: c.TeacherName,
	}
}

// ToCourseResponses converts a slice of Course models, keeping order
func ToCourseResponses(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, ToCourseResponse(&courses[i]))
	}
	return responses
}
