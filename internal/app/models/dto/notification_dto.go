package dto

import (
	"time"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
)

// NotificationResponse is the notification shape the client renders
type NotificationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	QueryID   int64     `json:"query_id"`
	CourseID  int64     `json:"course_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ToNotificationResponse converts a Notification model to its response DTO
func ToNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		QueryID:   n.QueryID,
		CourseID:  n.CourseID,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of Notification models, keeping order
func ToNotificationResponses(notifications []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, ToNotificationResponse(&notifications[i]))
	}
	return responses
}
