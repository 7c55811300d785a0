// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/townboard/townboard/internal/model"
)

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses. The password hash
// never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse wraps the user returned by register and login.
type AuthResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user"`
}

// AuthStatusResponse reports whether the request carries a live session.
type AuthStatusResponse struct {
	IsLoggedIn bool          `json:"isLoggedIn"`
	User       *UserResponse `json:"user,omitempty"`
}

// EventRequest represents the request body for creating or updating an event.
type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Organizer   string `json:"organizer"`
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Organizer   string `json:"organizer"`
	CreatorID   string `json:"creatorId"`
}

// EventListResponse wraps a list of events in a named field so the
// payload can grow without breaking clients.
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// CommentRequest represents the request body for adding or editing a comment.
type CommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse represents a comment in API responses.
type CommentResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentListResponse wraps a list of comments in a named field.
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// ActivityResponse represents one activity feed entry in API responses.
type ActivityResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	ActorID    string    `json:"actorId"`
	ActorName  string    `json:"actorName"`
	SubjectID  string    `json:"subjectId"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ActivityListResponse wraps the activity feed.
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToEventResponse converts an Event model to EventResponse DTO.
func ToEventResponse(event *model.Event) *EventResponse {
	return &EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Time:        event.Time,
		Location:    event.Location,
		Category:    string(event.Category),
		Organizer:   event.Organizer,
		CreatorID:   event.CreatorID,
	}
}

// ToEventListResponse converts a slice of Event models to EventListResponse.
func ToEventListResponse(events []*model.Event) *EventListResponse {
	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = *ToEventResponse(event)
	}
	return &EventListResponse{Events: responses}
}

// ToCommentResponse converts a Comment model to CommentResponse DTO.
func ToCommentResponse(comment *model.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		EventID:   comment.EventID,
		UserID:    comment.UserID,
		UserName:  comment.UserName,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

// ToCommentListResponse converts a slice of Comment models to CommentListResponse.
func ToCommentListResponse(comments []*model.Comment) *CommentListResponse {
	responses := make([]CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = *ToCommentResponse(comment)
	}
	return &CommentListResponse{Comments: responses}
}

// ToActivityListResponse converts Activity models to ActivityListResponse.
func ToActivityListResponse(entries []*model.Activity) *ActivityListResponse {
	responses := make([]ActivityResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ActivityResponse{
			ID:         entry.ID,
			Kind:       entry.Kind,
			ActorID:    entry.ActorID,
			ActorName:  entry.ActorName,
			SubjectID:  entry.SubjectID,
			Title:      entry.Title,
			OccurredAt: entry.OccurredAt,
		}
	}
	return &ActivityListResponse{Activities: responses}
}
