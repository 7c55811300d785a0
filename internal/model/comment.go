// Package model defines domain entities for the application.
package model

import "time"

// Comment is a remark left on a single event. UserID marks ownership and
// never changes. UserName is the author's display name captured at post
// time so clients render comments without an extra lookup.
type Comment struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
