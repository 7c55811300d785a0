// Package model defines domain entities for the application.
package model

// Category classifies an event. The set is fixed; an empty category means
// the event is uncategorized.
type Category string

const (
	CategoryCommunity Category = "Community"
	CategoryMarket    Category = "Market"
	CategoryFitness   Category = "Fitness"
	CategoryArt       Category = "Art"
)

// IsValid reports whether the category is one of the known values.
// The empty category is valid (unset).
func (c Category) IsValid() bool {
	switch c {
	case "", CategoryCommunity, CategoryMarket, CategoryFitness, CategoryArt:
		return true
	}
	return false
}

// Event represents a community event entry on the board.
// CreatorID marks ownership and never changes after creation.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Category    Category `json:"category,omitempty"`
	Organizer   string   `json:"organizer,omitempty"`
	CreatorID   string   `json:"creator_id"`
}
