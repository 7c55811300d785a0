// Package search filters the event catalog by keyword and structured fields.
// Matching is pure and never mutates the catalog; the service layer applies
// it over the repository's stable listing order.
package search

import (
	"strings"

	"github.com/townboard/townboard/internal/model"
)

// Query holds the optional search filters. An empty field matches all
// events, and provided fields combine with AND.
type Query struct {
	Keyword  string
	Category string
	Date     string
	Location string
}

// IsEmpty reports whether no filters are set.
func (q Query) IsEmpty() bool {
	return q.Keyword == "" && q.Category == "" && q.Date == "" && q.Location == ""
}

// Matches reports whether the event satisfies every provided filter.
//
// Keyword is a case-insensitive substring match against the union of title,
// category and organizer. Category is a case-sensitive exact match. Date is
// an exact match. Location is a case-insensitive substring match.
func (q Query) Matches(e *model.Event) bool {
	if q.Keyword != "" && !matchesKeyword(e, q.Keyword) {
		return false
	}
	if q.Category != "" && string(e.Category) != q.Category {
		return false
	}
	if q.Date != "" && e.Date != q.Date {
		return false
	}
	if q.Location != "" && !containsFold(e.Location, q.Location) {
		return false
	}
	return true
}

// Filter returns the events matching the query, preserving input order.
func Filter(events []*model.Event, q Query) []*model.Event {
	if q.IsEmpty() {
		return events
	}
	matched := make([]*model.Event, 0, len(events))
	for _, e := range events {
		if q.Matches(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

func matchesKeyword(e *model.Event, keyword string) bool {
	return containsFold(e.Title, keyword) ||
		containsFold(string(e.Category), keyword) ||
		containsFold(e.Organizer, keyword)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
