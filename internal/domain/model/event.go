package model

import "time"

type EventStatus string

const (
	// EventActive accepts new entries; EventCompleted does not. The only
	// transition is active -> completed, there is no way back.
	EventActive    EventStatus = "active"
	EventCompleted EventStatus = "completed"
)

type ScoringType string

const (
	ScoringDistance ScoringType = "distance"
	ScoringDuration ScoringType = "duration"
	ScoringBoth     ScoringType = "both"
)

func ValidScoringType(t ScoringType) bool {
	return t == ScoringDistance || t == ScoringDuration || t == ScoringBoth
}

// Event is one hunt. Entries belong to exactly one event; the creator (or an
// admin) controls its lifecycle.
type Event struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Status    EventStatus `json:"status"`
	Type      ScoringType `json:"type"`
	CreatorID string      `json:"creator_id"`
	CreatedAt time.Time   `json:"created_at"`
}
