package model

import "time"

// Entry is a single participant's recorded ride: the raw odometer readings
// and arrival time as submitted, plus the distance and duration derived from
// them. Distance and duration are always re-derived from the raw values on
// edit, never carried over.
type Entry struct {
	ID           string    `json:"id"`
	Participant  string    `json:"participant"`
	StartReading float64   `json:"start_reading"`
	EndReading   float64   `json:"end_reading"`
	ArrivalTime  string    `json:"arrival_time"` // HH:MM as recorded
	Distance     float64   `json:"distance"`
	Duration     int       `json:"duration_minutes"` // minutes from the reference instant, may be negative
	EventID      string    `json:"event_id"`
	SubmitterID  string    `json:"submitter_id"`
	CreatedAt    time.Time `json:"created_at"`

	EventName *string `json:"event_name,omitempty"` // For display
}
