package comm

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is the envelope every event is wrapped in on the bus.
type Message struct {
	Type   string          `json:"type"` // e.g. "tracker-recorded"
	Data   json.RawMessage `json:"data"`
	Source string          `json:"source"` // publishing service instance id
}

const (
	EventTrackerRecorded = "tracker-recorded"
	EventTrackerApplied  = "tracker-applied"
	EventTrackerDeleted  = "tracker-deleted"
)

// TrackerEvent describes one committed tracker mutation. Count is the value
// after the mutation; it is nil for deletes and for updates that matched no
// row.
type TrackerEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Source     string    `json:"source,omitempty"`
	UserID     string    `json:"user_id"`
	GameID     int64     `json:"game_id"`
	TrackerID  int64     `json:"tracker_id,omitempty"`
	Tracker    string    `json:"tracker,omitempty"`
	Kind       string    `json:"kind,omitempty"`
	Action     string    `json:"action,omitempty"`
	PlayerSeat *int      `json:"player_seat,omitempty"`
	Count      *int      `json:"count,omitempty"`
	At         time.Time `json:"at"`
}

func NewTrackerEvent(eventType, userID string, gameID int64) TrackerEvent {
	return TrackerEvent{
		ID:     uuid.NewString(),
		Type:   eventType,
		UserID: userID,
		GameID: gameID,
		At:     time.Now().UTC(),
	}
}
