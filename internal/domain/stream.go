package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamGrievanceLocate = "stream:grievance:locate"
)

// GrievanceLocateEvent - запрос на назначение района жалобе без area_id
type GrievanceLocateEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	GrievanceID uuid.UUID `json:"grievance_id"`
	Attempt     int       `json:"attempt"`
	CreatedAt   time.Time `json:"created_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
