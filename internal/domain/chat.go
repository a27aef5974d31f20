package domain

import "time"

// ChatTurn is one persisted exchange. Turns are append-only.
type ChatTurn struct {
	ID        int64
	UserID    *int64
	PlaceID   *int64
	SessionID string
	Message   string
	Response  string
	CreatedAt time.Time
}

// Exchange is a (message, response) pair fed back to the model as context.
type Exchange struct {
	Message  string
	Response string
}
