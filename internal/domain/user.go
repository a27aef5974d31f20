package domain

import (
	"time"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	TelegramID   *int64
	FirstName    string

	// Bot conversation state
	ChatSessionID   string
	ChatPlaceID     *int64
	LastInteraction time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

type Favorite struct {
	UserID    int64
	PlaceID   int64
	CreatedAt time.Time
}

// FavoriteAction reports what a toggle did.
type FavoriteAction string

const (
	FavoriteAdded   FavoriteAction = "added"
	FavoriteRemoved FavoriteAction = "removed"
)

// Stats is the admin overview.
type Stats struct {
	Places    int64
	Users     int64
	ChatTurns int64
	Favorites int64
}
