package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type TouristPlace struct {
	ID                  int64
	Name                string
	ImageUrl            string
	Category            string
	District            string
	ShortDescription    string
	DetailedDescription pgtype.Text
	HowToReach          pgtype.Text
	BestTimeToVisit     pgtype.Text
	EntryFee            pgtype.Text
	Timings             pgtype.Text
	NearbyAttractions   pgtype.Text
	Accommodation       pgtype.Text
	Latitude            decimal.NullDecimal
	Longitude           decimal.NullDecimal
	Featured            bool
	CreatedAt           pgtype.Timestamptz
}

type ChatMessage struct {
	ID        int64
	UserID    *int64
	PlaceID   *int64
	SessionID pgtype.Text
	Message   string
	Response  string
	CreatedAt pgtype.Timestamptz
}

type User struct {
	ID              int64
	Username        string
	Email           pgtype.Text
	PasswordHash    pgtype.Text
	IsAdmin         bool
	TelegramID      *int64
	FirstName       string
	ChatSessionID   string
	ChatPlaceID     *int64
	LastInteraction pgtype.Timestamptz
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}
