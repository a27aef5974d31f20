package service

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/repository"
)

// pgTimestamptzToTime converts pgtype.Timestamptz to time.Time.
func pgTimestamptzToTime(ts pgtype.Timestamptz) time.Time {
	if ts.Valid {
		return ts.Time
	}
	return time.Time{}
}

// pgTextToString converts pgtype.Text to string, NULL becoming "".
func pgTextToString(t pgtype.Text) string {
	if t.Valid {
		return t.String
	}
	return ""
}

// stringToPgText converts a string to pgtype.Text, "" becoming NULL.
func stringToPgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func rowToPlace(row repository.TouristPlace) domain.Place {
	return domain.Place{
		ID:                  row.ID,
		Name:                row.Name,
		ImageURL:            row.ImageUrl,
		Category:            domain.Category(row.Category),
		District:            row.District,
		ShortDescription:    row.ShortDescription,
		DetailedDescription: pgTextToString(row.DetailedDescription),
		HowToReach:          pgTextToString(row.HowToReach),
		BestTimeToVisit:     pgTextToString(row.BestTimeToVisit),
		EntryFee:            pgTextToString(row.EntryFee),
		Timings:             pgTextToString(row.Timings),
		NearbyAttractions:   pgTextToString(row.NearbyAttractions),
		Accommodation:       pgTextToString(row.Accommodation),
		Latitude:            row.Latitude,
		Longitude:           row.Longitude,
		Featured:            row.Featured,
		CreatedAt:           pgTimestamptzToTime(row.CreatedAt),
	}
}

func rowsToPlaces(rows []repository.TouristPlace) []domain.Place {
	places := make([]domain.Place, len(rows))
	for i, r := range rows {
		places[i] = rowToPlace(r)
	}
	return places
}

func placeToParams(p domain.Place) repository.CreatePlaceParams {
	return repository.CreatePlaceParams{
		Name:                p.Name,
		ImageUrl:            p.ImageURL,
		Category:            string(p.Category),
		District:            p.District,
		ShortDescription:    p.ShortDescription,
		DetailedDescription: stringToPgText(p.DetailedDescription),
		HowToReach:          stringToPgText(p.HowToReach),
		BestTimeToVisit:     stringToPgText(p.BestTimeToVisit),
		EntryFee:            stringToPgText(p.EntryFee),
		Timings:             stringToPgText(p.Timings),
		NearbyAttractions:   stringToPgText(p.NearbyAttractions),
		Accommodation:       stringToPgText(p.Accommodation),
		Latitude:            p.Latitude,
		Longitude:           p.Longitude,
		Featured:            p.Featured,
	}
}

func rowToTurn(row repository.ChatMessage) domain.ChatTurn {
	return domain.ChatTurn{
		ID:        row.ID,
		UserID:    row.UserID,
		PlaceID:   row.PlaceID,
		SessionID: pgTextToString(row.SessionID),
		Message:   row.Message,
		Response:  row.Response,
		CreatedAt: pgTimestamptzToTime(row.CreatedAt),
	}
}

// rowToUser converts a repository row to a domain.User.
func rowToUser(row repository.User) *domain.User {
	return &domain.User{
		ID:              row.ID,
		Username:        row.Username,
		Email:           pgTextToString(row.Email),
		PasswordHash:    pgTextToString(row.PasswordHash),
		IsAdmin:         row.IsAdmin,
		TelegramID:      row.TelegramID,
		FirstName:       row.FirstName,
		ChatSessionID:   row.ChatSessionID,
		ChatPlaceID:     row.ChatPlaceID,
		LastInteraction: pgTimestamptzToTime(row.LastInteraction),
		CreatedAt:       pgTimestamptzToTime(row.CreatedAt),
		UpdatedAt:       pgTimestamptzToTime(row.UpdatedAt),
	}
}
