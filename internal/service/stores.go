package service

import (
	"context"

	"github.com/set-night/tnguide/internal/repository"
)

// The store interfaces below are the slices of repository.Queries each
// service depends on.

type PlaceStore interface {
	GetPlace(ctx context.Context, id int64) (repository.TouristPlace, error)
	ListPlaces(ctx context.Context, arg repository.ListPlacesParams) ([]repository.TouristPlace, error)
	CountPlaces(ctx context.Context, arg repository.CountPlacesParams) (int64, error)
	ListFeaturedPlaces(ctx context.Context, limit int32) ([]repository.TouristPlace, error)
	ListPlaceCategories(ctx context.Context) ([]string, error)
	ListPlaceDistricts(ctx context.Context) ([]string, error)
	CreatePlace(ctx context.Context, arg repository.CreatePlaceParams) (repository.TouristPlace, error)
	UpdatePlace(ctx context.Context, arg repository.UpdatePlaceParams) (repository.TouristPlace, error)
	DeletePlace(ctx context.Context, id int64) (int64, error)
}

type ChatStore interface {
	GetSessionChatMessages(ctx context.Context, sessionID string) ([]repository.ChatMessage, error)
	CreateChatMessage(ctx context.Context, arg repository.CreateChatMessageParams) (repository.ChatMessage, error)
}

type FavoriteStore interface {
	CreateFavorite(ctx context.Context, arg repository.FavoriteParams) (bool, error)
	DeleteFavorite(ctx context.Context, arg repository.FavoriteParams) (bool, error)
	FavoriteExists(ctx context.Context, arg repository.FavoriteParams) (bool, error)
	ListFavoritePlaceIDs(ctx context.Context, userID int64) ([]int64, error)
	ListFavoritePlaces(ctx context.Context, userID int64) ([]repository.TouristPlace, error)
}

type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (repository.User, error)
	GetUserByUsername(ctx context.Context, username string) (repository.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (repository.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, arg repository.CreateUserParams) (repository.User, error)
	UpdateUserInfo(ctx context.Context, arg repository.UpdateUserInfoParams) error
	SetUserChat(ctx context.Context, arg repository.SetUserChatParams) error
	UpdateUserLastInteraction(ctx context.Context, id int64) error
}

type StatsStore interface {
	CountPlaces(ctx context.Context, arg repository.CountPlacesParams) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountChatMessages(ctx context.Context) (int64, error)
	CountFavorites(ctx context.Context) (int64, error)
}

var (
	_ PlaceStore    = (*repository.Queries)(nil)
	_ ChatStore     = (*repository.Queries)(nil)
	_ FavoriteStore = (*repository.Queries)(nil)
	_ UserStore     = (*repository.Queries)(nil)
	_ StatsStore    = (*repository.Queries)(nil)
)
