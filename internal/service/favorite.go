package service

import (
	"context"
	"fmt"

	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/repository"
)

type FavoriteService struct {
	store FavoriteStore
}

func NewFavoriteService(store FavoriteStore) *FavoriteService {
	return &FavoriteService{store: store}
}

// Toggle adds the place to the user's favorites, or removes it if present.
func (s *FavoriteService) Toggle(ctx context.Context, userID, placeID int64) (domain.FavoriteAction, error) {
	arg := repository.FavoriteParams{UserID: userID, PlaceID: placeID}

	removed, err := s.store.DeleteFavorite(ctx, arg)
	if err != nil {
		return "", fmt.Errorf("delete favorite: %w", err)
	}
	if removed {
		return domain.FavoriteRemoved, nil
	}

	if _, err := s.store.CreateFavorite(ctx, arg); err != nil {
		return "", fmt.Errorf("create favorite: %w", err)
	}
	return domain.FavoriteAdded, nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, placeID int64) (bool, error) {
	ok, err := s.store.FavoriteExists(ctx, repository.FavoriteParams{UserID: userID, PlaceID: placeID})
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return ok, nil
}

func (s *FavoriteService) List(ctx context.Context, userID int64) ([]domain.Place, error) {
	rows, err := s.store.ListFavoritePlaces(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return rowsToPlaces(rows), nil
}

// IDs returns the favorite place ids of a user as a set.
func (s *FavoriteService) IDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	ids, err := s.store.ListFavoritePlaceIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite ids: %w", err)
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
