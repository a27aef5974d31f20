package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type FavoriteParams struct {
	UserID  int64
	PlaceID int64
}

// CreateFavorite inserts the pair and reports whether a row was added.
func (q *Queries) CreateFavorite(ctx context.Context, arg FavoriteParams) (bool, error) {
	tag, err := q.db.Exec(ctx, `INSERT INTO favorites (user_id, place_id) VALUES ($1, $2)
		ON CONFLICT (user_id, place_id) DO NOTHING`, arg.UserID, arg.PlaceID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteFavorite removes the pair and reports whether a row was removed.
func (q *Queries) DeleteFavorite(ctx context.Context, arg FavoriteParams) (bool, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND place_id = $2`, arg.UserID, arg.PlaceID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) FavoriteExists(ctx context.Context, arg FavoriteParams) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND place_id = $2)`,
		arg.UserID, arg.PlaceID).Scan(&exists)
	return exists, err
}

func (q *Queries) ListFavoritePlaceIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := q.db.Query(ctx, `SELECT place_id FROM favorites WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (q *Queries) ListFavoritePlaces(ctx context.Context, userID int64) ([]TouristPlace, error) {
	rows, err := q.db.Query(ctx, `SELECT p.id, p.name, p.image_url, p.category, p.district, p.short_description,
			p.detailed_description, p.how_to_reach, p.best_time_to_visit, p.entry_fee, p.timings,
			p.nearby_attractions, p.accommodation, p.latitude, p.longitude, p.featured, p.created_at
		FROM favorites f
		JOIN tourist_places p ON p.id = f.place_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectPlaces(rows)
}

func (q *Queries) CountFavorites(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM favorites`).Scan(&count)
	return count, err
}
