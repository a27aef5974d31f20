package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const placeColumns = `id, name, image_url, category, district, short_description,
	detailed_description, how_to_reach, best_time_to_visit, entry_fee, timings,
	nearby_attractions, accommodation, latitude, longitude, featured, created_at`

// placeFilterClause matches $1 against name, district and short description
// (case-insensitive substring) and $2/$3 exactly against category/district.
const placeFilterClause = `
	($1::text = '' OR name ILIKE '%' || $1 || '%'
		OR district ILIKE '%' || $1 || '%'
		OR short_description ILIKE '%' || $1 || '%')
	AND ($2::text = '' OR category = $2)
	AND ($3::text = '' OR district = $3)`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanPlace(row pgx.Row) (TouristPlace, error) {
	var p TouristPlace
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.ImageUrl,
		&p.Category,
		&p.District,
		&p.ShortDescription,
		&p.DetailedDescription,
		&p.HowToReach,
		&p.BestTimeToVisit,
		&p.EntryFee,
		&p.Timings,
		&p.NearbyAttractions,
		&p.Accommodation,
		&p.Latitude,
		&p.Longitude,
		&p.Featured,
		&p.CreatedAt,
	)
	return p, err
}

func collectPlaces(rows pgx.Rows) ([]TouristPlace, error) {
	defer rows.Close()
	var items []TouristPlace
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (q *Queries) GetPlace(ctx context.Context, id int64) (TouristPlace, error) {
	row := q.db.QueryRow(ctx, `SELECT `+placeColumns+` FROM tourist_places WHERE id = $1`, id)
	return scanPlace(row)
}

type ListPlacesParams struct {
	Search   string
	Category string
	District string
	Limit    int32
	Offset   int32
}

func (q *Queries) ListPlaces(ctx context.Context, arg ListPlacesParams) ([]TouristPlace, error) {
	rows, err := q.db.Query(ctx, `SELECT `+placeColumns+` FROM tourist_places
		WHERE `+placeFilterClause+`
		ORDER BY name, id
		LIMIT $4 OFFSET $5`,
		likeEscaper.Replace(arg.Search), arg.Category, arg.District, arg.Limit, arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	return collectPlaces(rows)
}

type CountPlacesParams struct {
	Search   string
	Category string
	District string
}

func (q *Queries) CountPlaces(ctx context.Context, arg CountPlacesParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM tourist_places WHERE `+placeFilterClause,
		likeEscaper.Replace(arg.Search), arg.Category, arg.District,
	).Scan(&count)
	return count, err
}

func (q *Queries) ListFeaturedPlaces(ctx context.Context, limit int32) ([]TouristPlace, error) {
	rows, err := q.db.Query(ctx, `SELECT `+placeColumns+` FROM tourist_places
		WHERE featured
		ORDER BY id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectPlaces(rows)
}

func (q *Queries) ListPlaceCategories(ctx context.Context) ([]string, error) {
	return q.distinctStrings(ctx, `SELECT DISTINCT category FROM tourist_places ORDER BY category`)
}

func (q *Queries) ListPlaceDistricts(ctx context.Context) ([]string, error) {
	return q.distinctStrings(ctx, `SELECT DISTINCT district FROM tourist_places ORDER BY district`)
}

func (q *Queries) distinctStrings(ctx context.Context, sql string) ([]string, error) {
	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

type CreatePlaceParams struct {
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
}

func (q *Queries) CreatePlace(ctx context.Context, arg CreatePlaceParams) (TouristPlace, error) {
	row := q.db.QueryRow(ctx, `INSERT INTO tourist_places (
			name, image_url, category, district, short_description,
			detailed_description, how_to_reach, best_time_to_visit, entry_fee, timings,
			nearby_attractions, accommodation, latitude, longitude, featured
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+placeColumns,
		arg.Name, arg.ImageUrl, arg.Category, arg.District, arg.ShortDescription,
		arg.DetailedDescription, arg.HowToReach, arg.BestTimeToVisit, arg.EntryFee, arg.Timings,
		arg.NearbyAttractions, arg.Accommodation, arg.Latitude, arg.Longitude, arg.Featured,
	)
	return scanPlace(row)
}

type UpdatePlaceParams struct {
	ID int64
	CreatePlaceParams
}

func (q *Queries) UpdatePlace(ctx context.Context, arg UpdatePlaceParams) (TouristPlace, error) {
	row := q.db.QueryRow(ctx, `UPDATE tourist_places SET
			name = $2, image_url = $3, category = $4, district = $5, short_description = $6,
			detailed_description = $7, how_to_reach = $8, best_time_to_visit = $9,
			entry_fee = $10, timings = $11, nearby_attractions = $12, accommodation = $13,
			latitude = $14, longitude = $15, featured = $16
		WHERE id = $1
		RETURNING `+placeColumns,
		arg.ID,
		arg.Name, arg.ImageUrl, arg.Category, arg.District, arg.ShortDescription,
		arg.DetailedDescription, arg.HowToReach, arg.BestTimeToVisit, arg.EntryFee, arg.Timings,
		arg.NearbyAttractions, arg.Accommodation, arg.Latitude, arg.Longitude, arg.Featured,
	)
	return scanPlace(row)
}

func (q *Queries) DeletePlace(ctx context.Context, id int64) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM tourist_places WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
