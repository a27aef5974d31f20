package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	"github.com/sourcegraph/conc/pool"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/repository"
)

type PlaceService struct {
	store  PlaceStore
	cache  *PlaceCache
	facets *FacetsCache
}

// NewPlaceService builds the catalog service. rdb may be nil.
func NewPlaceService(store PlaceStore, rdb *redis.Client) *PlaceService {
	return &PlaceService{
		store:  store,
		cache:  NewPlaceCache(rdb, config.PlaceCacheTTL),
		facets: NewFacetsCache(config.FacetsCacheDuration),
	}
}

func (s *PlaceService) Get(ctx context.Context, id int64) (*domain.Place, error) {
	if place, ok := s.cache.Get(ctx, id); ok {
		return place, nil
	}

	row, err := s.store.GetPlace(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("get place: %w", err)
	}

	place := rowToPlace(row)
	s.cache.Set(ctx, &place)
	return &place, nil
}

// List returns one page of the filtered catalog. Page numbers outside the
// valid range are clamped to the first or last page.
func (s *PlaceService) List(ctx context.Context, filter domain.PlaceFilter, page, perPage int) (*domain.PlacePage, error) {
	filter = normalizeFilter(filter)
	if perPage <= 0 {
		perPage = config.PlacesPerPage
	}

	total, err := s.store.CountPlaces(ctx, repository.CountPlacesParams{
		Search:   filter.Search,
		Category: filter.Category,
		District: filter.District,
	})
	if err != nil {
		return nil, fmt.Errorf("count places: %w", err)
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)

	rows, err := s.store.ListPlaces(ctx, repository.ListPlacesParams{
		Search:   filter.Search,
		Category: filter.Category,
		District: filter.District,
		Limit:    int32(perPage),
		Offset:   int32((page - 1) * perPage),
	})
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	return &domain.PlacePage{
		Places:     rowsToPlaces(rows),
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

func (s *PlaceService) Featured(ctx context.Context) ([]domain.Place, error) {
	rows, err := s.store.ListFeaturedPlaces(ctx, config.FeaturedPlacesLimit)
	if err != nil {
		return nil, fmt.Errorf("list featured places: %w", err)
	}
	return rowsToPlaces(rows), nil
}

// Facets returns the distinct categories and districts present in the catalog.
func (s *PlaceService) Facets(ctx context.Context) (domain.PlaceFacets, error) {
	cached, gen := s.facets.Get()
	if cached != nil {
		return *cached, nil
	}

	categories, err := s.store.ListPlaceCategories(ctx)
	if err != nil {
		return domain.PlaceFacets{}, fmt.Errorf("list categories: %w", err)
	}
	districts, err := s.store.ListPlaceDistricts(ctx)
	if err != nil {
		return domain.PlaceFacets{}, fmt.Errorf("list districts: %w", err)
	}

	facets := domain.PlaceFacets{Categories: categories, Districts: districts}
	s.facets.Set(gen, facets)
	return facets, nil
}

// Home loads the listing page, featured places and facets concurrently.
func (s *PlaceService) Home(ctx context.Context, filter domain.PlaceFilter, page int) (*domain.CatalogHome, error) {
	var home domain.CatalogHome

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		listing, err := s.List(ctx, filter, page, config.PlacesPerPage)
		home.Page = listing
		return err
	})
	p.Go(func(ctx context.Context) error {
		featured, err := s.Featured(ctx)
		home.Featured = featured
		return err
	})
	p.Go(func(ctx context.Context) error {
		facets, err := s.Facets(ctx)
		home.Facets = facets
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return &home, nil
}

func (s *PlaceService) Create(ctx context.Context, place domain.Place) (*domain.Place, error) {
	place = normalizePlace(place)
	if err := ValidatePlace(place); err != nil {
		return nil, err
	}

	row, err := s.store.CreatePlace(ctx, placeToParams(place))
	if err != nil {
		return nil, fmt.Errorf("create place: %w", err)
	}
	s.facets.Invalidate()

	created := rowToPlace(row)
	return &created, nil
}

func (s *PlaceService) Update(ctx context.Context, id int64, place domain.Place) (*domain.Place, error) {
	place = normalizePlace(place)
	if err := ValidatePlace(place); err != nil {
		return nil, err
	}

	row, err := s.store.UpdatePlace(ctx, repository.UpdatePlaceParams{
		ID:                id,
		CreatePlaceParams: placeToParams(place),
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("update place: %w", err)
	}
	s.cache.Delete(ctx, id)
	s.facets.Invalidate()

	updated := rowToPlace(row)
	return &updated, nil
}

func (s *PlaceService) Delete(ctx context.Context, id int64) error {
	n, err := s.store.DeletePlace(ctx, id)
	if err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	if n == 0 {
		return domain.ErrPlaceNotFound
	}
	s.cache.Delete(ctx, id)
	s.facets.Invalidate()
	return nil
}

// ValidatePlace checks the fields an admin must supply.
func ValidatePlace(p domain.Place) error {
	if !p.Category.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCategory, p.Category)
	}
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidPlace)
	case utf8.RuneCountInString(p.Name) > 100:
		return fmt.Errorf("%w: name is longer than 100 characters", domain.ErrInvalidPlace)
	case p.District == "":
		return fmt.Errorf("%w: district is required", domain.ErrInvalidPlace)
	case utf8.RuneCountInString(p.District) > 50:
		return fmt.Errorf("%w: district is longer than 50 characters", domain.ErrInvalidPlace)
	case p.ShortDescription == "":
		return fmt.Errorf("%w: short description is required", domain.ErrInvalidPlace)
	case utf8.RuneCountInString(p.ShortDescription) > config.ShortDescriptionMax:
		return fmt.Errorf("%w: short description is longer than %d characters", domain.ErrInvalidPlace, config.ShortDescriptionMax)
	}
	return nil
}

func normalizeFilter(f domain.PlaceFilter) domain.PlaceFilter {
	return domain.PlaceFilter{
		Search:   strings.TrimSpace(f.Search),
		Category: strings.TrimSpace(f.Category),
		District: strings.TrimSpace(f.District),
	}
}

func normalizePlace(p domain.Place) domain.Place {
	p.Name = strings.TrimSpace(p.Name)
	p.District = strings.TrimSpace(p.District)
	p.ShortDescription = strings.TrimSpace(p.ShortDescription)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	return p
}
