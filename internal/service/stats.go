package service

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/repository"
)

type StatsService struct {
	store StatsStore
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

// Collect gathers the admin overview counters concurrently.
func (s *StatsService) Collect(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) (err error) {
		stats.Places, err = s.store.CountPlaces(ctx, repository.CountPlacesParams{})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		stats.Users, err = s.store.CountUsers(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		stats.ChatTurns, err = s.store.CountChatMessages(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		stats.Favorites, err = s.store.CountFavorites(ctx)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}
	return &stats, nil
}
