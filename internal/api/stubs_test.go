package api

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/service"
)

type stubPlaces struct {
	places   map[int64]domain.Place
	created  []domain.Place
	deleted  []int64
	lastHome struct {
		filter domain.PlaceFilter
		page   int
	}
}

func newStubPlaces(places ...domain.Place) *stubPlaces {
	s := &stubPlaces{places: map[int64]domain.Place{}}
	for _, p := range places {
		s.places[p.ID] = p
	}
	return s
}

func (s *stubPlaces) Get(_ context.Context, id int64) (*domain.Place, error) {
	p, ok := s.places[id]
	if !ok {
		return nil, domain.ErrPlaceNotFound
	}
	return &p, nil
}

func (s *stubPlaces) Home(_ context.Context, filter domain.PlaceFilter, page int) (*domain.CatalogHome, error) {
	s.lastHome.filter = filter
	s.lastHome.page = page

	var all []domain.Place
	for _, p := range s.places {
		all = append(all, p)
	}
	return &domain.CatalogHome{
		Page:     &domain.PlacePage{Places: all, Page: 1, TotalPages: 1, Total: int64(len(all))},
		Featured: []domain.Place{},
		Facets:   domain.PlaceFacets{Categories: []string{"Beach"}, Districts: []string{"Chennai"}},
	}, nil
}

func (s *stubPlaces) Facets(_ context.Context) (domain.PlaceFacets, error) {
	return domain.PlaceFacets{Categories: []string{"Beach"}, Districts: []string{"Chennai"}}, nil
}

func (s *stubPlaces) Create(_ context.Context, place domain.Place) (*domain.Place, error) {
	if err := service.ValidatePlace(place); err != nil {
		return nil, err
	}
	place.ID = int64(len(s.places) + 1)
	s.places[place.ID] = place
	s.created = append(s.created, place)
	return &place, nil
}

func (s *stubPlaces) Update(_ context.Context, id int64, place domain.Place) (*domain.Place, error) {
	if _, ok := s.places[id]; !ok {
		return nil, domain.ErrPlaceNotFound
	}
	place.ID = id
	s.places[id] = place
	return &place, nil
}

func (s *stubPlaces) Delete(_ context.Context, id int64) error {
	if _, ok := s.places[id]; !ok {
		return domain.ErrPlaceNotFound
	}
	delete(s.places, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubFavorites struct {
	set map[int64]map[int64]bool
}

func newStubFavorites() *stubFavorites {
	return &stubFavorites{set: map[int64]map[int64]bool{}}
}

func (s *stubFavorites) Toggle(_ context.Context, userID, placeID int64) (domain.FavoriteAction, error) {
	if s.set[userID] == nil {
		s.set[userID] = map[int64]bool{}
	}
	if s.set[userID][placeID] {
		delete(s.set[userID], placeID)
		return domain.FavoriteRemoved, nil
	}
	s.set[userID][placeID] = true
	return domain.FavoriteAdded, nil
}

func (s *stubFavorites) IsFavorite(_ context.Context, userID, placeID int64) (bool, error) {
	return s.set[userID][placeID], nil
}

func (s *stubFavorites) List(_ context.Context, userID int64) ([]domain.Place, error) {
	var out []domain.Place
	for id := range s.set[userID] {
		out = append(out, domain.Place{ID: id})
	}
	return out, nil
}

func (s *stubFavorites) IDs(_ context.Context, userID int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for id := range s.set[userID] {
		out[id] = true
	}
	return out, nil
}

type stubChat struct {
	inputs  []service.ChatInput
	history map[string][]domain.ChatTurn
}

func (s *stubChat) Send(_ context.Context, in service.ChatInput) (*service.ChatResult, error) {
	if in.Message == "" {
		return nil, domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(in.SessionID) > config.MaxSessionIDLength {
		return nil, domain.ErrInvalidSessionID
	}
	s.inputs = append(s.inputs, in)
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = "generated-session"
	}
	return &service.ChatResult{
		Turn: domain.ChatTurn{
			ID:        7,
			SessionID: sessionID,
			Message:   in.Message,
			Response:  "reply to " + in.Message,
			CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		},
		Kind: service.ReplyGenerated,
	}, nil
}

func (s *stubChat) History(_ context.Context, sessionID string) ([]domain.ChatTurn, error) {
	if sessionID == "" {
		return []domain.ChatTurn{}, nil
	}
	return s.history[sessionID], nil
}

type stubAccounts struct {
	users map[string]*domain.User
}

func (s *stubAccounts) Register(_ context.Context, in service.SignupInput) (*domain.User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if _, ok := s.users[in.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	u := &domain.User{ID: int64(len(s.users) + 1), Username: in.Username, Email: in.Email, PasswordHash: in.Password}
	s.users[in.Username] = u
	return u, nil
}

func (s *stubAccounts) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubAccounts) Authenticate(_ context.Context, username, password string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok || u.PasswordHash != password {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}
