package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/set-night/tnguide/internal/repository"
)

// memStore is an in-memory stand-in for repository.Queries.
type memStore struct {
	mu        sync.Mutex
	places    map[int64]repository.TouristPlace
	messages  []repository.ChatMessage
	users     map[int64]repository.User
	favorites map[repository.FavoriteParams]time.Time
	nextID    int64
	clock     time.Time
	err       error

	getPlaceCalls int
	// runs before the districts query, outside the lock
	beforeDistricts func()
}

func newMemStore() *memStore {
	return &memStore{
		places:    map[int64]repository.TouristPlace{},
		users:     map[int64]repository.User{},
		favorites: map[repository.FavoriteParams]time.Time{},
		clock:     time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) tick() pgtype.Timestamptz {
	m.clock = m.clock.Add(time.Second)
	return pgtype.Timestamptz{Time: m.clock, Valid: true}
}

func (m *memStore) addPlace(name, category, district string) repository.TouristPlace {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := repository.TouristPlace{
		ID:               m.id(),
		Name:             name,
		Category:         category,
		District:         district,
		ShortDescription: name + " description",
		CreatedAt:        m.tick(),
	}
	m.places[p.ID] = p
	return p
}

func (m *memStore) GetPlace(_ context.Context, id int64) (repository.TouristPlace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getPlaceCalls++
	if m.err != nil {
		return repository.TouristPlace{}, m.err
	}
	p, ok := m.places[id]
	if !ok {
		return repository.TouristPlace{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *memStore) filtered(search, category, district string) []repository.TouristPlace {
	search = strings.ToLower(search)
	var out []repository.TouristPlace
	for _, p := range m.places {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.District), search) &&
			!strings.Contains(strings.ToLower(p.ShortDescription), search) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if district != "" && p.District != district {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *memStore) ListPlaces(_ context.Context, arg repository.ListPlacesParams) ([]repository.TouristPlace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	all := m.filtered(arg.Search, arg.Category, arg.District)
	start := min(int(arg.Offset), len(all))
	end := min(start+int(arg.Limit), len(all))
	return all[start:end], nil
}

func (m *memStore) CountPlaces(_ context.Context, arg repository.CountPlacesParams) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.filtered(arg.Search, arg.Category, arg.District))), nil
}

func (m *memStore) ListFeaturedPlaces(_ context.Context, limit int32) ([]repository.TouristPlace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.TouristPlace
	for _, p := range m.filtered("", "", "") {
		if p.Featured && len(out) < int(limit) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) distinct(pick func(repository.TouristPlace) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range m.places {
		v := pick(p)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func (m *memStore) ListPlaceCategories(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.distinct(func(p repository.TouristPlace) string { return p.Category }), nil
}

func (m *memStore) ListPlaceDistricts(context.Context) ([]string, error) {
	if hook := m.beforeDistricts; hook != nil {
		m.beforeDistricts = nil
		hook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.distinct(func(p repository.TouristPlace) string { return p.District }), nil
}

func placeFromParams(id int64, arg repository.CreatePlaceParams, created pgtype.Timestamptz) repository.TouristPlace {
	return repository.TouristPlace{
		ID:                  id,
		Name:                arg.Name,
		ImageUrl:            arg.ImageUrl,
		Category:            arg.Category,
		District:            arg.District,
		ShortDescription:    arg.ShortDescription,
		DetailedDescription: arg.DetailedDescription,
		HowToReach:          arg.HowToReach,
		BestTimeToVisit:     arg.BestTimeToVisit,
		EntryFee:            arg.EntryFee,
		Timings:             arg.Timings,
		NearbyAttractions:   arg.NearbyAttractions,
		Accommodation:       arg.Accommodation,
		Latitude:            arg.Latitude,
		Longitude:           arg.Longitude,
		Featured:            arg.Featured,
		CreatedAt:           created,
	}
}

func (m *memStore) CreatePlace(_ context.Context, arg repository.CreatePlaceParams) (repository.TouristPlace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := placeFromParams(m.id(), arg, m.tick())
	m.places[p.ID] = p
	return p, nil
}

func (m *memStore) UpdatePlace(_ context.Context, arg repository.UpdatePlaceParams) (repository.TouristPlace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.places[arg.ID]
	if !ok {
		return repository.TouristPlace{}, pgx.ErrNoRows
	}
	p := placeFromParams(arg.ID, arg.CreatePlaceParams, old.CreatedAt)
	m.places[p.ID] = p
	return p, nil
}

func (m *memStore) DeletePlace(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.places[id]; !ok {
		return 0, nil
	}
	delete(m.places, id)
	return 1, nil
}

func (m *memStore) GetSessionChatMessages(_ context.Context, sessionID string) ([]repository.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []repository.ChatMessage
	for _, msg := range m.messages {
		if msg.SessionID.Valid && msg.SessionID.String == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memStore) CreateChatMessage(_ context.Context, arg repository.CreateChatMessageParams) (repository.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := repository.ChatMessage{
		ID:        m.id(),
		UserID:    arg.UserID,
		PlaceID:   arg.PlaceID,
		SessionID: arg.SessionID,
		Message:   arg.Message,
		Response:  arg.Response,
		CreatedAt: m.tick(),
	}
	m.messages = append(m.messages, msg)
	return msg, nil
}

func (m *memStore) CountChatMessages(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.messages)), nil
}

func (m *memStore) CreateFavorite(_ context.Context, arg repository.FavoriteParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.favorites[arg]; ok {
		return false, nil
	}
	m.favorites[arg] = m.tick().Time
	return true, nil
}

func (m *memStore) DeleteFavorite(_ context.Context, arg repository.FavoriteParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.favorites[arg]; !ok {
		return false, nil
	}
	delete(m.favorites, arg)
	return true, nil
}

func (m *memStore) FavoriteExists(_ context.Context, arg repository.FavoriteParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.favorites[arg]
	return ok, nil
}

func (m *memStore) ListFavoritePlaceIDs(_ context.Context, userID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for k := range m.favorites {
		if k.UserID == userID {
			ids = append(ids, k.PlaceID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memStore) ListFavoritePlaces(_ context.Context, userID int64) ([]repository.TouristPlace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	type fav struct {
		place repository.TouristPlace
		at    time.Time
	}
	var favs []fav
	for k, at := range m.favorites {
		if p, ok := m.places[k.PlaceID]; ok && k.UserID == userID {
			favs = append(favs, fav{p, at})
		}
	}
	sort.Slice(favs, func(i, j int) bool { return favs[i].at.After(favs[j].at) })
	out := make([]repository.TouristPlace, len(favs))
	for i, f := range favs {
		out[i] = f.place
	}
	return out, nil
}

func (m *memStore) CountFavorites(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.favorites)), nil
}

func (m *memStore) GetUserByID(_ context.Context, id int64) (repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memStore) findUser(match func(repository.User) bool) (repository.User, error) {
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return repository.User{}, pgx.ErrNoRows
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findUser(func(u repository.User) bool { return u.Username == username })
}

func (m *memStore) GetUserByTelegramID(_ context.Context, telegramID int64) (repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findUser(func(u repository.User) bool { return u.TelegramID != nil && *u.TelegramID == telegramID })
}

func (m *memStore) UsernameExists(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.findUser(func(u repository.User) bool { return u.Username == username })
	return err == nil, nil
}

func (m *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.findUser(func(u repository.User) bool {
		return u.Email.Valid && strings.EqualFold(u.Email.String, email)
	})
	return err == nil, nil
}

func (m *memStore) CreateUser(_ context.Context, arg repository.CreateUserParams) (repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	u := repository.User{
		ID:              m.id(),
		Username:        arg.Username,
		Email:           arg.Email,
		PasswordHash:    arg.PasswordHash,
		IsAdmin:         arg.IsAdmin,
		TelegramID:      arg.TelegramID,
		FirstName:       arg.FirstName,
		LastInteraction: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) UpdateUserInfo(_ context.Context, arg repository.UpdateUserInfoParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[arg.ID]
	u.FirstName = arg.FirstName
	u.IsAdmin = arg.IsAdmin
	m.users[arg.ID] = u
	return nil
}

func (m *memStore) SetUserChat(_ context.Context, arg repository.SetUserChatParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[arg.ID]
	u.ChatSessionID = arg.ChatSessionID
	u.ChatPlaceID = arg.ChatPlaceID
	m.users[arg.ID] = u
	return nil
}

func (m *memStore) UpdateUserLastInteraction(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	u.LastInteraction = m.tick()
	m.users[id] = u
	return nil
}

func (m *memStore) CountUsers(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

var (
	_ PlaceStore    = (*memStore)(nil)
	_ ChatStore     = (*memStore)(nil)
	_ FavoriteStore = (*memStore)(nil)
	_ UserStore     = (*memStore)(nil)
	_ StatsStore    = (*memStore)(nil)
)
