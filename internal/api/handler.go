package api

import (
	"context"
	"time"

	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/service"
)

// PlaceService is the catalog surface the API needs.
type PlaceService interface {
	Get(ctx context.Context, id int64) (*domain.Place, error)
	Home(ctx context.Context, filter domain.PlaceFilter, page int) (*domain.CatalogHome, error)
	Facets(ctx context.Context) (domain.PlaceFacets, error)
	Create(ctx context.Context, place domain.Place) (*domain.Place, error)
	Update(ctx context.Context, id int64, place domain.Place) (*domain.Place, error)
	Delete(ctx context.Context, id int64) error
}

type FavoriteService interface {
	Toggle(ctx context.Context, userID, placeID int64) (domain.FavoriteAction, error)
	IsFavorite(ctx context.Context, userID, placeID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]domain.Place, error)
	IDs(ctx context.Context, userID int64) (map[int64]bool, error)
}

type ChatService interface {
	Send(ctx context.Context, in service.ChatInput) (*service.ChatResult, error)
	History(ctx context.Context, sessionID string) ([]domain.ChatTurn, error)
}

type AccountService interface {
	Register(ctx context.Context, in service.SignupInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type TokenService interface {
	Issue(user *domain.User) (string, time.Time, error)
	Parse(token string) (*service.Claims, error)
}

var (
	_ PlaceService    = (*service.PlaceService)(nil)
	_ FavoriteService = (*service.FavoriteService)(nil)
	_ ChatService     = (*service.ChatService)(nil)
	_ AccountService  = (*service.UserService)(nil)
	_ TokenService    = (*service.TokenService)(nil)
)

// Handler serves the JSON API.
type Handler struct {
	places              PlaceService
	favorites           FavoriteService
	chat                ChatService
	accounts            AccountService
	tokens              TokenService
	assistantConfigured bool
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Places              PlaceService
	Favorites           FavoriteService
	Chat                ChatService
	Accounts            AccountService
	Tokens              TokenService
	AssistantConfigured bool
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		places:              deps.Places,
		favorites:           deps.Favorites,
		chat:                deps.Chat,
		accounts:            deps.Accounts,
		tokens:              deps.Tokens,
		assistantConfigured: deps.AssistantConfigured,
	}
}
