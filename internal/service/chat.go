package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/repository"
)

// PlaceLookup resolves a grounding place by id.
type PlaceLookup interface {
	Get(ctx context.Context, id int64) (*domain.Place, error)
}

// ChatInput is one inbound chat message. Empty SessionID starts a new session.
type ChatInput struct {
	Message   string
	PlaceID   *int64
	SessionID string
	UserID    *int64
}

type ChatResult struct {
	Turn  domain.ChatTurn
	Kind  ReplyKind
	Place *domain.Place
}

type ChatService struct {
	store     ChatStore
	places    PlaceLookup
	assistant *Assistant
}

func NewChatService(store ChatStore, places PlaceLookup, assistant *Assistant) *ChatService {
	return &ChatService{store: store, places: places, assistant: assistant}
}

// Send answers a message and records the turn. A place id that does not
// resolve falls back to general mode.
func (s *ChatService) Send(ctx context.Context, in ChatInput) (*ChatResult, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	sessionID := in.SessionID
	if utf8.RuneCountInString(sessionID) > config.MaxSessionIDLength {
		return nil, domain.ErrInvalidSessionID
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	var place *domain.Place
	if in.PlaceID != nil {
		p, err := s.places.Get(ctx, *in.PlaceID)
		switch {
		case err == nil:
			place = p
		case errors.Is(err, domain.ErrPlaceNotFound):
			slog.Warn("chat place not found, using general mode", "place_id", *in.PlaceID)
		default:
			return nil, fmt.Errorf("resolve place: %w", err)
		}
	}

	history, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	reply := s.assistant.Respond(ctx, message, place, history)

	var placeID *int64
	if place != nil {
		placeID = &place.ID
	}
	row, err := s.store.CreateChatMessage(ctx, repository.CreateChatMessageParams{
		UserID:    in.UserID,
		PlaceID:   placeID,
		SessionID: stringToPgText(sessionID),
		Message:   message,
		Response:  reply.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("save chat message: %w", err)
	}

	return &ChatResult{Turn: rowToTurn(row), Kind: reply.Kind, Place: place}, nil
}

// History returns a session's turns oldest first. An empty id yields none.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.ChatTurn, error) {
	if sessionID == "" {
		return []domain.ChatTurn{}, nil
	}
	rows, err := s.store.GetSessionChatMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session history: %w", err)
	}
	history := make([]domain.ChatTurn, len(rows))
	for i, r := range rows {
		history[i] = rowToTurn(r)
	}
	return history, nil
}
