package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/domain"
)

// SessionService tracks the bot user's current conversation: its session id
// and the place grounding it, if any.
type SessionService struct {
	users *UserService
	chat  *ChatService
}

func NewSessionService(users *UserService, chat *ChatService) *SessionService {
	return &SessionService{users: users, chat: chat}
}

// Current returns the user's session id, starting a new general session when
// there is none or the previous one has gone idle.
func (s *SessionService) Current(ctx context.Context, user *domain.User) (string, error) {
	if user.ChatSessionID != "" && !s.IsExpired(user) {
		return user.ChatSessionID, nil
	}
	return s.start(ctx, user, user.ChatPlaceID)
}

// Reset starts a fresh session and drops any place grounding.
func (s *SessionService) Reset(ctx context.Context, user *domain.User) (string, error) {
	return s.start(ctx, user, nil)
}

// General drops the place grounding but keeps the conversation going.
func (s *SessionService) General(ctx context.Context, user *domain.User) (string, error) {
	sessionID, err := s.Current(ctx, user)
	if err != nil {
		return "", err
	}
	if err := s.users.SetChat(ctx, user, sessionID, nil); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Ground starts a fresh session about one place.
func (s *SessionService) Ground(ctx context.Context, user *domain.User, placeID int64) (string, error) {
	return s.start(ctx, user, &placeID)
}

func (s *SessionService) start(ctx context.Context, user *domain.User, placeID *int64) (string, error) {
	sessionID := uuid.NewString()
	if err := s.users.SetChat(ctx, user, sessionID, placeID); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *SessionService) IsExpired(user *domain.User) bool {
	if user.LastInteraction.IsZero() {
		return false
	}
	return time.Since(user.LastInteraction) > config.SessionIdleTimeout
}

// Recent returns up to limit of the latest turns in the user's session.
func (s *SessionService) Recent(ctx context.Context, user *domain.User, limit int) ([]domain.ChatTurn, error) {
	if user.ChatSessionID == "" {
		return []domain.ChatTurn{}, nil
	}
	history, err := s.chat.History(ctx, user.ChatSessionID)
	if err != nil {
		return nil, err
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history, nil
}
