package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/tnguide/internal/domain"
)

func newChatFixture(apiKey string, backend Completer) (*ChatService, *memStore) {
	store := newMemStore()
	places := NewPlaceService(store, nil)
	return NewChatService(store, places, NewAssistant(apiKey, backend)), store
}

func TestChatService_RoundTrip(t *testing.T) {
	backend := &stubCompleter{text: "Go in winter."}
	chat, _ := newChatFixture("sk-test", backend)
	ctx := context.Background()

	first, err := chat.Send(ctx, ChatInput{Message: "Hi", SessionID: "s1"})
	require.NoError(t, err)
	second, err := chat.Send(ctx, ChatInput{Message: "best time to visit Ooty?", SessionID: "s1"})
	require.NoError(t, err)
	_, err = chat.Send(ctx, ChatInput{Message: "Hi", SessionID: "other"})
	require.NoError(t, err)

	history, err := chat.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.Turn.ID, history[0].ID)
	assert.Equal(t, GreetingText, history[0].Response)
	assert.Equal(t, second.Turn.ID, history[1].ID)
	assert.Equal(t, "Go in winter.", history[1].Response)
	assert.True(t, history[0].CreatedAt.Before(history[1].CreatedAt))

	require.Len(t, backend.calls, 1)
	msgs := backend.calls[0].messages
	require.Len(t, msgs, 4)
	assert.Equal(t, "Hi", msgs[1].Content)
	assert.Equal(t, GreetingText, msgs[2].Content)
}

func TestChatService_MintsSessionID(t *testing.T) {
	chat, _ := newChatFixture("", nil)

	res, err := chat.Send(context.Background(), ChatInput{Message: "hello"})

	require.NoError(t, err)
	assert.Len(t, res.Turn.SessionID, 36)
	assert.Equal(t, ReplyGreeting, res.Kind)
}

func TestChatService_EmptyMessage(t *testing.T) {
	chat, store := newChatFixture("sk", &stubCompleter{})

	_, err := chat.Send(context.Background(), ChatInput{Message: "   "})

	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Empty(t, store.messages)
}

func TestChatService_SessionIDTooLong(t *testing.T) {
	backend := &stubCompleter{text: "never sent"}
	chat, store := newChatFixture("sk", backend)

	_, err := chat.Send(context.Background(), ChatInput{
		Message:   "best time to visit Ooty?",
		SessionID: strings.Repeat("x", 101),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidSessionID)
	assert.Empty(t, backend.calls)
	assert.Empty(t, store.messages)

	// 100 runes fit the column, multibyte or not.
	res, err := chat.Send(context.Background(), ChatInput{
		Message:   "best time to visit Ooty?",
		SessionID: strings.Repeat("த", 100),
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("த", 100), res.Turn.SessionID)
	assert.Len(t, backend.calls, 1)
}

func TestChatService_GroundsOnPlace(t *testing.T) {
	backend := &stubCompleter{text: "It opens at 6."}
	chat, store := newChatFixture("sk", backend)
	p := store.addPlace("Meenakshi Temple", "Temple", "Madurai")

	res, err := chat.Send(context.Background(), ChatInput{Message: "temple timings?", PlaceID: &p.ID, SessionID: "s"})

	require.NoError(t, err)
	require.NotNil(t, res.Place)
	assert.Equal(t, p.ID, *res.Turn.PlaceID)
	assert.Contains(t, backend.calls[0].messages[0].Content, "Name: Meenakshi Temple")
}

func TestChatService_MissingPlaceFallsBackToGeneral(t *testing.T) {
	backend := &stubCompleter{text: "ok"}
	chat, _ := newChatFixture("sk", backend)
	missing := int64(404)

	res, err := chat.Send(context.Background(), ChatInput{Message: "temple timings?", PlaceID: &missing, SessionID: "s"})

	require.NoError(t, err)
	assert.Nil(t, res.Place)
	assert.Nil(t, res.Turn.PlaceID)
	assert.NotContains(t, backend.calls[0].messages[0].Content, "Current Place Context")
}

func TestChatService_StoreFailure(t *testing.T) {
	chat, store := newChatFixture("sk", &stubCompleter{})
	store.err = errors.New("db down")

	_, err := chat.Send(context.Background(), ChatInput{Message: "Hi", SessionID: "s"})

	assert.ErrorContains(t, err, "db down")
}

func TestChatService_WindowAcrossPersistedTurns(t *testing.T) {
	backend := &stubCompleter{text: "r"}
	chat, _ := newChatFixture("sk", backend)
	ctx := context.Background()
	for i := 1; i <= 7; i++ {
		backend.text = fmt.Sprintf("r%d", i)
		_, err := chat.Send(ctx, ChatInput{Message: fmt.Sprintf("visit %d", i), SessionID: "s"})
		require.NoError(t, err)
	}

	_, err := chat.Send(ctx, ChatInput{Message: "visit 8", SessionID: "s"})
	require.NoError(t, err)

	msgs := backend.calls[len(backend.calls)-1].messages
	require.Len(t, msgs, 12)
	assert.Equal(t, "visit 3", msgs[1].Content)
	assert.Equal(t, "r7", msgs[10].Content)
	assert.Equal(t, "visit 8", msgs[11].Content)
}

func TestChatService_HistoryWithoutSession(t *testing.T) {
	chat, _ := newChatFixture("", nil)
	history, err := chat.History(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}
