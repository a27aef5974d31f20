package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/tnguide/internal/domain"
)

type stubFinder struct {
	created bool
	err     error
	calls   []int64
	admin   []bool
}

func (f *stubFinder) FindOrCreateTelegram(_ context.Context, telegramID int64, firstName string, isAdmin bool) (*domain.User, bool, error) {
	f.calls = append(f.calls, telegramID)
	f.admin = append(f.admin, isAdmin)
	if f.err != nil {
		return nil, false, f.err
	}
	return &domain.User{ID: 1, TelegramID: &telegramID, FirstName: firstName, IsAdmin: isAdmin}, f.created, nil
}

type adminList []int64

func (a adminList) IsAdmin(id int64) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}

type stubCounter struct {
	count int32
	err   error
}

func (c *stubCounter) CheckAndIncrementRateLimit(context.Context, int64) (int32, error) {
	c.count++
	return c.count, c.err
}

func messageUpdate(fromID int64) *models.Update {
	return &models.Update{Message: &models.Message{
		Chat: models.Chat{ID: fromID, Type: "private"},
		From: &models.User{ID: fromID, FirstName: "Kavya"},
		Text: "hello",
	}}
}

func TestUserLoader(t *testing.T) {
	finder := &stubFinder{created: true}
	var registered []*domain.User
	mw := UserLoader(finder, adminList{42}, func(u *domain.User) { registered = append(registered, u) })

	var seen *domain.User
	handler := mw(func(ctx context.Context, _ *bot.Bot, _ *models.Update) {
		seen = GetUser(ctx)
	})

	handler(context.Background(), nil, messageUpdate(42))

	require.NotNil(t, seen)
	assert.Equal(t, "Kavya", seen.FirstName)
	assert.True(t, seen.IsAdmin)
	assert.Len(t, registered, 1)

	finder.created = false
	handler(context.Background(), nil, messageUpdate(7))
	assert.False(t, seen.IsAdmin)
	assert.Len(t, registered, 1)
}

func TestUserLoader_CallbackAndErrors(t *testing.T) {
	finder := &stubFinder{err: errors.New("db down")}
	mw := UserLoader(finder, adminList{}, nil)

	called := false
	var seen *domain.User
	handler := mw(func(ctx context.Context, _ *bot.Bot, _ *models.Update) {
		called = true
		seen = GetUser(ctx)
	})

	handler(context.Background(), nil, &models.Update{CallbackQuery: &models.CallbackQuery{
		From: models.User{ID: 9},
	}})

	assert.True(t, called)
	assert.Nil(t, seen)
	assert.Equal(t, []int64{9}, finder.calls)
}

func TestUserLoader_NoSender(t *testing.T) {
	finder := &stubFinder{}
	called := false
	handler := UserLoader(finder, adminList{}, nil)(func(context.Context, *bot.Bot, *models.Update) {
		called = true
	})

	handler(context.Background(), nil, &models.Update{})

	assert.True(t, called)
	assert.Empty(t, finder.calls)
}

func TestRateLimit_PassesUnderLimit(t *testing.T) {
	counter := &stubCounter{}
	calls := 0
	handler := RateLimit(counter, 3)(func(context.Context, *bot.Bot, *models.Update) {
		calls++
	})

	for i := 0; i < 3; i++ {
		handler(context.Background(), nil, messageUpdate(1))
	}
	assert.Equal(t, 3, calls)

	// Callbacks are not counted
	handler(context.Background(), nil, &models.Update{CallbackQuery: &models.CallbackQuery{}})
	assert.Equal(t, 4, calls)
	assert.EqualValues(t, 3, counter.count)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	counter := &stubCounter{count: 100, err: errors.New("db down")}
	called := false
	handler := RateLimit(counter, 3)(func(context.Context, *bot.Bot, *models.Update) {
		called = true
	})

	handler(context.Background(), nil, messageUpdate(1))

	assert.True(t, called)
}

func TestWithUser(t *testing.T) {
	assert.Nil(t, GetUser(context.Background()))

	u := &domain.User{ID: 5}
	assert.Same(t, u, GetUser(WithUser(context.Background(), u)))
}

func TestRecover(t *testing.T) {
	handler := Recover()(func(context.Context, *bot.Bot, *models.Update) {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		handler(context.Background(), nil, messageUpdate(3))
	})
	assert.EqualValues(t, 3, updateChatID(messageUpdate(3)))
	assert.Zero(t, updateChatID(&models.Update{}))
}
