package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/tnguide/internal/domain"
)

func signup() SignupInput {
	return SignupInput{
		Username:        "traveller",
		Email:           "t@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	svc := NewUserService(newMemStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, signup())
	require.NoError(t, err)
	assert.Equal(t, "traveller", user.Username)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, user.HasPassword())

	got, err := svc.Authenticate(ctx, "traveller", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "traveller", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SignupInput)
		want   error
	}{
		{"short username", func(in *SignupInput) { in.Username = "ab" }, domain.ErrInvalidUsername},
		{"bad username chars", func(in *SignupInput) { in.Username = "a b c" }, domain.ErrInvalidUsername},
		{"long username", func(in *SignupInput) { in.Username = strings.Repeat("a", 151) }, domain.ErrInvalidUsername},
		{"bad email", func(in *SignupInput) { in.Email = "not-an-email" }, domain.ErrInvalidEmail},
		{"display name email", func(in *SignupInput) { in.Email = "Anu <anu@example.com>" }, domain.ErrInvalidEmail},
		{"missing email", func(in *SignupInput) { in.Email = "  " }, domain.ErrInvalidEmail},
		{"short password", func(in *SignupInput) { in.Password, in.ConfirmPassword = "short", "short" }, domain.ErrWeakPassword},
		{"mismatch", func(in *SignupInput) { in.ConfirmPassword = "secret124" }, domain.ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := signup()
			tt.mutate(&in)
			_, err := NewUserService(newMemStore()).Register(context.Background(), in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserService_RegisterAcceptsWordCharacters(t *testing.T) {
	svc := NewUserService(newMemStore())
	in := signup()
	in.Username = "  கோவை.guide_1@tn+  "
	in.Email = " kovai@example.com "

	user, err := svc.Register(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, "கோவை.guide_1@tn+", user.Username)
	assert.Equal(t, "kovai@example.com", user.Email)
}

func TestUserService_RegisterDuplicates(t *testing.T) {
	svc := NewUserService(newMemStore())
	ctx := context.Background()
	_, err := svc.Register(ctx, signup())
	require.NoError(t, err)

	_, err = svc.Register(ctx, signup())
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	in := signup()
	in.Username = "another"
	in.Email = "T@Example.com"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUserService_FindOrCreateTelegram(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store)
	ctx := context.Background()

	user, created, err := svc.FindOrCreateTelegram(ctx, 42, "Anu", false)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "tg_42", user.Username)
	assert.False(t, user.HasPassword())

	again, created, err := svc.FindOrCreateTelegram(ctx, 42, "Anitha", true)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "Anitha", again.FirstName)
	assert.True(t, again.IsAdmin)

	_, err = svc.Authenticate(ctx, "tg_42", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_SetChat(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store)
	ctx := context.Background()
	user, _, err := svc.FindOrCreateTelegram(ctx, 7, "Ravi", false)
	require.NoError(t, err)
	placeID := int64(3)

	require.NoError(t, svc.SetChat(ctx, user, "sess", &placeID))

	assert.Equal(t, "sess", user.ChatSessionID)
	stored, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "sess", stored.ChatSessionID)
	assert.Equal(t, placeID, *stored.ChatPlaceID)

	_, err = svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
