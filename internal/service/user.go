package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/set-night/tnguide/internal/domain"
	"github.com/set-night/tnguide/internal/repository"
)

// SignupInput is a web signup form. Usernames allow letters, digits and @.+-_
type SignupInput struct {
	Username        string `validate:"min=3,max=150,username"`
	Email           string `validate:"required,email"`
	Password        string `validate:"min=8"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r) && !strings.ContainsRune("_.@+-", r) {
				return false
			}
		}
		return true
	})
	return v
}

// signupFieldErrors maps the first failing field onto its domain error.
var signupFieldErrors = map[string]error{
	"Username":        domain.ErrInvalidUsername,
	"Email":           domain.ErrInvalidEmail,
	"Password":        domain.ErrWeakPassword,
	"ConfirmPassword": domain.ErrPasswordMismatch,
}

func validateSignup(in SignupInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if mapped, ok := signupFieldErrors[fieldErrs[0].StructField()]; ok {
			return mapped
		}
	}
	return fmt.Errorf("validate signup: %w", err)
}

type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Register validates a web signup and creates the account.
func (s *UserService) Register(ctx context.Context, in SignupInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateSignup(in); err != nil {
		return nil, err
	}
	username, email := in.Username, in.Email

	taken, err := s.store.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}
	taken, err = s.store.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row, err := s.store.CreateUser(ctx, repository.CreateUserParams{
		Username:     username,
		Email:        stringToPgText(email),
		PasswordHash: stringToPgText(string(hash)),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return rowToUser(row), nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	row, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	user := rowToUser(row)
	if !user.HasPassword() {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// FindOrCreateTelegram returns the bot user for telegramID, creating it on
// first contact. The bool reports whether the user is new.
func (s *UserService) FindOrCreateTelegram(ctx context.Context, telegramID int64, firstName string, isAdmin bool) (*domain.User, bool, error) {
	row, err := s.store.GetUserByTelegramID(ctx, telegramID)
	if err == nil {
		user := rowToUser(row)
		if user.FirstName != firstName || user.IsAdmin != isAdmin {
			if err := s.store.UpdateUserInfo(ctx, repository.UpdateUserInfoParams{
				ID:        user.ID,
				FirstName: firstName,
				IsAdmin:   isAdmin,
			}); err != nil {
				return nil, false, fmt.Errorf("update user info: %w", err)
			}
			user.FirstName = firstName
			user.IsAdmin = isAdmin
		}
		return user, false, nil
	}
	if err != pgx.ErrNoRows {
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	row, err = s.store.CreateUser(ctx, repository.CreateUserParams{
		Username:   fmt.Sprintf("tg_%d", telegramID),
		IsAdmin:    isAdmin,
		TelegramID: &telegramID,
		FirstName:  firstName,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return rowToUser(row), true, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return rowToUser(row), nil
}

// SetChat stores the bot user's current session and grounding place.
func (s *UserService) SetChat(ctx context.Context, user *domain.User, sessionID string, placeID *int64) error {
	if err := s.store.SetUserChat(ctx, repository.SetUserChatParams{
		ID:            user.ID,
		ChatSessionID: sessionID,
		ChatPlaceID:   placeID,
	}); err != nil {
		return fmt.Errorf("set user chat: %w", err)
	}
	user.ChatSessionID = sessionID
	user.ChatPlaceID = placeID
	return nil
}

func (s *UserService) UpdateLastInteraction(ctx context.Context, userID int64) error {
	return s.store.UpdateUserLastInteraction(ctx, userID)
}
