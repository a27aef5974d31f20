package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, username, email, password_hash, is_admin, telegram_id, first_name,
	chat_session_id, chat_place_id, last_interaction, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.TelegramID,
		&u.FirstName,
		&u.ChatSessionID,
		&u.ChatPlaceID,
		&u.LastInteraction,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (q *Queries) GetUserByTelegramID(ctx context.Context, telegramID int64) (User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID))
}

func (q *Queries) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (q *Queries) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	return exists, err
}

type CreateUserParams struct {
	Username     string
	Email        pgtype.Text
	PasswordHash pgtype.Text
	IsAdmin      bool
	TelegramID   *int64
	FirstName    string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, `INSERT INTO users (username, email, password_hash, is_admin, telegram_id, first_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		arg.Username, arg.Email, arg.PasswordHash, arg.IsAdmin, arg.TelegramID, arg.FirstName,
	)
	return scanUser(row)
}

type UpdateUserInfoParams struct {
	ID        int64
	FirstName string
	IsAdmin   bool
}

func (q *Queries) UpdateUserInfo(ctx context.Context, arg UpdateUserInfoParams) error {
	_, err := q.db.Exec(ctx, `UPDATE users SET first_name = $2, is_admin = $3, updated_at = NOW() WHERE id = $1`,
		arg.ID, arg.FirstName, arg.IsAdmin)
	return err
}

type SetUserChatParams struct {
	ID            int64
	ChatSessionID string
	ChatPlaceID   *int64
}

func (q *Queries) SetUserChat(ctx context.Context, arg SetUserChatParams) error {
	_, err := q.db.Exec(ctx, `UPDATE users SET chat_session_id = $2, chat_place_id = $3, updated_at = NOW() WHERE id = $1`,
		arg.ID, arg.ChatSessionID, arg.ChatPlaceID)
	return err
}

func (q *Queries) UpdateUserLastInteraction(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `UPDATE users SET last_interaction = NOW() WHERE id = $1`, id)
	return err
}

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
