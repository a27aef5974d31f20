package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const chatMessageColumns = `id, user_id, place_id, session_id, message, response, created_at`

func scanChatMessage(row pgx.Row) (ChatMessage, error) {
	var m ChatMessage
	err := row.Scan(&m.ID, &m.UserID, &m.PlaceID, &m.SessionID, &m.Message, &m.Response, &m.CreatedAt)
	return m, err
}

type CreateChatMessageParams struct {
	UserID    *int64
	PlaceID   *int64
	SessionID pgtype.Text
	Message   string
	Response  string
}

func (q *Queries) CreateChatMessage(ctx context.Context, arg CreateChatMessageParams) (ChatMessage, error) {
	row := q.db.QueryRow(ctx, `INSERT INTO chat_messages (user_id, place_id, session_id, message, response)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+chatMessageColumns,
		arg.UserID, arg.PlaceID, arg.SessionID, arg.Message, arg.Response,
	)
	return scanChatMessage(row)
}

// GetSessionChatMessages returns a session's turns oldest first. The id
// tiebreak keeps turns created within the same clock tick in insert order.
func (q *Queries) GetSessionChatMessages(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	rows, err := q.db.Query(ctx, `SELECT `+chatMessageColumns+` FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ChatMessage
	for rows.Next() {
		m, err := scanChatMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (q *Queries) CountChatMessages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM chat_messages`).Scan(&count)
	return count, err
}
