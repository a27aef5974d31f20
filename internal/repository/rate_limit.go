package repository

import "context"

// CheckAndIncrementRateLimit bumps the per-minute counter for a chat and
// returns the count within the current minute.
func (q *Queries) CheckAndIncrementRateLimit(ctx context.Context, chatID int64) (int32, error) {
	var count int32
	err := q.db.QueryRow(ctx, `INSERT INTO rate_limits (chat_id, window_start, count)
		VALUES ($1, date_trunc('minute', NOW()), 1)
		ON CONFLICT (chat_id) DO UPDATE SET
			count = CASE
				WHEN rate_limits.window_start = date_trunc('minute', NOW()) THEN rate_limits.count + 1
				ELSE 1
			END,
			window_start = date_trunc('minute', NOW())
		RETURNING count`, chatID).Scan(&count)
	return count, err
}

func (q *Queries) CleanupRateLimits(ctx context.Context) error {
	_, err := q.db.Exec(ctx, `DELETE FROM rate_limits WHERE window_start < NOW() - INTERVAL '5 minutes'`)
	return err
}
