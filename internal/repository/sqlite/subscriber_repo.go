package sqlite

import (
	"context"
	"database/sql"
	"time"

	"shift-tracker/internal/domain"
)

type SqliteSubscriberRepo struct {
	db *sql.DB
}

func NewSqliteSubscriberRepo(db *sql.DB) *SqliteSubscriberRepo {
	return &SqliteSubscriberRepo{db: db}
}

// SaveSubscriber updates the name of a known chat and keeps its Since.
func (r *SqliteSubscriberRepo) SaveSubscriber(ctx context.Context, s domain.Subscriber) error {
	res, err := r.db.ExecContext(ctx, `UPDATE subscribers SET name = ? WHERE chat_id = ?`, s.Name, s.ChatID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		_, err = r.db.ExecContext(ctx, `INSERT INTO subscribers (chat_id, name, since) VALUES (?, ?, ?)`,
			s.ChatID, s.Name, s.Since.UTC().Format(time.RFC3339))
		return err
	}
	return nil
}

func (r *SqliteSubscriberRepo) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT chat_id, name, since FROM subscribers ORDER BY chat_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Subscriber
	for rows.Next() {
		var (
			s     domain.Subscriber
			since string
		)
		if err := rows.Scan(&s.ChatID, &s.Name, &since); err != nil {
			return nil, err
		}
		s.Since, _ = time.Parse(time.RFC3339, since)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SqliteSubscriberRepo) RemoveSubscriber(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subscribers WHERE chat_id = ?`, chatID)
	return err
}
