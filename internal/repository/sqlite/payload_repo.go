package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"shift-tracker/internal/domain"
)

// ErrNotFound means no payload has been cached yet.
var ErrNotFound = errors.New("no cached payload")

const (
	// keepPayloads is how many snapshots survive a save.
	keepPayloads = 5

	// Fixed width so that received_at sorts as text.
	receivedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

type SqlitePayloadRepo struct {
	db *sql.DB
}

func NewSqlitePayloadRepo(db *sql.DB) *SqlitePayloadRepo {
	return &SqlitePayloadRepo{db: db}
}

// SavePayload stores snap and prunes older snapshots. Missing ID and
// ReceivedAt are filled in.
func (r *SqlitePayloadRepo) SavePayload(ctx context.Context, snap domain.PayloadSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.ReceivedAt.IsZero() {
		snap.ReceivedAt = time.Now()
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO payloads (id, origin, received_at, body) VALUES (?, ?, ?, ?)`,
		snap.ID,
		snap.Origin,
		snap.ReceivedAt.UTC().Format(receivedAtLayout),
		snap.Body,
	); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM payloads WHERE id NOT IN (
			SELECT id FROM payloads ORDER BY received_at DESC LIMIT ?
		)`,
		keepPayloads,
	)
	return err
}

func (r *SqlitePayloadRepo) LatestPayload(ctx context.Context) (domain.PayloadSnapshot, error) {
	var (
		snap       domain.PayloadSnapshot
		receivedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, origin, received_at, body FROM payloads ORDER BY received_at DESC LIMIT 1`,
	).Scan(&snap.ID, &snap.Origin, &receivedAt, &snap.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PayloadSnapshot{}, ErrNotFound
	}
	if err != nil {
		return domain.PayloadSnapshot{}, err
	}
	snap.ReceivedAt, err = time.Parse(receivedAtLayout, receivedAt)
	if err != nil {
		return domain.PayloadSnapshot{}, err
	}
	return snap, nil
}
