package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"shift-tracker/internal/domain"
)

const (
	ratePrefix         = "rate."
	keyTakeHomePercent = "take_home_percent"
)

type SqliteSettingsRepo struct {
	db *sql.DB
}

func NewSqliteSettingsRepo(db *sql.DB) *SqliteSettingsRepo {
	return &SqliteSettingsRepo{db: db}
}

// LoadSettings overlays stored values on base. Rows that do not parse are
// skipped.
func (r *SqliteSettingsRepo) LoadSettings(ctx context.Context, base domain.Settings) (domain.Settings, error) {
	out := base.Clone()
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return out, err
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		switch {
		case key == keyTakeHomePercent:
			out.TakeHomePercent = f
		case strings.HasPrefix(key, ratePrefix):
			out.Rates[domain.Source(strings.TrimPrefix(key, ratePrefix))] = f
		}
	}
	return out, rows.Err()
}

func (r *SqliteSettingsRepo) SaveSettings(ctx context.Context, s domain.Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	put := func(key string, v float64) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, strconv.FormatFloat(v, 'f', -1, 64),
		)
		if err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		return nil
	}
	for source, rate := range s.Rates {
		if err := put(ratePrefix+string(source), rate); err != nil {
			return err
		}
	}
	if err := put(keyTakeHomePercent, s.TakeHomePercent); err != nil {
		return err
	}
	return tx.Commit()
}
