package sqlite

import (
	"database/sql"
)

const createPayloadsTable = `
CREATE TABLE IF NOT EXISTS payloads (
    id TEXT PRIMARY KEY,
    origin TEXT NOT NULL,
    received_at TEXT NOT NULL,
    body BLOB NOT NULL
);
`

const createPayloadsIndex = `
CREATE INDEX IF NOT EXISTS payloads_received_at ON payloads (received_at);
`

const createSettingsTable = `
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const createSubscribersTable = `
CREATE TABLE IF NOT EXISTS subscribers (
    chat_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    since TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	for _, stmt := range []string{createPayloadsTable, createPayloadsIndex, createSettingsTable, createSubscribersTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
