package domain

import (
	"context"
	"time"
)

// PayloadSnapshot is one raw payload as it was received.
type PayloadSnapshot struct {
	ID         string
	Origin     string
	ReceivedAt time.Time
	Body       []byte
}

type PayloadRepo interface {
	SavePayload(ctx context.Context, snap PayloadSnapshot) error
	LatestPayload(ctx context.Context) (PayloadSnapshot, error)
}

type SettingsRepo interface {
	LoadSettings(ctx context.Context, base Settings) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
}

// PayloadLoader produces the next raw payload from wherever it lives.
type PayloadLoader interface {
	Load(ctx context.Context) (PayloadSnapshot, error)
}
