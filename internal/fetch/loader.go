package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shift-tracker/internal/domain"
)

// ErrNoPayload means neither the server, the cache nor the fallback file
// produced a payload.
var ErrNoPayload = errors.New("no schedule payload available")

const (
	OriginServer = "server"
	OriginCache  = "cache"
	OriginFile   = "file"

	combinedSchedulePath = "/combined_schedule"
	maxPayloadBytes      = 8 << 20
)

// Loader tries the schedule server, then the last cached payload, then the
// fallback file. Each source gets one attempt. A payload fetched from the
// server is written to the cache.
type Loader struct {
	ServerURL    string
	FallbackFile string
	Client       *http.Client
	Cache        domain.PayloadRepo
	Log          *zap.Logger
	Now          func() time.Time
}

func NewLoader(serverURL, fallbackFile string, cache domain.PayloadRepo, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		ServerURL:    strings.TrimRight(serverURL, "/"),
		FallbackFile: fallbackFile,
		Client:       &http.Client{Timeout: 15 * time.Second},
		Cache:        cache,
		Log:          log,
		Now:          time.Now,
	}
}

func (l *Loader) Load(ctx context.Context) (domain.PayloadSnapshot, error) {
	if strings.HasPrefix(l.ServerURL, "http") {
		snap, err := l.fromServer(ctx)
		if err == nil {
			if l.Cache != nil {
				if err := l.Cache.SavePayload(ctx, snap); err != nil {
					l.Log.Warn("cache payload failed", zap.Error(err))
				}
			}
			return snap, nil
		}
		l.Log.Warn("schedule server unavailable, using local data",
			zap.String("url", l.ServerURL), zap.Error(err))
	}

	if l.Cache != nil {
		snap, err := l.Cache.LatestPayload(ctx)
		if err == nil {
			snap.Origin = OriginCache
			return snap, nil
		}
		l.Log.Debug("no cached payload", zap.Error(err))
	}

	if l.FallbackFile != "" {
		snap, err := l.LoadFile()
		if err == nil {
			return snap, nil
		}
		l.Log.Warn("fallback file unreadable", zap.String("path", l.FallbackFile), zap.Error(err))
	}
	return domain.PayloadSnapshot{}, ErrNoPayload
}

func (l *Loader) fromServer(ctx context.Context) (domain.PayloadSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.ServerURL+combinedSchedulePath, nil)
	if err != nil {
		return domain.PayloadSnapshot{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := l.Client.Do(req)
	if err != nil {
		return domain.PayloadSnapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.PayloadSnapshot{}, fmt.Errorf("server returned status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return domain.PayloadSnapshot{}, err
	}
	return l.snapshot(OriginServer, body)
}

// LoadFile reads the fallback file alone, skipping server and cache.
func (l *Loader) LoadFile() (domain.PayloadSnapshot, error) {
	body, err := os.ReadFile(l.FallbackFile)
	if err != nil {
		return domain.PayloadSnapshot{}, err
	}
	return l.snapshot(OriginFile, body)
}

func (l *Loader) snapshot(origin string, body []byte) (domain.PayloadSnapshot, error) {
	if _, err := domain.DecodePayload(body); err != nil {
		return domain.PayloadSnapshot{}, err
	}
	return domain.PayloadSnapshot{
		ID:         uuid.NewString(),
		Origin:     origin,
		ReceivedAt: l.Now(),
		Body:       body,
	}, nil
}
