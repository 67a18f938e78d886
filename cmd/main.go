package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v3"

	"shift-tracker/config"
	"shift-tracker/internal/app/service"
	"shift-tracker/internal/delivery/httpapi"
	"shift-tracker/internal/delivery/telegram"
	"shift-tracker/internal/fetch"
	"shift-tracker/internal/logging"
	"shift-tracker/internal/repository/sqlite"
	"shift-tracker/pkg/calendar"
	"shift-tracker/pkg/workerpool"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code so that deferred log flushing runs
// before os.Exit.
func realMain() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("shift tracker stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.HTTPAddr == "" {
		// Without the HTTP API the bot is the only surface.
		if err := cfg.RequireToken(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := sqlite.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	pool := workerpool.NewWorkerPool(4, 32)
	defer pool.Close()
	async := service.NewAsyncService(pool)

	loader := fetch.NewLoader(cfg.ServerURL, cfg.FallbackFile, sqlite.NewSqlitePayloadRepo(db), log.Named("fetch"))
	schedule := service.NewScheduleService(loader, sqlite.NewSqliteSettingsRepo(db), cfg.Settings, log.Named("schedule"))
	if err := schedule.Init(ctx); err != nil {
		return err
	}
	if _, err := schedule.Reload(ctx, time.Now()); err != nil {
		// Surfaces stay up with an empty schedule; /reload or Refresh retries.
		log.Warn("initial load failed", zap.Error(err))
	}

	var bot *telegram.Handler
	if cfg.TelegramToken != "" {
		b, err := telebot.NewBot(telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) {
				log.Error("bot handler failed", zap.Error(err))
			},
		})
		if err != nil {
			return fmt.Errorf("start bot: %w", err)
		}
		bot = &telegram.Handler{
			Bot:         b,
			Schedule:    schedule,
			Async:       async,
			Subscribers: service.NewSubscriberService(sqlite.NewSqliteSubscriberRepo(db)),
			Calendar:    &calendar.CalendarController{},
			Log:         log.Named("bot"),
		}
		bot.Register()
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.FallbackFile != "" {
		watcher := &fetch.FileWatcher{
			Path: cfg.FallbackFile,
			Log:  log.Named("watch"),
			OnChange: func() {
				res, err := async.SubmitAsync(ctx, func() (any, error) {
					snap, err := loader.LoadFile()
					if err != nil {
						return nil, err
					}
					return schedule.Apply(snap, time.Now())
				})
				if err != nil {
					log.Warn("reload from file failed", zap.String("path", cfg.FallbackFile), zap.Error(err))
					return
				}
				if bot != nil {
					bot.Notify(ctx, res.(service.Schedule))
				}
			},
		}
		g.Go(func() error {
			if err := watcher.Run(ctx); err != nil {
				log.Warn("file watcher stopped", zap.Error(err))
			}
			return nil
		})
	}

	if cfg.HTTPAddr != "" {
		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.NewRouter(httpapi.NewHandler(schedule, log.Named("http"))),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			log.Info("http api listening", zap.String("addr", cfg.HTTPAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if bot != nil {
		g.Go(func() error {
			log.Info("bot started", zap.String("username", bot.Bot.Me.Username))
			bot.Bot.Start()
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			bot.Bot.Stop()
			return nil
		})
	}

	return g.Wait()
}
