package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/crohrer/booksync/internal/config"
	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/internal/netmon"
	"github.com/crohrer/booksync/internal/remote"
	"github.com/crohrer/booksync/internal/session"
	"github.com/crohrer/booksync/internal/store"
	syncengine "github.com/crohrer/booksync/internal/sync"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("booksync")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open local database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("migrate local database")
	}

	local := store.NewStore(db, log)

	sessions := session.NewManager(log)
	if cfg.Session.Token != "" {
		if err = sessions.SetToken(cfg.Session.Token); err != nil {
			log.Fatal().Err(err).Msg("install session token")
		}
	}

	backend, err := newRemote(ctx, cfg.Remote, sessions, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect remote store")
	}
	defer backend.Close()

	engine := syncengine.New(local, backend, cfg.Sync, log)

	monitor := netmon.NewMonitor(cfg.Net, log)
	monitor.Start(ctx)
	defer monitor.Stop()

	run(ctx, engine, sessions, monitor, log)

	engine.Stop()
	log.Info().Msg("shutdown complete")
}

// run gates the engine on session state and triggers catch-up passes when
// connectivity returns. Blocks until ctx is cancelled.
func run(ctx context.Context, engine *syncengine.Engine, sessions *session.Manager, monitor *netmon.Monitor, log *logger.Logger) {
	if sessions.Token() != "" {
		engine.Start(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case state := <-sessions.States():
			switch state {
			case session.SignedIn:
				engine.Start(ctx)
			case session.SignedOut:
				engine.Stop()
			}
		case status := <-monitor.Events():
			if status != netmon.Online {
				continue
			}
			if err := engine.CatchUp(ctx); err != nil {
				log.Warn().Err(err).Msg("catch-up pass failed")
			}
		}
	}
}

// newRemote picks the remote backend: direct Postgres when a DSN is
// configured, the REST transport otherwise.
func newRemote(ctx context.Context, cfg config.Remote, sessions *session.Manager, log *logger.Logger) (syncengine.RemoteStore, error) {
	if cfg.PostgresDSN != "" {
		return remote.NewPostgres(ctx, cfg.PostgresDSN, log)
	}

	return remote.NewClient(cfg, sessions.Token, log), nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
