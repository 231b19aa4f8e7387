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

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "tak-online/docs"
	httpapi "tak-online/internal/api/http"
	"tak-online/internal/api/ws"
	"tak-online/internal/archive"
	"tak-online/internal/config"
	"tak-online/internal/logging"
	"tak-online/internal/room"
	"tak-online/internal/store"
)

const shutdownTimeout = 10 * time.Second

// @title Tak Online API
// @version 1.0
// @description Lobby, game state and match archive for the Tak game server. Live play runs over the /ws WebSocket.
// @contact.name Backend Team
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		rec     room.Recorder
		matches httpapi.MatchReader
	)
	if cfg.ArchivePath != "" {
		db, err := archive.OpenSQLite(archive.SQLiteConfig{Path: cfg.ArchivePath, MaxOpenConns: 1})
		if err != nil {
			return err
		}
		defer closeDB(db, log)
		if err := archive.EnsureSchema(ctx, db); err != nil {
			return err
		}
		repo := archive.NewRepository(db)
		rec, matches = repo, repo
	}

	mem := store.NewMemoryStore()
	hub := ws.NewHub(log.Named("ws"), cfg.OriginAllowed)
	rm := room.NewManager(mem, cfg, hub, rec, log.Named("room"))
	hub.SetRoomManager(rm)

	if cfg.LogFormat != "console" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := httpapi.NewRouter(rm, hub, matches, cfg, log.Named("http"))
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	janitor := cron.New()
	if cfg.RoomIdleTimeout > 0 {
		if _, err := janitor.AddFunc(cfg.JanitorSchedule, func() {
			if n := rm.EvictIdle(); n > 0 {
				log.Info("idle rooms evicted", zap.Int("count", n))
			}
		}); err != nil {
			return fmt.Errorf("janitor schedule %q: %w", cfg.JanitorSchedule, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		janitor.Start()
		<-gctx.Done()
		<-janitor.Stop().Done()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func closeDB(db *sql.DB, log *zap.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("close archive", zap.Error(err))
	}
}
