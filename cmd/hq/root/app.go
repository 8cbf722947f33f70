package root

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ja-ri/HabitQuest/internal/config"
	"github.com/ja-ri/HabitQuest/internal/engine"
	"github.com/ja-ri/HabitQuest/internal/storage"
)

const flushTimeout = 5 * time.Second

type app struct {
	cfg config.Config
	svc *engine.Service
	log *zap.Logger
}

// openApp wires config, storage, the write queue and the service. The
// returned cleanup flushes pending writes before closing the database.
func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	users := storage.NewUserRepo(db)
	queue := storage.NewWriteQueue(users, log)
	svc := engine.NewService(users, queue, engine.DefaultCatalog(), log)

	cleanup := func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := queue.Flush(flushCtx); err != nil {
			log.Warn("flush on shutdown timed out", zap.Error(err))
		}
		_ = db.Close()
		_ = log.Sync()
	}
	return &app{cfg: cfg, svc: svc, log: log}, cleanup, nil
}
