package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"airplane-seating-cli/config"
	"airplane-seating-cli/queue"
	"airplane-seating-cli/service"
	"airplane-seating-cli/store"
)

// runtime is what a command works against: the remote service when a server
// URL is configured, otherwise a local session over the configured backend.
type runtime struct {
	svc     service.Seating
	session *service.Session
	logger  *log.Logger
	closers []io.Closer
}

func (r *runtime) local() bool {
	return r.session != nil
}

func (r *runtime) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
}

// open builds the runtime. serverLogs sends logs to stderr, as the HTTP
// service does; otherwise they go to SEATING_LOG_FILE or nowhere.
func (o *rootOptions) open(ctx context.Context, serverLogs bool) (*runtime, error) {
	rt := &runtime{}
	logger, closer, err := newLogger(o.cfg, serverLogs)
	if err != nil {
		return nil, err
	}
	rt.logger = logger
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}

	if o.cfg.ServerURL != "" && !serverLogs {
		rt.svc = service.NewClient(o.cfg.ServerURL, nil)
		return rt, nil
	}

	st, closer, err := openStateStore(ctx, o.cfg)
	if err != nil {
		rt.close()
		return nil, err
	}
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}

	sessionOpts := []service.SessionOption{
		service.WithPolicy(o.cfg.Policy()),
		service.WithLogger(logger),
	}
	if o.cfg.AMQPURL != "" {
		sessionOpts = append(sessionOpts, service.WithPublisher(queue.NewPublisher(o.cfg.AMQPURL, o.cfg.AMQPQueue, logger)))
	}
	rt.session = service.NewSession(st, sessionOpts...)
	rt.svc = rt.session
	return rt, nil
}

func openStateStore(ctx context.Context, cfg config.Config) (*store.StateStore, io.Closer, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := store.OpenRedis(ctx, store.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return store.NewStateStore(store.NewRedisBackend(client, cfg.RedisKey)), client, nil

	case config.StoreMySQL:
		db, err := store.OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mysql: %w", err)
		}
		backend := store.NewSQLBackend(db, "")
		if err := backend.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("create state table: %w", err)
		}
		return store.NewStateStore(backend), db, nil

	default:
		backend, err := store.NewFileBackend(cfg.StatePath)
		if err != nil {
			return nil, nil, err
		}
		return store.NewStateStore(backend), nil, nil
	}
}

func newLogger(cfg config.Config, serverLogs bool) (*log.Logger, io.Closer, error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return log.New(f, "seating ", log.LstdFlags), f, nil
	}
	if serverLogs {
		return log.New(os.Stderr, "", log.LstdFlags), nil, nil
	}
	return log.New(io.Discard, "", 0), nil, nil
}

// loadLocal restores saved state for one-shot local commands.
func (r *runtime) loadLocal(ctx context.Context) error {
	if !r.local() {
		return nil
	}
	_, err := r.session.Load(ctx)
	return err
}

// saveLocal persists state after a local mutation.
func (r *runtime) saveLocal(ctx context.Context) error {
	if !r.local() {
		return nil
	}
	return r.session.Save(ctx)
}
