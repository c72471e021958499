package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpapp "portfolio/internal/app/http"
	"portfolio/internal/config"
	"portfolio/internal/repository"
	"portfolio/internal/repository/memory"
	"portfolio/internal/services/auth"
	contactsvc "portfolio/internal/services/contact_service"
	contentsvc "portfolio/internal/services/content_service"
	mediasvc "portfolio/internal/services/media_service"
	sessionsvc "portfolio/internal/services/session_service"
	tokensvc "portfolio/internal/services/token_service"
	"portfolio/internal/storage/filestorage"
	"portfolio/internal/storage/postgresql"
	redisapp "portfolio/internal/storage/redis"
	httprouters "portfolio/internal/transport/http"

	"golang.org/x/sync/errgroup"
)

type App struct {
	log *slog.Logger
	cfg *config.Config

	HTTPServer *httpapp.Server
	Media      *mediasvc.MediaService
	Content    *contentsvc.ContentService
	Contact    *contactsvc.ContactService
	Auth       *auth.Auth

	closers []func() error
}

type stores struct {
	media   repository.MediaRepository
	content repository.ContentRepository
	contact repository.ContactRepository
	admin   repository.AdminRepository
	tokens  repository.TokenRepository
}

// New wires the application. PostgreSQL and redis are used when configured,
// otherwise in-memory stores stand in for them.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	a := &App{log: log, cfg: cfg}
	checks := make(map[string]httprouters.HealthChecker)

	st, err := a.openStores(ctx, checks)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	files, uploadsDir, err := openFileStorage(cfg.FileStorage)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a.Media = mediasvc.NewMediaService(log, st.media, files, mediasvc.Config{
		Buckets: mediasvc.Buckets{
			Image: cfg.FileStorage.ImageBucket,
			Video: cfg.FileStorage.VideoBucket,
		},
		MigrationBatch: cfg.Media.MigrationBatch,
		MaxFileSize:    cfg.FileStorage.MaxSize,
	})
	a.Content = contentsvc.NewContentService(log, st.content).WithImages(a.Media)
	a.Contact = contactsvc.NewContactService(log, st.contact)

	tokens := tokensvc.NewTokenService(st.tokens, tokensvc.Config{
		Secret:     cfg.Auth.JWTSecret,
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	})
	tracker := sessionsvc.NewTracker(log, sessionsvc.SystemClock{}, sessionsvc.InactivityPolicy(cfg.Auth.InactivityTimeout), cfg.Auth.RefreshTTL)
	a.Auth = auth.New(log, st.admin, st.admin, tokens, tracker)

	routers := httprouters.NewRouter(log, a.Media, a.Content, a.Contact, a.Auth)
	for name, hc := range checks {
		routers.WithHealthCheck(name, hc)
	}

	a.HTTPServer = httpapp.New(log, httpapp.Options{
		Host:          cfg.HTTP.Host,
		Port:          cfg.HTTP.Port,
		JWTSecret:     cfg.Auth.JWTSecret,
		SessionSecret: cfg.Auth.SessionSecret,
		UploadsDir:    uploadsDir,
		BodyLimit:     cfg.HTTP.BodyLimit,
		AllowOrigins:  cfg.HTTP.AllowOrigins,
	}, routers, tokens, tracker)
	a.HTTPServer.BuildRouters()

	return a, nil
}

func (a *App) openStores(ctx context.Context, checks map[string]httprouters.HealthChecker) (stores, error) {
	var st stores

	if a.cfg.DSN != "" {
		pg, err := postgresql.New(ctx, a.cfg.DSN)
		if err != nil {
			return st, err
		}
		a.closers = append(a.closers, func() error { pg.Stop(); return nil })
		checks["postgres"] = pg

		if err := pg.ApplySchema(ctx); err != nil {
			return st, err
		}

		repo := repository.NewRepository(pg.Pool())
		st.media, st.content, st.contact, st.admin = repo.Media, repo.Content, repo.Contact, repo.Admin
	} else {
		a.log.Warn("no dsn configured, using in-memory store")
		mem := memory.NewStore()
		st.media, st.content, st.contact, st.admin = mem, mem, mem, mem
	}

	if a.cfg.Redis.RedisAddr != "" {
		client := redisapp.NewClient(a.cfg.Redis.RedisAddr, a.cfg.Redis.RedisPassword, a.cfg.Redis.RedisDB)
		a.closers = append(a.closers, client.Close)
		checks["redis"] = client

		st.tokens = repository.NewRedisTokenRepo(client)
	} else {
		st.tokens = memory.NewTokenStore(time.Minute)
	}

	return st, nil
}

func openFileStorage(cfg config.FileStorageConfig) (filestorage.FileStorage, string, error) {
	switch cfg.Driver {
	case "s3":
		return filestorage.NewS3Storage(filestorage.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicURL:       cfg.S3.PublicURL,
			UsePathStyle:    cfg.S3.UsePathStyle,
		}), "", nil
	case "", "local":
		fs, err := filestorage.NewLocalFileStorage(cfg.BaseDir, cfg.BaseURL)
		if err != nil {
			return nil, "", err
		}
		return fs, fs.BaseDir(), nil
	default:
		return nil, "", fmt.Errorf("unknown file storage driver %q", cfg.Driver)
	}
}

// SeedAdmin creates the configured admin account when it does not exist yet.
func (a *App) SeedAdmin(ctx context.Context) error {
	if a.cfg.Auth.AdminEmail == "" || a.cfg.Auth.AdminPassword == "" {
		return nil
	}

	created, err := a.Auth.EnsureAdmin(ctx, a.cfg.Auth.AdminEmail, a.cfg.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("app.SeedAdmin: %w", err)
	}
	if created {
		a.log.Info("seed admin created", slog.String("email", a.cfg.Auth.AdminEmail))
	}
	return nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.HTTPServer.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.HTTPServer.Stop()
	})

	return g.Wait()
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
