package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/account"
	googleauth "docvault-backend/internal/auth"
	"docvault-backend/internal/documents"
	"docvault-backend/internal/profiles"
	"docvault-backend/internal/progress"
	"docvault-backend/internal/queue"
	"docvault-backend/internal/shared/config"
	"docvault-backend/internal/shared/server"
	"docvault-backend/internal/shared/storage/db"
	"docvault-backend/internal/shared/storage/object"
	localstore "docvault-backend/internal/shared/storage/object/local"
	s3store "docvault-backend/internal/shared/storage/object/s3"
)

// App holds the shared dependencies of the API and worker processes.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	LocalStore       *localstore.Store
	Queue            queue.Client
	Feed             *progress.Feed
	ProgressRepo     progress.Repo
	ProfilesRepo     profiles.Repo
	DocumentsService *documents.Service
	ProfilesService  *profiles.Service
	AccountService   *account.Service
	DocumentsHandler *documents.Handler
	ProfilesHandler  *profiles.Handler
	AccountHandler   *account.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, localStore, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:     cfg,
		DB:         sqlDB,
		Store:      store,
		LocalStore: localStore,
		Queue:      queueClient,
		Feed:       progress.NewFeed(),
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		DocumentsHandler: app.DocumentsHandler,
		ProfilesHandler:  app.ProfilesHandler,
		AccountHandler:   app.AccountHandler,
		GoogleAuth:       app.GoogleAuth,
		LocalStore:       app.LocalStore,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// buildStore returns the active object store; the second value is non-nil
// only for the local store, which the router needs to serve signed URLs.
func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, *localstore.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	default:
		store := localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL, cfg.LocalSignSecret)
		return store, store, nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.OrphanQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildServices(app *App) {
	if app.DB != nil {
		app.ProgressRepo = &progress.PGRepo{DB: app.DB}
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
	} else {
		app.ProgressRepo = progress.NewMemoryRepo()
		app.ProfilesRepo = profiles.NewMemoryRepo()
	}

	signTTL := time.Duration(app.Config.SignURLTTLSeconds) * time.Second
	app.DocumentsService = documents.NewService(app.Store, app.ProgressRepo, app.Feed, app.Queue, signTTL)
	app.ProfilesService = profiles.NewService(app.ProfilesRepo)
	app.AccountService = account.NewService(app.ProgressRepo, app.ProfilesRepo, app.DB)

	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.ProfilesHandler = profiles.NewHandler(app.ProfilesService)
	app.AccountHandler = account.NewHandler(app.AccountService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
