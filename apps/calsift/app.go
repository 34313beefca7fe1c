//nolint:revive //it is what it is
package calsift

import (
	"context"
	"embed"
	"log/slog"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"github.com/xdoubleu/essentia/v2/pkg/threading"

	"calsift.app/apps/calsift/internal/jobs"
	"calsift.app/apps/calsift/internal/repositories"
	"calsift.app/apps/calsift/internal/services"
	"calsift.app/apps/calsift/pkg/discover"
	"calsift.app/internal/auth"
	"calsift.app/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type CalSift struct {
	logger       *slog.Logger
	ctx          context.Context
	ctxCancel    context.CancelFunc
	db           postgres.DB
	Config       config.Config
	clients      Clients
	Services     *services.Services
	Repositories *repositories.Repositories
	jobQueue     *threading.JobQueue
}

func New(
	authService auth.Service,
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
) *CalSift {
	clients := Clients{
		Discover: discover.New(logger),
	}

	return NewInner(authService, logger, cfg, db, clients)
}

func NewInner(
	authService auth.Service,
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
	clients Clients,
) *CalSift {
	//nolint:mnd //no magic number
	jobQueue := threading.NewJobQueue(logger, 2, 100)

	//nolint:exhaustruct //other fields are optional
	app := &CalSift{
		logger:   logger,
		clients:  clients,
		Config:   cfg,
		jobQueue: jobQueue,
	}

	app.setContext()
	app.setDB(db, authService)
	app.setJobs()

	return app
}

func (app *CalSift) setDB(
	db postgres.DB,
	authService auth.Service,
) {
	// make sure previous app is cancelled internally
	app.ctxCancel()
	app.jobQueue.Clear()

	app.setContext()

	spandb := postgres.NewSpanDB(db)
	app.db = spandb

	app.Repositories = repositories.New(app.db)
	app.Services = services.New(
		app.logger,
		app.Config,
		app.jobQueue,
		app.Repositories,
		app.clients.Discover,
		authService,
	)
}

func (app *CalSift) setJobs() {
	err := app.jobQueue.AddJob(
		jobs.NewCatalogRefreshJob(app.Services.Catalog, app.Services.Sessions),
		app.Services.WebSocket.PushRefreshState,
	)
	if err != nil {
		panic(err)
	}

	app.Services.WebSocket.RegisterTopics(app.jobQueue.FetchJobIDs())
}

func (app *CalSift) setContext() {
	ctx, cancel := context.WithCancel(context.Background())
	app.ctx = ctx
	app.ctxCancel = cancel
}

func (app *CalSift) ApplyMigrations(db *pgxpool.Pool) error {
	migrationsDB := stdlib.OpenDBFromPool(db)

	goose.SetLogger(slog.NewLogLogger(app.logger.Handler(), slog.LevelInfo))

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return err
	}

	if err := goose.Up(migrationsDB, "migrations"); err != nil {
		return err
	}

	return nil
}

func (app *CalSift) GetName() string {
	return "calsift"
}
