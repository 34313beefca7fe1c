package services

import (
	"log/slog"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/threading"
	"github.com/xhit/go-str2duration/v2"

	"calsift.app/apps/calsift/internal/repositories"
	"calsift.app/apps/calsift/pkg/discover"
	"calsift.app/internal/auth"
	"calsift.app/internal/config"
)

const sessionCleanupInterval = 5 * time.Minute

type Services struct {
	Auth      auth.Service
	Catalog   *CatalogService
	Sessions  *SessionService
	Filters   *FilterService
	Discover  *DiscoverService
	WebSocket *WebSocketService
}

func New(
	logger *slog.Logger,
	cfg config.Config,
	jobQueue *threading.JobQueue,
	repositories *repositories.Repositories,
	discoverClient discover.Client,
	authService auth.Service,
) *Services {
	horizon, err := str2duration.ParseDuration(cfg.CatalogHorizon)
	if err != nil {
		panic(err)
	}

	sessionExpiry, err := str2duration.ParseDuration(cfg.SessionExpiry)
	if err != nil {
		panic(err)
	}

	catalog := &CatalogService{
		logger:  logger,
		horizon: horizon,
	}
	sessions := NewSessionService(logger, sessionCleanupInterval, sessionExpiry)
	filters := &FilterService{
		logger:   logger,
		repo:     repositories.Filters,
		catalog:  catalog,
		sessions: sessions,
	}
	discoverService := &DiscoverService{
		logger: logger,
		client: discoverClient,
	}

	return &Services{
		Auth:      authService,
		Catalog:   catalog,
		Sessions:  sessions,
		Filters:   filters,
		Discover:  discoverService,
		WebSocket: NewWebSocketService(logger, []string{cfg.WebURL}, jobQueue),
	}
}
