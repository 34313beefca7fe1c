package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"calsift.app/apps/calsift/internal/services"
)

type CatalogRefreshJob struct {
	catalogService *services.CatalogService
	sessionService *services.SessionService
}

func NewCatalogRefreshJob(
	catalogService *services.CatalogService,
	sessionService *services.SessionService,
) CatalogRefreshJob {
	return CatalogRefreshJob{
		catalogService: catalogService,
		sessionService: sessionService,
	}
}

func (j CatalogRefreshJob) ID() string {
	return "catalog-refresh"
}

func (j CatalogRefreshJob) RunEvery() time.Duration {
	return time.Hour
}

// Run refetches every connected calendar and swaps in the rebuilt catalog.
// Selections are kept, a failing source only skips that session.
func (j CatalogRefreshJob) Run(ctx context.Context, logger *slog.Logger) error {
	for userID, sourceURL := range j.sessionService.Sources() {
		logger.Debug("refreshing catalog", slog.String("sourceUrl", sourceURL))

		data, err := j.catalogService.FetchICS(ctx, sourceURL)
		if err != nil {
			logger.Warn("failed to fetch calendar", logging.ErrAttr(err))
			continue
		}

		catalog, err := j.catalogService.BuildCatalog(data, time.Now())
		if err != nil {
			logger.Warn("failed to rebuild catalog", logging.ErrAttr(err))
			continue
		}

		j.sessionService.RefreshCatalog(userID, catalog)
	}

	return nil
}
