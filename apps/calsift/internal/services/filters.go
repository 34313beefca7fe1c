package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"calsift.app/apps/calsift/internal/models"
	"calsift.app/apps/calsift/internal/repositories"
	"calsift.app/apps/calsift/internal/selection"
)

var ErrNoCalendarConnected = errors.New("no calendar connected")

// FilterService persists selections as named filters and turns a saved
// filter back into either a live session or a filtered feed.
type FilterService struct {
	logger   *slog.Logger
	repo     *repositories.FilterRepository
	catalog  *CatalogService
	sessions *SessionService
}

// Save snapshots the session's two ledgers under a fresh token.
func (s *FilterService) Save(
	ctx context.Context,
	userID string,
	name string,
) (*models.Filter, error) {
	selected, subscribed, sourceURL := s.sessions.Ledgers(userID)
	if sourceURL == "" {
		return nil, ErrNoCalendarConnected
	}

	filter := models.Filter{
		Token:            uuid.NewString(),
		UserID:           userID,
		Name:             name,
		SourceURL:        sourceURL,
		SelectedEvents:   selected,
		SubscribedGroups: subscribed,
		CreatedAt:        time.Now(),
	}

	if err := s.repo.Upsert(ctx, filter); err != nil {
		return nil, err
	}

	return &filter, nil
}

func (s *FilterService) List(
	ctx context.Context,
	userID string,
) ([]models.Filter, error) {
	return s.repo.GetAllByUser(ctx, userID)
}

func (s *FilterService) Delete(
	ctx context.Context,
	userID string,
	token string,
) error {
	return s.repo.Delete(ctx, token, userID)
}

// Restore rehydrates a saved filter into the user's session: the source is
// fetched again, a fresh catalog is built and both ledgers are replaced
// wholesale.
func (s *FilterService) Restore(
	ctx context.Context,
	userID string,
	token string,
) error {
	filter, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if filter.UserID != userID {
		return errors.New("filter belongs to another user")
	}

	data, err := s.catalog.FetchICS(ctx, filter.SourceURL)
	if err != nil {
		return err
	}

	catalog, err := s.catalog.BuildCatalog(data, time.Now())
	if err != nil {
		return err
	}

	s.sessions.RestoreFilter(userID, *filter, catalog)
	return nil
}

func (s *FilterService) Get(
	ctx context.Context,
	token string,
) (*models.Filter, error) {
	return s.repo.GetByToken(ctx, token)
}

// Feed renders the filtered ICS for a saved filter. The effective
// selection is recomputed against a freshly built catalog, so members
// added to a subscribed group after the filter was saved are included.
func (s *FilterService) Feed(ctx context.Context, token string) ([]byte, error) {
	filter, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.Render(ctx, *filter)
}

// Render builds the filtered ICS for an already loaded filter.
func (s *FilterService) Render(
	ctx context.Context,
	filter models.Filter,
) ([]byte, error) {
	data, err := s.catalog.FetchICS(ctx, filter.SourceURL)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog.BuildCatalog(data, time.Now())
	if err != nil {
		return nil, err
	}

	engine := selection.NewEngine()
	engine.ReplaceSelection(filter.SelectedEvents)
	engine.SetSubscribedGroups(filter.SubscribedGroups)

	return s.catalog.ApplySelection(data, engine.EffectiveSelection(catalog))
}
