package repositories

import (
	"context"

	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"

	"calsift.app/apps/calsift/internal/models"
)

type FilterRepository struct {
	db postgres.DB
}

func (repo *FilterRepository) Upsert(
	ctx context.Context,
	filter models.Filter,
) error {
	// never send NULL arrays to Postgres
	if filter.SelectedEvents == nil {
		filter.SelectedEvents = []string{}
	}
	if filter.SubscribedGroups == nil {
		filter.SubscribedGroups = []string{}
	}

	query := `
		INSERT INTO calsift.filters
		(token, user_id, name, source_url, selected_events, subscribed_groups)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (token) DO UPDATE SET
		  name = $3,
		  source_url = $4,
		  selected_events = $5,
		  subscribed_groups = $6
	`

	_, err := repo.db.Exec(
		ctx,
		query,
		filter.Token,
		filter.UserID,
		filter.Name,
		filter.SourceURL,
		filter.SelectedEvents,
		filter.SubscribedGroups,
	)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}

func (repo *FilterRepository) GetByToken(
	ctx context.Context,
	token string,
) (*models.Filter, error) {
	query := `
		SELECT user_id, name, source_url, selected_events,
		subscribed_groups, created_at
		FROM calsift.filters
		WHERE token = $1
	`

	//nolint:exhaustruct //other fields are assigned by Scan
	filter := models.Filter{
		Token: token,
	}
	err := repo.db.QueryRow(ctx, query, token).Scan(
		&filter.UserID,
		&filter.Name,
		&filter.SourceURL,
		&filter.SelectedEvents,
		&filter.SubscribedGroups,
		&filter.CreatedAt,
	)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return &filter, nil
}

func (repo *FilterRepository) GetAllByUser(
	ctx context.Context,
	userID string,
) ([]models.Filter, error) {
	query := `
		SELECT token, name, source_url, selected_events,
		subscribed_groups, created_at
		FROM calsift.filters
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := repo.db.Query(ctx, query, userID)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	filters := []models.Filter{}
	for rows.Next() {
		//nolint:exhaustruct //other fields are assigned by Scan
		filter := models.Filter{
			UserID: userID,
		}

		err = rows.Scan(
			&filter.Token,
			&filter.Name,
			&filter.SourceURL,
			&filter.SelectedEvents,
			&filter.SubscribedGroups,
			&filter.CreatedAt,
		)
		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		filters = append(filters, filter)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return filters, nil
}

func (repo *FilterRepository) Delete(
	ctx context.Context,
	token string,
	userID string,
) error {
	query := `
		DELETE FROM calsift.filters
		WHERE token = $1 AND user_id = $2
	`

	_, err := repo.db.Exec(ctx, query, token, userID)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}
