package constants_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/contexttools"

	"calsift.app/internal/constants"
	"calsift.app/internal/models"
)

func TestUserContextKey(t *testing.T) {
	user := models.User{
		ID:    "4001e9cf-3fbe-4b09-863f-bd1654cfbf76",
		Email: "user@example.com",
	}

	ctx := context.WithValue(context.Background(), constants.UserContextKey, user)

	fetched := contexttools.GetValue[models.User](ctx, constants.UserContextKey)
	require.NotNil(t, fetched)
	assert.Equal(t, user, *fetched)
}
