package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sparkmatch/sparkmatch/internal/repository"
)

func TestMatchPairNormalization(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	require.NoError(t, repo.Create(ctx, "zoe", "adam"))

	// same pair in the other order is the same row
	err := repo.Create(ctx, "adam", "zoe")
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	count, err := repo.CountForPair(ctx, "zoe", "adam")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestActiveFor(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	require.NoError(t, repo.Create(ctx, "alice", "bob"))
	require.NoError(t, repo.Create(ctx, "carol", "alice"))
	require.NoError(t, repo.Create(ctx, "carol", "dave"))

	matches, err := repo.ActiveFor(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = repo.ActiveFor(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
