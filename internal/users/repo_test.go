//go:build integration_test || all_tests

package users

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/2beens/levelup/internal/db"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepoSetup(t *testing.T) (*Repo, func()) {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	t.Logf("using postres host: %s", host)

	dbPool, err := db.NewDBPool(timeoutCtx, db.NewDBPoolParams{
		DBHost:         host,
		DBPort:         "5432",
		DBName:         "levelup",
		TracingEnabled: false,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(timeoutCtx, dbPool))

	return NewRepo(dbPool), func() {
		dbPool.Close()
	}
}

func TestRepo_AddGetUpdate(t *testing.T) {
	repo, shutdown := testRepoSetup(t)
	defer shutdown()

	ctx := context.Background()
	_, err := repo.Add(ctx, User{Name: " "})
	require.Error(t, err)

	name := gofakeit.Name()
	added, err := repo.Add(ctx, User{Name: name})
	require.NoError(t, err)
	require.NotZero(t, added.ID)
	assert.Equal(t, 1, added.Level)

	got, err := repo.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Zero(t, got.XP)
	assert.Nil(t, got.BirthDate)

	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, added.ID, latest.ID)

	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	got.Weight = 81.5
	got.Height = 183
	got.BirthDate = &birth
	require.NoError(t, repo.UpdateProfile(ctx, *got))
	require.NoError(t, repo.UpdateWeight(ctx, got.ID, 80))

	got, err = repo.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.Weight)
	assert.Equal(t, 183.0, got.Height)
	require.NotNil(t, got.BirthDate)
	assert.Equal(t, 1990, got.BirthDate.Year())

	require.NoError(t, repo.SetProgress(ctx, got.ID, 120, 2))
	xp, level, err := repo.GetProgress(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, xp)
	assert.Equal(t, 2, level)
}

func TestRepo_NotFound(t *testing.T) {
	repo, shutdown := testRepoSetup(t)
	defer shutdown()

	ctx := context.Background()
	_, err := repo.Get(ctx, -1)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, repo.UpdateWeight(ctx, -1, 70), ErrUserNotFound)
	assert.ErrorIs(t, repo.SetProgress(ctx, -1, 0, 1), ErrUserNotFound)
	assert.ErrorIs(t, repo.UpdateProfile(ctx, User{ID: -1, Name: "x"}), ErrUserNotFound)
	_, _, err = repo.GetProgress(ctx, -1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepo_EnsureDefault(t *testing.T) {
	repo, shutdown := testRepoSetup(t)
	defer shutdown()

	ctx := context.Background()
	first, err := repo.EnsureDefault(ctx, "player")
	require.NoError(t, err)
	second, err := repo.EnsureDefault(ctx, "player")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
