package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"usersadmin/internal/model"
	"usersadmin/internal/testutil"
)

func TestProfileRepository_ListNewestFirst(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "profilerepo_list")
	repo := NewProfileRepository(d)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &model.Profile{ID: "old", Email: "old@x.com", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &model.Profile{ID: "new", Email: "new@x.com", CreatedAt: base.Add(48 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &model.Profile{ID: "mid", Email: "mid@x.com", FullName: testutil.StringPtr("Mid"), CreatedAt: base.Add(24 * time.Hour)}))

	profiles, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, "new", profiles[0].ID)
	assert.Equal(t, "mid", profiles[1].ID)
	assert.Equal(t, "old", profiles[2].ID)
	require.NotNil(t, profiles[1].FullName)
	assert.Equal(t, "Mid", *profiles[1].FullName)
	assert.Nil(t, profiles[0].FullName)
}

func TestProfileRepository_ListEmpty(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "profilerepo_empty")
	repo := NewProfileRepository(d)

	profiles, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestProfileRepository_FindByID(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "profilerepo_find")
	repo := NewProfileRepository(d)
	ctx := context.Background()

	p := &model.Profile{Email: "a@x.com"}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotEmpty(t, p.ID, "id generated on create")

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
