package store_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-recommendation-engine/internal/models"
	"scheme-recommendation-engine/internal/services/store"
)

func newTestStore(t *testing.T) *store.CSVStore {
	t.Helper()
	return store.NewCSVStore(filepath.Join(t.TempDir(), "signups.csv"))
}

func TestCSVStore_SaveAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, &models.SignupCreate{
		Name: "Asha", Age: 28, Contact: "9876543210", Email: "asha@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	list, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Asha", list[0].Name)
	assert.Equal(t, 28, list[0].Age)
	assert.Equal(t, "asha@example.com", list[0].Email)
	assert.Equal(t, saved.ID, list[0].ID)
}

func TestCSVStore_ListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Save(ctx, &models.SignupCreate{
			Name:  fmt.Sprintf("User %d", i),
			Age:   20 + i,
			Email: fmt.Sprintf("user%d@example.com", i),
		})
		require.NoError(t, err)
	}

	list, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "User 3", list[0].Name)
	assert.Equal(t, "User 4", list[1].Name)
}

func TestCSVStore_ListEmpty(t *testing.T) {
	s := newTestStore(t)

	list, err := s.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCSVStore_FindByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, &models.SignupCreate{Name: "Old", Age: 30, Email: "asha@example.com"})
	require.NoError(t, err)
	_, err = s.Save(ctx, &models.SignupCreate{Name: "New", Age: 31, Email: "asha@example.com"})
	require.NoError(t, err)

	found, err := s.FindByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New", found.Name, "most recent signup wins, match is case-insensitive")
}

func TestCSVStore_FindByEmailNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, models.ErrStoreNotFound)
}
