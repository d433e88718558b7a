package sessionstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/learnhub/internal/app/models"
)

func TestStore_RoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	user := models.User{
		ID:           "u-1",
		Email:        "ada@x.com",
		Name:         "Ada",
		Role:         models.RoleStudent,
		PasswordHash: "$2a$12$secret",
	}
	require.NoError(t, store.Save(user))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u-1", loaded.ID)
	assert.Equal(t, "ada@x.com", loaded.Email)
	assert.Equal(t, models.RoleStudent, loaded.Role)
	assert.Empty(t, loaded.PasswordHash, "session record must never carry credential material")
}

func TestStore_LoadWithoutRecord(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_Clear(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(models.User{ID: "u-1"}))
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing again is a no-op, not an error.
	assert.NoError(t, store.Clear())
}

func TestStore_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(models.User{ID: "u-7", Email: "x@y.com"}))

	// A fresh store over the same directory simulates a process restart.
	restarted, err := NewStore(dir)
	require.NoError(t, err)
	loaded, err := restarted.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u-7", loaded.ID)
}
