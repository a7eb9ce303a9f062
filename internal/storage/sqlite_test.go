package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisatrail/paisatrail/internal/common"
)

// createTestStorage opens a migrated store backed by a throwaway database.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// A second run over an up-to-date schema is a no-op.
	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSQLiteStorage_Users(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "ananya", "ananya@example.com")
	require.NoError(t, err)
	assert.Positive(t, user.ID)
	assert.True(t, user.IsActive)

	got, err := store.GetUserByUsername(ctx, "ananya")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "ananya@example.com", got.Email)

	got, err = store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ananya", got.Username)

	// Usernames are unique.
	_, err = store.CreateUser(ctx, "ananya", "other@example.com")
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	_, err = store.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_ListAndDeactivateUsers(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first, err := store.CreateUser(ctx, "zara", "zara@example.com")
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, "arjun", "arjun@example.com")
	require.NoError(t, err)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "arjun", users[0].Username)
	assert.Equal(t, "zara", users[1].Username)

	require.NoError(t, store.DeactivateUser(ctx, first.ID))

	users, err = store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "arjun", users[0].Username)

	assert.ErrorIs(t, store.DeactivateUser(ctx, 9999), common.ErrNotFound)
}

func TestSQLiteStorage_CreateUserValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, "", "a@example.com")
	assert.Error(t, err)

	_, err = store.CreateUser(ctx, "a", "")
	assert.Error(t, err)
}
