package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisatrail/paisatrail/internal/common"
	"github.com/paisatrail/paisatrail/internal/model"
)

func TestSQLiteStorage_ActiveRulesOrdering(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "ordering", "ordering@example.com")
	require.NoError(t, err)

	// Global rule plus user rules across priorities.
	global := &model.CategoryRule{Pattern: "uber", Category: "transport", Priority: 10, IsActive: true}
	require.NoError(t, store.CreateRule(ctx, global))

	for _, r := range []*model.CategoryRule{
		{UserID: &user.ID, Pattern: "zomato", Category: "food_dining", Priority: 10, IsActive: true},
		{UserID: &user.ID, Pattern: "amazon", Category: "shopping", Priority: 5, IsActive: true},
		{UserID: &user.ID, Pattern: "dormant", Category: "unused", Priority: 99, IsActive: false},
	} {
		require.NoError(t, store.CreateRule(ctx, r))
	}

	rules, err := store.ActiveRules(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, rules, 3)

	// Priority descending, then pattern ascending. The inactive rule is
	// excluded even though it has the highest priority.
	assert.Equal(t, "uber", rules[0].Pattern)
	assert.Equal(t, "zomato", rules[1].Pattern)
	assert.Equal(t, "amazon", rules[2].Pattern)

	assert.Nil(t, rules[0].UserID)
	require.NotNil(t, rules[1].UserID)
	assert.Equal(t, user.ID, *rules[1].UserID)
}

func TestSQLiteStorage_ActiveRulesScopedToUser(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	alice, err := store.CreateUser(ctx, "alice", "alice@example.com")
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, "bob", "bob@example.com")
	require.NoError(t, err)

	require.NoError(t, store.CreateRule(ctx, &model.CategoryRule{
		UserID: &alice.ID, Pattern: "private", Category: "personal", Priority: 1, IsActive: true,
	}))

	rules, err := store.ActiveRules(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestSQLiteStorage_ListRules(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "lister", "lister@example.com")
	require.NoError(t, err)

	require.NoError(t, store.CreateRule(ctx, &model.CategoryRule{
		Pattern: "global", Category: "g", Priority: 1, IsActive: true,
	}))
	userRule := &model.CategoryRule{UserID: &user.ID, Pattern: "mine", Category: "m", Priority: 1, IsActive: true}
	require.NoError(t, store.CreateRule(ctx, userRule))
	require.NoError(t, store.DeactivateRule(ctx, userRule.ID))

	globals, err := store.ListRules(ctx, nil)
	require.NoError(t, err)
	require.Len(t, globals, 1)
	assert.Equal(t, "global", globals[0].Pattern)

	// Inactive rules stay listed in the user scope.
	mine, err := store.ListRules(ctx, &user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Pattern)
	assert.False(t, mine[0].IsActive)
}

func TestSQLiteStorage_DeactivateRuleNotFound(t *testing.T) {
	store := createTestStorage(t)
	assert.ErrorIs(t, store.DeactivateRule(context.Background(), 404), common.ErrNotFound)
}

func TestSQLiteStorage_ImportRules(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "importer", "importer@example.com")
	require.NoError(t, err)

	rules := []model.CategoryRule{
		{Pattern: "swiggy", Category: "food_dining", Priority: 10, IsActive: true},
		{Pattern: "uber", Category: "transport", Priority: 10, IsActive: true},
	}

	count, err := store.ImportRules(ctx, user.ID, rules)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	active, err := store.ActiveRules(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestSQLiteStorage_ImportRulesRejectsInvalid(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "strict", "strict@example.com")
	require.NoError(t, err)

	rules := []model.CategoryRule{
		{Pattern: "good", Category: "g", Priority: 1, IsActive: true},
		{Pattern: "", Category: "bad", Priority: 1, IsActive: true},
	}

	// The batch is atomic: one invalid rule aborts the whole import.
	_, err = store.ImportRules(ctx, user.ID, rules)
	require.Error(t, err)

	active, err := store.ActiveRules(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSQLiteStorage_CreateRuleValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assert.Error(t, store.CreateRule(ctx, nil))
	assert.Error(t, store.CreateRule(ctx, &model.CategoryRule{Pattern: " ", Category: "c"}))
	assert.Error(t, store.CreateRule(ctx, &model.CategoryRule{Pattern: "p", Category: ""}))
}
