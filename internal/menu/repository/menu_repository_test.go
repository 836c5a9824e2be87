package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brigade/internal/domain"
	"brigade/internal/errors"
	"brigade/internal/testutil"
)

// Unit Tests

func TestNewMySQLMenuRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLMenuRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMemoryMenuRepository_FindByID(t *testing.T) {
	repo := NewMemoryMenuRepository(
		domain.MenuItem{ID: "menu-1", Name: "Margherita Pizza", Price: 12.50, Available: true},
	)

	item, err := repo.FindByID(context.Background(), "menu-1")
	require.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", item.Name)

	_, err = repo.FindByID(context.Background(), "menu-404")
	require.Error(t, err)
	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Contains(t, nfe.Message, "menu-404")
}

func TestMemoryMenuRepository_List(t *testing.T) {
	repo := NewMemoryMenuRepository(
		domain.MenuItem{ID: "menu-1", Name: "Margherita Pizza", Category: "mains", Available: true},
		domain.MenuItem{ID: "menu-2", Name: "Caesar Salad", Category: "starters", Available: false},
	)

	all, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "menu-1", available[0].ID)
}

// Integration Tests

func TestMenuRepository_FindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMenuRepository(db)

	_, err := db.Exec(`
		INSERT INTO MenuItems (id, name, description, category, price, prepTimeMinutes, available)
		VALUES ('menu-1', 'Margherita Pizza', 'Tomato, mozzarella, basil', 'mains', 12.50, 15, 1)
	`)
	require.NoError(t, err)

	item, err := repo.FindByID(context.Background(), "menu-1")
	require.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", item.Name)
	assert.Equal(t, 12.50, item.Price)
	assert.Equal(t, 15, item.PrepTimeMinutes)
	assert.True(t, item.Available)
}

func TestMenuRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMenuRepository(db)

	item, err := repo.FindByID(context.Background(), "menu-9999")
	assert.Error(t, err)
	assert.Nil(t, item)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestMenuRepository_List_AvailableOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMenuRepository(db)

	_, err := db.Exec(`
		INSERT INTO MenuItems (id, name, description, category, price, prepTimeMinutes, available) VALUES
		('menu-1', 'Margherita Pizza', '', 'mains', 12.50, 15, 1),
		('menu-2', 'Oysters', '', 'starters', 18.00, 10, 0)
	`)
	require.NoError(t, err)

	all, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "menu-1", available[0].ID)
}
