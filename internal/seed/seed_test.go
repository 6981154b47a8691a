package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/farhxn/foodcourt-backend/pkg/db/models"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE customizations (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  type TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE menu_items (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  image_url TEXT NOT NULL,
  price NUMERIC NOT NULL,
  rating NUMERIC NOT NULL DEFAULT 0,
  calories INTEGER NOT NULL DEFAULT 0,
  protein INTEGER NOT NULL DEFAULT 0,
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE menu_item_customizations (
  menu_item_id TEXT NOT NULL,
  customization_id TEXT NOT NULL,
  PRIMARY KEY (menu_item_id, customization_id)
);`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func TestLoadCatalogReferencesResolve(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, catalog.Categories)
	require.NotEmpty(t, catalog.Customizations)
	require.NotEmpty(t, catalog.Menu)

	categories := make(map[string]bool, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		assert.False(t, categories[cat.Name], "duplicate category %q", cat.Name)
		categories[cat.Name] = true
	}
	customizations := make(map[string]bool, len(catalog.Customizations))
	for _, cus := range catalog.Customizations {
		assert.False(t, customizations[cus.Name], "duplicate customization %q", cus.Name)
		customizations[cus.Name] = true
	}
	for _, item := range catalog.Menu {
		assert.True(t, categories[item.CategoryName], "item %q: unknown category %q", item.Name, item.CategoryName)
		for _, name := range item.Customizations {
			assert.True(t, customizations[name], "item %q: unknown customization %q", item.Name, name)
		}
	}
}

func TestRunnerSeedsCatalog(t *testing.T) {
	db := setupSeedTestDB(t)
	runner := NewRunner(&testTxRunner{db: db}, logger.New(logger.Options{ServiceName: "test"}))

	require.NoError(t, runner.Run(context.Background()))

	catalog, err := LoadCatalog()
	require.NoError(t, err)

	var categories, customizations, items, joins int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Customization{}).Count(&customizations).Error)
	require.NoError(t, db.Model(&models.MenuItem{}).Count(&items).Error)
	require.NoError(t, db.Table("menu_item_customizations").Count(&joins).Error)

	assert.Equal(t, int64(len(catalog.Categories)), categories)
	assert.Equal(t, int64(len(catalog.Customizations)), customizations)
	assert.Equal(t, int64(len(catalog.Menu)), items)

	wantJoins := 0
	for _, item := range catalog.Menu {
		wantJoins += len(item.Customizations)
	}
	assert.Equal(t, int64(wantJoins), joins)

	var item models.MenuItem
	require.NoError(t, db.Preload("Customizations").Where("name = ?", catalog.Menu[0].Name).First(&item).Error)
	assert.Len(t, item.Customizations, len(catalog.Menu[0].Customizations))
}

func TestRunnerRerunReplacesCatalog(t *testing.T) {
	db := setupSeedTestDB(t)
	runner := NewRunner(&testTxRunner{db: db}, logger.New(logger.Options{ServiceName: "test"}))

	require.NoError(t, runner.Run(context.Background()))
	require.NoError(t, runner.Run(context.Background()))

	catalog, err := LoadCatalog()
	require.NoError(t, err)

	var items int64
	require.NoError(t, db.Model(&models.MenuItem{}).Count(&items).Error)
	assert.Equal(t, int64(len(catalog.Menu)), items)
}
