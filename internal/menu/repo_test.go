package menu

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/farhxn/foodcourt-backend/pkg/db/models"
	"github.com/farhxn/foodcourt-backend/pkg/enums"
	"github.com/farhxn/foodcourt-backend/pkg/pagination"
)

func setupMenuTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	menuItems := `
CREATE TABLE IF NOT EXISTS menu_items (
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
);`
	customizations := `
CREATE TABLE IF NOT EXISTS customizations (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  type TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	joins := `
CREATE TABLE IF NOT EXISTS menu_item_customizations (
  menu_item_id TEXT NOT NULL,
  customization_id TEXT NOT NULL,
  PRIMARY KEY (menu_item_id, customization_id)
);`
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(menuItems).Error)
	require.NoError(t, db.Exec(customizations).Error)
	require.NoError(t, db.Exec(joins).Error)
	return db
}

func newCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: name + " dishes",
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func newMenuItem(t *testing.T, db *gorm.DB, category *models.Category, name string, price string, created time.Time, available bool) *models.MenuItem {
	t.Helper()

	item := &models.MenuItem{
		ID:          uuid.New(),
		CategoryID:  category.ID,
		Name:        name,
		Description: "A " + name,
		ImageURL:    "https://cdn.example.com/" + name + ".png",
		Price:       decimal.RequireFromString(price),
		Rating:      4.5,
		Calories:    550,
		Protein:     22,
		IsAvailable: available,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func newCustomization(t *testing.T, db *gorm.DB, item *models.MenuItem, name string, price string, kind enums.CustomizationType) *models.Customization {
	t.Helper()

	c := &models.Customization{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
		Type:  kind,
	}
	require.NoError(t, db.Create(c).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO menu_item_customizations (menu_item_id, customization_id) VALUES (?, ?)",
		item.ID, c.ID,
	).Error)
	return c
}

func TestRepositoryListItems_pagination(t *testing.T) {
	db := setupMenuTestDB(t)
	repo := NewRepository(db)

	category := newCategory(t, db, "Burgers "+uuid.NewString())
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		newMenuItem(t, db, category, "Burger", "8.50", base.Add(time.Duration(i)*time.Minute), true)
	}

	first, err := repo.ListItems(context.Background(), ListInput{
		Filters:    ListFilters{CategoryID: &category.ID},
		Pagination: pagination.Params{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.ListItems(context.Background(), ListInput{
		Filters:    ListFilters{CategoryID: &category.ID},
		Pagination: pagination.Params{Limit: 2, Cursor: first.NextCursor},
	})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	require.NotEmpty(t, second.NextCursor)

	third, err := repo.ListItems(context.Background(), ListInput{
		Filters:    ListFilters{CategoryID: &category.ID},
		Pagination: pagination.Params{Limit: 2, Cursor: second.NextCursor},
	})
	require.NoError(t, err)
	require.Len(t, third.Items, 1)
	assert.Empty(t, third.NextCursor)

	seen := map[uuid.UUID]bool{}
	for _, page := range [][]ItemDTO{first.Items, second.Items, third.Items} {
		for _, item := range page {
			assert.False(t, seen[item.ID], "item %s repeated across pages", item.ID)
			seen[item.ID] = true
		}
	}
	assert.Len(t, seen, 5)
}

func TestRepositoryListItems_filters(t *testing.T) {
	db := setupMenuTestDB(t)
	repo := NewRepository(db)

	category := newCategory(t, db, "Pizzas "+uuid.NewString())
	created := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	match := newMenuItem(t, db, category, "Pepperoni Special "+uuid.NewString(), "12.00", created, true)
	newMenuItem(t, db, category, "Margherita "+uuid.NewString(), "10.00", created.Add(time.Minute), true)
	newMenuItem(t, db, category, "Pepperoni Retired "+uuid.NewString(), "11.00", created.Add(2*time.Minute), false)

	result, err := repo.ListItems(context.Background(), ListInput{
		Filters: ListFilters{CategoryID: &category.ID, Query: "pepperoni"},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, match.ID, result.Items[0].ID)
}

func TestRepositoryListItems_invalidCursor(t *testing.T) {
	db := setupMenuTestDB(t)
	repo := NewRepository(db)

	_, err := repo.ListItems(context.Background(), ListInput{
		Pagination: pagination.Params{Cursor: "not-base64!"},
	})
	require.Error(t, err)
}

func TestRepositoryFindItemByID(t *testing.T) {
	db := setupMenuTestDB(t)
	repo := NewRepository(db)

	category := newCategory(t, db, "Sandwiches "+uuid.NewString())
	created := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	item := newMenuItem(t, db, category, "Club Sandwich", "9.25", created, true)
	newCustomization(t, db, item, "Extra Cheese", "1.50", enums.CustomizationTypeTopping)
	newCustomization(t, db, item, "Fries", "3.00", enums.CustomizationTypeSide)

	found, err := repo.FindItemByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Name, found.Name)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("9.25")))
	require.Len(t, found.Customizations, 2)

	_, err = repo.FindItemByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListCategories(t *testing.T) {
	db := setupMenuTestDB(t)
	repo := NewRepository(db)

	newCategory(t, db, "Wraps "+uuid.NewString())
	newCategory(t, db, "Bowls "+uuid.NewString())

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(categories), 2)
	for i := 1; i < len(categories); i++ {
		assert.LessOrEqual(t, categories[i-1].Name, categories[i].Name)
	}
}

func TestCreateUnavailableItemStaysUnavailable(t *testing.T) {
	db := setupMenuTestDB(t)

	category := newCategory(t, db, "Retired "+uuid.NewString())
	item := newMenuItem(t, db, category, "Pepperoni Retired", "13.49", time.Now().UTC(), false)

	var reloaded models.MenuItem
	require.NoError(t, db.Where("id = ?", item.ID).First(&reloaded).Error)
	assert.False(t, reloaded.IsAvailable)
}
