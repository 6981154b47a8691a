package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/farhxn/foodcourt-backend/pkg/db/models"
	"github.com/farhxn/foodcourt-backend/pkg/enums"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
)

//go:embed data.json
var catalogJSON []byte

// Category is a seed catalog category entry.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Customization is a seed catalog add-on entry.
type Customization struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Type  string  `json:"type"`
}

// MenuItem is a seed catalog dish entry. CategoryName and Customizations
// reference other entries by name and are resolved during the run.
type MenuItem struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"image_url"`
	Price          float64  `json:"price"`
	Rating         float64  `json:"rating"`
	Calories       int      `json:"calories"`
	Protein        int      `json:"protein"`
	CategoryName   string   `json:"category_name"`
	Customizations []string `json:"customizations"`
}

// Catalog is the full embedded seed dataset.
type Catalog struct {
	Categories     []Category      `json:"categories"`
	Customizations []Customization `json:"customizations"`
	Menu           []MenuItem      `json:"menu"`
}

// LoadCatalog parses the embedded dataset.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(catalogJSON, &c); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return &c, nil
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Runner replaces the menu catalog tables with the embedded dataset.
type Runner struct {
	db   txRunner
	logg *logger.Logger
}

func NewRunner(db txRunner, logg *logger.Logger) *Runner {
	return &Runner{db: db, logg: logg}
}

// Run wipes and repopulates categories, customizations, menu items and the
// item/customization joins in a single transaction. Name collisions and
// dangling references are collected and returned together; any error rolls
// the whole run back.
func (r *Runner) Run(ctx context.Context) error {
	catalog, err := LoadCatalog()
	if err != nil {
		return err
	}
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := r.clear(ctx, tx); err != nil {
			return err
		}

		var errs []error

		categoryIDs := make(map[string]uuid.UUID, len(catalog.Categories))
		for _, cat := range catalog.Categories {
			if _, ok := categoryIDs[cat.Name]; ok {
				errs = append(errs, fmt.Errorf("duplicate category %q", cat.Name))
				continue
			}
			row := models.Category{
				ID:          uuid.New(),
				Name:        cat.Name,
				Description: cat.Description,
			}
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				errs = append(errs, fmt.Errorf("create category %q: %w", cat.Name, err))
				continue
			}
			categoryIDs[cat.Name] = row.ID
		}
		r.logg.Info(r.logg.WithField(ctx, "count", len(categoryIDs)), "categories seeded")

		customizations := make(map[string]models.Customization, len(catalog.Customizations))
		for _, cus := range catalog.Customizations {
			if _, ok := customizations[cus.Name]; ok {
				errs = append(errs, fmt.Errorf("duplicate customization %q", cus.Name))
				continue
			}
			row := models.Customization{
				ID:    uuid.New(),
				Name:  cus.Name,
				Price: decimal.NewFromFloat(cus.Price),
				Type:  enums.CustomizationType(cus.Type),
			}
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				errs = append(errs, fmt.Errorf("create customization %q: %w", cus.Name, err))
				continue
			}
			customizations[cus.Name] = row
		}
		r.logg.Info(r.logg.WithField(ctx, "count", len(customizations)), "customizations seeded")

		seeded := 0
		for _, item := range catalog.Menu {
			categoryID, ok := categoryIDs[item.CategoryName]
			if !ok {
				errs = append(errs, fmt.Errorf("menu item %q references unknown category %q", item.Name, item.CategoryName))
				continue
			}
			row := models.MenuItem{
				ID:          uuid.New(),
				CategoryID:  categoryID,
				Name:        item.Name,
				Description: item.Description,
				ImageURL:    item.ImageURL,
				Price:       decimal.NewFromFloat(item.Price),
				Rating:      item.Rating,
				Calories:    item.Calories,
				Protein:     item.Protein,
				IsAvailable: true,
			}
			for _, name := range item.Customizations {
				cus, ok := customizations[name]
				if !ok {
					errs = append(errs, fmt.Errorf("menu item %q references unknown customization %q", item.Name, name))
					continue
				}
				row.Customizations = append(row.Customizations, cus)
			}
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				errs = append(errs, fmt.Errorf("create menu item %q: %w", item.Name, err))
				continue
			}
			seeded++
		}
		r.logg.Info(r.logg.WithField(ctx, "count", seeded), "menu items seeded")

		return multierr.Combine(errs...)
	})
}

// clear empties all catalog tables, join table first.
func (r *Runner) clear(ctx context.Context, tx *gorm.DB) error {
	for _, table := range []string{"menu_item_customizations", "menu_items", "customizations", "categories"} {
		if err := tx.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
