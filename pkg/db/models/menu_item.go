package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a sellable dish on the storefront menu.
type MenuItem struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID     uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Name           string          `gorm:"column:name;not null"`
	Description    string          `gorm:"column:description;not null"`
	ImageURL       string          `gorm:"column:image_url;not null"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Rating         float64         `gorm:"column:rating;type:numeric(3,1);not null;default:0"`
	Calories       int             `gorm:"column:calories;not null;default:0"`
	Protein        int             `gorm:"column:protein;not null;default:0"`
	IsAvailable    bool            `gorm:"column:is_available;not null"`
	Category       *Category       `gorm:"foreignKey:CategoryID"`
	Customizations []Customization `gorm:"many2many:menu_item_customizations;joinForeignKey:MenuItemID;joinReferences:CustomizationID"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
