package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farhxn/foodcourt-backend/pkg/enums"
)

// Customization is an optional priced add-on attachable to menu items.
type Customization struct {
	ID        uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string                  `gorm:"column:name;not null"`
	Price     decimal.Decimal         `gorm:"column:price;type:numeric(10,2);not null"`
	Type      enums.CustomizationType `gorm:"column:type;not null"`
	CreatedAt time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
