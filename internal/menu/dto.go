package menu

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farhxn/foodcourt-backend/pkg/db/models"
	"github.com/farhxn/foodcourt-backend/pkg/enums"
	"github.com/farhxn/foodcourt-backend/pkg/pagination"
)

// ListFilters describe the browse endpoint's filter knobs.
type ListFilters struct {
	CategoryID *uuid.UUID
	Query      string
}

// ListInput captures the inputs for a paginated menu listing.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

// ListResult is one page of menu items plus the cursor for the next.
type ListResult struct {
	Items      []ItemDTO
	NextCursor string
}

// ItemDTO is the menu item shape served to clients.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Rating      float64         `json:"rating"`
	Calories    int             `json:"calories"`
	Protein     int             `json:"protein"`
}

// CustomizationDTO is a selectable add-on for an item.
type CustomizationDTO struct {
	ID    uuid.UUID               `json:"id"`
	Name  string                  `json:"name"`
	Price decimal.Decimal         `json:"price"`
	Type  enums.CustomizationType `json:"type"`
}

// ItemDetailDTO is the full item view with its add-ons grouped the way the
// item screen renders them.
type ItemDetailDTO struct {
	ItemDTO
	Toppings []CustomizationDTO `json:"toppings"`
	Sides    []CustomizationDTO `json:"sides"`
	Others   []CustomizationDTO `json:"others,omitempty"`
}

// CategoryDTO is a menu category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func newItemDTO(item models.MenuItem) ItemDTO {
	return ItemDTO{
		ID:          item.ID,
		CategoryID:  item.CategoryID,
		Name:        item.Name,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Price:       item.Price,
		Rating:      item.Rating,
		Calories:    item.Calories,
		Protein:     item.Protein,
	}
}

func newCustomizationDTO(c models.Customization) CustomizationDTO {
	return CustomizationDTO{
		ID:    c.ID,
		Name:  c.Name,
		Price: c.Price,
		Type:  c.Type,
	}
}

func newItemDetailDTO(item models.MenuItem) ItemDetailDTO {
	detail := ItemDetailDTO{ItemDTO: newItemDTO(item)}
	for _, c := range item.Customizations {
		dto := newCustomizationDTO(c)
		switch c.Type {
		case enums.CustomizationTypeTopping:
			detail.Toppings = append(detail.Toppings, dto)
		case enums.CustomizationTypeSide:
			detail.Sides = append(detail.Sides, dto)
		default:
			detail.Others = append(detail.Others, dto)
		}
	}
	return detail
}

func newCategoryDTO(c models.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Description: c.Description}
}
