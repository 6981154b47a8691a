package menu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/farhxn/foodcourt-backend/pkg/db/models"
	"github.com/farhxn/foodcourt-backend/pkg/enums"
	pkgerrors "github.com/farhxn/foodcourt-backend/pkg/errors"
)

type stubMenuRepo struct {
	listCategories func(ctx context.Context) ([]models.Category, error)
	listItems      func(ctx context.Context, input ListInput) (*ListResult, error)
	findItem       func(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

func (s *stubMenuRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubMenuRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.listCategories(ctx)
}

func (s *stubMenuRepo) ListItems(ctx context.Context, input ListInput) (*ListResult, error) {
	return s.listItems(ctx, input)
}

func (s *stubMenuRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return s.findItem(ctx, id)
}

func TestServiceGetItem_groupsCustomizations(t *testing.T) {
	t.Parallel()

	itemID := uuid.New()
	repo := &stubMenuRepo{
		findItem: func(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
			if id != itemID {
				t.Fatalf("unexpected item id %s", id)
			}
			return &models.MenuItem{
				ID:          itemID,
				CategoryID:  uuid.New(),
				Name:        "Double Smash Burger",
				Price:       decimal.RequireFromString("8.50"),
				IsAvailable: true,
				CreatedAt:   time.Now(),
				Customizations: []models.Customization{
					{ID: uuid.New(), Name: "Jalapeno", Price: decimal.RequireFromString("0.50"), Type: enums.CustomizationTypeTopping},
					{ID: uuid.New(), Name: "Coleslaw", Price: decimal.RequireFromString("2.00"), Type: enums.CustomizationTypeSide},
					{ID: uuid.New(), Name: "Garlic Sauce", Price: decimal.RequireFromString("0.75"), Type: enums.CustomizationTypeSauce},
				},
			}, nil
		},
	}

	svc := NewService(repo)
	detail, err := svc.GetItem(context.Background(), itemID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if len(detail.Toppings) != 1 || detail.Toppings[0].Name != "Jalapeno" {
		t.Fatalf("unexpected toppings: %+v", detail.Toppings)
	}
	if len(detail.Sides) != 1 || detail.Sides[0].Name != "Coleslaw" {
		t.Fatalf("unexpected sides: %+v", detail.Sides)
	}
	if len(detail.Others) != 1 || detail.Others[0].Name != "Garlic Sauce" {
		t.Fatalf("unexpected others: %+v", detail.Others)
	}
}

func TestServiceGetItem_notFound(t *testing.T) {
	t.Parallel()

	repo := &stubMenuRepo{
		findItem: func(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo)
	_, err := svc.GetItem(context.Background(), uuid.New())
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %s", typed.Code())
	}
}

func TestServiceListCategories_wrapsRepoError(t *testing.T) {
	t.Parallel()

	repo := &stubMenuRepo{
		listCategories: func(ctx context.Context) ([]models.Category, error) {
			return nil, errors.New("connection reset")
		},
	}

	svc := NewService(repo)
	_, err := svc.ListCategories(context.Background())
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %s", typed.Code())
	}
}

func TestServiceListItems_passthrough(t *testing.T) {
	t.Parallel()

	want := &ListResult{Items: []ItemDTO{{ID: uuid.New(), Name: "Falafel Wrap"}}}
	repo := &stubMenuRepo{
		listItems: func(ctx context.Context, input ListInput) (*ListResult, error) {
			return want, nil
		},
	}

	svc := NewService(repo)
	got, err := svc.ListItems(context.Background(), ListInput{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Falafel Wrap" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
