package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/farhxn/foodcourt-backend/pkg/errors"
)

// Service exposes the read paths backing the storefront menu screens.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListItems(ctx context.Context, input ListInput) (*ListResult, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ItemDetailDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a menu service on top of the repository.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, newCategoryDTO(c))
	}
	return dtos, nil
}

func (s *service) ListItems(ctx context.Context, input ListInput) (*ListResult, error) {
	result, err := s.repo.ListItems(ctx, input)
	if err != nil {
		var typed *pkgerrors.Error
		if errors.As(err, &typed) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}
	return result, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ItemDetailDTO, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
	}
	detail := newItemDetailDTO(*item)
	return &detail, nil
}
