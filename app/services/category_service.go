package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Slug     string `json:"slug" validate:"omitempty,max=100"`
	IsActive *bool  `json:"isActive"`
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryImpl
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryImpl) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) List(ctx context.Context, filter other.CategoryFilter) ([]models.Category, int64, error) {
	return s.categoryRepo.List(ctx, filter)
}

func (s *CategoryService) ListPublic(ctx context.Context) ([]models.Category, error) {
	categories, _, err := s.categoryRepo.List(ctx, other.CategoryFilter{
		PageQuery:  other.PageQuery{Page: 1, Limit: other.MaxPageLimit},
		ActiveOnly: true,
	})
	return categories, err
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, helpers.NewNotFoundError("Kategori tidak ditemukan.")
	}
	return category, nil
}

// resolveSlug uses the given slug, or derives one from the name, and rejects it
// when another category already owns it.
func (s *CategoryService) resolveSlug(ctx context.Context, input CategoryInput, excludeID string) (string, error) {
	slug := helpers.GenerateSlug(input.Slug)
	if slug == "" {
		slug = helpers.GenerateSlug(input.Name)
	}
	if slug == "" {
		return "", helpers.NewValidationError("Slug kategori tidak valid.")
	}

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != excludeID {
		return "", helpers.NewConflictError("Slug kategori sudah digunakan.")
	}
	return slug, nil
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	slug, err := s.resolveSlug(ctx, input, "")
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:     strings.TrimSpace(input.Name),
		Slug:     slug,
		IsActive: input.IsActive == nil || *input.IsActive,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, helpers.NewConflictError("Slug kategori sudah digunakan.")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slug, err := s.resolveSlug(ctx, input, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(input.Name)
	category.Slug = slug
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, helpers.NewConflictError("Slug kategori sudah digunakan.")
		}
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return s.Get(ctx, id)
}

// Delete refuses while any product still points at the category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count products of category %s: %w", id, err)
	}
	if count > 0 {
		return helpers.NewValidationError(fmt.Sprintf("Kategori masih digunakan oleh %d produk.", count))
	}
	return s.categoryRepo.Delete(ctx, id)
}
