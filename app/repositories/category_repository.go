package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"gorm.io/gorm"
)

type CategoryRepositoryImpl interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, filter other.CategoryFilter) ([]models.Category, int64, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
	CountProducts(ctx context.Context, id string) (int64, error)
	GetActiveWithProducts(ctx context.Context) ([]models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db: db}
}

const categoryProductCountSelect = "categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS product_count"

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select(categoryProductCountSelect).
		First(&category, "categories.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, filter other.CategoryFilter) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Category{})
	if filter.Search != "" {
		keyword := containsPattern(filter.Search)
		query = query.Where("LOWER(categories.name) LIKE ? ESCAPE '!'", keyword)
	}
	if filter.ActiveOnly {
		query = query.Where("categories.is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	err := query.
		Select(categoryProductCountSelect).
		Order("categories.name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&categories).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", category.ID).Updates(map[string]interface{}{
		"name":       category.Name,
		"slug":       category.Slug,
		"is_active":  category.IsActive,
		"updated_at": category.UpdatedAt,
	}).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) CountProducts(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *categoryRepository) GetActiveWithProducts(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Products", "is_active = ?", true).
		Preload("Products.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		log.Printf("GetActiveWithProducts: Failed to get categories with products: %v", err)
		return nil, fmt.Errorf("failed to get categories with products: %w", err)
	}
	return categories, nil
}
