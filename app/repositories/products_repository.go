package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	List(ctx context.Context, filter other.ProductFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetActiveBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetActiveByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, image *models.ProductImage) error
	GetImage(ctx context.Context, productID, imageID string) (*models.ProductImage, error)
	DeleteImage(ctx context.Context, imageID string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, created_at ASC")
}

func (p *productRepository) withRelations(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).
		Preload("Category").
		Preload("Detail").
		Preload("Images", orderedImages)
}

func (p *productRepository) List(ctx context.Context, filter other.ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			keyword := containsPattern(filter.Search)
			db = db.Where("LOWER(products.name) LIKE ? ESCAPE '!' OR LOWER(products.description) LIKE ? ESCAPE '!'", keyword, keyword)
		}
		if filter.CategoryID != "" {
			db = db.Where("products.category_id = ?", filter.CategoryID)
		}
		if filter.Type != "" {
			db = db.Where("products.type = ?", filter.Type)
		}
		if filter.Active != nil {
			db = db.Where("products.is_active = ?", *filter.Active)
		}
		return db
	}

	if err := p.db.WithContext(ctx).Model(&models.Product{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	err := p.withRelations(ctx).
		Scopes(scope).
		Order("products.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.withRelations(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetActiveBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := p.withRelations(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetActiveByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := p.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.withRelations(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	query := p.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the product together with its detail and images.
func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

// Update writes the scalar columns and upserts the detail row. Images are
// managed through AddImage and DeleteImage.
func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
			"name":        product.Name,
			"slug":        product.Slug,
			"description": product.Description,
			"price":       product.Price,
			"discount":    product.Discount,
			"type":        product.Type,
			"is_active":   product.IsActive,
			"category_id": product.CategoryID,
			"updated_at":  time.Now().UTC(),
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		if product.Detail == nil {
			return nil
		}

		var existing models.ProductDetail
		err = tx.Where("product_id = ?", product.ID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			product.Detail.ProductID = product.ID
			return tx.Create(product.Detail).Error
		case err != nil:
			return err
		}

		product.Detail.ID = existing.ID
		product.Detail.ProductID = product.ID
		return tx.Model(&existing).Updates(map[string]interface{}{
			"stock":      product.Detail.Stock,
			"weight":     product.Detail.Weight,
			"file_url":   product.Detail.FileURL,
			"updated_at": time.Now().UTC(),
		}).Error
	})
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
}

func (p *productRepository) AddImage(ctx context.Context, image *models.ProductImage) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos sql.NullInt64
		if err := tx.Model(&models.ProductImage{}).
			Where("product_id = ?", image.ProductID).
			Select("MAX(position)").
			Row().Scan(&maxPos); err != nil {
			return err
		}
		if maxPos.Valid {
			image.Position = int(maxPos.Int64) + 1
		}
		return tx.Create(image).Error
	})
}

func (p *productRepository) GetImage(ctx context.Context, productID, imageID string) (*models.ProductImage, error) {
	var image models.ProductImage
	err := p.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (p *productRepository) DeleteImage(ctx context.Context, imageID string) error {
	return p.db.WithContext(ctx).Delete(&models.ProductImage{}, "id = ?", imageID).Error
}
