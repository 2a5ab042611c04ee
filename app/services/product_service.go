package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"github.com/Rakhulsr/go-kindergarten/app/utils/calc"
	"gorm.io/gorm"
)

const fallbackProductSlug = "product"

type ProductDetailInput struct {
	Stock   *int    `json:"stock" validate:"omitempty,gte=0"`
	Weight  *int    `json:"weight" validate:"omitempty,gte=0"`
	FileURL *string `json:"fileUrl" validate:"omitempty,url"`
}

type ProductImageInput struct {
	URL      string `json:"url" validate:"required,url"`
	PublicID string `json:"publicId"`
}

type ProductInput struct {
	Name        string              `json:"name" validate:"required,max=255"`
	Description string              `json:"description"`
	Price       int64               `json:"price" validate:"gte=0"`
	Discount    *int64              `json:"discount" validate:"omitempty,gte=0"`
	Type        string              `json:"type" validate:"required,oneof=DIGITAL PHYSICAL"`
	IsActive    *bool               `json:"isActive"`
	CategoryID  string              `json:"categoryId" validate:"required"`
	Detail      *ProductDetailInput `json:"detail"`
	Images      []ProductImageInput `json:"images" validate:"omitempty,dive"`
}

// ProductResponse adds the computed prices to a product.
type ProductResponse struct {
	models.Product
	FinalPrice      int64   `json:"finalPrice"`
	DiscountPercent float64 `json:"discountPercent"`
}

func NewProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Product:         p,
		FinalPrice:      calc.FinalPrice(p.Price, p.Discount),
		DiscountPercent: calc.DiscountPercent(p.Price, p.Discount).InexactFloat64(),
	}
}

func NewProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

type ProductService struct {
	productRepo   repositories.ProductRepositoryImpl
	categoryRepo  repositories.CategoryRepositoryImpl
	orderItemRepo repositories.OrderItemRepository
	uploader      ImageUploader
	now           func() time.Time
}

func NewProductService(
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	orderItemRepo repositories.OrderItemRepository,
	uploader ImageUploader,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		orderItemRepo: orderItemRepo,
		uploader:      uploader,
		now:           time.Now,
	}
}

// UniqueSlug derives a slug from name. A taken slug gets a millisecond
// timestamp suffix.
func (s *ProductService) UniqueSlug(ctx context.Context, name, excludeID string) (string, error) {
	slug := helpers.GenerateSlug(name)
	if slug == "" {
		slug = fallbackProductSlug
	}

	exists, err := s.productRepo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to check product slug: %w", err)
	}
	if exists {
		slug = helpers.SuffixSlug(slug, s.now())
	}
	return slug, nil
}

func (s *ProductService) checkInput(ctx context.Context, input ProductInput) error {
	if !calc.ValidDiscount(input.Price, input.Discount) {
		return &helpers.AppError{
			Status:  http.StatusBadRequest,
			Message: "Data yang dikirim tidak valid.",
			Details: map[string]string{"discount": "discount tidak boleh melebihi price."},
		}
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to load category %s: %w", input.CategoryID, err)
	}
	if category == nil {
		return helpers.NewValidationError("Kategori tidak ditemukan.")
	}
	return nil
}

func detailFromInput(in *ProductDetailInput) *models.ProductDetail {
	if in == nil {
		return nil
	}
	return &models.ProductDetail{Stock: in.Stock, Weight: in.Weight, FileURL: in.FileURL}
}

func (s *ProductService) List(ctx context.Context, filter other.ProductFilter) ([]models.Product, int64, error) {
	if filter.Type != "" && filter.Type != models.ProductTypeDigital && filter.Type != models.ProductTypePhysical {
		return nil, 0, helpers.NewValidationError("Tipe produk tidak valid.")
	}
	return s.productRepo.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, helpers.NewNotFoundError("Produk tidak ditemukan.")
	}
	return product, nil
}

func (s *ProductService) GetPublicBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.productRepo.GetActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, helpers.NewNotFoundError("Produk tidak ditemukan.")
	}
	return product, nil
}

func (s *ProductService) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	return s.productRepo.GetFeaturedProducts(ctx, limit)
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.checkInput(ctx, input); err != nil {
		return nil, err
	}

	slug, err := s.UniqueSlug(ctx, input.Name, "")
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
		Type:        input.Type,
		IsActive:    input.IsActive == nil || *input.IsActive,
		CategoryID:  input.CategoryID,
		Detail:      detailFromInput(input.Detail),
	}
	for i, img := range input.Images {
		product.Images = append(product.Images, models.ProductImage{
			URL:      img.URL,
			PublicID: img.PublicID,
			Position: i,
		})
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, helpers.NewConflictError("Slug produk sudah digunakan.")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return s.Get(ctx, product.ID)
}

// Update replaces the product fields. The slug is regenerated only when the
// name changes.
func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkInput(ctx, input); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name != product.Name {
		slug, err := s.UniqueSlug(ctx, name, id)
		if err != nil {
			return nil, err
		}
		product.Slug = slug
	}

	product.Name = name
	product.Description = input.Description
	product.Price = input.Price
	product.Discount = input.Discount
	product.Type = input.Type
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.CategoryID = input.CategoryID
	product.Detail = detailFromInput(input.Detail)

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, helpers.NewConflictError("Slug produk sudah digunakan.")
		}
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return s.Get(ctx, id)
}

// Delete refuses products that already appear in an order; those should be
// deactivated instead.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.orderItemRepo.CountByProductID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count order items of product %s: %w", id, err)
	}
	if count > 0 {
		return helpers.NewValidationError("Produk sudah pernah dipesan. Nonaktifkan produk ini sebagai gantinya.")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	for _, img := range product.Images {
		s.removeStoredImage(ctx, img.PublicID)
	}
	return nil
}

func (s *ProductService) AddImage(ctx context.Context, productID, filename string, data []byte) (*models.ProductImage, error) {
	if _, err := s.Get(ctx, productID); err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, errors.New("no image uploader configured")
	}

	result, err := s.uploader.Upload(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image for product %s: %w", productID, err)
	}

	image := &models.ProductImage{
		ProductID: productID,
		URL:       result.URL,
		PublicID:  result.PublicID,
	}
	if err := s.productRepo.AddImage(ctx, image); err != nil {
		s.removeStoredImage(ctx, result.PublicID)
		return nil, fmt.Errorf("failed to save image for product %s: %w", productID, err)
	}
	return image, nil
}

func (s *ProductService) DeleteImage(ctx context.Context, productID, imageID string) error {
	image, err := s.productRepo.GetImage(ctx, productID, imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return helpers.NewNotFoundError("Gambar produk tidak ditemukan.")
	}

	if err := s.productRepo.DeleteImage(ctx, imageID); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", imageID, err)
	}
	s.removeStoredImage(ctx, image.PublicID)
	return nil
}

// removeStoredImage is best effort; the database row is already gone.
func (s *ProductService) removeStoredImage(ctx context.Context, publicID string) {
	if s.uploader == nil || publicID == "" {
		return
	}
	if err := s.uploader.Delete(ctx, publicID); err != nil {
		log.Printf("ProductService.removeStoredImage: failed to delete %s: %v", publicID, err)
	}
}
