package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trendora-backend/config"
	"trendora-backend/internal/domain"
	"trendora-backend/pkg/cache"
	"trendora-backend/pkg/utils"
)

type CatalogUsecase struct {
	repo         domain.ProductRepository
	categoryRepo domain.CategoryRepository
	images       domain.ImageStore
	cache        cache.CacheService
	txManager    domain.TransactionManager
	cfg          *config.Config
}

func NewCatalogUsecase(repo domain.ProductRepository, categoryRepo domain.CategoryRepository, images domain.ImageStore, cacheSvc cache.CacheService, txManager domain.TransactionManager, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		repo:         repo,
		categoryRepo: categoryRepo,
		images:       images,
		cache:        cacheSvc,
		txManager:    txManager,
		cfg:          cfg,
	}
}

func (uc *CatalogUsecase) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.Name == "" || product.Description == "" {
		return domain.Validationf("name and description are required")
	}
	if product.Price <= 0 {
		return domain.Validationf("price must be positive")
	}
	if product.CategoryID == nil || *product.CategoryID == "" {
		return domain.Validationf("category is required")
	}
	if len(product.Colors) == 0 {
		return domain.Validationf("at least one color is required")
	}

	category, err := uc.categoryRepo.GetByID(ctx, *product.CategoryID)
	if err != nil {
		return err
	}
	product.CategoryName = category.Name

	for i := range product.Colors {
		c := &product.Colors[i]
		if len(c.Images) == 0 {
			return domain.Validationf("color %s needs at least one image", c.ColorName)
		}
		if product.IsClothing() && len(c.Sizes) == 0 {
			return domain.Validationf("color %s needs at least one size for category %s", c.ColorName, product.CategoryName)
		}
		if c.ColorID == "" {
			c.ColorID = utils.GenerateUUID()
		}
		for j := range c.Sizes {
			c.Sizes[j].ApplyDiscount()
		}
	}

	product.RecomputeStock()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	uc.invalidateListCaches()
	return uc.repo.Create(ctx, product)
}

// UpdateProductInput carries the patchable product fields; nil means keep.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *float64
	Stock          *int
	CategoryID     *string
	Subcategory    *string
	SubSubcategory *string
}

func (uc *CatalogUsecase) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, domain.Validationf("price must be positive")
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Subcategory != nil {
		product.Subcategory = *in.Subcategory
	}
	if in.SubSubcategory != nil {
		product.SubSubcategory = *in.SubSubcategory
	}

	if in.CategoryID != nil && (product.CategoryID == nil || *in.CategoryID != *product.CategoryID) {
		category, err := uc.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		wasClothing := product.IsClothing()
		product.CategoryID = in.CategoryID
		product.CategoryName = category.Name

		// Entering the size-variant class requires the size breakdown to
		// already exist, otherwise the stock recompute below would wipe the
		// directly-set stock.
		if !wasClothing && product.IsClothing() {
			for _, c := range product.Colors {
				if len(c.Sizes) == 0 {
					return nil, domain.Validationf("color %s needs at least one size for category %s", c.ColorName, product.CategoryName)
				}
			}
		}

		// Leaving the size-variant class drops every size entry. The sizes
		// carry the per-size stock breakdown, so that detail is lost here
		// on purpose.
		if wasClothing && !product.IsClothing() {
			for i := range product.Colors {
				product.Colors[i].Sizes = nil
			}
		}
	}

	product.RecomputeStock()
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidateProductCaches(id)
	return product, nil
}

// SetVariantImages merges the submitted colors into the product by colorId.
// An existing color is replaced wholesale, a new one is appended.
func (uc *CatalogUsecase) SetVariantImages(ctx context.Context, productID string, colors []domain.Color) (*domain.Product, error) {
	if len(colors) == 0 {
		return nil, domain.Validationf("at least one color is required")
	}
	seen := make(map[string]bool, len(colors))
	for _, c := range colors {
		if c.ColorID == "" {
			return nil, domain.Validationf("colorId is required")
		}
		if len(c.Images) == 0 {
			return nil, domain.Validationf("color %s needs at least one image", c.ColorID)
		}
		if seen[c.ColorID] {
			return nil, fmt.Errorf("color %s appears twice: %w", c.ColorID, domain.ErrDuplicateColor)
		}
		seen[c.ColorID] = true
	}

	var product *domain.Product
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		product, err = uc.repo.GetByID(txCtx, productID)
		if err != nil {
			return err
		}

		for _, incoming := range colors {
			for j := range incoming.Sizes {
				incoming.Sizes[j].ApplyDiscount()
			}
			replaced := false
			for i := range product.Colors {
				if product.Colors[i].ColorID == incoming.ColorID {
					product.Colors[i] = incoming
					replaced = true
					break
				}
			}
			if !replaced {
				product.Colors = append(product.Colors, incoming)
			}
		}

		product.RecomputeStock()
		product.UpdatedAt = time.Now()
		return uc.repo.Update(txCtx, product)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateProductCaches(productID)
	return product, nil
}

// DeleteProductImage removes one image from the product: a general image by
// public id, or a single color image by colorId plus image reference. Storage
// cleanup is best-effort; metadata always wins.
func (uc *CatalogUsecase) DeleteProductImage(ctx context.Context, productID, colorID, imageID string) (*domain.Product, error) {
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	removed := false
	if colorID != "" {
		for i := range product.Colors {
			if product.Colors[i].ColorID != colorID {
				continue
			}
			imgs := product.Colors[i].Images
			for j, url := range imgs {
				if url == imageID || domain.ImagePublicID(url) == imageID {
					product.Colors[i].Images = append(imgs[:j], imgs[j+1:]...)
					removed = true
					uc.releaseImage(ctx, domain.ImagePublicID(url))
					break
				}
			}
			break
		}
	} else {
		for i, img := range product.Images {
			if img.PublicID == imageID {
				product.Images = append(product.Images[:i], product.Images[i+1:]...)
				removed = true
				uc.releaseImage(ctx, img.PublicID)
				break
			}
		}
	}
	if !removed {
		return nil, domain.NotFoundf("image %s not found on product %s", imageID, productID)
	}

	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidateProductCaches(productID)
	return product, nil
}

func (uc *CatalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, publicID := range product.AllImageIDs() {
		uc.releaseImage(ctx, publicID)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateProductCaches(id)
	return nil
}

func (uc *CatalogUsecase) releaseImage(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := uc.images.Delete(ctx, publicID); err != nil {
		slog.Warn("Usecase: image release failed", "public_id", publicID, "error", err)
	}
}

func (uc *CatalogUsecase) SubmitReview(ctx context.Context, productID string, review domain.Review) (*domain.Product, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}
	if review.Comment == "" {
		return nil, domain.Validationf("comment is required")
	}

	var product *domain.Product
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		product, err = uc.repo.GetByID(txCtx, productID)
		if err != nil {
			return err
		}
		if product.HasReviewFrom(review.UserID) {
			return fmt.Errorf("user %s already reviewed product %s: %w", review.UserID, productID, domain.ErrAlreadyReviewed)
		}

		review.ID = utils.GenerateUUID()
		review.CreatedAt = time.Now()
		product.Reviews = append(product.Reviews, review)
		product.RecomputeRating()
		product.UpdatedAt = time.Now()
		return uc.repo.Update(txCtx, product)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateProductCaches(productID)
	return product, nil
}

func (uc *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := fmt.Sprintf("product:%s", id)
	if val, found := uc.cache.Get(key); found {
		return val.(*domain.Product), nil
	}

	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(key, product, uc.cfg.CacheProductTTL)
	return product, nil
}

func (uc *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	return uc.repo.GetAll(ctx, filter)
}

func (uc *CatalogUsecase) GetTopRated(ctx context.Context) ([]domain.Product, error) {
	key := "products:top"
	if val, found := uc.cache.Get(key); found {
		return val.([]domain.Product), nil
	}

	products, err := uc.repo.GetTopRated(ctx, 3)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(key, products, uc.cfg.CacheProductTTL)
	return products, nil
}

func (uc *CatalogUsecase) invalidateProductCaches(id string) {
	uc.cache.Delete(fmt.Sprintf("product:%s", id))
	uc.invalidateListCaches()
}

func (uc *CatalogUsecase) invalidateListCaches() {
	uc.cache.Delete("products:top")
}
