package domain

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// clothingCategories are the category names whose products are size-variant
// driven: every color must carry at least one size entry and the product-level
// stock is derived from the per-size stocks.
var clothingCategories = map[string]bool{
	"clothing":    true,
	"clothes":     true,
	"shoes":       true,
	"accessories": true,
	"fashion":     true,
	"apparel":     true,
}

// IsClothingCategory reports whether a category name belongs to the
// size-variant class. Matching is case-insensitive.
func IsClothingCategory(name string) bool {
	return clothingCategories[strings.ToLower(strings.TrimSpace(name))]
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"category"`
}

// Size is one purchasable unit of a color: a size label with its own price,
// stock and discount. DiscountPer is the raw client value ("10%" or "50");
// DiscountPrice is always derived from it, never accepted as-is.
type Size struct {
	Size          string  `json:"size"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	DiscountPer   string  `json:"discountper"`
	DiscountPrice float64 `json:"discountprice"`
}

// ApplyDiscount recomputes DiscountPrice from Price and DiscountPer.
func (s *Size) ApplyDiscount() {
	s.DiscountPrice = ComputeDiscountPrice(s.Price, s.DiscountPer)
}

// ComputeDiscountPrice resolves a raw discount value against a price.
// A trailing '%' means percentage, anything else is an absolute amount.
// The discount is capped at the price so the result is never negative;
// unparseable input counts as no discount.
func ComputeDiscountPrice(price float64, raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return price
	}

	var discount float64
	if strings.HasSuffix(raw, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return price
		}
		discount = price * pct / 100
	} else {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return price
		}
		discount = amount
	}

	if discount < 0 {
		discount = 0
	}
	if discount > price {
		discount = price
	}
	return price - discount
}

// Color is one color option of a product. The product exclusively owns its
// colors; a color exclusively owns its sizes.
type Color struct {
	ColorID   string   `json:"colorId"`
	ColorName string   `json:"colorName"`
	ColorCode string   `json:"colorCode"`
	Images    []string `json:"images"`
	Sizes     []Size   `json:"sizes"`
}

// ProductImage is a stored general image reference.
type ProductImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	Stock          int            `json:"stock"`
	CategoryID     *string        `json:"category"`
	CategoryName   string         `json:"categoryName"`
	Subcategory    string         `json:"subcategory"`
	SubSubcategory string         `json:"subSubcategory"`
	Images         []ProductImage `json:"images"`
	Colors         []Color        `json:"colors"`
	Reviews        []Review       `json:"reviews"`
	Rating         float64        `json:"rating"`
	NumReviews     int            `json:"numReviews"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// IsClothing reports whether the product's resolved category is size-variant
// driven.
func (p *Product) IsClothing() bool {
	return IsClothingCategory(p.CategoryName)
}

// VariantStock sums the per-size stock across every color.
func (p *Product) VariantStock() int {
	total := 0
	for _, c := range p.Colors {
		for _, s := range c.Sizes {
			total += s.Stock
		}
	}
	return total
}

// RecomputeStock enforces the clothing invariant: stock equals the sum of all
// size stocks across colors. Non-clothing products keep their directly-set
// stock untouched.
func (p *Product) RecomputeStock() {
	if p.IsClothing() {
		p.Stock = p.VariantStock()
	}
}

// RecomputeRating refreshes Rating and NumReviews from the reviews list.
func (p *Product) RecomputeRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = float64(sum) / float64(p.NumReviews)
}

// HasReviewFrom reports whether the user already reviewed this product.
func (p *Product) HasReviewFrom(userID string) bool {
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// AllImageIDs collects every stored image public id on the product: general
// images plus per-color images. Used to release storage on delete.
func (p *Product) AllImageIDs() []string {
	var ids []string
	for _, img := range p.Images {
		if img.PublicID != "" {
			ids = append(ids, img.PublicID)
		}
	}
	for _, c := range p.Colors {
		for _, url := range c.Images {
			if id := ImagePublicID(url); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// ImagePublicID derives the storage key from a public image URL. Color images
// are stored by URL only, so the key is everything after the host.
func ImagePublicID(url string) string {
	idx := strings.Index(url, "://")
	if idx < 0 {
		return url
	}
	rest := url[idx+3:]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return ""
	}
	return rest[slash+1:]
}

type ProductFilter struct {
	Keyword    string
	CategoryID string
	Limit      int
	Offset     int
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	GetTopRated(ctx context.Context, limit int) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error

	// DecrementStock must be a single atomic arithmetic update against the
	// store. Read-then-write is not acceptable here: two concurrent orders for
	// the same product would lose an update.
	DecrementStock(ctx context.Context, productID string, quantity int) error
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*Category, error)
}
