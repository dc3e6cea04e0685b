package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDiscountPrice(t *testing.T) {
	t.Run("percentage", func(t *testing.T) {
		assert.Equal(t, 90.0, ComputeDiscountPrice(100, "10%"))
		assert.Equal(t, 50.0, ComputeDiscountPrice(100, "50%"))
	})

	t.Run("absolute", func(t *testing.T) {
		assert.Equal(t, 70.0, ComputeDiscountPrice(100, "30"))
		assert.Equal(t, 99.5, ComputeDiscountPrice(100, "0.5"))
	})

	t.Run("capped at price", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeDiscountPrice(100, "150"))
		assert.Equal(t, 0.0, ComputeDiscountPrice(100, "200%"))
	})

	t.Run("negative discount ignored", func(t *testing.T) {
		assert.Equal(t, 100.0, ComputeDiscountPrice(100, "-20"))
	})

	t.Run("unparseable means no discount", func(t *testing.T) {
		assert.Equal(t, 100.0, ComputeDiscountPrice(100, "abc"))
		assert.Equal(t, 100.0, ComputeDiscountPrice(100, "x%"))
		assert.Equal(t, 100.0, ComputeDiscountPrice(100, ""))
	})
}

func TestIsClothingCategory(t *testing.T) {
	for _, name := range []string{"clothing", "Clothes", "SHOES", "accessories", "Fashion", " apparel "} {
		assert.True(t, IsClothingCategory(name), name)
	}
	assert.False(t, IsClothingCategory("electronics"))
	assert.False(t, IsClothingCategory(""))
}

func TestProductRecomputeStock(t *testing.T) {
	p := &Product{
		CategoryName: "clothing",
		Stock:        1,
		Colors: []Color{
			{Sizes: []Size{{Size: "M", Stock: 3}, {Size: "L", Stock: 4}}},
			{Sizes: []Size{{Size: "M", Stock: 5}}},
		},
	}
	p.RecomputeStock()
	assert.Equal(t, 12, p.Stock)

	// a non-clothing product keeps its directly-set stock
	p.CategoryName = "electronics"
	p.Stock = 42
	p.RecomputeStock()
	assert.Equal(t, 42, p.Stock)
}

func TestProductRecomputeRating(t *testing.T) {
	p := &Product{Reviews: []Review{
		{UserID: "a", Rating: 5},
		{UserID: "b", Rating: 4},
		{UserID: "c", Rating: 3},
	}}
	p.RecomputeRating()
	assert.Equal(t, 3, p.NumReviews)
	assert.Equal(t, 4.0, p.Rating)

	p.Reviews = nil
	p.RecomputeRating()
	assert.Equal(t, 0, p.NumReviews)
	assert.Equal(t, 0.0, p.Rating)
}

func TestProductHasReviewFrom(t *testing.T) {
	p := &Product{Reviews: []Review{{UserID: "u1"}}}
	assert.True(t, p.HasReviewFrom("u1"))
	assert.False(t, p.HasReviewFrom("u2"))
}

func TestImagePublicID(t *testing.T) {
	assert.Equal(t, "products/abc.webp", ImagePublicID("https://cdn.example.com/products/abc.webp"))
	assert.Equal(t, "products/abc.webp", ImagePublicID("products/abc.webp"))
	assert.Equal(t, "", ImagePublicID("https://cdn.example.com"))
}

func TestSizeApplyDiscount(t *testing.T) {
	s := Size{Price: 200, DiscountPer: "25%"}
	s.ApplyDiscount()
	assert.Equal(t, 150.0, s.DiscountPrice)
}
