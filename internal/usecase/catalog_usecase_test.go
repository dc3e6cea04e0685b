package usecase

import (
	"context"
	"testing"

	"trendora-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newCatalogFixture(t *testing.T, products *fakeProductRepo) (*CatalogUsecase, *fakeImageStore) {
	t.Helper()
	images := &fakeImageStore{}
	categories := &fakeCategoryRepo{categories: map[string]*domain.Category{
		"cat-clothing": {ID: "cat-clothing", Name: "Clothing"},
		"cat-tech":     {ID: "cat-tech", Name: "Electronics"},
	}}
	uc := NewCatalogUsecase(products, categories, images, fakeCache{}, passTxManager{}, testConfig())
	return uc, images
}

func validClothingProduct() *domain.Product {
	return &domain.Product{
		Name:        "Linen Shirt",
		Description: "Light summer shirt",
		Price:       60,
		CategoryID:  strPtr("cat-clothing"),
		Colors: []domain.Color{
			{
				ColorID:   "c1",
				ColorName: "Navy",
				ColorCode: "#001f3f",
				Images:    []string{"https://cdn.test/variants/navy.webp"},
				Sizes: []domain.Size{
					{Size: "M", Price: 60, Stock: 4, DiscountPer: "10%"},
					{Size: "L", Price: 62, Stock: 6},
				},
			},
		},
	}
}

func TestCreateProduct(t *testing.T) {
	products := newFakeProductRepo()
	uc, _ := newCatalogFixture(t, products)

	p := validClothingProduct()
	require.NoError(t, uc.CreateProduct(context.Background(), p))

	assert.Equal(t, "Clothing", p.CategoryName)
	assert.Equal(t, 10, p.Stock, "clothing stock derives from size stocks")
	assert.Equal(t, 54.0, p.Colors[0].Sizes[0].DiscountPrice)
	assert.Equal(t, 62.0, p.Colors[0].Sizes[1].DiscountPrice, "no discount keeps the price")
}

func TestCreateProductValidation(t *testing.T) {
	uc, _ := newCatalogFixture(t, newFakeProductRepo())

	cases := []struct {
		name   string
		mutate func(*domain.Product)
	}{
		{"missing name", func(p *domain.Product) { p.Name = "" }},
		{"zero price", func(p *domain.Product) { p.Price = 0 }},
		{"no category", func(p *domain.Product) { p.CategoryID = nil }},
		{"no colors", func(p *domain.Product) { p.Colors = nil }},
		{"color without images", func(p *domain.Product) { p.Colors[0].Images = nil }},
		{"clothing color without sizes", func(p *domain.Product) { p.Colors[0].Sizes = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validClothingProduct()
			tc.mutate(p)
			err := uc.CreateProduct(context.Background(), p)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	t.Run("unknown category", func(t *testing.T) {
		p := validClothingProduct()
		p.CategoryID = strPtr("cat-missing")
		err := uc.CreateProduct(context.Background(), p)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("non-clothing needs no sizes", func(t *testing.T) {
		p := validClothingProduct()
		p.CategoryID = strPtr("cat-tech")
		p.Colors[0].Sizes = nil
		p.Stock = 25
		require.NoError(t, uc.CreateProduct(context.Background(), p))
		assert.Equal(t, 25, p.Stock)
	})
}

func TestUpdateProductCategoryChangeClearsSizes(t *testing.T) {
	products := newFakeProductRepo()
	uc, _ := newCatalogFixture(t, products)

	p := validClothingProduct()
	require.NoError(t, uc.CreateProduct(context.Background(), p))

	updated, err := uc.UpdateProduct(context.Background(), p.ID, UpdateProductInput{
		CategoryID: strPtr("cat-tech"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Electronics", updated.CategoryName)
	for _, c := range updated.Colors {
		assert.Empty(t, c.Sizes, "moving out of clothing drops all sizes")
	}
}

func TestUpdateProductIntoClothingRequiresSizes(t *testing.T) {
	products := newFakeProductRepo()
	uc, _ := newCatalogFixture(t, products)

	p := validClothingProduct()
	p.CategoryID = strPtr("cat-tech")
	p.Colors[0].Sizes = nil
	p.Stock = 25
	require.NoError(t, uc.CreateProduct(context.Background(), p))

	_, err := uc.UpdateProduct(context.Background(), p.ID, UpdateProductInput{
		CategoryID: strPtr("cat-clothing"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// the rejected move must not recompute stock off the empty size lists
	assert.Equal(t, 25, products.stockOf(p.ID))
}

func TestSetVariantImages(t *testing.T) {
	products := newFakeProductRepo()
	uc, _ := newCatalogFixture(t, products)

	p := validClothingProduct()
	require.NoError(t, uc.CreateProduct(context.Background(), p))

	t.Run("duplicate colorId rejected", func(t *testing.T) {
		_, err := uc.SetVariantImages(context.Background(), p.ID, []domain.Color{
			{ColorID: "c2", Images: []string{"a"}},
			{ColorID: "c2", Images: []string{"b"}},
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateColor)
	})

	t.Run("color without images rejected", func(t *testing.T) {
		_, err := uc.SetVariantImages(context.Background(), p.ID, []domain.Color{
			{ColorID: "c2", ColorName: "Red"},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("merge replaces and appends", func(t *testing.T) {
		updated, err := uc.SetVariantImages(context.Background(), p.ID, []domain.Color{
			{
				ColorID: "c1",
				Images:  []string{"https://cdn.test/variants/navy2.webp"},
				Sizes:   []domain.Size{{Size: "M", Price: 60, Stock: 1, DiscountPer: "50%"}},
			},
			{
				ColorID: "c2",
				Images:  []string{"https://cdn.test/variants/red.webp"},
				Sizes:   []domain.Size{{Size: "S", Price: 58, Stock: 2}},
			},
		})
		require.NoError(t, err)
		require.Len(t, updated.Colors, 2)

		assert.Equal(t, []string{"https://cdn.test/variants/navy2.webp"}, updated.Colors[0].Images)
		assert.Equal(t, 30.0, updated.Colors[0].Sizes[0].DiscountPrice)
		assert.Equal(t, 3, updated.Stock, "stock recomputed across all colors")
	})
}

func TestSubmitReview(t *testing.T) {
	products := newFakeProductRepo()
	uc, _ := newCatalogFixture(t, products)

	p := validClothingProduct()
	require.NoError(t, uc.CreateProduct(context.Background(), p))

	updated, err := uc.SubmitReview(context.Background(), p.ID, domain.Review{
		UserID: "u1", Name: "Ana", Rating: 5, Comment: "great fit",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.NumReviews)
	assert.Equal(t, 5.0, updated.Rating)

	updated, err = uc.SubmitReview(context.Background(), p.ID, domain.Review{
		UserID: "u2", Name: "Ben", Rating: 2, Comment: "runs small",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.NumReviews)
	assert.Equal(t, 3.5, updated.Rating)

	t.Run("one review per user", func(t *testing.T) {
		_, err := uc.SubmitReview(context.Background(), p.ID, domain.Review{
			UserID: "u1", Name: "Ana", Rating: 4, Comment: "second thoughts",
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)
	})

	t.Run("rating bounds", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := uc.SubmitReview(context.Background(), p.ID, domain.Review{
				UserID: "u3", Rating: rating, Comment: "x",
			})
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	})
}

func TestDeleteProductReleasesImages(t *testing.T) {
	products := newFakeProductRepo()
	uc, images := newCatalogFixture(t, products)

	p := validClothingProduct()
	p.Images = []domain.ProductImage{{PublicID: "products/main.webp", URL: "https://cdn.test/products/main.webp"}}
	require.NoError(t, uc.CreateProduct(context.Background(), p))

	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))

	assert.Contains(t, images.deleted, "products/main.webp")
	assert.Contains(t, images.deleted, "variants/navy.webp")

	_, err := uc.GetProduct(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProductSurvivesStorageFailure(t *testing.T) {
	products := newFakeProductRepo()
	uc, images := newCatalogFixture(t, products)
	images.failAll = true

	p := validClothingProduct()
	require.NoError(t, uc.CreateProduct(context.Background(), p))

	// metadata deletion wins even when storage cleanup fails
	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))
	_, err := uc.GetProduct(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProductImage(t *testing.T) {
	products := newFakeProductRepo()
	uc, images := newCatalogFixture(t, products)

	p := validClothingProduct()
	p.Images = []domain.ProductImage{{PublicID: "products/main.webp", URL: "https://cdn.test/products/main.webp"}}
	require.NoError(t, uc.CreateProduct(context.Background(), p))

	t.Run("general image by public id", func(t *testing.T) {
		updated, err := uc.DeleteProductImage(context.Background(), p.ID, "", "products/main.webp")
		require.NoError(t, err)
		assert.Empty(t, updated.Images)
		assert.Contains(t, images.deleted, "products/main.webp")
	})

	t.Run("color image by url", func(t *testing.T) {
		updated, err := uc.DeleteProductImage(context.Background(), p.ID, "c1", "https://cdn.test/variants/navy.webp")
		require.NoError(t, err)
		assert.Empty(t, updated.Colors[0].Images)
	})

	t.Run("unknown image", func(t *testing.T) {
		_, err := uc.DeleteProductImage(context.Background(), p.ID, "", "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
