package product_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/product/producttest"
)

func TestProductOptionalFieldsDefaultToZero(t *testing.T) {
	p := producttest.New("p1", "10")
	assert.Equal(t, 0.0, p.RatingValue())
	assert.Equal(t, 0, p.ReviewCount())

	rated := producttest.New("p2", "10", producttest.WithRating(4.5), producttest.WithReviews(12))
	assert.Equal(t, 4.5, rated.RatingValue())
	assert.Equal(t, 12, rated.ReviewCount())
}

func TestProductClone(t *testing.T) {
	orig := producttest.New("p1", "10", producttest.WithRating(3), producttest.WithTags("new"))
	c := orig.Clone()

	c.Sizes[0] = "XXL"
	c.Colors[0].Name = "Pink"
	c.Tags[0] = "old"
	*c.Rating = 1

	assert.Equal(t, "S", orig.Sizes[0])
	assert.Equal(t, "Black", orig.Colors[0].Name)
	assert.Equal(t, "new", orig.Tags[0])
	assert.Equal(t, 3.0, orig.RatingValue())
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*product.Product)
		wantErr bool
	}{
		{"valid", func(*product.Product) {}, false},
		{"missing id", func(p *product.Product) { p.ID = "" }, true},
		{"missing name", func(p *product.Product) { p.Name = "" }, true},
		{"negative price", func(p *product.Product) { p.Price = decimal.NewFromInt(-1) }, true},
		{"no images", func(p *product.Product) { p.Images = nil }, true},
		{"rating above five", func(p *product.Product) { r := 5.5; p.Rating = &r }, true},
		{"negative reviews", func(p *product.Product) { n := -1; p.Reviews = &n }, true},
		{"duplicate colour", func(p *product.Product) {
			p.Colors = []product.Color{{Name: "Red"}, {Name: "Red"}}
		}, true},
		{"empty sizes allowed", func(p *product.Product) { p.Sizes = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := producttest.New("p1", "10")
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, product.ErrInvalidProduct)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductOptionLookups(t *testing.T) {
	p := producttest.New("p1", "10", producttest.WithSizes("M"), producttest.WithColors("Red", "Blue"))

	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("S"))
	assert.True(t, p.HasColor("Blue"))
	assert.False(t, p.HasColor("Green"))
	assert.Equal(t, []string{"Red", "Blue"}, p.ColorNames())
}
