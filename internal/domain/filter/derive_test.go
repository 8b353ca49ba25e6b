package filter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/product/producttest"
)

func ids(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func testCatalog() []product.Product {
	day := func(n int) producttest.Option {
		return producttest.WithCreatedAt(producttest.Base.Add(time.Duration(n) * 24 * time.Hour))
	}
	return []product.Product{
		producttest.New("coat", "250", producttest.WithCategory("women"), producttest.WithBrand("Nordic"),
			producttest.WithSizes("S", "M"), producttest.WithColors("Black", "Camel"), day(1)),
		producttest.New("tee", "30", producttest.WithCategory("men"), producttest.WithBrand("Acme"),
			producttest.WithSizes("M", "L", "XL"), producttest.WithColors("White"), day(3)),
		producttest.New("bag", "1000", producttest.WithCategory("accessories"), producttest.WithBrand("Nordic"),
			producttest.WithSizes(), producttest.WithColors("Camel"), day(2)),
		producttest.New("jeans", "80", producttest.WithCategory("men"), producttest.WithBrand("Denim Co"),
			producttest.WithSizes("30", "32"), producttest.WithColors("Blue"), day(0)),
	}
}

func TestVisibleProductsDefaults(t *testing.T) {
	got := VisibleProducts(testCatalog(), nil, DefaultOptions(), SortNewest)
	assert.Equal(t, []string{"tee", "bag", "coat", "jeans"}, ids(got))
}

func TestVisibleProductsFilters(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		want  []string
	}{
		{"brand OR within field", Patch{Brands: &[]string{"Nordic", "Acme"}}, []string{"tee", "bag", "coat"}},
		{"any matching size qualifies", Patch{Sizes: &[]string{"L", "32"}}, []string{"tee", "jeans"}},
		{"colour by name", Patch{Colors: &[]string{"Camel"}}, []string{"bag", "coat"}},
		{"category", Patch{Categories: &[]string{"men"}}, []string{"tee", "jeans"}},
		{"AND across fields", Patch{
			Brands: &[]string{"Nordic"},
			Colors: &[]string{"Black"},
		}, []string{"coat"}},
		{"price range", Patch{PriceRange: &PriceRange{
			Min: decimal.NewFromInt(30), Max: decimal.NewFromInt(80),
		}}, []string{"tee", "jeans"}},
		{"no match is empty", Patch{Brands: &[]string{"Nobody"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.patch.apply(DefaultOptions())
			got := VisibleProducts(testCatalog(), nil, opts, SortNewest)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestPriceBoundaryIsInclusive(t *testing.T) {
	got := VisibleProducts(testCatalog(), nil, DefaultOptions(), SortNewest)
	assert.Contains(t, ids(got), "bag", "price 1000 is inside [0,1000]")

	opts := DefaultOptions()
	opts.PriceRange = PriceRange{Min: decimal.NewFromInt(1000), Max: decimal.NewFromInt(1000)}
	assert.Equal(t, []string{"bag"}, ids(VisibleProducts(testCatalog(), nil, opts, SortNewest)))
}

func TestEmptyBrandSetIsUnrestricted(t *testing.T) {
	withEmpty := DefaultOptions()
	withEmpty.Brands = []string{}
	withNil := DefaultOptions()
	withNil.Brands = nil

	a := VisibleProducts(testCatalog(), nil, withEmpty, SortRating)
	b := VisibleProducts(testCatalog(), nil, withNil, SortRating)
	assert.Equal(t, ids(a), ids(b))
	assert.Len(t, a, 4)
}

func TestScopeAppliesFirst(t *testing.T) {
	opts := DefaultOptions()
	opts.Brands = []string{"Nordic"}

	got := VisibleProducts(testCatalog(), InCategory("women"), opts, SortNewest)
	assert.Equal(t, []string{"coat"}, ids(got))
}

func TestVisibleProductsIsDeterministic(t *testing.T) {
	catalog := testCatalog()
	before := ids(catalog)

	first := VisibleProducts(catalog, nil, DefaultOptions(), SortPriceHighToLow)
	second := VisibleProducts(catalog, nil, DefaultOptions(), SortPriceHighToLow)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, before, ids(catalog), "input order untouched")
}

func TestSortByPrice(t *testing.T) {
	catalog := []product.Product{
		producttest.New("a", "50"),
		producttest.New("b", "10"),
		producttest.New("c", "30"),
	}

	low := VisibleProducts(catalog, nil, DefaultOptions(), SortPriceLowToHigh)
	assert.Equal(t, []string{"b", "c", "a"}, ids(low))

	high := VisibleProducts(catalog, nil, DefaultOptions(), SortPriceHighToLow)
	assert.Equal(t, []string{"a", "c", "b"}, ids(high))
}

func TestSortMissingValuesCountAsZero(t *testing.T) {
	t.Run("rating", func(t *testing.T) {
		catalog := []product.Product{
			producttest.New("none", "1"),
			producttest.New("four", "1", producttest.WithRating(4)),
			producttest.New("two", "1", producttest.WithRating(2)),
		}
		got := VisibleProducts(catalog, nil, DefaultOptions(), SortRating)
		assert.Equal(t, []string{"four", "two", "none"}, ids(got))
	})

	t.Run("popularity", func(t *testing.T) {
		catalog := []product.Product{
			producttest.New("none", "1"),
			producttest.New("zero", "1", producttest.WithReviews(0)),
			producttest.New("many", "1", producttest.WithReviews(120)),
		}
		got := VisibleProducts(catalog, nil, DefaultOptions(), SortPopularity)
		assert.Equal(t, []string{"many", "none", "zero"}, ids(got), "ties keep input order")
	})
}

func TestSortIsStable(t *testing.T) {
	same := producttest.WithCreatedAt(producttest.Base)
	catalog := []product.Product{
		producttest.New("first", "5", same),
		producttest.New("second", "5", same),
		producttest.New("third", "5", same),
	}

	for _, opt := range SortOptions {
		t.Run(string(opt), func(t *testing.T) {
			got := VisibleProducts(catalog, nil, DefaultOptions(), opt)
			assert.Equal(t, []string{"first", "second", "third"}, ids(got))
		})
	}
}

func TestEmptyCatalog(t *testing.T) {
	got := VisibleProducts(nil, nil, DefaultOptions(), SortNewest)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatchesSearch(t *testing.T) {
	catalog := []product.Product{
		producttest.New("a", "1", producttest.WithName("Wool Coat")),
		producttest.New("b", "1", producttest.WithTags("winter", "Outerwear")),
		producttest.New("c", "1", producttest.WithBrand("Coastline")),
		producttest.New("d", "1", producttest.WithName("Linen Shirt")),
	}

	got := VisibleProducts(catalog, MatchesSearch("  COA "), DefaultOptions(), SortNewest)
	assert.Equal(t, []string{"a", "c"}, ids(got))

	got = VisibleProducts(catalog, MatchesSearch("outer"), DefaultOptions(), SortNewest)
	assert.Equal(t, []string{"b"}, ids(got))

	assert.Nil(t, MatchesSearch("   "))
}

func TestAll(t *testing.T) {
	assert.Nil(t, All(nil, nil))

	pred := All(InCategory("men"), nil, MatchesSearch("tee"))
	got := VisibleProducts(testCatalog(), pred, DefaultOptions(), SortNewest)
	assert.Equal(t, []string{"tee"}, ids(got))
}
