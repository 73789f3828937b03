package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mobile(brand, model string, price float64, qty int) Product {
	return Product{Category: Mobile, BrandName: brand, Model: model, Price: price, Quantity: qty}
}

func clothes(brand, typ, size, gender string, price float64, qty int) Product {
	return Product{Category: Clothes, BrandName: brand, ClothesType: typ, Size: size, Gender: gender, Price: price, Quantity: qty}
}

func TestAddProducts_AssignsFreshIDs(t *testing.T) {
	c := NewCatalog()

	results := c.AddProducts([]Product{
		mobile("Acme", "X1", 100, 2),
		mobile("Acme", "X2", 150, 1),
	})

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, results[0].Product.ID)
	assert.Equal(t, 2, results[1].Product.ID)
}

func TestAddProducts_DuplicateSkippedNotAborting(t *testing.T) {
	c := NewCatalog()

	results := c.AddProducts([]Product{
		mobile("Acme", "X1", 100, 2),
		mobile("acme", "x1", 120, 5), // same SKU, case-insensitive
		mobile("Acme", "X2", 150, 1), // must still be inserted
	})

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrDuplicateProduct)
	assert.NoError(t, results[2].Err)

	listed, err := c.ListByCategory(Mobile, 1, 10)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestAddProducts_ClothesIdentityUsesAttributes(t *testing.T) {
	c := NewCatalog()

	results := c.AddProducts([]Product{
		clothes("Acme", "Shirt", "M", "Men", 30, 10),
		clothes("Acme", "Shirt", "L", "Men", 30, 10), // different size: new SKU
		clothes("Acme", "Shirt", "M", "Men", 35, 4),  // duplicate
	})

	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.ErrorIs(t, results[2].Err, ErrDuplicateProduct)
}

func TestAddProducts_RejectsInvalidInput(t *testing.T) {
	c := NewCatalog()

	results := c.AddProducts([]Product{
		{Category: Category(9), BrandName: "Acme", Price: 10, Quantity: 1},
		mobile("Acme", "X1", -5, 1),
		mobile("Acme", "X2", 10, -1),
	})

	var unknown *UnknownEnumError
	assert.ErrorAs(t, results[0].Err, &unknown)
	assert.ErrorIs(t, results[1].Err, ErrInvalidPrice)
	assert.ErrorIs(t, results[2].Err, ErrInvalidQuantity)
}

func TestRemove(t *testing.T) {
	c := NewCatalog()
	res := c.AddProducts([]Product{mobile("Acme", "X1", 100, 2)})
	id := res[0].Product.ID

	assert.ErrorIs(t, c.Remove(id, Laptop), ErrNotFound) // category mismatch
	assert.NoError(t, c.Remove(id, Mobile))
	assert.ErrorIs(t, c.Remove(id, Mobile), ErrNotFound)

	_, err := c.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove_FreesIdentityKey(t *testing.T) {
	c := NewCatalog()
	res := c.AddProducts([]Product{mobile("Acme", "X1", 100, 2)})
	require.NoError(t, c.Remove(res[0].Product.ID, Mobile))

	again := c.AddProducts([]Product{mobile("Acme", "X1", 100, 2)})
	assert.NoError(t, again[0].Err)
	assert.Equal(t, 2, again[0].Product.ID, "ids are never reused")
}

func TestListByCategory_InsertionOrderAndPaging(t *testing.T) {
	c := NewCatalog()
	c.AddProducts([]Product{
		mobile("A", "1", 10, 1),
		mobile("B", "2", 10, 1),
		mobile("C", "3", 10, 1),
	})

	page1, err := c.ListByCategory(Mobile, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "A", page1[0].BrandName)
	assert.Equal(t, "B", page1[1].BrandName)

	page2, err := c.ListByCategory(Mobile, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "C", page2[0].BrandName)

	empty, err := c.ListByCategory(Mobile, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListByCategory_InvalidPage(t *testing.T) {
	c := NewCatalog()

	for _, tc := range []struct{ page, limit int }{
		{0, 10}, {-1, 10}, {1, 0}, {1, -3},
	} {
		_, err := c.ListByCategory(Mobile, tc.page, tc.limit)
		assert.ErrorIs(t, err, ErrInvalidPage)
	}
}

func TestCategoryOf(t *testing.T) {
	for id, want := range map[int]Category{1: Mobile, 2: Laptop, 3: Clothes} {
		got, err := CategoryOf(id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := CategoryOf(4)
	var unknown *UnknownEnumError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 4, unknown.ID)
}

func TestUpdatePrice(t *testing.T) {
	c := NewCatalog()
	res := c.AddProducts([]Product{mobile("Acme", "X1", 100, 2)})
	id := res[0].Product.ID

	require.NoError(t, c.UpdatePrice(id, 80))
	p, err := c.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 80.0, p.Price)

	assert.ErrorIs(t, c.UpdatePrice(id, 0), ErrInvalidPrice)
	assert.ErrorIs(t, c.UpdatePrice(999, 10), ErrNotFound)
}
