package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"mobiles.csv": "# brand,model,price,quantity\nAcme,X1,100,2\nOrbit, Z5 ,249.99,7\n",
		"laptops.csv": "Acme,Book13,899.50,3\n\n",
		"clothes.csv": "Shirt,Men,M,29.99,Acme,12\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadSeed(t *testing.T) {
	products, err := LoadSeed(writeSeedDir(t))
	require.NoError(t, err)
	require.Len(t, products, 4)

	assert.Equal(t, Product{Category: Mobile, BrandName: "Acme", Model: "X1", Price: 100, Quantity: 2}, products[0])
	assert.Equal(t, "Z5", products[1].Model, "fields are trimmed")
	assert.Equal(t, Laptop, products[2].Category)
	assert.Equal(t, Product{
		Category: Clothes, ClothesType: "Shirt", Gender: "Men", Size: "M",
		Price: 29.99, BrandName: "Acme", Quantity: 12,
	}, products[3])
}

func TestLoadSeed_FeedsCatalog(t *testing.T) {
	products, err := LoadSeed(writeSeedDir(t))
	require.NoError(t, err)

	c := NewCatalog()
	for _, res := range c.AddProducts(products) {
		assert.NoError(t, res.Err)
	}
	mobiles, err := c.ListByCategory(Mobile, 1, 10)
	require.NoError(t, err)
	assert.Len(t, mobiles, 2)
}

func TestLoadSeed_Errors(t *testing.T) {
	_, err := LoadSeed(t.TempDir())
	assert.Error(t, err, "missing seed files")

	dir := writeSeedDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mobiles.csv"), []byte("Acme,X1,notaprice,2\n"), 0o644))
	_, err = LoadSeed(dir)
	assert.ErrorContains(t, err, "parse price")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mobiles.csv"), []byte("Acme,X1,100\n"), 0o644))
	_, err = LoadSeed(dir)
	assert.ErrorContains(t, err, "want 4 fields")
}
