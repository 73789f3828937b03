package inventory

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Seed files live under one directory, one file per category. Electronics
// lines are "brand,model,price,quantity"; clothes lines are
// "type,gender,size,price,brand,quantity". Blank lines and #-comments are
// skipped.
var seedFiles = []struct {
	name     string
	category Category
}{
	{"mobiles.csv", Mobile},
	{"laptops.csv", Laptop},
	{"clothes.csv", Clothes},
}

// LoadSeed reads the seed files under dir and returns the products in file
// order, ready for Catalog.AddProducts.
func LoadSeed(dir string) ([]Product, error) {
	var out []Product
	for _, f := range seedFiles {
		products, err := loadSeedFile(filepath.Join(dir, f.name), f.category)
		if err != nil {
			return nil, err
		}
		out = append(out, products...)
	}
	return out, nil
}

func loadSeedFile(path string, category Category) ([]Product, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()

	var out []Product
	sc := bufio.NewScanner(file)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		p, err := parseSeedLine(text, category)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		out = append(out, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return out, nil
}

func parseSeedLine(text string, category Category) (Product, error) {
	fields := strings.Split(text, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	switch category {
	case Mobile, Laptop:
		if len(fields) != 4 {
			return Product{}, fmt.Errorf("want 4 fields brand,model,price,quantity, got %d", len(fields))
		}
		price, qty, err := parsePriceQty(fields[2], fields[3])
		if err != nil {
			return Product{}, err
		}
		return Product{
			Category:  category,
			BrandName: fields[0],
			Model:     fields[1],
			Price:     price,
			Quantity:  qty,
		}, nil
	case Clothes:
		if len(fields) != 6 {
			return Product{}, fmt.Errorf("want 6 fields type,gender,size,price,brand,quantity, got %d", len(fields))
		}
		price, qty, err := parsePriceQty(fields[3], fields[5])
		if err != nil {
			return Product{}, err
		}
		return Product{
			Category:    category,
			ClothesType: fields[0],
			Gender:      fields[1],
			Size:        fields[2],
			Price:       price,
			BrandName:   fields[4],
			Quantity:    qty,
		}, nil
	}
	return Product{}, &UnknownEnumError{Kind: "product category", ID: int(category)}
}

func parsePriceQty(priceField, qtyField string) (float64, int, error) {
	price, err := strconv.ParseFloat(priceField, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse price %q: %w", priceField, err)
	}
	qty, err := strconv.Atoi(qtyField)
	if err != nil {
		return 0, 0, fmt.Errorf("parse quantity %q: %w", qtyField, err)
	}
	return price, qty, nil
}
