package inventory

import (
	"fmt"
	"strings"
)

// Category is the closed set of product categories. The numeric ids are part
// of the wire contract and must not be reordered.
type Category int

const (
	Mobile  Category = 1
	Laptop  Category = 2
	Clothes Category = 3
)

func (c Category) String() string {
	switch c {
	case Mobile:
		return "MOBILE"
	case Laptop:
		return "LAPTOP"
	case Clothes:
		return "CLOTHES"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func (c Category) valid() bool {
	return c == Mobile || c == Laptop || c == Clothes
}

// CategoryOf maps a numeric id to its category.
func CategoryOf(id int) (Category, error) {
	c := Category(id)
	if !c.valid() {
		return 0, &UnknownEnumError{Kind: "product category", ID: id}
	}
	return c, nil
}

type Product struct {
	ID        int      `json:"id"`
	Category  Category `json:"category"`
	BrandName string   `json:"brand_name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`

	// Electronics only.
	Model string `json:"model,omitempty"`

	// Clothes only.
	ClothesType string `json:"clothes_type,omitempty"`
	Size        string `json:"size,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// identityKey decides whether two products are the same SKU: electronics match
// on brand+model, clothes on brand+type+size+gender. Price and quantity never
// participate.
func (p Product) identityKey() string {
	switch p.Category {
	case Clothes:
		return strings.ToLower(fmt.Sprintf("%d|%s|%s|%s|%s", p.Category, p.BrandName, p.ClothesType, p.Size, p.Gender))
	default:
		return strings.ToLower(fmt.Sprintf("%d|%s|%s", p.Category, p.BrandName, p.Model))
	}
}
