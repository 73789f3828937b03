package cart

import (
	"sync"

	"github.com/abcshop/go-shop-core/internal/inventory"
)

// Wishlist is a per-user list of products with no quantity side effects:
// adding, removing or listing never touches stock.
type Wishlist struct {
	mu    sync.RWMutex
	items map[int][]Item

	catalog *inventory.Catalog
}

func NewWishlist(catalog *inventory.Catalog) *Wishlist {
	return &Wishlist{
		items:   make(map[int][]Item),
		catalog: catalog,
	}
}

// Add puts a product on the user's wishlist. Out-of-stock products are
// allowed here; only the cart gates on availability.
func (w *Wishlist) Add(userID, productID int, category inventory.Category) error {
	product, err := w.catalog.Get(productID)
	if err != nil {
		return err
	}
	if product.Category != category {
		return inventory.ErrNotFound
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, it := range w.items[userID] {
		if it.ProductID == productID {
			return ErrDuplicateItem
		}
	}
	w.items[userID] = append(w.items[userID], Item{
		UserID:    userID,
		ProductID: productID,
		Category:  category,
	})
	return nil
}

// Remove is a no-op when the item is absent.
func (w *Wishlist) Remove(userID, productID int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	items := w.items[userID]
	for i, it := range items {
		if it.ProductID == productID {
			w.items[userID] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

// List returns one insertion-ordered page of the user's wishlist.
func (w *Wishlist) List(userID, page, limit int) ([]Item, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	items := w.items[userID]
	start, end, err := inventory.PageBounds(len(items), page, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Item, end-start)
	copy(out, items[start:end])
	return out, nil
}
