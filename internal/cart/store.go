package cart

import (
	"errors"
	"sync"

	"github.com/abcshop/go-shop-core/internal/inventory"
)

var (
	ErrOutOfStock    = errors.New("product is out of stock")
	ErrDuplicateItem = errors.New("item already in cart")
)

// Item is one product a user intends to buy. It holds no quantity: the cart
// reflects intent, not a reservation.
type Item struct {
	UserID    int                `json:"user_id"`
	ProductID int                `json:"product_id"`
	Category  inventory.Category `json:"category"`
}

// View is one page of a user's cart plus the running total over the whole
// cart, recomputed from the catalog at read time so price changes are never
// stale.
type View struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// Store keeps per-user carts. Entries are owned by exactly one user, so the
// single RWMutex only guards the map structure, never cross-user state.
type Store struct {
	mu    sync.RWMutex
	items map[int][]Item // per user, insertion order

	catalog *inventory.Catalog
	stock   *inventory.Coordinator
}

func NewStore(catalog *inventory.Catalog, stock *inventory.Coordinator) *Store {
	return &Store{
		items:   make(map[int][]Item),
		catalog: catalog,
		stock:   stock,
	}
}

// AddItem puts a product in the user's cart. The availability check is
// advisory: it rejects products that are out of stock right now but reserves
// nothing, so the stock can still sell out before checkout. That race is the
// documented trade-off, not a defect; the real reservation happens at order
// placement.
func (s *Store) AddItem(userID, productID int, category inventory.Category) error {
	product, err := s.catalog.Get(productID)
	if err != nil {
		return err
	}
	if product.Category != category {
		return inventory.ErrNotFound
	}
	available, err := s.stock.CheckAvailable(productID)
	if err != nil {
		return err
	}
	if available == 0 {
		return ErrOutOfStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items[userID] {
		if it.ProductID == productID {
			return ErrDuplicateItem
		}
	}
	s.items[userID] = append(s.items[userID], Item{
		UserID:    userID,
		ProductID: productID,
		Category:  category,
	})
	return nil
}

// RemoveItem takes a product out of the user's cart. Removing an absent item
// is a no-op: the cart is best-effort.
func (s *Store) RemoveItem(userID, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.items[userID]
	for i, it := range items {
		if it.ProductID == productID {
			s.items[userID] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

// GetCart returns one page of the user's cart and the running total over the
// whole cart. Products that have left the catalog contribute nothing.
func (s *Store) GetCart(userID, page, limit int) (View, error) {
	s.mu.RLock()
	items := make([]Item, len(s.items[userID]))
	copy(items, s.items[userID])
	s.mu.RUnlock()

	start, end, err := inventory.PageBounds(len(items), page, limit)
	if err != nil {
		return View{}, err
	}

	var total float64
	for _, it := range items {
		if p, err := s.catalog.Get(it.ProductID); err == nil {
			total += p.Price
		}
	}
	return View{Items: items[start:end], Total: total}, nil
}

// Clear drops the user's whole cart, used after a successful checkout.
func (s *Store) Clear(userID int) {
	s.mu.Lock()
	delete(s.items, userID)
	s.mu.Unlock()
}
