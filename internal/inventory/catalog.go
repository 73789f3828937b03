package inventory

import "sync"

// record pairs a product with the mutex that serializes every read-then-write
// of its quantity. Locking is per product, never global, so unrelated
// purchases proceed in parallel.
type record struct {
	mu sync.Mutex
	p  Product
}

// Catalog is the single source of truth for products and their quantities.
// Quantity is only mutated through the Coordinator; everything else here is a
// lock-free snapshot read under the structural RWMutex.
type Catalog struct {
	mu         sync.RWMutex
	nextID     int
	byID       map[int]*record
	byKey      map[string]int
	byCategory map[Category][]int // insertion order per category
}

func NewCatalog() *Catalog {
	return &Catalog{
		byID:       make(map[int]*record),
		byKey:      make(map[string]int),
		byCategory: make(map[Category][]int),
	}
}

// AddResult reports the outcome for one product of a batch insert.
type AddResult struct {
	Product Product
	Err     error
}

// AddProducts inserts each product that is not already present. Duplicates
// (same identity key) are skipped with ErrDuplicateProduct in their slot; they
// never abort the rest of the batch.
func (c *Catalog) AddProducts(products []Product) []AddResult {
	out := make([]AddResult, len(products))

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range products {
		if !p.Category.valid() {
			out[i] = AddResult{Product: p, Err: &UnknownEnumError{Kind: "product category", ID: int(p.Category)}}
			continue
		}
		if p.Quantity < 0 {
			out[i] = AddResult{Product: p, Err: ErrInvalidQuantity}
			continue
		}
		if p.Price <= 0 {
			out[i] = AddResult{Product: p, Err: ErrInvalidPrice}
			continue
		}
		key := p.identityKey()
		if _, ok := c.byKey[key]; ok {
			out[i] = AddResult{Product: p, Err: ErrDuplicateProduct}
			continue
		}
		c.nextID++
		p.ID = c.nextID
		c.byID[p.ID] = &record{p: p}
		c.byKey[key] = p.ID
		c.byCategory[p.Category] = append(c.byCategory[p.Category], p.ID)
		out[i] = AddResult{Product: p}
	}
	return out
}

// Remove deletes the product. The category must match the stored one,
// otherwise the product is treated as absent.
func (c *Catalog) Remove(id int, category Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.byID[id]
	if !ok || rec.p.Category != category {
		return ErrNotFound
	}
	delete(c.byID, id)
	delete(c.byKey, rec.p.identityKey())

	ids := c.byCategory[category]
	for i, pid := range ids {
		if pid == id {
			c.byCategory[category] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// ListByCategory returns a stable, insertion-ordered page of products.
func (c *Catalog) ListByCategory(category Category, page, limit int) ([]Product, error) {
	if !category.valid() {
		return nil, &UnknownEnumError{Kind: "product category", ID: int(category)}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := c.byCategory[category]
	start, end, err := PageBounds(len(ids), page, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, end-start)
	for _, id := range ids[start:end] {
		out = append(out, c.snapshot(c.byID[id]))
	}
	return out, nil
}

// Get returns a copy of the product.
func (c *Catalog) Get(id int) (Product, error) {
	c.mu.RLock()
	rec, ok := c.byID[id]
	c.mu.RUnlock()
	if !ok {
		return Product{}, ErrNotFound
	}
	return c.snapshot(rec), nil
}

// UpdatePrice changes the unit price. Cart totals recompute from the catalog
// at read time, so no cached total goes stale.
func (c *Catalog) UpdatePrice(id int, price float64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	c.mu.RLock()
	rec, ok := c.byID[id]
	c.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	rec.mu.Lock()
	rec.p.Price = price
	rec.mu.Unlock()
	return nil
}

// record looks up the mutable slot for a product. Only the Coordinator uses
// it; the product lock it exposes is what makes quantity updates atomic.
func (c *Catalog) record(id int) (*record, bool) {
	c.mu.RLock()
	rec, ok := c.byID[id]
	c.mu.RUnlock()
	return rec, ok
}

// snapshot copies a record's product under its own lock so concurrent
// quantity writes cannot tear the read.
func (c *Catalog) snapshot(rec *record) Product {
	rec.mu.Lock()
	p := rec.p
	rec.mu.Unlock()
	return p
}

// PageBounds converts 1-based page/limit into slice bounds over total items.
// Pages past the end are empty, not an error.
func PageBounds(total, page, limit int) (start, end int, err error) {
	if page <= 0 || limit <= 0 {
		return 0, 0, ErrInvalidPage
	}
	start = (page - 1) * limit
	if start >= total {
		return 0, 0, nil
	}
	end = start + limit
	if end > total {
		end = total
	}
	return start, end, nil
}
