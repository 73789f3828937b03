package inventory

// Coordinator serializes every operation that reads then writes a product's
// quantity. It is the only way quantity changes: the catalog exposes no setter.
//
// Operations on the same product are totally ordered by its lock; operations
// on different products are independent and run in parallel.
type Coordinator struct {
	catalog *Catalog
}

func NewCoordinator(catalog *Catalog) *Coordinator {
	return &Coordinator{catalog: catalog}
}

// ReserveAndDecrement atomically checks that amount units are available and
// subtracts them. On InsufficientStockError nothing is mutated. The remaining
// quantity after the decrement is returned for downstream snapshots.
func (co *Coordinator) ReserveAndDecrement(productID, amount int) (remaining int, err error) {
	if amount <= 0 {
		return 0, ErrInvalidQuantity
	}
	rec, ok := co.catalog.record(productID)
	if !ok {
		return 0, ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if amount > rec.p.Quantity {
		return 0, &InsufficientStockError{
			ProductID: productID,
			Requested: amount,
			Available: rec.p.Quantity,
		}
	}
	rec.p.Quantity -= amount
	return rec.p.Quantity, nil
}

// Restore adds amount back to the product's quantity. The caller (the order
// ledger) guarantees it runs exactly once per successful cancellation.
func (co *Coordinator) Restore(productID, amount int) (remaining int, err error) {
	if amount <= 0 {
		return 0, ErrInvalidQuantity
	}
	rec, ok := co.catalog.record(productID)
	if !ok {
		return 0, ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.p.Quantity += amount
	return rec.p.Quantity, nil
}

// CheckAvailable is a non-exclusive read of the current quantity. It is
// advisory only: it does not reserve anything, so a cart add that passes this
// check can still lose the stock to another shopper before checkout.
func (co *Coordinator) CheckAvailable(productID int) (int, error) {
	rec, ok := co.catalog.record(productID)
	if !ok {
		return 0, ErrNotFound
	}
	rec.mu.Lock()
	q := rec.p.Quantity
	rec.mu.Unlock()
	return q, nil
}
