package engine

// Registry maps engine-assigned order numbers to tracked orders. An
// order is present exactly while it rests in its book with nonzero
// remaining quantity.
type Registry struct {
	orders map[uint64]*Order
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		orders: make(map[uint64]*Order),
	}
}

// Track inserts the order keyed by its order number and notifies the
// owner that tracking began. The order number must not be present.
func (r *Registry) Track(order *Order) {
	r.orders[order.OrderNumber()] = order

	order.Session().Track(order)
}

// Release notifies the owner that tracking ended, then removes the
// order. Removing an absent order is a no-op.
func (r *Registry) Release(order *Order) {
	order.Session().Release(order)

	delete(r.orders, order.OrderNumber())
}

// Drop removes the order without notifying the owner. Used by
// engine-initiated retirement, where the owner is presumed gone.
func (r *Registry) Drop(orderNumber uint64) {
	delete(r.orders, orderNumber)
}

// Lookup returns the tracked order, or nil. A nil result is a normal
// outcome, not an error: the order may already have been released.
func (r *Registry) Lookup(orderNumber uint64) *Order {
	return r.orders[orderNumber]
}

// Len returns the number of tracked orders
func (r *Registry) Len() int {
	return len(r.orders)
}
