package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"storefront-client/models"
	"storefront-client/state"
	"storefront-client/storage"
)

// storageKey matches the layout every client version persists the cart under.
const storageKey = "ecommerce_cart"

// Manager keeps the normalized cart: at most one line item per product,
// aggregates always recomputed from the items. Every mutation persists the
// full cart before publishing the new snapshot, so a crash between the two
// never loses committed data.
type Manager struct {
	mu     sync.Mutex
	cart   models.Cart
	store  storage.Store
	state  *state.Value[models.Cart]
	logger *zap.Logger
}

func NewManager(ctx context.Context, store storage.Store, logger *zap.Logger) *Manager {
	m := &Manager{
		store:  store,
		logger: logger,
	}
	m.cart = m.load(ctx)
	m.state = state.NewValue(snapshot(m.cart))
	return m
}

// load reads the stored cart. Missing or malformed records read as an empty
// cart; missing fields keep their zero values until the next mutation
// recomputes them.
func (m *Manager) load(ctx context.Context) models.Cart {
	data, err := m.store.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn("load cart", zap.Error(err))
		}
		return emptyCart()
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		m.logger.Warn("discarding malformed stored cart", zap.Error(err))
		return emptyCart()
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart
}

// Add merges quantity into an existing line item or appends a new one.
// Quantities below one count as one.
func (m *Manager) Add(ctx context.Context, product models.Product, quantity int) models.Cart {
	if quantity < 1 {
		quantity = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if idx := m.indexOf(product.ID); idx >= 0 {
		m.cart.Items[idx].Quantity += quantity
	} else {
		m.cart.Items = append(m.cart.Items, models.CartItem{
			ProductID:   product.ID,
			Name:        product.Name,
			Price:       product.Price,
			Quantity:    quantity,
			ImageURL:    product.ImageURL,
			ProductCode: product.ProductCode,
		})
	}
	return m.commit(ctx)
}

// Remove deletes the line item. Removing an absent product is a no-op, not an
// error.
func (m *Manager) Remove(ctx context.Context, productID int) models.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(ctx, productID)
}

// SetQuantity sets the exact quantity of a line item. A quantity of zero or
// less removes the item.
func (m *Manager) SetQuantity(ctx context.Context, productID, quantity int) models.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	if quantity <= 0 {
		return m.removeLocked(ctx, productID)
	}
	idx := m.indexOf(productID)
	if idx < 0 {
		return snapshot(m.cart)
	}
	m.cart.Items[idx].Quantity = quantity
	return m.commit(ctx)
}

// Clear replaces the cart with the empty cart.
func (m *Manager) Clear(ctx context.Context) models.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart = emptyCart()
	return m.commit(ctx)
}

// Current returns a snapshot of the cart.
func (m *Manager) Current() models.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshot(m.cart)
}

// Summary derives the aggregate view. ItemCount is distinct line items,
// TotalItems is summed quantities.
func (m *Manager) Summary() models.CartSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.CartSummary{
		TotalItems: m.cart.TotalItems,
		TotalPrice: m.cart.TotalPrice,
		ItemCount:  len(m.cart.Items),
	}
}

func (m *Manager) IsInCart(productID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexOf(productID) >= 0
}

// QuantityOf returns the quantity of a product in the cart, zero when absent.
func (m *Manager) QuantityOf(productID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx := m.indexOf(productID); idx >= 0 {
		return m.cart.Items[idx].Quantity
	}
	return 0
}

// Subscribe delivers the current snapshot immediately and every change after.
func (m *Manager) Subscribe() (<-chan models.Cart, func()) {
	return m.state.Subscribe()
}

func (m *Manager) removeLocked(ctx context.Context, productID int) models.Cart {
	idx := m.indexOf(productID)
	if idx < 0 {
		return snapshot(m.cart)
	}
	m.cart.Items = append(m.cart.Items[:idx], m.cart.Items[idx+1:]...)
	return m.commit(ctx)
}

// commit recomputes aggregates, persists, then publishes. Callers hold the
// lock.
func (m *Manager) commit(ctx context.Context) models.Cart {
	totalItems := 0
	totalPrice := 0.0
	for _, item := range m.cart.Items {
		totalItems += item.Quantity
		totalPrice += item.Price * float64(item.Quantity)
	}
	m.cart.TotalItems = totalItems
	m.cart.TotalPrice = totalPrice

	data, err := json.Marshal(m.cart)
	if err != nil {
		m.logger.Error("marshal cart", zap.Error(err))
	} else if err := m.store.Set(ctx, storageKey, data); err != nil {
		m.logger.Error("persist cart", zap.Error(err))
	}

	snap := snapshot(m.cart)
	m.state.Set(snap)
	return snap
}

func (m *Manager) indexOf(productID int) int {
	for i, item := range m.cart.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// snapshot deep-copies the cart so subscribers iterating an old snapshot
// never observe a partial update.
func snapshot(cart models.Cart) models.Cart {
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return cart
}

func emptyCart() models.Cart {
	return models.Cart{Items: []models.CartItem{}}
}
