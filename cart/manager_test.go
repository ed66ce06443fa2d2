package cart_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-client/cart"
	"storefront-client/models"
	"storefront-client/storage"
)

func newTestManager(t *testing.T) (*cart.Manager, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return cart.NewManager(context.Background(), store, zap.NewNop()), store
}

func product(id int, price float64) models.Product {
	return models.Product{
		ID:          id,
		Name:        "Product",
		ProductCode: "P-001",
		Price:       price,
		ImageURL:    "https://example.com/p.png",
	}
}

func TestAddMergesLineItems(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 2)
	c := m.Add(ctx, product(1, 10), 3)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5, c.TotalItems)
	assert.Equal(t, 50.0, c.TotalPrice)
}

func TestAggregatesAlwaysRecomputed(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 2)
	m.Add(ctx, product(2, 2.5), 4)
	m.SetQuantity(ctx, 1, 1)
	c := m.Remove(ctx, 2)

	wantItems, wantPrice := 0, 0.0
	for _, item := range c.Items {
		wantItems += item.Quantity
		wantPrice += item.Price * float64(item.Quantity)
	}
	assert.Equal(t, wantItems, c.TotalItems)
	assert.Equal(t, wantPrice, c.TotalPrice)
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 2)
	c := m.SetQuantity(ctx, 1, 0)

	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
	assert.Equal(t, 0.0, c.TotalPrice)
}

func TestSetQuantityIsExact(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 2)
	c := m.SetQuantity(ctx, 1, 7)

	assert.Equal(t, 7, c.Items[0].Quantity)
}

func TestSetQuantityAbsentProductIsNoop(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 1)
	c := m.SetQuantity(ctx, 99, 3)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.TotalItems)
}

func TestRemoveAbsentProductIsNoop(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 1)
	c := m.Remove(ctx, 99)

	require.Len(t, c.Items, 1)
}

func TestClearIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 2)
	first := m.Clear(ctx)
	second := m.Clear(ctx)

	assert.Equal(t, first, second)
	assert.Empty(t, second.Items)
	assert.Equal(t, 0, second.TotalItems)
	assert.Equal(t, 0.0, second.TotalPrice)
}

func TestSummaryDistinguishesItemCountFromTotalItems(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 3)
	m.Add(ctx, product(2, 5), 2)

	summary := m.Summary()
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 5, summary.TotalItems)
	assert.Equal(t, 40.0, summary.TotalPrice)
}

func TestLookups(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 3)

	assert.True(t, m.IsInCart(1))
	assert.False(t, m.IsInCart(2))
	assert.Equal(t, 3, m.QuantityOf(1))
	assert.Equal(t, 0, m.QuantityOf(2))
}

func TestMutationsPersistBeforePublish(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 2)

	data, err := store.Get(ctx, "ecommerce_cart")
	require.NoError(t, err)

	var stored models.Cart
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, m.Current(), stored)
}

func TestLoadPersistedCart(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	first := cart.NewManager(ctx, store, zap.NewNop())
	first.Add(ctx, product(1, 10), 2)

	second := cart.NewManager(ctx, store, zap.NewNop())
	assert.Equal(t, first.Current(), second.Current())
}

func TestLoadMalformedCartStartsEmpty(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "ecommerce_cart", []byte("{not json")))

	m := cart.NewManager(ctx, store, zap.NewNop())
	c := m.Current()
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
}

func TestLoadDefaultsMissingFields(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	// aggregates missing from the stored record
	stored := `{"items":[{"productId":1,"name":"P","price":10,"quantity":2,"imageUrl":"","productCode":"P-001"}]}`
	require.NoError(t, store.Set(ctx, "ecommerce_cart", []byte(stored)))

	m := cart.NewManager(ctx, store, zap.NewNop())
	c := m.Current()
	require.Len(t, c.Items, 1)
	assert.Equal(t, 0, c.TotalItems)
	assert.Equal(t, 0.0, c.TotalPrice)

	// first mutation recomputes the aggregates
	c = m.Add(ctx, product(2, 5), 1)
	assert.Equal(t, 3, c.TotalItems)
	assert.Equal(t, 25.0, c.TotalPrice)
}

func TestSubscribeDeliversCurrentThenUpdates(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	ch, cancel := m.Subscribe()
	defer cancel()

	initial := <-ch
	assert.Empty(t, initial.Items)

	m.Add(ctx, product(1, 10), 1)
	updated := <-ch
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 1, updated.TotalItems)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Add(ctx, product(1, 10), 1)
	snap := m.Current()

	m.SetQuantity(ctx, 1, 9)
	assert.Equal(t, 1, snap.Items[0].Quantity)
}
