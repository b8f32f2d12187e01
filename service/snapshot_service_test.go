package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pookadai/models"
	"pookadai/repository"
)

type storefront struct {
	products  *repository.ProductRepository
	orders    *OrderStore
	carts     *CartRegistry
	snapshots *SnapshotService
}

func newStorefront(repo repository.SnapshotRepositoryInterface) storefront {
	products := repository.NewProductRepository(nil)
	orders := NewOrderStore(nil, nil)
	payments := newTestPayments(orders, true, time.Millisecond)
	carts := NewCartRegistry(orders, payments, models.LanguageEnglish, nil)
	return storefront{
		products:  products,
		orders:    orders,
		carts:     carts,
		snapshots: NewSnapshotService(repo, carts, orders, products, nil),
	}
}

func TestSnapshotService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemorySnapshotRepository()
	before := newStorefront(repo)

	product, err := before.products.Create(ctx, &models.CreateProductRequest{NameEN: "Jasmine", NameTA: "மல்லி", Category: "loose", Price: 150, Available: true})
	require.NoError(t, err)
	catalog := NewProductCatalog(before.products, ContextIdentity{}, nil)

	session, err := before.carts.Get("shopper-1", models.LanguageTamil)
	require.NoError(t, err)
	_, err = session.Cart.AddItem(ctx, product.ID, catalog)
	require.NoError(t, err)
	require.NoError(t, session.Cart.SetQuantity(product.ID, 4))

	orderID, err := newPendingOrder(ctx, before.orders)
	require.NoError(t, err)
	_, err = before.orders.RecordPayment(ctx, orderID, "pay_1")
	require.NoError(t, err)

	// An empty session is not persisted
	_, err = before.carts.Get("shopper-2", "")
	require.NoError(t, err)

	require.NoError(t, before.snapshots.Save(ctx))

	after := newStorefront(repo)
	require.NoError(t, after.snapshots.Restore(ctx))

	restoredProduct, err := after.products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "மல்லி", restoredProduct.NameTA)

	order, err := after.orders.GetByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, "pay_1", order.PaymentID)

	assert.Equal(t, 1, after.carts.Len())
	restored, err := after.carts.Get("shopper-1", models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, models.LanguageTamil, restored.Cart.Language())
	assert.Equal(t, 4, restored.Cart.Count())
	assert.Equal(t, int64(600), restored.Cart.Total())
}

func TestSnapshotService_RestoreWithNothingSaved(t *testing.T) {
	ctx := context.Background()
	front := newStorefront(repository.NewMemorySnapshotRepository())
	_, err := newPendingOrder(ctx, front.orders)
	require.NoError(t, err)

	require.NoError(t, front.snapshots.Restore(ctx))
	assert.Len(t, front.orders.ListAll(), 1)
}

func TestSnapshotService_RunSavesOnShutdown(t *testing.T) {
	repo := repository.NewMemorySnapshotRepository()
	front := newStorefront(repo)
	_, err := newPendingOrder(context.Background(), front.orders)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- front.snapshots.Run(ctx, time.Hour) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("snapshot loop did not stop")
	}

	payload, err := repo.Load(context.Background(), SnapshotKeyOrders)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"status":"pending"`)
}

func TestSnapshotService_RunEvictsIdleCarts(t *testing.T) {
	repo := repository.NewMemorySnapshotRepository()
	products := repository.NewProductRepository(nil)
	orders := NewOrderStore(nil, nil)
	carts := NewCartRegistry(orders, newTestPayments(orders, true, time.Millisecond), "", nil, WithIdleTTL(time.Millisecond))
	snapshots := NewSnapshotService(repo, carts, orders, products, nil)

	_, err := carts.Get("shopper-1", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = snapshots.Run(ctx, 5*time.Millisecond) }()

	assert.Eventually(t, func() bool { return carts.Len() == 0 }, time.Second, 5*time.Millisecond)
}
