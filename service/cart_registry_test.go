package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pookadai/models"
)

func TestCartRegistry_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderStore(nil, nil)
	registry := NewCartRegistry(orders, newTestPayments(orders, true, time.Millisecond), "", nil)
	catalog := flowerCatalog()

	a, err := registry.Get("a", models.LanguageTamil)
	require.NoError(t, err)
	b, err := registry.Get("b", "")
	require.NoError(t, err)

	_, err = a.Cart.AddItem(ctx, "p1", catalog)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Cart.Count())
	assert.Equal(t, 0, b.Cart.Count())
	assert.Equal(t, models.LanguageTamil, a.Cart.Language())
	assert.Equal(t, models.LanguageEnglish, b.Cart.Language())

	again, err := registry.Get("a", models.LanguageEnglish)
	require.NoError(t, err)
	assert.Same(t, a, again)
	assert.Equal(t, models.LanguageTamil, again.Cart.Language())

	_, err = registry.Get("  ", "")
	assert.True(t, models.IsValidation(err))
}

func TestCartRegistry_SessionCheckout(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderStore(nil, nil)
	registry := NewCartRegistry(orders, newTestPayments(orders, true, time.Millisecond), models.LanguageEnglish, nil)

	session, err := registry.Get("a", "")
	require.NoError(t, err)
	_, err = session.Cart.AddItem(ctx, "p2", flowerCatalog())
	require.NoError(t, err)

	result, err := session.Checkout.Checkout(ctx, checkoutCustomer(), madurai, models.PaymentMethodUPI)
	require.NoError(t, err)
	assert.Equal(t, int64(300), result.Total)
	assert.Empty(t, session.Cart.Lines())
}

func TestCartRegistry_PeekDoesNotCreate(t *testing.T) {
	orders := NewOrderStore(nil, nil)
	registry := NewCartRegistry(orders, newTestPayments(orders, true, time.Millisecond), "", nil)

	_, ok := registry.Peek("a")
	assert.False(t, ok)
	_, ok = registry.Peek("")
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())

	created, err := registry.Get("a", "")
	require.NoError(t, err)
	found, ok := registry.Peek(" a ")
	require.True(t, ok)
	assert.Same(t, created, found)
}

func TestCartRegistry_EvictIdle(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	orders := NewOrderStore(nil, nil)
	registry := NewCartRegistry(orders, newTestPayments(orders, true, time.Millisecond), "", nil,
		WithIdleTTL(time.Hour), WithRegistryClock(clock))

	_, err := registry.Get("stale", "")
	require.NoError(t, err)
	_, err = registry.Get("touched", "")
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	_, err = registry.Get("fresh", "")
	require.NoError(t, err)
	_, ok := registry.Peek("touched")
	require.True(t, ok)

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, registry.EvictIdle())
	assert.Equal(t, 2, registry.Len())
	_, ok = registry.Peek("stale")
	assert.False(t, ok)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 2, registry.EvictIdle())
	assert.Equal(t, 0, registry.Len())
}
