package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pookadai/models"
)

func TestCartStore_TotalsAndCount(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(models.LanguageEnglish, nil)
	catalog := flowerCatalog()

	_, err := cart.AddItem(ctx, "p1", catalog)
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, "p1", catalog)
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, "p2", catalog)
	require.NoError(t, err)

	assert.Equal(t, int64(600), cart.Total())
	assert.Equal(t, 3, cart.Count())

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "p2", lines[1].ProductID)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestCartStore_EmptyCart(t *testing.T) {
	cart := NewCartStore("", nil)

	assert.Equal(t, int64(0), cart.Total())
	assert.Equal(t, 0, cart.Count())
	assert.Empty(t, cart.Lines())
	assert.Equal(t, models.LanguageEnglish, cart.Language())
}

func TestCartStore_AddItemCopiesCatalogData(t *testing.T) {
	ctx := context.Background()
	catalog := flowerCatalog()
	cart := NewCartStore(models.LanguageTamil, nil)

	line, err := cart.AddItem(ctx, "p1", catalog)
	require.NoError(t, err)
	assert.Equal(t, "மல்லிகை மாலை", line.DisplayName)
	assert.Equal(t, "1 muzham", line.TiedLength)

	// Tamil name missing falls back to English
	line, err = cart.AddItem(ctx, "p2", catalog)
	require.NoError(t, err)
	assert.Equal(t, "Rose bouquet", line.DisplayName)

	// Later catalog price changes do not touch existing lines
	p1 := catalog["p1"]
	p1.Price = 999
	catalog["p1"] = p1
	_, err = cart.AddItem(ctx, "p1", catalog)
	require.NoError(t, err)
	assert.Equal(t, int64(150), cart.Lines()[0].UnitPrice)
}

func TestCartStore_AddItemErrors(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(models.LanguageEnglish, nil)
	catalog := flowerCatalog()

	_, err := cart.AddItem(ctx, "", catalog)
	assert.True(t, models.IsValidation(err))

	_, err = cart.AddItem(ctx, "missing", catalog)
	assert.True(t, models.IsNotFound(err))

	_, err = cart.AddItem(ctx, "p3", catalog)
	assert.True(t, models.IsNotFound(err), "unavailable products cannot be added")

	assert.Empty(t, cart.Lines())
}

func TestCartStore_SetQuantity(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(models.LanguageEnglish, nil)
	catalog := flowerCatalog()
	_, err := cart.AddItem(ctx, "p1", catalog)
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, "p2", catalog)
	require.NoError(t, err)

	require.NoError(t, cart.SetQuantity("p1", 5))
	assert.Equal(t, int64(5*150+300), cart.Total())

	require.NoError(t, cart.SetQuantity("p1", 0))
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)

	require.NoError(t, cart.SetQuantity("p2", -1))
	assert.Empty(t, cart.Lines())

	err = cart.SetQuantity("p9", 2)
	assert.True(t, models.IsNotFound(err))
}

func TestCartStore_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(models.LanguageEnglish, nil)
	catalog := flowerCatalog()
	_, _ = cart.AddItem(ctx, "p1", catalog)
	_, _ = cart.AddItem(ctx, "p2", catalog)

	cart.RemoveItem("missing")
	assert.Len(t, cart.Lines(), 2)

	cart.RemoveItem("p1")
	assert.Equal(t, int64(300), cart.Total())

	cart.Clear()
	assert.Empty(t, cart.Lines())
	assert.Equal(t, 0, cart.Count())
}

func TestCartStore_LinesAreCopies(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(models.LanguageEnglish, nil)
	_, err := cart.AddItem(ctx, "p1", flowerCatalog())
	require.NoError(t, err)

	lines := cart.Lines()
	lines[0].Quantity = 40
	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}

func TestCartStore_RestoreMergesAndDrops(t *testing.T) {
	cart := NewCartStore(models.LanguageEnglish, nil)
	cart.Restore(models.CartSnapshot{
		Language: models.LanguageTamil,
		Lines: []models.CartLine{
			{ProductID: "p1", UnitPrice: 150, Quantity: 1},
			{ProductID: "p2", UnitPrice: 300, Quantity: 0},
			{ProductID: "p1", UnitPrice: 150, Quantity: 2},
			{ProductID: "", UnitPrice: 10, Quantity: 1},
		},
	})

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, models.LanguageTamil, cart.Language())

	snap := cart.Snapshot()
	assert.Equal(t, models.LanguageTamil, snap.Language)
	assert.Equal(t, int64(450), models.SumLines(snap.Lines))
}

func TestCartStore_RemoveOrdered(t *testing.T) {
	ctx := context.Background()
	catalog := flowerCatalog()
	cart := NewCartStore(models.LanguageEnglish, nil)
	for _, id := range []string{"p1", "p1", "p1", "p2"} {
		_, err := cart.AddItem(ctx, id, catalog)
		require.NoError(t, err)
	}

	cart.RemoveOrdered([]models.CartLine{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 4},
		{ProductID: "gone", Quantity: 1},
	})

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, int64(150), cart.Total())
}
