package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pookadai/models"
	"pookadai/repository"
)

func TestProductCatalog_OwnerManagesProducts(t *testing.T) {
	ctx := WithRole(context.Background(), models.RoleOwner)
	catalog := NewProductCatalog(repository.NewProductRepository(nil), ContextIdentity{}, nil)

	created, err := catalog.Create(ctx, &models.CreateProductRequest{
		NameEN:    "Jasmine garland",
		NameTA:    "மல்லிகை மாலை",
		Category:  " Garland ",
		Price:     150,
		Available: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "garland", created.Category)

	price := int64(180)
	updated, err := catalog.Update(ctx, created.ID, models.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(180), updated.Price)
	assert.Equal(t, "மல்லிகை மாலை", updated.NameTA)

	_, err = catalog.SetAvailability(ctx, created.ID, false)
	require.NoError(t, err)

	available, err := catalog.List(ctx, "", true)
	require.NoError(t, err)
	assert.Empty(t, available)

	all, err := catalog.List(ctx, "garland", false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, catalog.Delete(ctx, created.ID))
	_, err = catalog.GetProduct(ctx, created.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestProductCatalog_CustomersCannotManage(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProductRepository(nil)
	catalog := NewProductCatalog(repo, ContextIdentity{}, nil)

	_, err := catalog.Create(ctx, &models.CreateProductRequest{NameEN: "Rose", Category: "loose", Price: 20})
	assert.True(t, models.IsUnauthorized(err))

	owned, err := repo.Create(ctx, &models.CreateProductRequest{NameEN: "Rose", Category: "loose", Price: 20, Available: true})
	require.NoError(t, err)

	price := int64(1)
	_, err = catalog.Update(ctx, owned.ID, models.ProductPatch{Price: &price})
	assert.True(t, models.IsUnauthorized(err))
	assert.True(t, models.IsUnauthorized(catalog.Delete(ctx, owned.ID)))

	product, err := catalog.GetProduct(ctx, owned.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), product.Price)
}

func TestProductCatalog_PatchValidation(t *testing.T) {
	ctx := WithRole(context.Background(), models.RoleOwner)
	catalog := NewProductCatalog(repository.NewProductRepository(nil), ContextIdentity{}, nil)
	created, err := catalog.Create(ctx, &models.CreateProductRequest{NameEN: "Rose", Category: "loose", Price: 20})
	require.NoError(t, err)

	negative := int64(-5)
	_, err = catalog.Update(ctx, created.ID, models.ProductPatch{Price: &negative})
	assert.True(t, models.IsValidation(err))

	empty := "  "
	_, err = catalog.Update(ctx, created.ID, models.ProductPatch{NameEN: &empty})
	assert.True(t, models.IsValidation(err))

	_, err = catalog.Update(ctx, created.ID, models.ProductPatch{})
	assert.True(t, models.IsValidation(err))
}

func TestProductCatalog_FeedsCart(t *testing.T) {
	ctx := WithRole(context.Background(), models.RoleOwner)
	catalog := NewProductCatalog(repository.NewProductRepository(nil), ContextIdentity{}, nil)
	created, err := catalog.Create(ctx, &models.CreateProductRequest{NameEN: "Marigold", NameTA: "சாமந்தி", Category: "loose", Price: 60, Available: true, BallQuantity: "50 balls"})
	require.NoError(t, err)

	cart := NewCartStore(models.LanguageTamil, nil)
	line, err := cart.AddItem(ctx, created.ID, catalog)
	require.NoError(t, err)
	assert.Equal(t, "சாமந்தி", line.DisplayName)
	assert.Equal(t, "50 balls", line.BallQuantity)
	assert.Equal(t, int64(60), cart.Total())
}
