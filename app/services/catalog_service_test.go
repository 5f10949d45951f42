package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

func TestCatalogCRUD(t *testing.T) {
	categories := newFakeCategoryRepo()
	brands := newFakeBrandRepo()
	products := newFakeProductRepo()
	svc := services.NewCatalogService(categories, brands, products)
	prodSvc := services.NewProductService(products, categories, brands)
	ctx := context.Background()

	siteA := primitive.NewObjectID()
	siteB := primitive.NewObjectID()

	cat, err := svc.CreateCategory(ctx, siteA, services.CategoryInput{Name: "Kids Wear"})
	require.NoError(t, err)
	require.Equal(t, siteA, cat.Site)

	t.Run("names are unique per tenant", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, siteA, services.CategoryInput{Name: "Kids Wear"})
		require.True(t, apperr.Is(err, apperr.Conflict))

		// The same name on another tenant is fine.
		_, err = svc.CreateCategory(ctx, siteB, services.CategoryInput{Name: "Kids Wear"})
		require.NoError(t, err)
	})

	t.Run("cross-tenant access is refused, not hidden", func(t *testing.T) {
		_, err := svc.Category(ctx, siteB, cat.ID)
		require.True(t, apperr.Is(err, apperr.Forbidden), "read of another tenant's category must be forbidden")

		_, err = svc.UpdateCategory(ctx, siteB, cat.ID, services.CategoryInput{Name: "Hijacked"})
		require.True(t, apperr.Is(err, apperr.Forbidden), "update of another tenant's category must be forbidden")

		err = svc.DeleteCategory(ctx, siteB, cat.ID)
		require.True(t, apperr.Is(err, apperr.Forbidden), "delete of another tenant's category must be forbidden")

		// The category itself is untouched.
		got, err := svc.Category(ctx, siteA, cat.ID)
		require.NoError(t, err)
		require.Equal(t, "Kids Wear", got.Name)
	})

	t.Run("delete refused while products reference it", func(t *testing.T) {
		p, err := prodSvc.Create(ctx, siteA, services.ProductInput{
			Name:         "Cotton Frock",
			Category:     cat.ID.Hex(),
			Price:        499,
			CountInStock: 10,
		})
		require.NoError(t, err)

		err = svc.DeleteCategory(ctx, siteA, cat.ID)
		require.True(t, apperr.Is(err, apperr.Conflict))

		require.NoError(t, prodSvc.Delete(ctx, siteA, p.ID))
		require.NoError(t, svc.DeleteCategory(ctx, siteA, cat.ID))
	})
}

func TestProductRefsAreTenantChecked(t *testing.T) {
	categories := newFakeCategoryRepo()
	brands := newFakeBrandRepo()
	products := newFakeProductRepo()
	catalog := services.NewCatalogService(categories, brands, products)
	svc := services.NewProductService(products, categories, brands)
	ctx := context.Background()

	siteA := primitive.NewObjectID()
	siteB := primitive.NewObjectID()

	foreign, err := catalog.CreateCategory(ctx, siteB, services.CategoryInput{Name: "Ethnic"})
	require.NoError(t, err)

	// A product on site A may not reference site B's category.
	_, err = svc.Create(ctx, siteA, services.ProductInput{
		Name:     "Kurta",
		Category: foreign.ID.Hex(),
		Price:    999,
	})
	require.True(t, apperr.Is(err, apperr.NotFound))

	_, err = svc.Create(ctx, siteA, services.ProductInput{
		Name:     "Kurta",
		Category: "not-a-hex-id",
		Price:    999,
	})
	require.True(t, apperr.Is(err, apperr.Validation))

	t.Run("empty ref clears the field", func(t *testing.T) {
		own, err := catalog.CreateCategory(ctx, siteA, services.CategoryInput{Name: "Ethnic"})
		require.NoError(t, err)

		p, err := svc.Create(ctx, siteA, services.ProductInput{
			Name:     "Kurta",
			Category: own.ID.Hex(),
			Price:    999,
		})
		require.NoError(t, err)
		require.NotNil(t, p.Category)

		updated, err := svc.Update(ctx, siteA, p.ID, services.ProductInput{
			Name:  "Kurta",
			Price: 999,
		})
		require.NoError(t, err)
		require.Nil(t, updated.Category)
	})
}

func TestProductMutationsAreTenantGuarded(t *testing.T) {
	categories := newFakeCategoryRepo()
	brands := newFakeBrandRepo()
	products := newFakeProductRepo()
	svc := services.NewProductService(products, categories, brands)
	ctx := context.Background()

	siteA := primitive.NewObjectID()
	siteB := primitive.NewObjectID()

	p, err := svc.Create(ctx, siteA, services.ProductInput{
		Name:         "Cotton Frock",
		Price:        499,
		CountInStock: 10,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, siteB, p.ID, services.ProductInput{Name: "Hijacked", Price: 1})
	require.True(t, apperr.Is(err, apperr.Forbidden), "update of another tenant's product must be forbidden")

	err = svc.Delete(ctx, siteB, p.ID)
	require.True(t, apperr.Is(err, apperr.Forbidden), "delete of another tenant's product must be forbidden")

	kept, err := svc.Get(ctx, siteA, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Cotton Frock", kept.Name)
	require.Equal(t, float64(499), kept.Price)
}
