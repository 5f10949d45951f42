package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

func newSiteFixture() (*services.SiteService, *fakeSiteRepo, *fakeProductRepo, *fakeContentRepo) {
	sites := newFakeSiteRepo()
	products := newFakeProductRepo()
	contents := newFakeContentRepo()
	svc := services.NewSiteService(
		sites,
		newFakeCategoryRepo(),
		newFakeBrandRepo(),
		products,
		newFakeOrderRepo(),
		contents,
		newFakeReviewRepo(),
	)
	return svc, sites, products, contents
}

func TestSiteLifecycle(t *testing.T) {
	svc, _, products, contents := newSiteFixture()
	ctx := context.Background()

	site, err := svc.Create(ctx, services.SiteInput{Slug: "demo", Name: "Demo Store"})
	require.NoError(t, err)
	require.True(t, site.IsActive)

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, services.SiteInput{Slug: "demo", Name: "Other"})
		require.True(t, apperr.Is(err, apperr.Conflict))
	})

	t.Run("slug is immutable", func(t *testing.T) {
		_, err := svc.Update(ctx, site.ID, services.SiteInput{Slug: "renamed", Name: "Demo Store"})
		require.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("public lookup hides inactive tenants", func(t *testing.T) {
		found, err := svc.BySlug(ctx, "demo")
		require.NoError(t, err)
		require.Equal(t, site.ID, found.ID)

		off := false
		_, err = svc.Update(ctx, site.ID, services.SiteInput{Slug: "demo", Name: "Demo Store", IsActive: &off})
		require.NoError(t, err)

		_, err = svc.BySlug(ctx, "demo")
		require.True(t, apperr.Is(err, apperr.NotFound))
	})

	t.Run("delete cascades through tenant data", func(t *testing.T) {
		require.NoError(t, products.Create(ctx, &models.Product{Site: site.ID, Name: "Frock"}))
		require.NoError(t, contents.Upsert(ctx, &models.SiteContent{Site: site.ID, Key: "hero"}))

		require.NoError(t, svc.Delete(ctx, site.ID))

		n, err := products.CountBySite(ctx, site.ID)
		require.NoError(t, err)
		require.Zero(t, n)

		blocks, err := contents.BySite(ctx, site.ID)
		require.NoError(t, err)
		require.Empty(t, blocks)

		_, err = svc.Get(ctx, site.ID)
		require.True(t, apperr.Is(err, apperr.NotFound))
	})
}
