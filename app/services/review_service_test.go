package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

func TestReviewModeration(t *testing.T) {
	reviews := newFakeReviewRepo()
	products := newFakeProductRepo()
	svc := services.NewReviewService(reviews, products)
	ctx := context.Background()
	site := primitive.NewObjectID()

	product := &models.Product{Site: site, Name: "Frock", Price: 499}
	require.NoError(t, products.Create(ctx, product))

	t.Run("unknown product rejected", func(t *testing.T) {
		_, err := svc.Submit(ctx, site, primitive.NewObjectID(), services.ReviewInput{User: "Asha", Rating: 5}, false)
		require.True(t, apperr.Is(err, apperr.NotFound))
	})

	shopperReview, err := svc.Submit(ctx, site, product.ID, services.ReviewInput{User: "Asha", Rating: 4, Comment: "Lovely"}, false)
	require.NoError(t, err)
	require.Equal(t, models.ReviewPending, shopperReview.Status)

	adminReview, err := svc.Submit(ctx, site, product.ID, services.ReviewInput{User: "Store", Rating: 5}, true)
	require.NoError(t, err)
	require.Equal(t, models.ReviewApproved, adminReview.Status)
	require.True(t, adminReview.IsAdmin)

	t.Run("storefront sees approved only", func(t *testing.T) {
		visible, err := svc.ForProduct(ctx, site, product.ID, false)
		require.NoError(t, err)
		require.Len(t, visible, 1)
		require.Equal(t, adminReview.ID, visible[0].ID)

		all, err := svc.ForProduct(ctx, site, product.ID, true)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("moderation promotes pending entries", func(t *testing.T) {
		require.NoError(t, svc.Moderate(ctx, site, shopperReview.ID, models.ReviewApproved))
		visible, err := svc.ForProduct(ctx, site, product.ID, false)
		require.NoError(t, err)
		require.Len(t, visible, 2)
	})

	t.Run("bogus status rejected", func(t *testing.T) {
		err := svc.Moderate(ctx, site, shopperReview.ID, "maybe")
		require.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("cross-tenant moderation forbidden", func(t *testing.T) {
		otherSite := primitive.NewObjectID()
		err := svc.Moderate(ctx, otherSite, shopperReview.ID, models.ReviewRejected)
		require.True(t, apperr.Is(err, apperr.Forbidden))

		err = svc.Delete(ctx, otherSite, shopperReview.ID)
		require.True(t, apperr.Is(err, apperr.Forbidden))

		// Still approved and still present for its own tenant.
		visible, err := svc.ForProduct(ctx, site, product.ID, false)
		require.NoError(t, err)
		require.Len(t, visible, 2)
	})
}
