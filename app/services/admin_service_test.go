package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

func TestAdminManagement(t *testing.T) {
	admins := newFakeAdminRepo()
	svc := services.NewAdminService(admins)
	ctx := context.Background()

	siteA := primitive.NewObjectID()
	siteB := primitive.NewObjectID()
	super := &auth.Principal{Kind: auth.KindAdmin, ID: primitive.NewObjectID(), Role: models.RoleSuperAdmin}
	siteAdmin := &auth.Principal{
		Kind: auth.KindAdmin,
		ID:   primitive.NewObjectID(),
		Role: models.RoleAdmin,
		Site: &siteA,
		Permissions: models.AdminPermissions{
			CanManageAdmins: true,
		},
	}

	t.Run("super creates a pinned site admin", func(t *testing.T) {
		created, err := svc.Create(ctx, super, services.AdminInput{
			Email:    "a1@demo.test",
			Password: "password123",
			Role:     models.RoleAdmin,
			Site:     siteA.Hex(),
		})
		require.NoError(t, err)
		require.Equal(t, siteA, *created.Site)
		require.True(t, created.IsActive)
	})

	t.Run("site admin without a site is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, super, services.AdminInput{
			Email:    "nowhere@demo.test",
			Password: "password123",
			Role:     models.RoleAdmin,
		})
		require.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("super admins carry no site pin", func(t *testing.T) {
		created, err := svc.Create(ctx, super, services.AdminInput{
			Email:    "root@demo.test",
			Password: "password123",
			Role:     models.RoleSuperAdmin,
			Site:     siteA.Hex(), // ignored for super admins
		})
		require.NoError(t, err)
		require.Nil(t, created.Site)
	})

	t.Run("site admin creates only within their own site", func(t *testing.T) {
		created, err := svc.Create(ctx, siteAdmin, services.AdminInput{
			Email:    "a2@demo.test",
			Password: "password123",
			Role:     models.RoleAdmin,
		})
		require.NoError(t, err)
		require.Equal(t, siteA, *created.Site)

		_, err = svc.Create(ctx, siteAdmin, services.AdminInput{
			Email:    "a3@demo.test",
			Password: "password123",
			Role:     models.RoleAdmin,
			Site:     siteB.Hex(),
		})
		require.True(t, apperr.Is(err, apperr.Forbidden))
	})

	t.Run("only super mints super", func(t *testing.T) {
		_, err := svc.Create(ctx, siteAdmin, services.AdminInput{
			Email:    "wannabe@demo.test",
			Password: "password123",
			Role:     models.RoleSuperAdmin,
		})
		require.True(t, apperr.Is(err, apperr.Forbidden))
	})

	t.Run("site admin cannot touch another site's accounts", func(t *testing.T) {
		other, err := svc.Create(ctx, super, services.AdminInput{
			Email:    "b1@demo.test",
			Password: "password123",
			Role:     models.RoleAdmin,
			Site:     siteB.Hex(),
		})
		require.NoError(t, err)

		_, err = svc.Update(ctx, siteAdmin, other.ID, services.AdminInput{
			Email: "b1@demo.test",
			Role:  models.RoleAdmin,
		})
		require.True(t, apperr.Is(err, apperr.Forbidden))

		err = svc.Delete(ctx, siteAdmin, other.ID)
		require.True(t, apperr.Is(err, apperr.Forbidden))
	})

	t.Run("self-delete refused", func(t *testing.T) {
		err := svc.Delete(ctx, super, super.ID)
		require.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("list is scoped", func(t *testing.T) {
		all, err := svc.List(ctx, super)
		require.NoError(t, err)

		mine, err := svc.List(ctx, siteAdmin)
		require.NoError(t, err)
		require.Less(t, len(mine), len(all))
		for _, a := range mine {
			require.Equal(t, siteA, *a.Site)
		}
	})
}
