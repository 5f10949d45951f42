package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	jwtauth "github.com/shashiranjanraj/vastra/pkg/auth"
)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := jwtauth.HashPassword(plain)
	require.NoError(t, err)
	return h
}

func TestAdminLogin(t *testing.T) {
	admins := newFakeAdminRepo()
	users := newFakeUserRepo()
	svc := services.NewAuthService(admins, users)
	ctx := context.Background()
	siteID := primitive.NewObjectID()

	admin := &models.AdminUser{
		Email:    "owner@demo.test",
		Password: mustHash(t, "secret-pass"),
		Role:     models.RoleAdmin,
		Site:     &siteID,
		IsActive: true,
		Permissions: models.AdminPermissions{
			CanManageProducts: true,
		},
	}
	require.NoError(t, admins.Create(ctx, admin))

	// The same email also exists as a shopper row; the admin store
	// must win the lookup.
	require.NoError(t, users.Create(ctx, &models.User{
		Email:    "owner@demo.test",
		Password: mustHash(t, "other-pass"),
		Role:     "user",
		IsActive: true,
	}))

	t.Run("admin store checked first", func(t *testing.T) {
		res, err := svc.AdminLogin(ctx, "owner@demo.test", "secret-pass")
		require.NoError(t, err)
		require.Equal(t, models.RoleAdmin, res.Role)
		require.Equal(t, siteID.Hex(), res.Site)
		require.NotEmpty(t, res.Token)
		require.True(t, res.Permissions.CanManageProducts)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, "owner@demo.test", "wrong")
		require.True(t, apperr.Is(err, apperr.Unauthenticated))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, "ghost@demo.test", "whatever")
		require.True(t, apperr.Is(err, apperr.Unauthenticated))
	})

	t.Run("deactivated account", func(t *testing.T) {
		inactive := &models.AdminUser{
			Email:    "gone@demo.test",
			Password: mustHash(t, "secret-pass"),
			Role:     models.RoleAdmin,
			Site:     &siteID,
			IsActive: false,
		}
		require.NoError(t, admins.Create(ctx, inactive))
		_, err := svc.AdminLogin(ctx, "gone@demo.test", "secret-pass")
		require.True(t, apperr.Is(err, apperr.Forbidden))
	})

	t.Run("legacy users row with role admin still logs in", func(t *testing.T) {
		require.NoError(t, users.Create(ctx, &models.User{
			Name:     "Legacy",
			Email:    "legacy@demo.test",
			Password: mustHash(t, "old-pass"),
			Role:     models.RoleAdmin,
			IsActive: true,
		}))
		res, err := svc.AdminLogin(ctx, "legacy@demo.test", "old-pass")
		require.NoError(t, err)
		require.Equal(t, models.RoleAdmin, res.Role)
	})

	t.Run("plain shopper cannot use the admin login", func(t *testing.T) {
		require.NoError(t, users.Create(ctx, &models.User{
			Email:    "shopper@demo.test",
			Password: mustHash(t, "shop-pass"),
			Role:     "user",
			IsActive: true,
		}))
		_, err := svc.AdminLogin(ctx, "shopper@demo.test", "shop-pass")
		require.True(t, apperr.Is(err, apperr.Unauthenticated))
	})
}

func TestResolvePrincipal(t *testing.T) {
	admins := newFakeAdminRepo()
	users := newFakeUserRepo()
	svc := services.NewAuthService(admins, users)
	ctx := context.Background()
	siteID := primitive.NewObjectID()

	admin := &models.AdminUser{
		Email:    "owner@demo.test",
		Password: mustHash(t, "x"),
		Role:     models.RoleAdmin,
		Site:     &siteID,
		IsActive: true,
	}
	require.NoError(t, admins.Create(ctx, admin))

	legacy := &models.User{Email: "legacy@demo.test", Password: mustHash(t, "x"), Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, users.Create(ctx, legacy))

	shopper := &models.User{Email: "shopper@demo.test", Password: mustHash(t, "x"), Role: "user", IsActive: true}
	require.NoError(t, users.Create(ctx, shopper))

	t.Run("dedicated admin", func(t *testing.T) {
		p, err := svc.ResolvePrincipal(ctx, &jwtauth.Claims{UserID: admin.ID.Hex(), Role: models.RoleAdmin})
		require.NoError(t, err)
		require.Equal(t, auth.KindAdmin, p.Kind)
		require.Equal(t, siteID, *p.Site)
	})

	t.Run("resolving refreshes last_login", func(t *testing.T) {
		_, err := svc.ResolvePrincipal(ctx, &jwtauth.Claims{UserID: admin.ID.Hex(), Role: models.RoleAdmin})
		require.NoError(t, err)

		// The touch runs in the background; wait for it to land.
		deadline := time.Now().Add(2 * time.Second)
		for {
			got, err := admins.FindByID(ctx, admin.ID)
			require.NoError(t, err)
			if got.LastLogin != nil {
				break
			}
			if time.Now().After(deadline) {
				t.Fatal("last_login was never updated")
			}
			time.Sleep(10 * time.Millisecond)
		}
	})

	t.Run("legacy admin", func(t *testing.T) {
		p, err := svc.ResolvePrincipal(ctx, &jwtauth.Claims{UserID: legacy.ID.Hex(), Role: models.RoleAdmin})
		require.NoError(t, err)
		require.Equal(t, auth.KindLegacyAdmin, p.Kind)
		require.True(t, p.Can(models.PermManageOrders), "legacy admins pass every permission check")
	})

	t.Run("shopper", func(t *testing.T) {
		p, err := svc.ResolvePrincipal(ctx, &jwtauth.Claims{UserID: shopper.ID.Hex(), Role: "user"})
		require.NoError(t, err)
		require.Equal(t, auth.KindShopper, p.Kind)
		require.False(t, p.IsAdmin())
	})

	t.Run("deleted account invalidates the token", func(t *testing.T) {
		_, err := svc.ResolvePrincipal(ctx, &jwtauth.Claims{UserID: primitive.NewObjectID().Hex()})
		require.True(t, apperr.Is(err, apperr.Unauthenticated))
	})

	t.Run("deactivated admin invalidates the token", func(t *testing.T) {
		off := &models.AdminUser{Email: "off@demo.test", Password: mustHash(t, "x"), Role: models.RoleAdmin, IsActive: false}
		require.NoError(t, admins.Create(ctx, off))
		_, err := svc.ResolvePrincipal(ctx, &jwtauth.Claims{UserID: off.ID.Hex()})
		require.True(t, apperr.Is(err, apperr.Forbidden))
	})
}

func TestChangeCredentials(t *testing.T) {
	admins := newFakeAdminRepo()
	users := newFakeUserRepo()
	svc := services.NewAuthService(admins, users)
	ctx := context.Background()

	admin := &models.AdminUser{
		Email:    "owner@demo.test",
		Password: mustHash(t, "old-pass"),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, admins.Create(ctx, admin))
	p := &auth.Principal{Kind: auth.KindAdmin, ID: admin.ID, Role: models.RoleAdmin}

	err := svc.ChangeCredentials(ctx, p, "wrong", "", "new-pass")
	require.True(t, apperr.Is(err, apperr.Unauthenticated))

	require.NoError(t, svc.ChangeCredentials(ctx, p, "old-pass", "new@demo.test", "new-pass"))

	_, err = svc.AdminLogin(ctx, "new@demo.test", "new-pass")
	require.NoError(t, err)

	legacy := &auth.Principal{Kind: auth.KindLegacyAdmin, ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	err = svc.ChangeCredentials(ctx, legacy, "old-pass", "", "x")
	require.True(t, apperr.Is(err, apperr.Forbidden), "legacy admins have no admin store row to update")
}

func TestUpdateProfile(t *testing.T) {
	admins := newFakeAdminRepo()
	users := newFakeUserRepo()
	svc := services.NewAuthService(admins, users)
	ctx := context.Background()

	t.Run("shopper updates contact details", func(t *testing.T) {
		shopper := &models.User{
			Name:     "Asha",
			Email:    "asha@demo.test",
			Password: mustHash(t, "x"),
			Role:     "user",
			IsActive: true,
		}
		require.NoError(t, users.Create(ctx, shopper))
		p := &auth.Principal{Kind: auth.KindShopper, ID: shopper.ID, Role: "user"}

		require.NoError(t, svc.UpdateProfile(ctx, p, services.ProfileInput{
			Name:    "Asha Verma",
			Phone:   "+91-98-0000",
			Address: "12 MG Road",
			City:    "Pune",
		}))

		got, err := users.FindByID(ctx, shopper.ID)
		require.NoError(t, err)
		require.Equal(t, "Asha Verma", got.Name)
		require.Equal(t, "Pune", got.City)
		require.Equal(t, "asha@demo.test", got.Email, "email is untouched by profile updates")
	})

	t.Run("admin updates display name only", func(t *testing.T) {
		admin := &models.AdminUser{
			Email:    "owner@demo.test",
			Password: mustHash(t, "x"),
			Role:     models.RoleAdmin,
			IsActive: true,
		}
		require.NoError(t, admins.Create(ctx, admin))
		p := &auth.Principal{Kind: auth.KindAdmin, ID: admin.ID, Role: models.RoleAdmin}

		require.NoError(t, svc.UpdateProfile(ctx, p, services.ProfileInput{Name: "Store Owner", Phone: "ignored"}))

		got, err := admins.FindByID(ctx, admin.ID)
		require.NoError(t, err)
		require.Equal(t, "Store Owner", got.Name)
	})

	t.Run("anonymous caller rejected", func(t *testing.T) {
		err := svc.UpdateProfile(ctx, nil, services.ProfileInput{Name: "Nobody"})
		require.True(t, apperr.Is(err, apperr.Unauthenticated))
	})
}
