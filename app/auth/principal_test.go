package auth_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/models"
)

func TestPrincipalCan(t *testing.T) {
	siteID := primitive.NewObjectID()
	admin := &auth.Principal{
		Kind: auth.KindAdmin,
		Role: models.RoleAdmin,
		Site: &siteID,
		Permissions: models.AdminPermissions{
			CanManageProducts: true,
			CanViewStats:      true,
		},
	}
	legacy := &auth.Principal{Kind: auth.KindLegacyAdmin, Role: models.RoleAdmin}
	super := &auth.Principal{Kind: auth.KindAdmin, Role: models.RoleSuperAdmin}
	shopper := &auth.Principal{Kind: auth.KindShopper, Role: "user"}

	if !admin.Can(models.PermManageProducts) || !admin.Can(models.PermViewStats) {
		t.Error("admin should hold its granted flags")
	}
	if admin.Can(models.PermManageOrders) {
		t.Error("admin must not hold an ungranted flag")
	}
	if !legacy.Can(models.PermManageOrders) || !legacy.Can(models.PermManageAdmins) {
		t.Error("legacy admins pass every permission check")
	}
	if !super.Can(models.PermManageAdmins) {
		t.Error("super admins pass every permission check")
	}
	if shopper.Can(models.PermViewStats) || shopper.IsAdmin() {
		t.Error("shoppers hold no admin permissions")
	}
	if !admin.IsAdmin() || !legacy.IsAdmin() || !super.IsAdmin() {
		t.Error("every admin kind may enter the back office")
	}
}
