package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/models"
)

func serveWith(mw func(http.Handler) http.Handler, p *auth.Principal) *httptest.ResponseRecorder {
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	if p != nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequirePermission(t *testing.T) {
	gate := auth.RequirePermission(models.PermManageProducts)

	unflagged := &auth.Principal{Kind: auth.KindAdmin, Role: models.RoleAdmin}
	if rec := serveWith(gate, unflagged); rec.Code != http.StatusForbidden {
		t.Errorf("admin without the flag: got %d, want 403", rec.Code)
	}

	flagged := &auth.Principal{
		Kind:        auth.KindAdmin,
		Role:        models.RoleAdmin,
		Permissions: models.AdminPermissions{CanManageProducts: true},
	}
	if rec := serveWith(gate, flagged); rec.Code != http.StatusOK {
		t.Errorf("admin with the flag: got %d, want 200", rec.Code)
	}

	super := &auth.Principal{Kind: auth.KindAdmin, Role: models.RoleSuperAdmin}
	if rec := serveWith(gate, super); rec.Code != http.StatusOK {
		t.Errorf("super admin: got %d, want 200", rec.Code)
	}

	if rec := serveWith(gate, nil); rec.Code != http.StatusForbidden {
		t.Errorf("no principal: got %d, want 403", rec.Code)
	}
}

func TestRequireAdminAndSuperAdmin(t *testing.T) {
	shopper := &auth.Principal{Kind: auth.KindShopper, Role: "user"}
	if rec := serveWith(auth.RequireAdmin, shopper); rec.Code != http.StatusForbidden {
		t.Errorf("shopper past RequireAdmin: got %d, want 403", rec.Code)
	}

	admin := &auth.Principal{Kind: auth.KindAdmin, Role: models.RoleAdmin}
	if rec := serveWith(auth.RequireAdmin, admin); rec.Code != http.StatusOK {
		t.Errorf("admin blocked by RequireAdmin: got %d, want 200", rec.Code)
	}
	if rec := serveWith(auth.RequireSuperAdmin, admin); rec.Code != http.StatusForbidden {
		t.Errorf("site admin past RequireSuperAdmin: got %d, want 403", rec.Code)
	}
}
