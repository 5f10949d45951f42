// Package auth carries the request principal: who is calling, with
// which role, pinned to which tenant. Controllers read the principal
// from the request context; the middleware in this package puts it
// there after validating the bearer token.
package auth

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// PrincipalKind distinguishes the identity store a principal came from.
type PrincipalKind int

const (
	// KindShopper is a storefront customer from the users collection.
	KindShopper PrincipalKind = iota
	// KindAdmin is a back-office account from the admin_users
	// collection, gated by its permission flags.
	KindAdmin
	// KindLegacyAdmin is a users-collection row with role=admin,
	// kept working for tokens issued before the dedicated admin store.
	// It carries no permission flags and passes every permission check.
	KindLegacyAdmin
)

// Principal is the authenticated caller.
type Principal struct {
	Kind PrincipalKind
	ID   primitive.ObjectID
	Role string
	// Site is the pinned tenant. Nil for super admins and for
	// principals that predate multi-site support.
	Site        *primitive.ObjectID
	Email       string
	Name        string
	Permissions models.AdminPermissions
}

// IsSuperAdmin reports whether the principal sees every tenant.
func (p *Principal) IsSuperAdmin() bool { return p.Role == models.RoleSuperAdmin }

// IsAdmin reports whether the principal may enter the back office.
func (p *Principal) IsAdmin() bool {
	return p.Kind == KindAdmin || p.Kind == KindLegacyAdmin || p.IsSuperAdmin()
}

// Can reports whether the principal holds the named permission.
// Super admins and legacy admins pass every check; flags only gate
// dedicated admin accounts.
func (p *Principal) Can(perm string) bool {
	if p.IsSuperAdmin() || p.Kind == KindLegacyAdmin {
		return p.IsAdmin()
	}
	if p.Kind != KindAdmin {
		return false
	}
	return p.Permissions.Has(perm)
}

// CurrentPrincipal returns the principal set by the Authenticate
// middleware, or nil on unauthenticated requests.
func CurrentPrincipal(c *ctx.Context) *Principal {
	return PrincipalFrom(c.R.Context())
}
