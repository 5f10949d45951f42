// Package controllers is the HTTP layer: decode and validate input,
// resolve the caller's tenant scope, call a service, write the
// response. No business rules live here.
package controllers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// adminScope resolves the tenant for an authenticated admin request,
// honoring the optional ?site= override for super admins. Writes the
// error response itself on failure.
func adminScope(c *ctx.Context, scopes *services.ScopeResolver) (primitive.ObjectID, bool) {
	p := auth.CurrentPrincipal(c)
	scope, err := scopes.Resolve(c.Context(), p, c.Query("site"))
	if err != nil {
		c.Fail(err)
		return primitive.NilObjectID, false
	}
	return scope, true
}

// publicScope reads the tenant id every public storefront request must
// carry. Writes the error response itself on failure.
func publicScope(c *ctx.Context) (primitive.ObjectID, bool) {
	raw := c.Query("site")
	if raw == "" {
		c.ValidationError(map[string]string{"site": "site is required"})
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.ValidationError(map[string]string{"site": "invalid site id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathID parses the {id} route parameter. Writes the error response
// itself on failure.
func pathID(c *ctx.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.NotFound()
		return primitive.NilObjectID, false
	}
	return id, true
}
