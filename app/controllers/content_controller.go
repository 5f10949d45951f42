package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// ContentController serves the per-tenant content blocks.
type ContentController struct {
	contents *services.ContentService
	scopes   *services.ScopeResolver
}

func NewContentController(contents *services.ContentService, scopes *services.ScopeResolver) *ContentController {
	return &ContentController{contents: contents, scopes: scopes}
}

// Get is the public read. Missing blocks are created from defaults.
func (cc *ContentController) Get(c *ctx.Context) {
	scope, ok := publicScope(c)
	if !ok {
		return
	}
	out, err := cc.contents.Get(c.Context(), scope, c.Param("key"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// AdminGet reads a block in the caller's scope.
func (cc *ContentController) AdminGet(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	out, err := cc.contents.Get(c.Context(), scope, c.Param("key"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// AdminList returns every block for the caller's scope.
func (cc *ContentController) AdminList(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	out, err := cc.contents.All(c.Context(), scope)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// AdminUpdate replaces a block's data wholesale.
func (cc *ContentController) AdminUpdate(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	var in struct {
		Data bson.M `json:"data"`
	}
	if !c.BindJSON(&in) {
		return
	}
	out, err := cc.contents.Update(c.Context(), scope, c.Param("key"), in.Data)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}
