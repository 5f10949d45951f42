package controllers

import (
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// CatalogController serves categories and brands: public reads for the
// storefront and scoped CRUD for admins.
type CatalogController struct {
	catalog *services.CatalogService
	scopes  *services.ScopeResolver
}

func NewCatalogController(catalog *services.CatalogService, scopes *services.ScopeResolver) *CatalogController {
	return &CatalogController{catalog: catalog, scopes: scopes}
}

// ListCategories is the public storefront listing.
func (cc *CatalogController) ListCategories(c *ctx.Context) {
	scope, ok := publicScope(c)
	if !ok {
		return
	}
	out, err := cc.catalog.Categories(c.Context(), scope)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// AdminListCategories lists the caller's tenant categories.
func (cc *CatalogController) AdminListCategories(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	out, err := cc.catalog.Categories(c.Context(), scope)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (cc *CatalogController) CreateCategory(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}
	out, err := cc.catalog.CreateCategory(c.Context(), scope, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(out)
}

func (cc *CatalogController) UpdateCategory(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}
	out, err := cc.catalog.UpdateCategory(c.Context(), scope, id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (cc *CatalogController) DeleteCategory(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := cc.catalog.DeleteCategory(c.Context(), scope, id); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Category deleted"})
}

// ListBrands is the public storefront listing.
func (cc *CatalogController) ListBrands(c *ctx.Context) {
	scope, ok := publicScope(c)
	if !ok {
		return
	}
	out, err := cc.catalog.Brands(c.Context(), scope)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (cc *CatalogController) AdminListBrands(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	out, err := cc.catalog.Brands(c.Context(), scope)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (cc *CatalogController) CreateBrand(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	var in services.BrandInput
	if !c.BindJSON(&in) {
		return
	}
	out, err := cc.catalog.CreateBrand(c.Context(), scope, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(out)
}

func (cc *CatalogController) UpdateBrand(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.BrandInput
	if !c.BindJSON(&in) {
		return
	}
	out, err := cc.catalog.UpdateBrand(c.Context(), scope, id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (cc *CatalogController) DeleteBrand(c *ctx.Context) {
	scope, ok := adminScope(c, cc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := cc.catalog.DeleteBrand(c.Context(), scope, id); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Brand deleted"})
}
