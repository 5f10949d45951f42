package controllers

import (
	"strconv"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// ProductController serves the product catalog: public reads, scoped
// admin CRUD.
type ProductController struct {
	products *services.ProductService
	scopes   *services.ScopeResolver
}

func NewProductController(products *services.ProductService, scopes *services.ScopeResolver) *ProductController {
	return &ProductController{products: products, scopes: scopes}
}

func listQuery(c *ctx.Context) services.ProductListQuery {
	q := services.ProductListQuery{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Search:   c.Query("search"),
	}
	if v := c.Query("featured"); v != "" {
		b := v == "true" || v == "1"
		q.Featured = &b
	}
	if v := c.Query("popular"); v != "" {
		b := v == "true" || v == "1"
		q.Popular = &b
	}
	if page, err := strconv.ParseInt(c.DefaultQuery("page", "0"), 10, 64); err == nil {
		q.Page = page
	}
	if limit, err := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64); err == nil {
		q.Limit = limit
	}
	return q
}

// List is the public storefront listing with filters and paging.
func (pc *ProductController) List(c *ctx.Context) {
	scope, ok := publicScope(c)
	if !ok {
		return
	}
	out, err := pc.products.List(c.Context(), scope, listQuery(c))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// Get is the public product detail; it bumps the view counter.
func (pc *ProductController) Get(c *ctx.Context) {
	scope, ok := publicScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := pc.products.Get(c.Context(), scope, id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (pc *ProductController) AdminList(c *ctx.Context) {
	scope, ok := adminScope(c, pc.scopes)
	if !ok {
		return
	}
	out, err := pc.products.List(c.Context(), scope, listQuery(c))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (pc *ProductController) Create(c *ctx.Context) {
	scope, ok := adminScope(c, pc.scopes)
	if !ok {
		return
	}
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	out, err := pc.products.Create(c.Context(), scope, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(out)
}

func (pc *ProductController) Update(c *ctx.Context) {
	scope, ok := adminScope(c, pc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	out, err := pc.products.Update(c.Context(), scope, id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (pc *ProductController) Delete(c *ctx.Context) {
	scope, ok := adminScope(c, pc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := pc.products.Delete(c.Context(), scope, id); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Product deleted"})
}
