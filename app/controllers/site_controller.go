package controllers

import (
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// SiteController serves the public tenant lookup and the super-admin
// tenant registry.
type SiteController struct {
	sites *services.SiteService
}

func NewSiteController(sites *services.SiteService) *SiteController {
	return &SiteController{sites: sites}
}

// BySlug is the public lookup the storefront boots from.
func (sc *SiteController) BySlug(c *ctx.Context) {
	out, err := sc.sites.BySlug(c.Context(), c.Param("slug"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (sc *SiteController) List(c *ctx.Context) {
	out, err := sc.sites.List(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (sc *SiteController) Get(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := sc.sites.Get(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (sc *SiteController) Create(c *ctx.Context) {
	var in services.SiteInput
	if !c.BindJSON(&in) {
		return
	}
	out, err := sc.sites.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(out)
}

func (sc *SiteController) Update(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.SiteInput
	if !c.BindJSON(&in) {
		return
	}
	out, err := sc.sites.Update(c.Context(), id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (sc *SiteController) Delete(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := sc.sites.Delete(c.Context(), id); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Site deleted"})
}
