package controllers

import (
	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// AdminController manages back-office accounts.
type AdminController struct {
	admins *services.AdminService
}

func NewAdminController(admins *services.AdminService) *AdminController {
	return &AdminController{admins: admins}
}

func (ac *AdminController) List(c *ctx.Context) {
	out, err := ac.admins.List(c.Context(), auth.CurrentPrincipal(c))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (ac *AdminController) Create(c *ctx.Context) {
	var in services.AdminInput
	if !c.BindJSON(&in) {
		return
	}
	out, err := ac.admins.Create(c.Context(), auth.CurrentPrincipal(c), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(out)
}

func (ac *AdminController) Update(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.AdminInput
	if !c.BindJSON(&in) {
		return
	}
	out, err := ac.admins.Update(c.Context(), auth.CurrentPrincipal(c), id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (ac *AdminController) Delete(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ac.admins.Delete(c.Context(), auth.CurrentPrincipal(c), id); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Admin deleted"})
}
