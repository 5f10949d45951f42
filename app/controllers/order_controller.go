package controllers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// OrderController serves checkout and the admin order workflow.
type OrderController struct {
	orders *services.OrderService
	scopes *services.ScopeResolver
}

func NewOrderController(orders *services.OrderService, scopes *services.ScopeResolver) *OrderController {
	return &OrderController{orders: orders, scopes: scopes}
}

// Create places an order. Guest checkout is allowed: with no valid
// bearer token the order simply has no user reference.
func (oc *OrderController) Create(c *ctx.Context) {
	scope, ok := publicScope(c)
	if !ok {
		return
	}
	var in services.OrderInput
	if !c.BindJSON(&in) {
		return
	}

	var user *primitive.ObjectID
	if p := auth.CurrentPrincipal(c); p != nil {
		user = &p.ID
	}

	out, err := oc.orders.Create(c.Context(), scope, user, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(out)
}

// Mine lists the calling shopper's orders.
func (oc *OrderController) Mine(c *ctx.Context) {
	scope, ok := publicScope(c)
	if !ok {
		return
	}
	p := auth.CurrentPrincipal(c)
	if p == nil {
		c.Unauthorized()
		return
	}
	out, err := oc.orders.ListMine(c.Context(), scope, p.ID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// AdminList lists the tenant's orders for the back office.
func (oc *OrderController) AdminList(c *ctx.Context) {
	scope, ok := adminScope(c, oc.scopes)
	if !ok {
		return
	}
	out, err := oc.orders.List(c.Context(), scope)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (oc *OrderController) AdminGet(c *ctx.Context) {
	scope, ok := adminScope(c, oc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := oc.orders.Get(c.Context(), scope, id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (oc *OrderController) MarkPaid(c *ctx.Context) {
	scope, ok := adminScope(c, oc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := oc.orders.MarkPaid(c.Context(), scope, id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

func (oc *OrderController) MarkDelivered(c *ctx.Context) {
	scope, ok := adminScope(c, oc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := oc.orders.MarkDelivered(c.Context(), scope, id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// EditItems replaces an order's line items with stock reconciliation.
func (oc *OrderController) EditItems(c *ctx.Context) {
	scope, ok := adminScope(c, oc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in struct {
		Items []services.OrderItemInput `json:"orderItems"`
	}
	if !c.BindJSON(&in) {
		return
	}
	out, err := oc.orders.EditItems(c.Context(), scope, id, in.Items)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// Delete cancels an order. A shopper may only delete their own;
// admins may delete any order in scope.
func (oc *OrderController) Delete(c *ctx.Context) {
	p := auth.CurrentPrincipal(c)
	if p == nil {
		c.Unauthorized()
		return
	}

	var scope primitive.ObjectID
	var ok bool
	if p.IsAdmin() {
		scope, ok = adminScope(c, oc.scopes)
	} else {
		scope, ok = publicScope(c)
	}
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if !p.IsAdmin() {
		order, err := oc.orders.Get(c.Context(), scope, id)
		if err != nil {
			c.Fail(err)
			return
		}
		if order.User == nil || *order.User != p.ID {
			c.Forbidden("You can only delete your own orders")
			return
		}
	}

	if err := oc.orders.Delete(c.Context(), scope, id); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Order deleted"})
}
