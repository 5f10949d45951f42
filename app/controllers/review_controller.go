package controllers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// ReviewController serves review submission and moderation.
type ReviewController struct {
	reviews *services.ReviewService
	scopes  *services.ScopeResolver
}

func NewReviewController(reviews *services.ReviewService, scopes *services.ScopeResolver) *ReviewController {
	return &ReviewController{reviews: reviews, scopes: scopes}
}

// Submit records a review for a product. Admin submissions publish
// immediately, shopper ones await moderation.
func (rc *ReviewController) Submit(c *ctx.Context) {
	scope, ok := publicScope(c)
	if !ok {
		return
	}
	product, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.NotFound()
		return
	}
	var in services.ReviewInput
	if !c.BindJSON(&in) {
		return
	}

	asAdmin := false
	if p := auth.CurrentPrincipal(c); p != nil && p.IsAdmin() {
		asAdmin = true
	}

	out, serr := rc.reviews.Submit(c.Context(), scope, product, in, asAdmin)
	if serr != nil {
		c.Fail(serr)
		return
	}
	c.Created(out)
}

// ForProduct is the public listing: approved reviews only.
func (rc *ReviewController) ForProduct(c *ctx.Context) {
	scope, ok := publicScope(c)
	if !ok {
		return
	}
	product, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.NotFound()
		return
	}
	out, lerr := rc.reviews.ForProduct(c.Context(), scope, product, false)
	if lerr != nil {
		c.Fail(lerr)
		return
	}
	c.Success(out)
}

// AdminList is the moderation queue, filterable by ?status=.
func (rc *ReviewController) AdminList(c *ctx.Context) {
	scope, ok := adminScope(c, rc.scopes)
	if !ok {
		return
	}
	out, err := rc.reviews.List(c.Context(), scope, c.Query("status"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// Moderate sets a review's status.
func (rc *ReviewController) Moderate(c *ctx.Context) {
	scope, ok := adminScope(c, rc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in struct {
		Status string `json:"status" validate:"required,in=pending|approved|rejected"`
	}
	if !c.BindJSON(&in) {
		return
	}
	if err := rc.reviews.Moderate(c.Context(), scope, id, in.Status); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Review updated"})
}

// Delete removes a review.
func (rc *ReviewController) Delete(c *ctx.Context) {
	scope, ok := adminScope(c, rc.scopes)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := rc.reviews.Delete(c.Context(), scope, id); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Review deleted"})
}
