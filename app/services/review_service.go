package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// ReviewInput is the submit payload for a review.
type ReviewInput struct {
	User    string `json:"user" validate:"required,min=1,max=100"`
	Rating  int    `json:"rating" validate:"required,between=1|5"`
	Comment string `json:"comment" validate:"nullable,max=5000"`
}

// ReviewService moderates product reviews. Shopper submissions start
// pending; admin submissions publish immediately.
type ReviewService struct {
	reviews  repositories.ReviewRepository
	products repositories.ProductRepository
}

func NewReviewService(reviews repositories.ReviewRepository, products repositories.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// Submit records a review against an existing product in scope.
func (s *ReviewService) Submit(ctx context.Context, scope, product primitive.ObjectID, in ReviewInput, asAdmin bool) (*models.Review, error) {
	if _, err := s.products.FindByID(ctx, scope, product); err != nil {
		return nil, err
	}

	rv := &models.Review{
		Site:    scope,
		Product: product,
		User:    in.User,
		Rating:  in.Rating,
		Comment: in.Comment,
		Status:  models.ReviewPending,
		IsAdmin: asAdmin,
	}
	if asAdmin {
		rv.Status = models.ReviewApproved
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// ForProduct lists a product's reviews. The storefront only sees
// approved entries; admins see everything.
func (s *ReviewService) ForProduct(ctx context.Context, scope, product primitive.ObjectID, includeUnapproved bool) ([]models.Review, error) {
	return s.reviews.ByProduct(ctx, scope, product, !includeUnapproved)
}

// List returns the moderation queue, optionally filtered by status.
func (s *ReviewService) List(ctx context.Context, scope primitive.ObjectID, status string) ([]models.Review, error) {
	switch status {
	case "", models.ReviewPending, models.ReviewApproved, models.ReviewRejected:
	default:
		return nil, apperr.Newf(apperr.Validation, "unknown review status %q", status)
	}
	return s.reviews.BySite(ctx, scope, status)
}

// Moderate sets a review's status. A review of another tenant is
// refused with Forbidden, not hidden as missing.
func (s *ReviewService) Moderate(ctx context.Context, scope, id primitive.ObjectID, status string) error {
	switch status {
	case models.ReviewApproved, models.ReviewRejected, models.ReviewPending:
	default:
		return apperr.Newf(apperr.Validation, "unknown review status %q", status)
	}
	rv, err := s.reviews.Lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := assertScope(scope, rv.Site); err != nil {
		return err
	}
	return s.reviews.SetStatus(ctx, scope, id, status)
}

// Delete removes a review.
func (s *ReviewService) Delete(ctx context.Context, scope, id primitive.ObjectID) error {
	rv, err := s.reviews.Lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := assertScope(scope, rv.Site); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, scope, id)
}
