package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// SiteInput is the create/update payload for a tenant.
type SiteInput struct {
	Slug     string              `json:"slug" validate:"required,alpha_dash,min=2,max=50"`
	Name     string              `json:"name" validate:"required,min=1,max=100"`
	IsActive *bool               `json:"isActive"`
	Theme    *models.SiteTheme   `json:"theme"`
	Settings *models.SiteSettings `json:"settings"`
}

// SiteService is the tenant registry, reachable only by super admins.
// Deleting a site cascades through every tenant-scoped collection so
// no orphaned documents survive the tenant.
type SiteService struct {
	sites      repositories.SiteRepository
	categories repositories.CategoryRepository
	brands     repositories.BrandRepository
	products   repositories.ProductRepository
	orders     repositories.OrderRepository
	contents   repositories.ContentRepository
	reviews    repositories.ReviewRepository
}

func NewSiteService(
	sites repositories.SiteRepository,
	categories repositories.CategoryRepository,
	brands repositories.BrandRepository,
	products repositories.ProductRepository,
	orders repositories.OrderRepository,
	contents repositories.ContentRepository,
	reviews repositories.ReviewRepository,
) *SiteService {
	return &SiteService{
		sites:      sites,
		categories: categories,
		brands:     brands,
		products:   products,
		orders:     orders,
		contents:   contents,
		reviews:    reviews,
	}
}

func (s *SiteService) List(ctx context.Context) ([]models.Site, error) {
	return s.sites.All(ctx)
}

func (s *SiteService) Get(ctx context.Context, id primitive.ObjectID) (*models.Site, error) {
	return s.sites.FindByID(ctx, id)
}

func siteCacheKey(slug string) string { return "site:slug:" + slug }

// BySlug is the public tenant lookup the storefront boots from.
// Inactive sites are hidden from it. Every storefront page load hits
// this, so the result is cached for a few minutes.
func (s *SiteService) BySlug(ctx context.Context, slug string) (*models.Site, error) {
	var cached models.Site
	if cache.Get(ctx, siteCacheKey(slug), &cached) {
		return &cached, nil
	}

	site, err := s.sites.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !site.IsActive {
		return nil, apperr.New(apperr.NotFound, "site not found")
	}
	if err := cache.Set(ctx, siteCacheKey(slug), site, 5*time.Minute); err != nil {
		logger.Debug("site: cache write failed", "slug", slug, "error", err)
	}
	return site, nil
}

func (s *SiteService) Create(ctx context.Context, in SiteInput) (*models.Site, error) {
	site := &models.Site{
		Slug:     in.Slug,
		Name:     in.Name,
		IsActive: true,
	}
	if in.IsActive != nil {
		site.IsActive = *in.IsActive
	}
	if in.Theme != nil {
		site.Theme = *in.Theme
	}
	if in.Settings != nil {
		site.Settings = *in.Settings
	}
	if err := s.sites.Create(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// Update modifies a tenant. The slug is immutable once assigned; the
// storefront URL space depends on it.
func (s *SiteService) Update(ctx context.Context, id primitive.ObjectID, in SiteInput) (*models.Site, error) {
	site, err := s.sites.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Slug != "" && in.Slug != site.Slug {
		return nil, apperr.New(apperr.Validation, "Site slug cannot be changed")
	}
	site.Name = in.Name
	if in.IsActive != nil {
		site.IsActive = *in.IsActive
	}
	if in.Theme != nil {
		site.Theme = *in.Theme
	}
	if in.Settings != nil {
		site.Settings = *in.Settings
	}
	if err := s.sites.Update(ctx, site); err != nil {
		return nil, err
	}
	if err := cache.Forget(ctx, siteCacheKey(site.Slug)); err != nil {
		logger.Debug("site: cache invalidation failed", "slug", site.Slug, "error", err)
	}
	return site, nil
}

// Delete removes a tenant and everything it owns. The site document
// goes first so the tenant disappears immediately; the per-collection
// sweeps that follow are logged but do not abort one another.
func (s *SiteService) Delete(ctx context.Context, id primitive.ObjectID) error {
	site, err := s.sites.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sites.Delete(ctx, id); err != nil {
		return err
	}
	if err := cache.Forget(ctx, siteCacheKey(site.Slug)); err != nil {
		logger.Debug("site: cache invalidation failed", "slug", site.Slug, "error", err)
	}

	sweeps := []struct {
		name string
		fn   func(context.Context, primitive.ObjectID) error
	}{
		{"products", s.products.DeleteBySite},
		{"categories", s.categories.DeleteBySite},
		{"brands", s.brands.DeleteBySite},
		{"orders", s.orders.DeleteBySite},
		{"contents", s.contents.DeleteBySite},
		{"reviews", s.reviews.DeleteBySite},
	}
	for _, sweep := range sweeps {
		if err := sweep.fn(ctx, id); err != nil {
			logger.Error("site: cascade delete failed", "site", id.Hex(), "collection", sweep.name, "error", err)
		}
	}
	return nil
}
