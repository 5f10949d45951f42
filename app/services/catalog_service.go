package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"nullable,max=2000"`
	Image       string `json:"image"`
}

// BrandInput is the create/update payload for a brand.
type BrandInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"nullable,max=2000"`
	Image       string `json:"image"`
}

// CatalogService manages the tenant-scoped category and brand lists.
// Every method takes a resolved scope; touching an entity whose tenant
// does not match the scope fails with Forbidden rather than NotFound,
// so an out-of-bounds admin learns the precise reason.
type CatalogService struct {
	categories repositories.CategoryRepository
	brands     repositories.BrandRepository
	products   repositories.ProductRepository
}

func NewCatalogService(
	categories repositories.CategoryRepository,
	brands repositories.BrandRepository,
	products repositories.ProductRepository,
) *CatalogService {
	return &CatalogService{categories: categories, brands: brands, products: products}
}

func (s *CatalogService) Categories(ctx context.Context, scope primitive.ObjectID) ([]models.Category, error) {
	return s.categories.BySite(ctx, scope)
}

func (s *CatalogService) Category(ctx context.Context, scope, id primitive.ObjectID) (*models.Category, error) {
	c, err := s.categories.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertScope(scope, c.Site); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, scope primitive.ObjectID, in CategoryInput) (*models.Category, error) {
	c := &models.Category{
		Site:        scope,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, scope, id primitive.ObjectID, in CategoryInput) (*models.Category, error) {
	c, err := s.categories.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertScope(scope, c.Site); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Description = in.Description
	if in.Image != "" {
		c.Image = in.Image
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses to remove a category that still has products,
// so the catalog never holds dangling references.
func (s *CatalogService) DeleteCategory(ctx context.Context, scope, id primitive.ObjectID) error {
	c, err := s.categories.Lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := assertScope(scope, c.Site); err != nil {
		return err
	}
	prods, err := s.products.BySite(ctx, scope, repositories.ProductFilter{Category: &id, Limit: 1})
	if err != nil {
		return err
	}
	if len(prods) > 0 {
		return apperr.New(apperr.Conflict, "Category still has products")
	}
	return s.categories.Delete(ctx, scope, id)
}

func (s *CatalogService) Brands(ctx context.Context, scope primitive.ObjectID) ([]models.Brand, error) {
	return s.brands.BySite(ctx, scope)
}

func (s *CatalogService) Brand(ctx context.Context, scope, id primitive.ObjectID) (*models.Brand, error) {
	b, err := s.brands.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertScope(scope, b.Site); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) CreateBrand(ctx context.Context, scope primitive.ObjectID, in BrandInput) (*models.Brand, error) {
	b := &models.Brand{
		Site:        scope,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	}
	if err := s.brands.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) UpdateBrand(ctx context.Context, scope, id primitive.ObjectID, in BrandInput) (*models.Brand, error) {
	b, err := s.brands.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertScope(scope, b.Site); err != nil {
		return nil, err
	}
	b.Name = in.Name
	b.Description = in.Description
	if in.Image != "" {
		b.Image = in.Image
	}
	if err := s.brands.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, scope, id primitive.ObjectID) error {
	b, err := s.brands.Lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := assertScope(scope, b.Site); err != nil {
		return err
	}
	prods, err := s.products.BySite(ctx, scope, repositories.ProductFilter{Brand: &id, Limit: 1})
	if err != nil {
		return err
	}
	if len(prods) > 0 {
		return apperr.New(apperr.Conflict, "Brand still has products")
	}
	return s.brands.Delete(ctx, scope, id)
}
