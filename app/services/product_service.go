package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	Name          string             `json:"name" validate:"required,min=1,max=200"`
	Description   string             `json:"description" validate:"nullable,max=10000"`
	Category      string             `json:"category" validate:"nullable"`
	Brand         string             `json:"brand" validate:"nullable"`
	Images        []string           `json:"images"`
	Video         string             `json:"video" validate:"nullable,max=500"`
	Price         float64            `json:"price" validate:"gte=0"`
	OriginalPrice float64            `json:"originalPrice" validate:"nullable,gte=0"`
	AgePrices     []models.AgePrice  `json:"agePrices"`
	SizePrices    []models.SizePrice `json:"sizePrices"`
	CountInStock  int64              `json:"countInStock" validate:"gte=0"`
	IsFeatured    bool               `json:"isFeatured"`
	IsPopular     bool               `json:"isPopular"`
	IsActive      *bool              `json:"isActive"`
}

// ProductListQuery narrows a storefront or admin listing.
type ProductListQuery struct {
	Category string
	Brand    string
	Featured *bool
	Popular  *bool
	Search   string
	Page     int64
	Limit    int64
}

// ProductService manages the tenant-scoped product catalog.
type ProductService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	brands     repositories.BrandRepository
}

func NewProductService(
	products repositories.ProductRepository,
	categories repositories.CategoryRepository,
	brands repositories.BrandRepository,
) *ProductService {
	return &ProductService{products: products, categories: categories, brands: brands}
}

func (s *ProductService) List(ctx context.Context, scope primitive.ObjectID, q ProductListQuery) ([]models.Product, error) {
	f := repositories.ProductFilter{
		Featured: q.Featured,
		Popular:  q.Popular,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if q.Category != "" {
		id, err := primitive.ObjectIDFromHex(q.Category)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "Invalid category id")
		}
		f.Category = &id
	}
	if q.Brand != "" {
		id, err := primitive.ObjectIDFromHex(q.Brand)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "Invalid brand id")
		}
		f.Brand = &id
	}
	return s.products.BySite(ctx, scope, f)
}

// Get returns one product and bumps its view counter. The bump is best
// effort and does not fail the read.
func (s *ProductService) Get(ctx context.Context, scope, id primitive.ObjectID) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	_ = s.products.IncrementViews(ctx, scope, id)
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, scope primitive.ObjectID, in ProductInput) (*models.Product, error) {
	p := &models.Product{
		Site:          scope,
		Name:          in.Name,
		Description:   in.Description,
		Images:        in.Images,
		Video:         in.Video,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		AgePrices:     in.AgePrices,
		SizePrices:    in.SizePrices,
		CountInStock:  in.CountInStock,
		IsFeatured:    in.IsFeatured,
		IsPopular:     in.IsPopular,
		IsActive:      true,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := s.applyRefs(ctx, scope, p, in); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, scope, id primitive.ObjectID, in ProductInput) (*models.Product, error) {
	p, err := s.products.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertScope(scope, p.Site); err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Video = in.Video
	p.Price = in.Price
	p.OriginalPrice = in.OriginalPrice
	p.AgePrices = in.AgePrices
	p.SizePrices = in.SizePrices
	p.CountInStock = in.CountInStock
	p.IsFeatured = in.IsFeatured
	p.IsPopular = in.IsPopular
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if err := s.applyRefs(ctx, scope, p, in); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, scope, id primitive.ObjectID) error {
	p, err := s.products.Lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := assertScope(scope, p.Site); err != nil {
		return err
	}
	return s.products.Delete(ctx, scope, id)
}

// applyRefs resolves the category and brand ids and verifies both
// belong to the same tenant as the product.
func (s *ProductService) applyRefs(ctx context.Context, scope primitive.ObjectID, p *models.Product, in ProductInput) error {
	if in.Category != "" {
		id, err := primitive.ObjectIDFromHex(in.Category)
		if err != nil {
			return apperr.New(apperr.Validation, "Invalid category id")
		}
		if _, err := s.categories.FindByID(ctx, scope, id); err != nil {
			return err
		}
		p.Category = &id
	} else {
		p.Category = nil
	}

	if in.Brand != "" {
		id, err := primitive.ObjectIDFromHex(in.Brand)
		if err != nil {
			return apperr.New(apperr.Validation, "Invalid brand id")
		}
		if _, err := s.brands.FindByID(ctx, scope, id); err != nil {
			return err
		}
		p.Brand = &id
	} else {
		p.Brand = nil
	}
	return nil
}
