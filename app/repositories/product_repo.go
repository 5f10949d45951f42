package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// ProductFilter narrows a tenant product listing.
type ProductFilter struct {
	Category *primitive.ObjectID
	Brand    *primitive.ObjectID
	Featured *bool
	Popular  *bool
	Search   string // substring match on name, case-insensitive
	Page     int64  // 1-based, 0 means no paging
	Limit    int64
}

// ProductRepository stores tenant-scoped products. Stock movement goes
// through ReserveStock and ReleaseStock only, which are atomic at the
// document level; services never read-modify-write the counter.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, site, id primitive.ObjectID) (*models.Product, error)
	Lookup(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	BySite(ctx context.Context, site primitive.ObjectID, f ProductFilter) ([]models.Product, error)
	CountBySite(ctx context.Context, site primitive.ObjectID) (int64, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, site, id primitive.ObjectID) error
	DeleteBySite(ctx context.Context, site primitive.ObjectID) error

	// ReserveStock decrements count_in_stock by qty and bumps
	// booked_count, but only when the product still holds at least qty
	// units. Returns a Conflict error when stock is insufficient.
	ReserveStock(ctx context.Context, site, id primitive.ObjectID, qty int64) error
	// ReleaseStock returns qty units to stock after a cancelled or
	// edited order.
	ReleaseStock(ctx context.Context, site, id primitive.ObjectID, qty int64) error
	// IncrementViews bumps the view counter, best effort.
	IncrementViews(ctx context.Context, site, id primitive.ObjectID) error
}

type mongoProductRepo struct{ col *mongo.Collection }

func NewProductRepository(col *mongo.Collection) ProductRepository {
	return &mongoProductRepo{col: col}
}

func (r *mongoProductRepo) Create(ctx context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	if p.Images == nil {
		p.Images = []string{}
	}
	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *mongoProductRepo) FindByID(ctx context.Context, site, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "site": site}).Decode(&p); err != nil {
		return nil, notFound(err, "product")
	}
	return &p, nil
}

func (r *mongoProductRepo) Lookup(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err, "product")
	}
	return &p, nil
}

func (r *mongoProductRepo) BySite(ctx context.Context, site primitive.ObjectID, f ProductFilter) ([]models.Product, error) {
	filter := bson.M{"site": site}
	if f.Category != nil {
		filter["category"] = *f.Category
	}
	if f.Brand != nil {
		filter["brand"] = *f.Brand
	}
	if f.Featured != nil {
		filter["is_featured"] = *f.Featured
	}
	if f.Popular != nil {
		filter["is_popular"] = *f.Popular
	}
	if f.Search != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: f.Search, Options: "i"}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
		if f.Page > 1 {
			opts.SetSkip((f.Page - 1) * f.Limit)
		}
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoProductRepo) CountBySite(ctx context.Context, site primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"site": site})
}

func (r *mongoProductRepo) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID, "site": p.Site}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}

func (r *mongoProductRepo) Delete(ctx context.Context, site, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "site": site})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}

func (r *mongoProductRepo) DeleteBySite(ctx context.Context, site primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"site": site})
	return err
}

func (r *mongoProductRepo) ReserveStock(ctx context.Context, site, id primitive.ObjectID, qty int64) error {
	// The filter carries the stock floor so the decrement and the check
	// are one atomic operation; concurrent orders can never drive the
	// counter negative.
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "site": site, "count_in_stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"count_in_stock": -qty, "booked_count": qty}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, ferr := r.FindByID(ctx, site, id); ferr != nil {
			return ferr
		}
		return apperr.New(apperr.Conflict, "insufficient stock")
	}
	return nil
}

func (r *mongoProductRepo) ReleaseStock(ctx context.Context, site, id primitive.ObjectID, qty int64) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "site": site},
		bson.M{"$inc": bson.M{"count_in_stock": qty, "booked_count": -qty}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}

func (r *mongoProductRepo) IncrementViews(ctx context.Context, site, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "site": site},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	return err
}
