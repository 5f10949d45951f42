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

// CategoryRepository stores tenant-scoped catalog categories. Every
// query carries the site id except Lookup, which loads by id alone so
// services can tell a cross-tenant target apart from a missing one.
type CategoryRepository interface {
	Create(ctx context.Context, c *models.Category) error
	FindByID(ctx context.Context, site, id primitive.ObjectID) (*models.Category, error)
	Lookup(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	BySite(ctx context.Context, site primitive.ObjectID) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, site, id primitive.ObjectID) error
	DeleteBySite(ctx context.Context, site primitive.ObjectID) error
}

// BrandRepository stores tenant-scoped brands, same contract as
// CategoryRepository.
type BrandRepository interface {
	Create(ctx context.Context, b *models.Brand) error
	FindByID(ctx context.Context, site, id primitive.ObjectID) (*models.Brand, error)
	Lookup(ctx context.Context, id primitive.ObjectID) (*models.Brand, error)
	BySite(ctx context.Context, site primitive.ObjectID) ([]models.Brand, error)
	Update(ctx context.Context, b *models.Brand) error
	Delete(ctx context.Context, site, id primitive.ObjectID) error
	DeleteBySite(ctx context.Context, site primitive.ObjectID) error
}

type mongoCategoryRepo struct{ col *mongo.Collection }

func NewCategoryRepository(col *mongo.Collection) CategoryRepository {
	return &mongoCategoryRepo{col: col}
}

func (r *mongoCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if isDup(err) {
			return apperr.Newf(apperr.Conflict, "category %q already exists", c.Name)
		}
		return err
	}
	return nil
}

func (r *mongoCategoryRepo) FindByID(ctx context.Context, site, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "site": site}).Decode(&c); err != nil {
		return nil, notFound(err, "category")
	}
	return &c, nil
}

func (r *mongoCategoryRepo) Lookup(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, notFound(err, "category")
	}
	return &c, nil
}

func (r *mongoCategoryRepo) BySite(ctx context.Context, site primitive.ObjectID) ([]models.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{"site": site}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoCategoryRepo) Update(ctx context.Context, c *models.Category) error {
	c.UpdatedAt = now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID, "site": c.Site}, c)
	if err != nil {
		if isDup(err) {
			return apperr.Newf(apperr.Conflict, "category %q already exists", c.Name)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "category not found")
	}
	return nil
}

func (r *mongoCategoryRepo) Delete(ctx context.Context, site, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "site": site})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "category not found")
	}
	return nil
}

func (r *mongoCategoryRepo) DeleteBySite(ctx context.Context, site primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"site": site})
	return err
}

type mongoBrandRepo struct{ col *mongo.Collection }

func NewBrandRepository(col *mongo.Collection) BrandRepository {
	return &mongoBrandRepo{col: col}
}

func (r *mongoBrandRepo) Create(ctx context.Context, b *models.Brand) error {
	b.ID = primitive.NewObjectID()
	b.CreatedAt = now()
	b.UpdatedAt = b.CreatedAt
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		if isDup(err) {
			return apperr.Newf(apperr.Conflict, "brand %q already exists", b.Name)
		}
		return err
	}
	return nil
}

func (r *mongoBrandRepo) FindByID(ctx context.Context, site, id primitive.ObjectID) (*models.Brand, error) {
	var b models.Brand
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "site": site}).Decode(&b); err != nil {
		return nil, notFound(err, "brand")
	}
	return &b, nil
}

func (r *mongoBrandRepo) Lookup(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	var b models.Brand
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, notFound(err, "brand")
	}
	return &b, nil
}

func (r *mongoBrandRepo) BySite(ctx context.Context, site primitive.ObjectID) ([]models.Brand, error) {
	cur, err := r.col.Find(ctx, bson.M{"site": site}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Brand
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoBrandRepo) Update(ctx context.Context, b *models.Brand) error {
	b.UpdatedAt = now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": b.ID, "site": b.Site}, b)
	if err != nil {
		if isDup(err) {
			return apperr.Newf(apperr.Conflict, "brand %q already exists", b.Name)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "brand not found")
	}
	return nil
}

func (r *mongoBrandRepo) Delete(ctx context.Context, site, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "site": site})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "brand not found")
	}
	return nil
}

func (r *mongoBrandRepo) DeleteBySite(ctx context.Context, site primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"site": site})
	return err
}
