package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/app/models"
)

// ContentRepository stores per-tenant content blocks keyed by
// (site, key). Upsert is the only write path: the content service
// always writes the fully merged document back.
type ContentRepository interface {
	// Find returns the block, or a NotFound error when absent.
	Find(ctx context.Context, site primitive.ObjectID, key string) (*models.SiteContent, error)
	Upsert(ctx context.Context, c *models.SiteContent) error
	BySite(ctx context.Context, site primitive.ObjectID) ([]models.SiteContent, error)
	DeleteBySite(ctx context.Context, site primitive.ObjectID) error
}

type mongoContentRepo struct{ col *mongo.Collection }

func NewContentRepository(col *mongo.Collection) ContentRepository {
	return &mongoContentRepo{col: col}
}

func (r *mongoContentRepo) Find(ctx context.Context, site primitive.ObjectID, key string) (*models.SiteContent, error) {
	var c models.SiteContent
	if err := r.col.FindOne(ctx, bson.M{"site": site, "key": key}).Decode(&c); err != nil {
		return nil, notFound(err, "content block")
	}
	return &c, nil
}

func (r *mongoContentRepo) Upsert(ctx context.Context, c *models.SiteContent) error {
	c.UpdatedAt = now()
	_, err := r.col.UpdateOne(ctx,
		bson.M{"site": c.Site, "key": c.Key},
		bson.M{"$set": bson.M{"data": c.Data, "updated_at": c.UpdatedAt}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *mongoContentRepo) BySite(ctx context.Context, site primitive.ObjectID) ([]models.SiteContent, error) {
	cur, err := r.col.Find(ctx, bson.M{"site": site})
	if err != nil {
		return nil, err
	}
	var out []models.SiteContent
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoContentRepo) DeleteBySite(ctx context.Context, site primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"site": site})
	return err
}
