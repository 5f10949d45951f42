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

// SiteRepository is the tenant registry.
type SiteRepository interface {
	Create(ctx context.Context, s *models.Site) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Site, error)
	FindBySlug(ctx context.Context, slug string) (*models.Site, error)
	// FirstActive returns the oldest active site, used as the fallback
	// tenant for unpinned super admins.
	FirstActive(ctx context.Context) (*models.Site, error)
	All(ctx context.Context) ([]models.Site, error)
	Update(ctx context.Context, s *models.Site) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoSiteRepo struct {
	col *mongo.Collection
}

func NewSiteRepository(col *mongo.Collection) SiteRepository {
	return &mongoSiteRepo{col: col}
}

func (r *mongoSiteRepo) Create(ctx context.Context, s *models.Site) error {
	s.ID = primitive.NewObjectID()
	s.CreatedAt = now()
	s.UpdatedAt = s.CreatedAt
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		if isDup(err) {
			return apperr.Newf(apperr.Conflict, "site slug %q already exists", s.Slug)
		}
		return err
	}
	return nil
}

func (r *mongoSiteRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Site, error) {
	var s models.Site
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		return nil, notFound(err, "site")
	}
	return &s, nil
}

func (r *mongoSiteRepo) FindBySlug(ctx context.Context, slug string) (*models.Site, error) {
	var s models.Site
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&s)
	if err != nil {
		return nil, notFound(err, "site")
	}
	return &s, nil
}

func (r *mongoSiteRepo) FirstActive(ctx context.Context) (*models.Site, error) {
	var s models.Site
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	err := r.col.FindOne(ctx, bson.M{"is_active": true}, opts).Decode(&s)
	if err != nil {
		return nil, notFound(err, "site")
	}
	return &s, nil
}

func (r *mongoSiteRepo) All(ctx context.Context) ([]models.Site, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var sites []models.Site
	if err := cur.All(ctx, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *mongoSiteRepo) Update(ctx context.Context, s *models.Site) error {
	s.UpdatedAt = now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		if isDup(err) {
			return apperr.Newf(apperr.Conflict, "site slug %q already exists", s.Slug)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "site not found")
	}
	return nil
}

func (r *mongoSiteRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "site not found")
	}
	return nil
}
