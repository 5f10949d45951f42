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

// ReviewRepository stores product reviews per tenant.
type ReviewRepository interface {
	Create(ctx context.Context, rv *models.Review) error
	FindByID(ctx context.Context, site, id primitive.ObjectID) (*models.Review, error)
	Lookup(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	// ByProduct lists reviews for one product; approvedOnly hides
	// pending and rejected entries for the storefront.
	ByProduct(ctx context.Context, site, product primitive.ObjectID, approvedOnly bool) ([]models.Review, error)
	BySite(ctx context.Context, site primitive.ObjectID, status string) ([]models.Review, error)
	SetStatus(ctx context.Context, site, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, site, id primitive.ObjectID) error
	DeleteBySite(ctx context.Context, site primitive.ObjectID) error
}

type mongoReviewRepo struct{ col *mongo.Collection }

func NewReviewRepository(col *mongo.Collection) ReviewRepository {
	return &mongoReviewRepo{col: col}
}

func (r *mongoReviewRepo) Create(ctx context.Context, rv *models.Review) error {
	rv.ID = primitive.NewObjectID()
	rv.CreatedAt = now()
	rv.UpdatedAt = rv.CreatedAt
	_, err := r.col.InsertOne(ctx, rv)
	return err
}

func (r *mongoReviewRepo) FindByID(ctx context.Context, site, id primitive.ObjectID) (*models.Review, error) {
	var rv models.Review
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "site": site}).Decode(&rv); err != nil {
		return nil, notFound(err, "review")
	}
	return &rv, nil
}

func (r *mongoReviewRepo) Lookup(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var rv models.Review
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rv); err != nil {
		return nil, notFound(err, "review")
	}
	return &rv, nil
}

func (r *mongoReviewRepo) ByProduct(ctx context.Context, site, product primitive.ObjectID, approvedOnly bool) ([]models.Review, error) {
	filter := bson.M{"site": site, "product": product}
	if approvedOnly {
		filter["status"] = models.ReviewApproved
	}
	return r.list(ctx, filter)
}

func (r *mongoReviewRepo) BySite(ctx context.Context, site primitive.ObjectID, status string) ([]models.Review, error) {
	filter := bson.M{"site": site}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter)
}

func (r *mongoReviewRepo) list(ctx context.Context, filter bson.M) ([]models.Review, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoReviewRepo) SetStatus(ctx context.Context, site, id primitive.ObjectID, status string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "site": site},
		bson.M{"$set": bson.M{"status": status, "updated_at": now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "review not found")
	}
	return nil
}

func (r *mongoReviewRepo) Delete(ctx context.Context, site, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "site": site})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "review not found")
	}
	return nil
}

func (r *mongoReviewRepo) DeleteBySite(ctx context.Context, site primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"site": site})
	return err
}
