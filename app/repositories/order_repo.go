package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// SalesPoint is one bucket of the sales chart aggregation.
type SalesPoint struct {
	Date  string  `bson:"_id" json:"date"` // YYYY-MM-DD
	Sales float64 `bson:"sales" json:"sales"`
	Count int64   `bson:"count" json:"count"`
}

// TopProduct is one row of the best-sellers aggregation.
type TopProduct struct {
	Product  primitive.ObjectID `bson:"_id" json:"product"`
	Name     string             `bson:"name" json:"name"`
	Quantity int64              `bson:"quantity" json:"quantity"`
	Revenue  float64            `bson:"revenue" json:"revenue"`
}

// OrderRepository stores tenant-scoped orders.
type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, site, id primitive.ObjectID) (*models.Order, error)
	Lookup(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	BySite(ctx context.Context, site primitive.ObjectID) ([]models.Order, error)
	ByUser(ctx context.Context, site, user primitive.ObjectID) ([]models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	Delete(ctx context.Context, site, id primitive.ObjectID) error
	DeleteBySite(ctx context.Context, site primitive.ObjectID) error

	CountBySite(ctx context.Context, site primitive.ObjectID) (int64, error)
	TotalSales(ctx context.Context, site primitive.ObjectID) (float64, error)
	SalesSince(ctx context.Context, site primitive.ObjectID, since time.Time) ([]SalesPoint, error)
	TopProducts(ctx context.Context, site primitive.ObjectID, limit int64) ([]TopProduct, error)
}

type mongoOrderRepo struct{ col *mongo.Collection }

func NewOrderRepository(col *mongo.Collection) OrderRepository {
	return &mongoOrderRepo{col: col}
}

func (r *mongoOrderRepo) Create(ctx context.Context, o *models.Order) error {
	o.ID = primitive.NewObjectID()
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	_, err := r.col.InsertOne(ctx, o)
	return err
}

func (r *mongoOrderRepo) FindByID(ctx context.Context, site, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "site": site}).Decode(&o); err != nil {
		return nil, notFound(err, "order")
	}
	return &o, nil
}

func (r *mongoOrderRepo) Lookup(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, notFound(err, "order")
	}
	return &o, nil
}

func (r *mongoOrderRepo) BySite(ctx context.Context, site primitive.ObjectID) ([]models.Order, error) {
	return r.list(ctx, bson.M{"site": site})
}

func (r *mongoOrderRepo) ByUser(ctx context.Context, site, user primitive.ObjectID) ([]models.Order, error) {
	return r.list(ctx, bson.M{"site": site, "user": user})
}

func (r *mongoOrderRepo) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoOrderRepo) Update(ctx context.Context, o *models.Order) error {
	o.UpdatedAt = now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID, "site": o.Site}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "order not found")
	}
	return nil
}

func (r *mongoOrderRepo) Delete(ctx context.Context, site, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "site": site})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "order not found")
	}
	return nil
}

func (r *mongoOrderRepo) DeleteBySite(ctx context.Context, site primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"site": site})
	return err
}

func (r *mongoOrderRepo) CountBySite(ctx context.Context, site primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"site": site})
}

func (r *mongoOrderRepo) TotalSales(ctx context.Context, site primitive.ObjectID) (float64, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"site": site, "is_paid": true}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total_price"}}}},
	})
	if err != nil {
		return 0, err
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *mongoOrderRepo) SalesSince(ctx context.Context, site primitive.ObjectID, since time.Time) ([]SalesPoint, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"site": site, "created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"sales": bson.M{"$sum": "$total_price"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, err
	}
	var out []SalesPoint
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoOrderRepo) TopProducts(ctx context.Context, site primitive.ObjectID, limit int64) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"site": site}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$items.product",
			"name":     bson.M{"$last": "$items.name"},
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.price", "$items.quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.M{"quantity": -1}}},
		{{Key: "$limit", Value: limit}},
	})
	if err != nil {
		return nil, err
	}
	var out []TopProduct
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
