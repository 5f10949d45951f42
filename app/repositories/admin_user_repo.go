package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// AdminUserRepository is the back-office identity store.
type AdminUserRepository interface {
	Create(ctx context.Context, u *models.AdminUser) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	// BySite lists admins pinned to one site; a nil site lists all.
	BySite(ctx context.Context, site *primitive.ObjectID) ([]models.AdminUser, error)
	Update(ctx context.Context, u *models.AdminUser) error
	TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoAdminUserRepo struct {
	col *mongo.Collection
}

func NewAdminUserRepository(col *mongo.Collection) AdminUserRepository {
	return &mongoAdminUserRepo{col: col}
}

func (r *mongoAdminUserRepo) Create(ctx context.Context, u *models.AdminUser) error {
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if isDup(err) {
			return apperr.Newf(apperr.Conflict, "admin with email %q already exists", u.Email)
		}
		return err
	}
	return nil
}

func (r *mongoAdminUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return nil, notFound(err, "admin user")
	}
	return &u, nil
}

func (r *mongoAdminUserRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		return nil, notFound(err, "admin user")
	}
	return &u, nil
}

func (r *mongoAdminUserRepo) BySite(ctx context.Context, site *primitive.ObjectID) ([]models.AdminUser, error) {
	filter := bson.M{}
	if site != nil {
		filter["site"] = *site
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var users []models.AdminUser
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoAdminUserRepo) Update(ctx context.Context, u *models.AdminUser) error {
	u.UpdatedAt = now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if isDup(err) {
			return apperr.Newf(apperr.Conflict, "admin with email %q already exists", u.Email)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "admin user not found")
	}
	return nil
}

func (r *mongoAdminUserRepo) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

func (r *mongoAdminUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "admin user not found")
	}
	return nil
}
