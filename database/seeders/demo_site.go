package seeders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
)

func init() {
	Register("demo-site", SeedDemoSite)
}

// SeedDemoSite creates a "demo" storefront with a small catalog so a
// fresh install has something to render. Skipped when the slug exists.
func SeedDemoSite(ctx context.Context, db *mongo.Database) error {
	sites := db.Collection("sites")
	err := sites.FindOne(ctx, bson.M{"slug": "demo"}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	now := time.Now().UTC()
	site := models.Site{
		ID:       primitive.NewObjectID(),
		Slug:     "demo",
		Name:     "Demo Store",
		IsActive: true,
		Theme: models.SiteTheme{
			PrimaryColor:   "#1a1a2e",
			SecondaryColor: "#e94560",
		},
		Settings: models.SiteSettings{
			Currency:      "INR",
			ShippingPrice: 49,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := sites.InsertOne(ctx, site); err != nil {
		return err
	}

	kids := models.Category{
		ID:        primitive.NewObjectID(),
		Site:      site.ID,
		Name:      "Kids Wear",
		CreatedAt: now,
		UpdatedAt: now,
	}
	ethnic := models.Category{
		ID:        primitive.NewObjectID(),
		Site:      site.ID,
		Name:      "Ethnic Wear",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.Collection("categories").InsertMany(ctx, []interface{}{kids, ethnic}); err != nil {
		return err
	}

	brand := models.Brand{
		ID:        primitive.NewObjectID(),
		Site:      site.ID,
		Name:      "Vastra Originals",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.Collection("brands").InsertOne(ctx, brand); err != nil {
		return err
	}

	products := []interface{}{
		models.Product{
			ID:           primitive.NewObjectID(),
			Site:         site.ID,
			Name:         "Cotton Frock",
			Description:  "Soft printed cotton frock for everyday wear.",
			Category:     &kids.ID,
			Brand:        &brand.ID,
			Price:        499,
			AgePrices:    []models.AgePrice{{Age: "2-3Y", Price: 449}, {Age: "4-5Y", Price: 499}},
			CountInStock: 25,
			IsFeatured:   true,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		models.Product{
			ID:           primitive.NewObjectID(),
			Site:         site.ID,
			Name:         "Silk Kurta Set",
			Description:  "Festive kurta with matching pyjama.",
			Category:     &ethnic.ID,
			Brand:        &brand.ID,
			Price:        1299,
			SizePrices:   []models.SizePrice{{Size: "S", Price: 1299}, {Size: "M", Price: 1349}, {Size: "L", Price: 1399}},
			CountInStock: 10,
			IsPopular:    true,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	_, err = db.Collection("products").InsertMany(ctx, products)
	return err
}
