package services_test

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

func TestMergeDefaults(t *testing.T) {
	template := bson.M{
		"title": "Welcome",
		"links": bson.A{bson.M{"label": "Home"}},
		"social": bson.M{
			"instagram": "",
			"facebook":  "",
		},
	}

	t.Run("missing fields are filled in", func(t *testing.T) {
		got := services.MergeDefaults(bson.M{"title": "Custom"}, template)
		if got["title"] != "Custom" {
			t.Errorf("stored value overwritten: %v", got["title"])
		}
		if _, ok := got["links"]; !ok {
			t.Error("template field not filled in")
		}
	})

	t.Run("merge is shallow", func(t *testing.T) {
		// A stored nested document wins wholesale even when the
		// template nests more keys under the same name.
		stored := bson.M{"social": bson.M{"instagram": "@shop"}}
		got := services.MergeDefaults(stored, template)
		social := got["social"].(bson.M)
		if social["instagram"] != "@shop" {
			t.Errorf("nested stored value lost: %v", social)
		}
		if _, ok := social["facebook"]; ok {
			t.Error("shallow merge must not descend into nested documents")
		}
	})

	t.Run("admin-authored extras survive", func(t *testing.T) {
		got := services.MergeDefaults(bson.M{"custom": "kept"}, template)
		if got["custom"] != "kept" {
			t.Error("field outside the template was dropped")
		}
	})
}

func TestContentGetCreatesAndHeals(t *testing.T) {
	repo := newFakeContentRepo()
	svc := services.NewContentService(repo)
	ctx := context.Background()
	site := primitive.NewObjectID()

	t.Run("unknown key", func(t *testing.T) {
		_, err := svc.Get(ctx, site, "sidebar")
		if !apperr.Is(err, apperr.NotFound) {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	t.Run("first read creates from the template", func(t *testing.T) {
		block, err := svc.Get(ctx, site, "hero")
		if err != nil {
			t.Fatal(err)
		}
		if block.Data["title"] == "" {
			t.Error("template defaults not applied")
		}
		// The created block was persisted.
		if _, err := repo.Find(ctx, site, "hero"); err != nil {
			t.Errorf("block not persisted on first read: %v", err)
		}
	})

	t.Run("partial stored block is healed and written back", func(t *testing.T) {
		partial := &models.SiteContent{Site: site, Key: "about", Data: bson.M{"title": "Our story"}}
		if err := repo.Upsert(ctx, partial); err != nil {
			t.Fatal(err)
		}

		block, err := svc.Get(ctx, site, "about")
		if err != nil {
			t.Fatal(err)
		}
		if block.Data["title"] != "Our story" {
			t.Errorf("stored field overwritten: %v", block.Data["title"])
		}
		if _, ok := block.Data["body"]; !ok {
			t.Error("missing template field not healed in")
		}

		stored, err := repo.Find(ctx, site, "about")
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := stored.Data["body"]; !ok {
			t.Error("healed block not written back")
		}
	})
}

func TestContentUpdateKeepsRequiredFields(t *testing.T) {
	repo := newFakeContentRepo()
	svc := services.NewContentService(repo)
	ctx := context.Background()
	site := primitive.NewObjectID()

	block, err := svc.Update(ctx, site, "hero", bson.M{"title": "Summer Sale"})
	if err != nil {
		t.Fatal(err)
	}
	if block.Data["title"] != "Summer Sale" {
		t.Errorf("update did not apply: %v", block.Data["title"])
	}
	// Template fields omitted from the payload come back from the
	// defaults rather than vanishing.
	if _, ok := block.Data["ctaLabel"]; !ok {
		t.Error("required template field was deleted by the update")
	}

	if _, err := svc.Update(ctx, site, "bogus", bson.M{}); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected NotFound for unknown key, got %v", err)
	}
}
