package services

import (
	"context"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// Known content keys and their default payloads. A key absent from
// this table cannot be created; that keeps the store from silently
// accumulating typo'd keys.
var contentDefaults = map[string]bson.M{
	"header": {
		"announcement": "Free shipping on your first order",
		"showSearch":   true,
		"links": bson.A{
			bson.M{"label": "Home", "href": "/"},
			bson.M{"label": "Shop", "href": "/products"},
		},
	},
	"hero": {
		"title":    "Welcome to our store",
		"subtitle": "Discover the new collection",
		"image":    "",
		"ctaLabel": "Shop now",
		"ctaHref":  "/products",
	},
	"faq": {
		"title": "Frequently asked questions",
		"items": bson.A{
			bson.M{"question": "How long does delivery take?", "answer": "3-5 business days."},
			bson.M{"question": "Can I return an item?", "answer": "Yes, within 14 days."},
		},
	},
	"about": {
		"title": "About us",
		"body":  "",
		"image": "",
	},
	"footer": {
		"copyright": "",
		"links":     bson.A{},
		"social": bson.M{
			"instagram": "",
			"facebook":  "",
			"whatsapp":  "",
		},
	},
}

// MergeDefaults fills in top-level template fields missing from
// stored without overwriting anything already present. The merge is
// deliberately shallow: a stored field keeps its value even when the
// template nests more keys under the same name, and admin-authored
// fields outside the template are left untouched. Pure function,
// exported for direct unit testing.
func MergeDefaults(stored, template bson.M) bson.M {
	merged := bson.M{}
	for k, v := range stored {
		merged[k] = v
	}
	for k, tv := range template {
		if _, ok := merged[k]; !ok {
			merged[k] = tv
		}
	}
	return merged
}

// ContentService serves per-tenant content blocks. A missing block is
// lazily created from its key's default template; a stored block is
// healed by merging in default fields introduced since it was written.
// Healed documents are written back so the store converges.
type ContentService struct {
	contents repositories.ContentRepository
}

func NewContentService(contents repositories.ContentRepository) *ContentService {
	return &ContentService{contents: contents}
}

// Keys lists the supported content keys.
func (s *ContentService) Keys() []string {
	keys := make([]string, 0, len(contentDefaults))
	for k := range contentDefaults {
		keys = append(keys, k)
	}
	return keys
}

// Get returns the content block for (scope, key), creating or healing
// it as needed.
func (s *ContentService) Get(ctx context.Context, scope primitive.ObjectID, key string) (*models.SiteContent, error) {
	template, ok := contentDefaults[key]
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "unknown content key %q", key)
	}

	stored, err := s.contents.Find(ctx, scope, key)
	if err != nil {
		if !apperr.Is(err, apperr.NotFound) {
			return nil, err
		}
		stored = &models.SiteContent{Site: scope, Key: key, Data: bson.M{}}
	}

	merged := MergeDefaults(stored.Data, template)
	if !reflect.DeepEqual(merged, stored.Data) {
		stored.Data = merged
		if uerr := s.contents.Upsert(ctx, stored); uerr != nil {
			return nil, uerr
		}
	}
	stored.Data = merged
	return stored, nil
}

// Update replaces the block's data wholesale. The write is still
// merged over the defaults so required fields cannot be deleted.
func (s *ContentService) Update(ctx context.Context, scope primitive.ObjectID, key string, data bson.M) (*models.SiteContent, error) {
	template, ok := contentDefaults[key]
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "unknown content key %q", key)
	}

	c := &models.SiteContent{
		Site: scope,
		Key:  key,
		Data: MergeDefaults(data, template),
	}
	if err := s.contents.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// All returns every block for the tenant, healing each one.
func (s *ContentService) All(ctx context.Context, scope primitive.ObjectID) ([]models.SiteContent, error) {
	out := make([]models.SiteContent, 0, len(contentDefaults))
	for key := range contentDefaults {
		c, err := s.Get(ctx, scope, key)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}
