// Package graph exposes a read-only GraphQL view of the storefront
// catalog, so the client can fetch a site, its categories, brands and
// products in one round trip. Mutations stay on the REST surface.
package graph

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/collection"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

// Resolver carries the services the schema resolves against.
type Resolver struct {
	Sites    *services.SiteService
	Products *services.ProductService
	Catalog  *services.CatalogService
}

var priceTierType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PriceTier",
	Fields: graphql.Fields{
		"label": &graphql.Field{Type: graphql.String},
		"price": &graphql.Field{Type: graphql.Float},
	},
})

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String, Resolve: objectIDField("id")},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"image":       &graphql.Field{Type: graphql.String},
	},
})

var brandType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Brand",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String, Resolve: objectIDField("id")},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"image":       &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.String, Resolve: objectIDField("id")},
		"name":          &graphql.Field{Type: graphql.String},
		"description":   &graphql.Field{Type: graphql.String},
		"images":        &graphql.Field{Type: graphql.NewList(graphql.String)},
		"video":         &graphql.Field{Type: graphql.String},
		"price":         &graphql.Field{Type: graphql.Float},
		"originalPrice": &graphql.Field{Type: graphql.Float},
		"countInStock":  &graphql.Field{Type: graphql.Int},
		"isFeatured":    &graphql.Field{Type: graphql.Boolean},
		"isPopular":     &graphql.Field{Type: graphql.Boolean},
		"agePrices": &graphql.Field{
			Type: graphql.NewList(priceTierType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				prod, ok := p.Source.(models.Product)
				if !ok {
					return nil, nil
				}
				return collection.Map(prod.AgePrices, func(t models.AgePrice) map[string]interface{} {
					return map[string]interface{}{"label": t.Age, "price": t.Price}
				}), nil
			},
		},
		"sizePrices": &graphql.Field{
			Type: graphql.NewList(priceTierType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				prod, ok := p.Source.(models.Product)
				if !ok {
					return nil, nil
				}
				return collection.Map(prod.SizePrices, func(t models.SizePrice) map[string]interface{} {
					return map[string]interface{}{"label": t.Size, "price": t.Price}
				}), nil
			},
		},
	},
})

var siteType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Site",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.String, Resolve: objectIDField("id")},
		"slug": &graphql.Field{Type: graphql.String},
		"name": &graphql.Field{Type: graphql.String},
	},
})

// objectIDField renders a primitive.ObjectID struct field as hex. The
// default resolver would marshal it as a byte array.
func objectIDField(_ string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch v := p.Source.(type) {
		case models.Site:
			return v.ID.Hex(), nil
		case models.Category:
			return v.ID.Hex(), nil
		case models.Brand:
			return v.ID.Hex(), nil
		case models.Product:
			return v.ID.Hex(), nil
		}
		return nil, nil
	}
}

// Schema builds the executable schema against r.
func (r *Resolver) Schema() (graphql.Schema, error) {
	siteArg := graphql.FieldConfigArgument{
		"site": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"site": &graphql.Field{
				Type: siteType,
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					site, err := r.Sites.BySlug(p.Context, p.Args["slug"].(string))
					if err != nil {
						return nil, err
					}
					return *site, nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Args: siteArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := scopeArg(p)
					if err != nil {
						return nil, err
					}
					return r.Catalog.Categories(p.Context, scope)
				},
			},
			"brands": &graphql.Field{
				Type: graphql.NewList(brandType),
				Args: siteArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := scopeArg(p)
					if err != nil {
						return nil, err
					}
					return r.Catalog.Brands(p.Context, scope)
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"site":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"brand":    &graphql.ArgumentConfig{Type: graphql.String},
					"featured": &graphql.ArgumentConfig{Type: graphql.Boolean},
					"popular":  &graphql.ArgumentConfig{Type: graphql.Boolean},
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := scopeArg(p)
					if err != nil {
						return nil, err
					}
					q := services.ProductListQuery{}
					if v, ok := p.Args["category"].(string); ok {
						q.Category = v
					}
					if v, ok := p.Args["brand"].(string); ok {
						q.Brand = v
					}
					if v, ok := p.Args["featured"].(bool); ok {
						q.Featured = &v
					}
					if v, ok := p.Args["popular"].(bool); ok {
						q.Popular = &v
					}
					if v, ok := p.Args["search"].(string); ok {
						q.Search = v
					}
					return r.Products.List(p.Context, scope, q)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"site": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := scopeArg(p)
					if err != nil {
						return nil, err
					}
					id, err := primitive.ObjectIDFromHex(p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					prod, err := r.Products.Get(p.Context, scope, id)
					if err != nil {
						return nil, err
					}
					return *prod, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

func scopeArg(p graphql.ResolveParams) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(p.Args["site"].(string))
}

// Handler serves POST /graphql with a {query, variables} body.
func Handler(r *Resolver) http.HandlerFunc {
	schema, err := r.Schema()
	if err != nil {
		panic("graph: invalid schema: " + err.Error())
	}

	return func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        req.Context(),
		})
		response.JSON(w, http.StatusOK, result)
	}
}
