// Package routes mounts the HTTP surface: the public storefront API,
// the shopper auth flow, and the admin back office.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/graph"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	jwtauth "github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

// Deps carries everything the route table needs.
type Deps struct {
	Auth     *services.AuthService
	Register *services.RegisterService
	Scopes   *services.ScopeResolver
	Sites    *services.SiteService
	Catalog  *services.CatalogService
	Products *services.ProductService
	Orders   *services.OrderService
	Contents *services.ContentService
	Reviews  *services.ReviewService
	Stats    *services.StatsService
	Admins   *services.AdminService
	Uploads  *services.UploadService
	OrderHub *ws.Hub
}

// RegisterAPI mounts every route on r.
func RegisterAPI(r *router.Router, d Deps) {
	authController := controllers.NewAuthController(d.Auth, d.Register)
	siteController := controllers.NewSiteController(d.Sites)
	catalogController := controllers.NewCatalogController(d.Catalog, d.Scopes)
	productController := controllers.NewProductController(d.Products, d.Scopes)
	orderController := controllers.NewOrderController(d.Orders, d.Scopes)
	contentController := controllers.NewContentController(d.Contents, d.Scopes)
	reviewController := controllers.NewReviewController(d.Reviews, d.Scopes)
	statsController := controllers.NewStatsController(d.Stats, d.Scopes)
	adminController := controllers.NewAdminController(d.Admins)
	uploadController := controllers.NewUploadController(d.Uploads, d.Scopes)

	authed := auth.Authenticate(d.Auth)
	maybeAuthed := auth.OptionalAuthenticate(d.Auth)

	api := r.Group("/api")

	// Shopper auth and the OTP registration flow.
	api.Post("/auth/register-init", "auth.register", ctx.Wrap(authController.RegisterInit))
	api.Post("/auth/verify-otp", "auth.verify", ctx.Wrap(authController.VerifyOTP))
	api.Post("/auth/resend-otp", "auth.resend", ctx.Wrap(authController.ResendOTP))
	api.Post("/auth/login", "auth.login", ctx.Wrap(authController.Login))
	api.Post("/auth/forgot-password", "auth.forgot", ctx.Wrap(authController.ForgotPassword))
	api.Post("/auth/reset-password", "auth.reset", ctx.Wrap(authController.ResetPassword))
	api.Get("/auth/profile", "auth.profile", ctx.Wrap(authController.Profile), authed)
	api.Put("/auth/profile", "auth.profile.update", ctx.Wrap(authController.UpdateProfile), authed)

	// Public storefront reads. Tenant comes from ?site=.
	api.Get("/sites/{slug}", "sites.by_slug", ctx.Wrap(siteController.BySlug))
	api.Get("/categories", "categories.list", ctx.Wrap(catalogController.ListCategories))
	api.Get("/brands", "brands.list", ctx.Wrap(catalogController.ListBrands))
	api.Get("/products", "products.list", ctx.Wrap(productController.List))
	api.Get("/products/{id}", "products.show", ctx.Wrap(productController.Get))
	api.Get("/products/{id}/reviews", "reviews.list", ctx.Wrap(reviewController.ForProduct))
	api.Post("/products/{id}/reviews", "reviews.submit", ctx.Wrap(reviewController.Submit), maybeAuthed)
	api.Get("/site-content/{key}", "content.show", ctx.Wrap(contentController.Get))
	r.HandleFunc("/api/graphql", graph.Handler(&graph.Resolver{
		Sites:    d.Sites,
		Products: d.Products,
		Catalog:  d.Catalog,
	}))

	// Checkout and the shopper's own orders.
	api.Post("/orders", "orders.create", ctx.Wrap(orderController.Create), maybeAuthed)
	api.Get("/orders/mine", "orders.mine", ctx.Wrap(orderController.Mine), authed)
	api.Delete("/orders/{id}", "orders.delete", ctx.Wrap(orderController.Delete), authed)

	// Back office.
	admin := api.Group("/admin")
	admin.Post("/auth/login", "admin.login", ctx.Wrap(authController.AdminLogin))

	adm := admin.Group("", authed, auth.RequireAdmin)
	adm.Get("/auth/profile", "admin.profile", ctx.Wrap(authController.Profile))
	adm.Put("/auth/profile", "admin.profile.update", ctx.Wrap(authController.UpdateProfile))
	adm.Put("/auth/credentials", "admin.credentials", ctx.Wrap(authController.ChangeCredentials),
		auth.RequirePermission(models.PermChangeCredentials))

	adm.Get("/categories", "admin.categories.list", ctx.Wrap(catalogController.AdminListCategories))
	adm.Post("/categories", "admin.categories.create", ctx.Wrap(catalogController.CreateCategory),
		auth.RequirePermission(models.PermManageCategories))
	adm.Put("/categories/{id}", "admin.categories.update", ctx.Wrap(catalogController.UpdateCategory),
		auth.RequirePermission(models.PermManageCategories))
	adm.Delete("/categories/{id}", "admin.categories.delete", ctx.Wrap(catalogController.DeleteCategory),
		auth.RequirePermission(models.PermManageCategories))

	adm.Get("/brands", "admin.brands.list", ctx.Wrap(catalogController.AdminListBrands))
	adm.Post("/brands", "admin.brands.create", ctx.Wrap(catalogController.CreateBrand),
		auth.RequirePermission(models.PermManageBrands))
	adm.Put("/brands/{id}", "admin.brands.update", ctx.Wrap(catalogController.UpdateBrand),
		auth.RequirePermission(models.PermManageBrands))
	adm.Delete("/brands/{id}", "admin.brands.delete", ctx.Wrap(catalogController.DeleteBrand),
		auth.RequirePermission(models.PermManageBrands))

	adm.Get("/products", "admin.products.list", ctx.Wrap(productController.AdminList))
	adm.Post("/products", "admin.products.create", ctx.Wrap(productController.Create),
		auth.RequirePermission(models.PermManageProducts))
	adm.Put("/products/{id}", "admin.products.update", ctx.Wrap(productController.Update),
		auth.RequirePermission(models.PermManageProducts))
	adm.Delete("/products/{id}", "admin.products.delete", ctx.Wrap(productController.Delete),
		auth.RequirePermission(models.PermManageProducts))

	adm.Get("/orders", "admin.orders.list", ctx.Wrap(orderController.AdminList),
		auth.RequirePermission(models.PermManageOrders))
	adm.Get("/orders/{id}", "admin.orders.show", ctx.Wrap(orderController.AdminGet),
		auth.RequirePermission(models.PermManageOrders))
	adm.Put("/orders/{id}/pay", "admin.orders.pay", ctx.Wrap(orderController.MarkPaid),
		auth.RequirePermission(models.PermManageOrders))
	adm.Put("/orders/{id}/deliver", "admin.orders.deliver", ctx.Wrap(orderController.MarkDelivered),
		auth.RequirePermission(models.PermManageOrders))
	adm.Put("/orders/{id}/items", "admin.orders.items", ctx.Wrap(orderController.EditItems),
		auth.RequirePermission(models.PermManageOrders))
	adm.Delete("/orders/{id}", "admin.orders.delete", ctx.Wrap(orderController.Delete),
		auth.RequirePermission(models.PermManageOrders))

	adm.Get("/site-content", "admin.content.list", ctx.Wrap(contentController.AdminList),
		auth.RequirePermission(models.PermManageWebsite))
	adm.Get("/site-content/{key}", "admin.content.show", ctx.Wrap(contentController.AdminGet),
		auth.RequirePermission(models.PermManageWebsite))
	adm.Put("/site-content/{key}", "admin.content.update", ctx.Wrap(contentController.AdminUpdate),
		auth.RequirePermission(models.PermManageWebsite))

	adm.Get("/reviews", "admin.reviews.list", ctx.Wrap(reviewController.AdminList),
		auth.RequirePermission(models.PermManageProducts))
	adm.Put("/reviews/{id}", "admin.reviews.moderate", ctx.Wrap(reviewController.Moderate),
		auth.RequirePermission(models.PermManageProducts))
	adm.Delete("/reviews/{id}", "admin.reviews.delete", ctx.Wrap(reviewController.Delete),
		auth.RequirePermission(models.PermManageProducts))

	adm.Get("/stats", "admin.stats", ctx.Wrap(statsController.Dashboard),
		auth.RequirePermission(models.PermViewStats))
	adm.Get("/stats/sales-chart", "admin.stats.sales", ctx.Wrap(statsController.SalesChart),
		auth.RequirePermission(models.PermViewStats))
	adm.Get("/stats/top-products", "admin.stats.top", ctx.Wrap(statsController.TopProducts),
		auth.RequirePermission(models.PermViewStats))

	adm.Get("/admins", "admin.admins.list", ctx.Wrap(adminController.List),
		auth.RequirePermission(models.PermManageAdmins))
	adm.Post("/admins", "admin.admins.create", ctx.Wrap(adminController.Create),
		auth.RequirePermission(models.PermManageAdmins))
	adm.Put("/admins/{id}", "admin.admins.update", ctx.Wrap(adminController.Update),
		auth.RequirePermission(models.PermManageAdmins))
	adm.Delete("/admins/{id}", "admin.admins.delete", ctx.Wrap(adminController.Delete),
		auth.RequirePermission(models.PermManageAdmins))

	adm.Post("/upload", "admin.upload", ctx.Wrap(uploadController.Upload))
	adm.Delete("/upload", "admin.upload.delete", ctx.Wrap(uploadController.Delete))

	// Tenant registry, super admin only.
	sa := admin.Group("/sites", authed, auth.RequireSuperAdmin)
	sa.Get("", "admin.sites.list", ctx.Wrap(siteController.List))
	sa.Post("", "admin.sites.create", ctx.Wrap(siteController.Create))
	sa.Get("/{id}", "admin.sites.show", ctx.Wrap(siteController.Get))
	sa.Put("/{id}", "admin.sites.update", ctx.Wrap(siteController.Update))
	sa.Delete("/{id}", "admin.sites.delete", ctx.Wrap(siteController.Delete))

	// Live order feed for the back office, one socket per site.
	r.HandleFunc("/api/admin/orders/feed", orderFeedHandler(d))

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
}

// orderFeedHandler upgrades an admin connection to a websocket scoped
// to one site. Browsers cannot set Authorization headers on websocket
// upgrades, so the token rides in the query string here.
func orderFeedHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			response.Error(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		claims, err := jwtauth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		p, err := d.Auth.ResolvePrincipal(r.Context(), claims)
		if err != nil || !p.IsAdmin() {
			response.Error(w, http.StatusForbidden, "Admin access required")
			return
		}
		scope, err := d.Scopes.Resolve(r.Context(), p, r.URL.Query().Get("site"))
		if err != nil {
			response.Error(w, http.StatusForbidden, "You do not have access to this site")
			return
		}
		if err := ws.Upgrade(w, r, d.OrderHub, scope.Hex()); err != nil {
			response.Error(w, http.StatusBadRequest, "Websocket upgrade failed")
		}
	}
}
