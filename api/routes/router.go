package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chocokroko/chocokroko-backend/api/controllers"
	"github.com/chocokroko/chocokroko-backend/api/middleware"
	authsvc "github.com/chocokroko/chocokroko-backend/internal/auth"
	"github.com/chocokroko/chocokroko-backend/internal/catalog"
	"github.com/chocokroko/chocokroko-backend/internal/gallery"
	"github.com/chocokroko/chocokroko-backend/internal/media"
	"github.com/chocokroko/chocokroko-backend/internal/orders"
	"github.com/chocokroko/chocokroko-backend/internal/reviews"
	"github.com/chocokroko/chocokroko-backend/internal/wizard"
	"github.com/chocokroko/chocokroko-backend/pkg/auth/session"
	"github.com/chocokroko/chocokroko-backend/pkg/config"
	"github.com/chocokroko/chocokroko-backend/pkg/enums"
	"github.com/chocokroko/chocokroko-backend/pkg/logger"
	"github.com/chocokroko/chocokroko-backend/pkg/metrics"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
}

// Params bundles everything the router needs.
type Params struct {
	Config         *config.Config
	Logger         *logger.Logger
	Metrics        *metrics.HTTPMetrics
	Dependencies   map[string]controllers.Pinger
	SessionManager sessionManager
	AuthService    authsvc.Service
	CatalogService catalog.Service
	GalleryService gallery.Service
	ReviewService  reviews.Service
	WizardService  wizard.Service
	OrderService   orders.Service
	MediaService   media.Service
}

// NewRouter wires every endpoint with the shared middleware chain.
func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	if p.Metrics != nil {
		r.Use(p.Metrics.Middleware)
	}
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Logging(logg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Dependencies))
	})
	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.ListCategories(p.CatalogService, logg))
			r.Get("/categories/{categoryID}/products", controllers.ListCategoryProducts(p.CatalogService, logg))
			r.Get("/products/{productID}", controllers.GetProduct(p.CatalogService, logg))
			r.Get("/products/{productID}/sizes", controllers.ListProductSizes(p.CatalogService, logg))
			r.Get("/states", controllers.ListStates(p.CatalogService, logg))
		})

		r.Get("/gallery", controllers.ListGallery(p.GalleryService, logg))

		r.Get("/reviews", controllers.ListReviews(p.ReviewService, logg))
		r.Post("/reviews", controllers.SubmitReview(p.ReviewService, logg))

		r.Route("/wizard", func(r chi.Router) {
			r.Post("/", controllers.StartWizard(p.WizardService, logg))
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", controllers.GetWizard(p.WizardService, logg))
				r.Post("/customer", controllers.WizardSetCustomer(p.WizardService, logg))
				r.Post("/selection", controllers.WizardSetSelection(p.WizardService, logg))
				r.Post("/cart/items", controllers.WizardAddItem(p.WizardService, logg))
				r.Patch("/cart/items/{index}", controllers.WizardUpdateItem(p.WizardService, logg))
				r.Delete("/cart/items/{index}", controllers.WizardRemoveItem(p.WizardService, logg))
				r.Post("/image", controllers.WizardSetImage(p.WizardService, logg))
				r.Post("/advance", controllers.WizardAdvance(p.WizardService, logg))
				r.Post("/back", controllers.WizardBack(p.WizardService, logg))
				r.Post("/submit", controllers.WizardSubmit(p.WizardService, logg))
			})
		})

		r.Get("/orders/{orderID}/print", controllers.OrderPrintView(p.WizardService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(p.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
			r.Post("/refresh", controllers.AuthRefresh(p.SessionManager, cfg.JWT, logg))
			if !cfg.App.IsProd() {
				r.Post("/register", controllers.AuthRegister(p.AuthService, logg))
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))
			r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminListCategories(p.CatalogService, logg))
				r.Post("/", controllers.AdminCreateCategory(p.CatalogService, logg))
				r.Put("/{categoryID}", controllers.AdminUpdateCategory(p.CatalogService, logg))
				r.Delete("/{categoryID}", controllers.AdminDeleteCategory(p.CatalogService, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(p.CatalogService, logg))
				r.Post("/", controllers.AdminCreateProduct(p.CatalogService, logg))
				r.Get("/{productID}", controllers.AdminGetProduct(p.CatalogService, logg))
				r.Put("/{productID}", controllers.AdminUpdateProduct(p.CatalogService, logg))
				r.Put("/{productID}/sizes", controllers.AdminReplaceProductSizes(p.CatalogService, logg))
				r.Delete("/{productID}", controllers.AdminDeleteProduct(p.CatalogService, logg))
			})

			r.Route("/states", func(r chi.Router) {
				r.Get("/", controllers.AdminListStates(p.CatalogService, logg))
				r.Post("/", controllers.AdminCreateState(p.CatalogService, logg))
				r.Put("/{stateID}", controllers.AdminUpdateState(p.CatalogService, logg))
				r.Delete("/{stateID}", controllers.AdminDeleteState(p.CatalogService, logg))
			})

			r.Route("/gallery", func(r chi.Router) {
				r.Get("/", controllers.AdminListGallery(p.GalleryService, logg))
				r.Post("/", controllers.AdminCreateGalleryItem(p.GalleryService, logg))
				r.Put("/{itemID}", controllers.AdminUpdateGalleryItem(p.GalleryService, logg))
				r.Delete("/{itemID}", controllers.AdminDeleteGalleryItem(p.GalleryService, logg))
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", controllers.AdminListReviews(p.ReviewService, logg))
				r.Patch("/{reviewID}/approval", controllers.AdminSetReviewApproval(p.ReviewService, logg))
				r.Delete("/{reviewID}", controllers.AdminDeleteReview(p.ReviewService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(p.OrderService, logg))
				r.Get("/{orderID}", controllers.AdminGetOrder(p.OrderService, logg))
				r.Patch("/{orderID}/status", controllers.AdminUpdateOrderStatus(p.OrderService, logg))
			})

			r.Get("/dashboard", controllers.AdminDashboard(p.OrderService, p.ReviewService, logg))
			r.Post("/media", controllers.MediaUpload(p.MediaService, cfg.Media.MaxUploadBytes(), logg))
		})
	})

	return r
}
