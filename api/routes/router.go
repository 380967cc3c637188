package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arontec/scm-backend/api/controllers"
	"github.com/arontec/scm-backend/api/middleware"
	authsvc "github.com/arontec/scm-backend/internal/auth"
	cartsvc "github.com/arontec/scm-backend/internal/cart"
	"github.com/arontec/scm-backend/internal/catalog"
	excelsvc "github.com/arontec/scm-backend/internal/excel"
	mediasvc "github.com/arontec/scm-backend/internal/media"
	notifsvc "github.com/arontec/scm-backend/internal/notifications"
	proposalsvc "github.com/arontec/scm-backend/internal/proposal"
	quotesvc "github.com/arontec/scm-backend/internal/quotes"
	usersvc "github.com/arontec/scm-backend/internal/users"
	"github.com/arontec/scm-backend/pkg/config"
	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/imageproxy"
	"github.com/arontec/scm-backend/pkg/logger"
	"github.com/arontec/scm-backend/pkg/metrics"
	"github.com/arontec/scm-backend/pkg/redis"
	"github.com/arontec/scm-backend/pkg/session"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth          authsvc.Service
	Catalog       catalog.Service
	Cart          cartsvc.Service
	Quotes        quotesvc.Service
	Users         usersvc.Service
	Notifications notifsvc.Service
	Excel         excelsvc.Service
	Media         mediasvc.Service
	Proposal      proposalsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	sessions session.Checker,
	httpMetrics *metrics.HTTPMetrics,
	fetcher *imageproxy.Fetcher,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App),
	)

	loginPolicy := middleware.LoginRateLimitPolicy(cfg.AuthRateLimit)
	registerPolicy := middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit)

	requireAuth := middleware.Auth(cfg.Session, sessions, logg)
	requireApproved := middleware.RequireApproved(logg)
	requireAdmin := middleware.RequireAdmin(logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Live())
		r.Get("/ready", controllers.Ready(dbClient, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	if cfg.Uploads.PublicPath != "" {
		fileServer := http.StripPrefix(cfg.Uploads.PublicPath, http.FileServer(http.Dir(cfg.Uploads.Dir)))
		r.Get(cfg.Uploads.PublicPath+"/*", fileServer.ServeHTTP)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register", controllers.Register(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.Login(svcs.Auth, cfg.Session, logg))
		r.Post("/logout", controllers.Logout(svcs.Auth, cfg.Session, logg))
		r.Post("/reset-password-check", controllers.ResetPasswordCheck(svcs.Auth, logg))
		r.Post("/reset-password", controllers.ResetPassword(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", controllers.Me(svcs.Auth, logg))
			r.Put("/profile", controllers.UpdateProfile(svcs.Auth, logg))
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(svcs.Catalog, logg))
		r.Get("/categories", controllers.ListCategories(svcs.Catalog, logg))
		r.Get("/brands", controllers.ListDistinctField(svcs.Catalog, "brand", logg))
		r.Get("/manufacturers", controllers.ListDistinctField(svcs.Catalog, "manufacturer", logg))
		r.Get("/origins", controllers.ListDistinctField(svcs.Catalog, "origin", logg))
		r.Get("/proxy-image", controllers.ProxyImage(fetcher, logg))
		r.Get("/{id}", controllers.GetProduct(svcs.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", controllers.CreateProduct(svcs.Catalog, logg))
			r.Post("/categories", controllers.CreateCategory(svcs.Catalog, logg))
			r.Delete("/recent", controllers.DeleteRecentProducts(svcs.Catalog, logg))
			r.Delete("/range", controllers.DeleteProductRange(svcs.Catalog, logg))
			r.Put("/{id}", controllers.UpdateProduct(svcs.Catalog, logg))
			r.Delete("/{id}", controllers.DeleteProduct(svcs.Catalog, logg))
			r.Patch("/{id}/availability", controllers.SetProductAvailability(svcs.Catalog, logg))
			r.Patch("/{id}/new-status", controllers.SetProductNewStatus(svcs.Catalog, logg))
			r.Patch("/{id}/display-order", controllers.SetProductDisplayOrder(svcs.Catalog, logg))
		})
	})

	r.Get("/api/notifications/active", controllers.ListActiveNotifications(svcs.Notifications, logg))

	r.Group(func(r chi.Router) {
		r.Use(requireAuth, requireApproved)
		r.Post("/api/cart", controllers.AddCartLine(svcs.Cart, logg))
		r.Get("/api/cart", controllers.ListCartLines(svcs.Cart, logg))
		r.Post("/api/quotes", controllers.SubmitQuote(svcs.Quotes, logg))
		r.Get("/api/quotes", controllers.ListQuotes(svcs.Quotes, logg))
		r.Get("/api/quotes/{id}", controllers.GetQuote(svcs.Quotes, logg))
		r.Post("/api/proposal/export", controllers.ExportProposal(svcs.Proposal, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)
		r.Get("/members", controllers.ListMembers(svcs.Users, logg))
		r.Put("/members/{id}/approval", controllers.SetMemberApproval(svcs.Users, logg))
		r.Delete("/members/{id}", controllers.DeleteMember(svcs.Users, logg))
		r.Get("/quotes", controllers.AdminListQuotes(svcs.Quotes, logg))
		r.Put("/quotes/{id}", controllers.SetQuoteStatus(svcs.Quotes, logg))
		r.Get("/stats", controllers.AdminStats(svcs.Catalog, logg))
		r.Get("/notifications", controllers.ListAllNotifications(svcs.Notifications, logg))
		r.Post("/notifications", controllers.CreateNotification(svcs.Notifications, logg))
		r.Put("/notifications/{id}", controllers.UpdateNotification(svcs.Notifications, logg))
		r.Delete("/notifications/{id}", controllers.DeleteNotification(svcs.Notifications, logg))
	})

	r.Route("/api/excel", func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)
		r.Post("/upload", controllers.ImportProducts(svcs.Excel, logg))
		r.Post("/swap-prices", controllers.SwapPrices(svcs.Excel, logg))
		r.Post("/sync-prices", controllers.SyncSupplyPrices(svcs.Excel, logg))
		r.Post("/sync-shipping", controllers.SyncShippingFees(svcs.Excel, logg))
		r.Post("/fix-data", controllers.FixData(svcs.Excel, logg))
		r.Get("/export", controllers.ExportProducts(svcs.Excel, logg))
	})

	r.With(requireAuth, requireAdmin).
		Post("/api/upload", controllers.UploadImage(svcs.Media, logg))

	return r
}
