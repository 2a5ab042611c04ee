package routes

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/handlers"
	"github.com/Rakhulsr/go-kindergarten/app/handlers/admin"
	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/middlewares"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/Rakhulsr/go-kindergarten/app/utils/sessions"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

const csrfHeader = "X-CSRF-Token"

// Options carries everything the router wires together. Redis, Uploader and
// Notifier may be nil.
type Options struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Render      *render.Render
	SessionKeys [][]byte
	CSRFKey     []byte
	Secure      bool
	Location    *time.Location
	Now         func() time.Time
	Uploader    services.ImageUploader
	Notifier    services.OrderNotifier
	UploadDir   string
	StaticDir   string
	AccessLog   bool
}

func NewRouter(opts Options) *mux.Router {
	rnd := opts.Render
	validate := helpers.NewValidator()

	userRepo := repositories.NewUserRepository(opts.DB)
	categoryRepo := repositories.NewCategoryRepository(opts.DB)
	productRepo := repositories.NewProductRepository(opts.DB)
	orderRepo := repositories.NewOrderRepository(opts.DB)
	orderItemRepo := repositories.NewOrderItemRepository(opts.DB)
	reportRepo := repositories.NewReportRepository(opts.DB)

	var limiter services.LoginLimiter = services.NoopLoginLimiter{}
	if opts.Redis != nil {
		limiter = services.NewRedisLoginLimiter(opts.Redis)
	}

	uploader := opts.Uploader
	if uploader == nil {
		uploader = services.NewLocalUploader(opts.UploadDir, "/uploads")
	}

	reportSvc := services.NewReportService(reportRepo, opts.Location)
	if opts.Now != nil {
		reportSvc.WithClock(opts.Now)
	}
	productSvc := services.NewProductService(productRepo, categoryRepo, orderItemRepo, uploader)
	categorySvc := services.NewCategoryService(categoryRepo)
	userSvc := services.NewUserService(userRepo)
	orderSvc := services.NewOrderService(orderRepo, orderItemRepo, productRepo, opts.Notifier)
	authSvc := services.NewAuthService(userRepo, limiter)

	sessionStore := sessions.NewCookieSessionStore(opts.Secure, opts.SessionKeys...)

	adminHandler := admin.NewAdminHandler(rnd, validate, reportSvc, productSvc, categorySvc, userSvc, orderSvc, uploader)
	authHandler := handlers.NewAuthHandler(rnd, authSvc, sessionStore, validate)
	productHandler := handlers.NewProductHandler(productSvc, categorySvc, rnd)
	orderHandler := handlers.NewOrderHandler(rnd, orderSvc, validate)
	homeHandler := handlers.NewHomeHandler(rnd, categoryRepo, productSvc)

	csrfMiddleware := csrf.Protect(
		opts.CSRFKey,
		csrf.Secure(opts.Secure),
		csrf.Path("/"),
		csrf.RequestHeader(csrfHeader),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = rnd.JSON(w, http.StatusForbidden, helpers.ErrorResponse{Error: "Token CSRF tidak valid. Muat ulang halaman."})
		})),
	)

	// Without TLS the origin check in csrf would compare against https and
	// reject every unsafe request.
	protect := func(next http.Handler) http.Handler {
		h := csrfMiddleware(next)
		if opts.Secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.RealIP)
	if opts.AccessLog {
		router.Use(middleware.Logger)
	}
	router.Use(middleware.Recoverer)
	router.Use(middlewares.SessionUserMiddleware(sessionStore, userRepo))

	if opts.UploadDir != "" {
		router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}
	if opts.StaticDir != "" {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}

	public := router.PathPrefix("/api/public").Subrouter()
	public.HandleFunc("/categories", productHandler.Categories).Methods(http.MethodGet)
	public.HandleFunc("/products", productHandler.Products).Methods(http.MethodGet)
	public.HandleFunc("/products/{slug}", productHandler.ProductDetail).Methods(http.MethodGet)
	public.HandleFunc("/orders", orderHandler.CreateOrder).Methods(http.MethodPost)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(protect)
	api.HandleFunc("/auth/csrf", authHandler.CSRFToken).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(middlewares.APIAuthMiddleware(rnd))

	protected.HandleFunc("/dashboard/reports", adminHandler.GetReports).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/transactions", adminHandler.GetTransactions).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/stats", adminHandler.GetStats).Methods(http.MethodGet)

	// Staff manage the catalog and orders; accounts are admin-only.
	adminOnly := middlewares.RequireRole(rnd, models.RoleAdmin)
	protected.Handle("/users", adminOnly(http.HandlerFunc(adminHandler.ListUsers))).Methods(http.MethodGet)
	protected.Handle("/users", adminOnly(http.HandlerFunc(adminHandler.CreateUser))).Methods(http.MethodPost)
	protected.Handle("/users/{id}", adminOnly(http.HandlerFunc(adminHandler.GetUser))).Methods(http.MethodGet)
	protected.Handle("/users/{id}", adminOnly(http.HandlerFunc(adminHandler.UpdateUser))).Methods(http.MethodPut)
	protected.Handle("/users/{id}", adminOnly(http.HandlerFunc(adminHandler.DeleteUser))).Methods(http.MethodDelete)

	protected.HandleFunc("/categories", adminHandler.ListCategories).Methods(http.MethodGet)
	protected.HandleFunc("/categories", adminHandler.CreateCategory).Methods(http.MethodPost)
	protected.HandleFunc("/categories/{id}", adminHandler.GetCategory).Methods(http.MethodGet)
	protected.HandleFunc("/categories/{id}", adminHandler.UpdateCategory).Methods(http.MethodPut)
	protected.HandleFunc("/categories/{id}", adminHandler.DeleteCategory).Methods(http.MethodDelete)

	protected.HandleFunc("/products", adminHandler.ListProducts).Methods(http.MethodGet)
	protected.HandleFunc("/products", adminHandler.CreateProduct).Methods(http.MethodPost)
	protected.HandleFunc("/products/{id}", adminHandler.GetProduct).Methods(http.MethodGet)
	protected.HandleFunc("/products/{id}", adminHandler.UpdateProduct).Methods(http.MethodPut)
	protected.HandleFunc("/products/{id}", adminHandler.DeleteProduct).Methods(http.MethodDelete)
	protected.HandleFunc("/products/{id}/images", adminHandler.AddProductImage).Methods(http.MethodPost)
	protected.HandleFunc("/products/{id}/images/{imageId}", adminHandler.DeleteProductImage).Methods(http.MethodDelete)

	protected.HandleFunc("/orders", adminHandler.ListOrders).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{id}", adminHandler.GetOrder).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{id}", adminHandler.UpdateOrder).Methods(http.MethodPatch)
	protected.HandleFunc("/orders/{id}", adminHandler.DeleteOrder).Methods(http.MethodDelete)

	protected.HandleFunc("/uploads", adminHandler.Upload).Methods(http.MethodPost)

	pages := router.NewRoute().Subrouter()
	pages.Use(protect)
	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/about", homeHandler.About).Methods(http.MethodGet)
	pages.HandleFunc("/programs", homeHandler.Programs).Methods(http.MethodGet)
	pages.HandleFunc("/contact", homeHandler.Contact).Methods(http.MethodGet)
	pages.HandleFunc("/admin/login", authHandler.LoginPage).Methods(http.MethodGet)
	pages.Handle("/admin", middlewares.AdminPageMiddleware(http.HandlerFunc(adminHandler.DashboardPage))).Methods(http.MethodGet)

	return router
}
