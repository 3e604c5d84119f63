package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"fiesta-storefront/internal/config"
	"fiesta-storefront/internal/domain"
	bundlesvc "fiesta-storefront/internal/service/bundle"
	categorysvc "fiesta-storefront/internal/service/category"
	productsvc "fiesta-storefront/internal/service/product"
	settingssvc "fiesta-storefront/internal/service/settings"
	usersvc "fiesta-storefront/internal/service/user"
)

// ProductService is the slice of the product service the handlers need.
type ProductService interface {
	List(ctx context.Context, q domain.ProductQuery) (*domain.ProductsPage, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in productsvc.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	ContactLink(ctx context.Context, id, channel, phone string) (*domain.ContactLink, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in categorysvc.CreateInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in categorysvc.UpdateInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type BundleService interface {
	List(ctx context.Context) ([]domain.Bundle, error)
	GetByID(ctx context.Context, id string) (*domain.Bundle, error)
	Create(ctx context.Context, in bundlesvc.CreateInput) (*domain.Bundle, error)
	Update(ctx context.Context, id string, in bundlesvc.UpdateInput) (*domain.Bundle, error)
	Delete(ctx context.Context, id string) error
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, in settingssvc.UpdateInput) (*domain.SiteSettings, error)
}

type UserService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, in usersvc.ProfileInput) (*domain.User, error)
}

// Deps bundles the services the router depends on.
type Deps struct {
	ProductSvc  ProductService
	CategorySvc CategoryService
	BundleSvc   BundleService
	SettingsSvc SettingsService
	UserSvc     UserService
	UploadDir   string
	FileURLHost string
}

// buildRouter wires routes for the API.
func buildRouter(cfg config.Config, logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil || deps.CategorySvc == nil || deps.BundleSvc == nil ||
		deps.SettingsSvc == nil || deps.UserSvc == nil {
		return nil, errors.New("httpserver: missing service dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	if deps.UploadDir != "" {
		router.Static("/uploads", deps.UploadDir)
	}

	api := router.Group(cfg.APIBasePath)
	authed := requireAuth(deps.UserSvc)

	api.GET("/products", listProductsHandler(deps.ProductSvc))
	api.GET("/products/by-slug/:slug", productBySlugHandler(deps.ProductSvc))
	api.GET("/products/contact-link/:id", contactLinkHandler(deps.ProductSvc))
	api.GET("/products/:id", productByIDHandler(deps.ProductSvc))
	api.POST("/products", authed, createProductHandler(deps.ProductSvc))
	api.PATCH("/products/:id", authed, updateProductHandler(deps.ProductSvc))
	api.DELETE("/products/:id", authed, deleteProductHandler(deps.ProductSvc))
	api.POST("/products/upload-image", authed, uploadImageHandler(deps))

	api.GET("/categories", listCategoriesHandler(deps.CategorySvc))
	api.GET("/categories/:id", categoryByIDHandler(deps.CategorySvc))
	api.POST("/categories", authed, createCategoryHandler(deps.CategorySvc))
	api.PATCH("/categories/:id", authed, updateCategoryHandler(deps.CategorySvc))
	api.DELETE("/categories/:id", authed, deleteCategoryHandler(deps.CategorySvc))

	api.GET("/packages", listBundlesHandler(deps.BundleSvc))
	api.GET("/packages/:id", bundleByIDHandler(deps.BundleSvc))
	api.POST("/packages", authed, createBundleHandler(deps.BundleSvc))
	api.PATCH("/packages/:id", authed, updateBundleHandler(deps.BundleSvc))
	api.DELETE("/packages/:id", authed, deleteBundleHandler(deps.BundleSvc))

	api.GET("/settings", getSettingsHandler(deps.SettingsSvc))
	api.PUT("/settings", authed, updateSettingsHandler(deps.SettingsSvc))

	api.POST("/auth/login", loginHandler(deps.UserSvc))
	api.POST("/auth/register", registerHandler(deps.UserSvc))
	api.GET("/auth/me", authed, meHandler)
	api.PATCH("/auth/me", authed, updateMeHandler(deps.UserSvc))

	return router, nil
}
