package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"souq-gateway/internal/domain"
	"souq-gateway/internal/events"
	cartsvc "souq-gateway/internal/service/cart"
)

// CartService is the unified cart operation surface.
type CartService interface {
	Add(ctx context.Context, in cartsvc.AddInput) bool
	Lines(ctx context.Context) []domain.CartLine
}

// WishlistService is the unified wishlist operation surface.
type WishlistService interface {
	Add(ctx context.Context, productID int64) bool
	Remove(ctx context.Context, productID int64) bool
	IDs(ctx context.Context) []int64
}

// ProductClient resolves catalog records for the slug proxy.
type ProductClient interface {
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

// SessionWriter manages the stored user record.
type SessionWriter interface {
	Current(ctx context.Context) *domain.User
	SetCurrent(ctx context.Context, u domain.User) error
	Clear(ctx context.Context) error
}

// Pinger verifies the state store is reachable, for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries the wired services into the router.
type Deps struct {
	Cart       CartService
	Wishlist   WishlistService
	Products   ProductClient
	Sessions   SessionWriter
	Bus        *events.Bus
	Store      Pinger // nil for stores without a health probe
	CORSOrigin []string
}

// buildRouter wires the storefront routes.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigin) == 0 || deps.CORSOrigin[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.CORSOrigin
	}
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))

	api := router.Group("/api")
	{
		api.GET("/cart", getCartHandler(deps.Cart))
		api.POST("/cart", addToCartHandler(deps.Cart))
		api.GET("/wishlist", getWishlistHandler(deps.Wishlist))
		api.POST("/wishlist", addToWishlistHandler(deps.Wishlist))
		api.DELETE("/wishlist/:productId", removeFromWishlistHandler(deps.Wishlist))
		api.GET("/products/:slug", productBySlugHandler(deps.Products))
		api.PUT("/session", putSessionHandler(deps.Sessions))
		api.DELETE("/session", deleteSessionHandler(deps.Sessions))
		api.GET("/events", eventsHandler(deps.Bus))
	}

	return router, nil
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "store not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
