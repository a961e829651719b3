package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"souq-gateway/internal/domain"
	cartsvc "souq-gateway/internal/service/cart"
	"souq-gateway/internal/slug"
	"souq-gateway/internal/upstream"
)

func getCartHandler(cart CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines := cart.Lines(c.Request.Context())
		if lines == nil {
			lines = []domain.CartLine{}
		}
		c.JSON(http.StatusOK, gin.H{"cart": lines})
	}
}

func addToCartHandler(cart CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.AddInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		// The operation reports its own outcome through toasts and
		// events; the HTTP layer only relays the flag.
		ok := cart.Add(c.Request.Context(), in)
		c.JSON(http.StatusOK, gin.H{"success": ok})
	}
}

type wishlistRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
}

func getWishlistHandler(wl WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids := wl.IDs(c.Request.Context())
		if ids == nil {
			ids = []int64{}
		}
		c.JSON(http.StatusOK, gin.H{"wishlist": ids})
	}
}

func addToWishlistHandler(wl WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req wishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		ok := wl.Add(c.Request.Context(), req.ProductID)
		c.JSON(http.StatusOK, gin.H{"success": ok})
	}
}

func removeFromWishlistHandler(wl WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		ok := wl.Remove(c.Request.Context(), id)
		c.JSON(http.StatusOK, gin.H{"success": ok})
	}
}

func productBySlugHandler(products ProductClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("slug")
		if !slug.IsValid(raw) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid product slug"})
			return
		}
		id := slug.ExtractID(raw)
		if id == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid product slug"})
			return
		}
		p, err := products.Product(c.Request.Context(), id)
		if err != nil {
			var se *upstream.StatusError
			if errors.As(err, &se) && se.Code == http.StatusNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"product": p,
			"slug":    slug.ForProduct(p.ID, p.Name),
		})
	}
}

func putSessionHandler(sessions SessionWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var u domain.User
		if err := c.ShouldBindJSON(&u); err != nil || u.ID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user id required"})
			return
		}
		if err := sessions.SetCurrent(c.Request.Context(), u); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	}
}

func deleteSessionHandler(sessions SessionWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
