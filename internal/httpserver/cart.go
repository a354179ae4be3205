package httpserver

import (
	"errors"
	"net/http"

	"cart-api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	cartCookieName = "cart_id"
	// Outlives the 7-day purge window so a purged cart's stale cookie simply
	// resolves to a fresh cart.
	cartCookieMaxAge = 30 * 24 * 60 * 60
)

type cartHandler struct {
	svc    cartService
	logger zerolog.Logger
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// currentCart resolves the session cart, creating one and binding its id to
// the session cookie when needed.
func (h *cartHandler) currentCart(c *gin.Context) (*domain.Cart, error) {
	sessionID, _ := c.Cookie(cartCookieName)
	cart, created, err := h.svc.GetOrCreate(c.Request.Context(), sessionID)
	if err != nil {
		return nil, err
	}
	if created {
		c.SetCookie(cartCookieName, cart.ID, cartCookieMaxAge, "/", "", false, true)
	}
	return cart, nil
}

// GET /cart
func (h *cartHandler) show(c *gin.Context) {
	cart, err := h.currentCart(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*cart))
}

// POST /cart and POST /cart/add_item
func (h *cartHandler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	cart, err := h.currentCart(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	updated, err := h.svc.AddItem(c.Request.Context(), cart.ID, req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*updated))
}

// DELETE /cart/:productId
func (h *cartHandler) removeItem(c *gin.Context) {
	cart, err := h.currentCart(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	updated, err := h.svc.RemoveItem(c.Request.Context(), cart.ID, c.Param("productId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*updated))
}

func (h *cartHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("cart request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
