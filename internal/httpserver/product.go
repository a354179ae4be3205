package httpserver

import (
	"errors"
	"net/http"

	"cart-api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type productHandler struct {
	catalog productCatalog
	logger  zerolog.Logger
}

// GET /products
func (h *productHandler) list(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list products failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// GET /products/:id
func (h *productHandler) get(c *gin.Context) {
	p, err := h.catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrProductNotFound.Error()})
			return
		}
		h.logger.Error().Err(err).Msg("get product failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}
