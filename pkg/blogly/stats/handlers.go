package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/blogly/pkg/blogly/store"
	"github.com/mikepea/blogly/pkg/blogly/web"
	"github.com/rs/zerolog"
)

// Handler handles stats requests
type Handler struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewHandler creates a new stats handler
func NewHandler(s *store.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		store:  s,
		logger: logger.With().Str("handler", "stats").Logger(),
	}
}

// GetStats returns blog-wide counts
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		web.JSONError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers stats routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.GetStats)
}
