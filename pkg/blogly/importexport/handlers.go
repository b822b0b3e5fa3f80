package importexport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/blogly/pkg/blogly/store"
	"github.com/mikepea/blogly/pkg/blogly/web"
	"github.com/rs/zerolog"
)

// Handler handles import/export requests
type Handler struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewHandler creates a new import/export handler
func NewHandler(s *store.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		store:  s,
		logger: logger.With().Str("handler", "importexport").Logger(),
	}
}

// Import adds the users, posts and tags of a snapshot
func (h *Handler) Import(c *gin.Context) {
	var snapshot store.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		web.JSONError(c, h.logger, web.BindError(err))
		return
	}

	result, err := h.store.Import(c.Request.Context(), snapshot)
	if err != nil {
		web.JSONError(c, h.logger, err)
		return
	}

	h.logger.Info().
		Int("users", result.Users).
		Int("posts", result.Posts).
		Int("tags", result.Tags).
		Int("skipped", result.Skipped).
		Msg("snapshot imported")
	c.JSON(http.StatusOK, result)
}

// Export returns a snapshot of the whole blog
func (h *Handler) Export(c *gin.Context) {
	snapshot, err := h.store.Export(c.Request.Context())
	if err != nil {
		web.JSONError(c, h.logger, err)
		return
	}

	// Set content disposition for download
	if c.Query("download") == "true" {
		filename := "blogly-export-" + time.Now().UTC().Format("20060102") + ".json"
		c.Header("Content-Disposition", "attachment; filename="+filename)
	}

	c.JSON(http.StatusOK, snapshot)
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/import", h.Import)
	rg.GET("/export", h.Export)
}
