package tags

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/blogly/pkg/blogly/store"
	"github.com/mikepea/blogly/pkg/blogly/web"
	"github.com/rs/zerolog"
)

// Handler handles tag pages
type Handler struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewHandler creates a new tags handler
func NewHandler(s *store.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		store:  s,
		logger: logger.With().Str("handler", "tags").Logger(),
	}
}

// TagForm represents the submitted new/edit tag form.
// Posts holds the ids of the checked posts.
type TagForm struct {
	Name  string `form:"name" binding:"required"`
	Posts []uint `form:"posts"`
}

func (f TagForm) input() store.TagInput {
	return store.TagInput{
		Name:    f.Name,
		PostIDs: f.Posts,
	}
}

// List renders all tags
func (h *Handler) List(c *gin.Context) {
	tags, err := h.store.ListTags(c.Request.Context())
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "tags_index.html", gin.H{
		"Title": "Tags",
		"Tags":  tags,
	})
}

// Show renders a tag and the posts carrying it
func (h *Handler) Show(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	tag, err := h.store.GetTag(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "tags_show.html", gin.H{
		"Title": tag.Name,
		"Tag":   tag,
	})
}

// NewForm renders the form for a new tag
func (h *Handler) NewForm(c *gin.Context) {
	posts, err := h.store.ListPosts(c.Request.Context())
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "tags_new.html", gin.H{
		"Title": "Create a tag",
		"Posts": posts,
	})
}

// Create adds a tag and redirects to the tag list
func (h *Handler) Create(c *gin.Context) {
	var form TagForm
	if err := c.ShouldBind(&form); err != nil {
		web.RenderError(c, h.logger, web.BindError(err))
		return
	}

	tag, err := h.store.CreateTag(c.Request.Context(), form.input())
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	h.logger.Info().Uint("tag_id", tag.ID).Str("name", tag.Name).Msg("tag created")
	web.Redirect(c, "/tags")
}

// EditForm renders the form for editing a tag
func (h *Handler) EditForm(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	tag, err := h.store.GetTag(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	posts, err := h.store.ListPosts(c.Request.Context())
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "tags_edit.html", gin.H{
		"Title": "Edit a tag",
		"Tag":   tag,
		"Posts": posts,
	})
}

// Update renames a tag, replaces its posts and redirects to the tag list
func (h *Handler) Update(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.store.RequireTag(c.Request.Context(), id); err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	var form TagForm
	if err := c.ShouldBind(&form); err != nil {
		web.RenderError(c, h.logger, web.BindError(err))
		return
	}

	if _, err := h.store.UpdateTag(c.Request.Context(), id, form.input()); err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	web.Redirect(c, "/tags")
}

// Delete removes a tag; its posts are kept
func (h *Handler) Delete(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteTag(c.Request.Context(), id); err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	h.logger.Info().Uint("tag_id", id).Msg("tag deleted")
	web.Redirect(c, "/tags")
}

// RegisterRoutes registers tag routes
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	rg := r.Group("/tags")
	rg.GET("", h.List)
	rg.GET("/add-tag", h.NewForm)
	rg.POST("/add-tag", h.Create)
	rg.GET("/:id", h.Show)
	rg.GET("/:id/edit", h.EditForm)
	rg.POST("/:id/edit", h.Update)
	rg.POST("/:id/delete", h.Delete)
}
