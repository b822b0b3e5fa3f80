package posts

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/blogly/pkg/blogly/store"
	"github.com/mikepea/blogly/pkg/blogly/web"
	"github.com/rs/zerolog"
)

// Handler handles post pages
type Handler struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewHandler creates a new posts handler
func NewHandler(s *store.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		store:  s,
		logger: logger.With().Str("handler", "posts").Logger(),
	}
}

// PostForm represents the submitted new/edit post form.
// Tags holds the ids of the checked tags.
type PostForm struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
	Tags    []uint `form:"tags"`
}

func (f PostForm) input() store.PostInput {
	return store.PostInput{
		Title:   f.Title,
		Content: f.Content,
		TagIDs:  f.Tags,
	}
}

// userPath is the page a post's actions return to
func userPath(userID uint) string {
	return fmt.Sprintf("/users/%d", userID)
}

// NewForm renders the form for a new post by the user
func (h *Handler) NewForm(c *gin.Context) {
	userID, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	tags, err := h.store.ListTags(c.Request.Context())
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "posts_new.html", gin.H{
		"Title": "Add post for " + user.FullName(),
		"User":  user,
		"Tags":  tags,
	})
}

// Create adds a post for the user and redirects to the user's page
func (h *Handler) Create(c *gin.Context) {
	userID, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.store.RequireUser(c.Request.Context(), userID); err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		web.RenderError(c, h.logger, web.BindError(err))
		return
	}

	post, err := h.store.CreatePost(c.Request.Context(), userID, form.input())
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	h.logger.Info().Uint("post_id", post.ID).Uint("user_id", userID).Int("tags", len(post.Tags)).Msg("post created")
	web.Redirect(c, userPath(userID))
}

// Show renders a post
func (h *Handler) Show(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	post, err := h.store.GetPost(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "posts_show.html", gin.H{
		"Title": post.Title,
		"Post":  post,
	})
}

// EditForm renders the form for editing a post
func (h *Handler) EditForm(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	post, err := h.store.GetPost(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	tags, err := h.store.ListTags(c.Request.Context())
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "posts_edit.html", gin.H{
		"Title": "Edit post",
		"Post":  post,
		"Tags":  tags,
	})
}

// Update overwrites a post, replaces its tags and redirects to the author's page
func (h *Handler) Update(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.store.RequirePost(c.Request.Context(), id); err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		web.RenderError(c, h.logger, web.BindError(err))
		return
	}

	post, err := h.store.UpdatePost(c.Request.Context(), id, form.input())
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	web.Redirect(c, userPath(post.UserID))
}

// Delete removes a post and redirects to the author's page
func (h *Handler) Delete(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	post, err := h.store.DeletePost(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	h.logger.Info().Uint("post_id", post.ID).Msg("post deleted")
	web.Redirect(c, userPath(post.UserID))
}

// RegisterRoutes registers post routes, including the ones nested under a user
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/users/:id/posts/new", h.NewForm)
	r.POST("/users/:id/posts/new", h.Create)

	rg := r.Group("/posts")
	rg.GET("/:id", h.Show)
	rg.GET("/:id/edit", h.EditForm)
	rg.POST("/:id/edit", h.Update)
	rg.POST("/:id/delete", h.Delete)
}
