package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/blogly/pkg/blogly/store"
	"github.com/mikepea/blogly/pkg/blogly/web"
	"github.com/rs/zerolog"
)

// Handler handles user pages
type Handler struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewHandler creates a new users handler
func NewHandler(s *store.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		store:  s,
		logger: logger.With().Str("handler", "users").Logger(),
	}
}

// UserForm represents the submitted new/edit user form
type UserForm struct {
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	ImageURL  string `form:"image_url"`
}

func (f UserForm) input() store.UserInput {
	return store.UserInput{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		ImageURL:  f.ImageURL,
	}
}

// List renders all users
func (h *Handler) List(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "users_index.html", gin.H{
		"Title": "Users",
		"Users": users,
	})
}

// NewForm renders the form for a new user
func (h *Handler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "users_new.html", gin.H{
		"Title": "Create a user",
	})
}

// Create adds a user and redirects to the user list
func (h *Handler) Create(c *gin.Context) {
	var form UserForm
	if err := c.ShouldBind(&form); err != nil {
		web.RenderError(c, h.logger, web.BindError(err))
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), form.input())
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	h.logger.Info().Uint("user_id", user.ID).Msg("user created")
	web.Redirect(c, "/users")
}

// Show renders a user and their posts
func (h *Handler) Show(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "users_show.html", gin.H{
		"Title": user.FullName(),
		"User":  user,
	})
}

// EditForm renders the form for editing a user
func (h *Handler) EditForm(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "users_edit.html", gin.H{
		"Title": "Edit a user",
		"User":  user,
	})
}

// Update overwrites a user and redirects to the user list
func (h *Handler) Update(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.store.RequireUser(c.Request.Context(), id); err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	var form UserForm
	if err := c.ShouldBind(&form); err != nil {
		web.RenderError(c, h.logger, web.BindError(err))
		return
	}

	if _, err := h.store.UpdateUser(c.Request.Context(), id, form.input()); err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	web.Redirect(c, "/users")
}

// Delete removes a user with all their posts
func (h *Handler) Delete(c *gin.Context) {
	id, ok := web.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteUser(c.Request.Context(), id); err != nil {
		web.RenderError(c, h.logger, err)
		return
	}

	h.logger.Info().Uint("user_id", id).Msg("user deleted")
	web.Redirect(c, "/users")
}

// RegisterRoutes registers user routes
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	rg := r.Group("/users")
	rg.GET("", h.List)
	rg.GET("/new_user", h.NewForm)
	rg.POST("/new_user", h.Create)
	rg.GET("/:id", h.Show)
	rg.GET("/:id/edit", h.EditForm)
	rg.POST("/:id/edit", h.Update)
	rg.POST("/:id/delete", h.Delete)
}
