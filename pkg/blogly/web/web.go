// Package web holds the HTML templates of the blog and the helpers handlers
// use to render pages, errors and redirects.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/blogly/pkg/blogly/apperr"
	"github.com/mikepea/blogly/pkg/blogly/logging"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page template
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// Install registers the page templates on the engine
func Install(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	return nil
}

// ParseID reads an integer id from the named path parameter.
// A non-integer id renders the not-found page and returns false.
func ParseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		RenderNotFound(c)
		return 0, false
	}
	return uint(id), true
}

// RenderNotFound renders the 404 page
func RenderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not Found",
		"Message": "The page you are looking for does not exist.",
	})
}

// RenderError renders the error page for err with the status of its kind.
// Server errors are logged and shown without details.
func RenderError(c *gin.Context, logger zerolog.Logger, err error) {
	status := apperr.StatusCode(err)
	_ = c.Error(err)

	if status >= http.StatusInternalServerError {
		log := logging.FromContext(c, logger)
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.HTML(status, "error.html", gin.H{
			"Title":   "Something went wrong",
			"Message": "The request could not be completed.",
		})
		return
	}

	if status == http.StatusNotFound {
		RenderNotFound(c)
		return
	}

	c.HTML(status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Message": err.Error(),
	})
}

// BindError converts a form binding failure into a validation error
func BindError(err error) error {
	return apperr.Validation("form", err.Error())
}

// Redirect sends a 302 to path
func Redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusFound, path)
}

// JSONError writes err as {"error": message} with the status of its kind.
// Server errors are logged and reported without details.
func JSONError(c *gin.Context, logger zerolog.Logger, err error) {
	status := apperr.StatusCode(err)
	_ = c.Error(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		log := logging.FromContext(c, logger)
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		message = "internal error"
	}
	c.JSON(status, gin.H{"error": message})
}
