package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Home(c echo.Context) error {
	user, _ := CurrentUser(c)
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Title":   pageTitle("Home"),
		"Message": "Oh, shut up!",
		"User":    user,
	})
}

func (h *PageHandler) About(c echo.Context) error {
	user, _ := CurrentUser(c)
	return c.Render(http.StatusOK, "about.html", map[string]interface{}{
		"Title": pageTitle("About"),
		"User":  user,
	})
}
