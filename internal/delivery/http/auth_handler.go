package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"blueskyvhs/internal/application/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterForm(c echo.Context) error {
	if _, ok := CurrentUser(c); ok {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "register.html", map[string]interface{}{
		"Title": pageTitle("Register"),
		"Email": "",
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	if _, ok := CurrentUser(c); ok {
		return c.Redirect(http.StatusFound, "/")
	}

	email := c.FormValue("email")
	token, err := h.auth.Register(c.Request().Context(), email, c.FormValue("password"))
	if err != nil {
		return c.Render(http.StatusOK, "register.html", map[string]interface{}{
			"Title": pageTitle("Register"),
			"Error": errorMessage(err),
			"Email": email,
		})
	}

	setSessionCookie(c, token)
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	if _, ok := CurrentUser(c); ok {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "login.html", map[string]interface{}{
		"Title": pageTitle("Login"),
		"Email": "",
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	if _, ok := CurrentUser(c); ok {
		return c.Redirect(http.StatusFound, "/")
	}

	email := c.FormValue("email")
	token, err := h.auth.Login(c.Request().Context(), email, c.FormValue("password"))
	if err != nil {
		return c.Render(http.StatusOK, "login.html", map[string]interface{}{
			"Title": pageTitle("Login"),
			"Error": errorMessage(err),
			"Email": email,
		})
	}

	setSessionCookie(c, token)
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	clearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/")
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// errorMessage maps flow errors onto the strings the forms render
// inline. Anything unrecognized is a store problem and stays generic.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		return "Please enter a valid email address"
	case errors.Is(err, services.ErrEmptyPassword):
		return "Password must not be empty"
	case errors.Is(err, services.ErrUserExists):
		return "User already exists"
	case errors.Is(err, services.ErrWrongCredentials):
		return "Wrong email or password"
	case errors.Is(err, services.ErrFileTooLarge):
		return "File is too large"
	default:
		return "Database error, please try again later"
	}
}
