package http

import (
	"github.com/labstack/echo/v4"

	"blueskyvhs/internal/application/services"
	"blueskyvhs/internal/config"
)

// NewRouter wires middleware, handlers and routes onto a fresh echo
// instance.
func NewRouter(cfg *config.Config, auth *services.AuthService, videos *services.VideoService) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewTemplateRenderer(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	e.Use(RequestLogger(cfg.LogFile))
	if cfg.Maintenance {
		e.Use(Maintenance())
	}

	e.Static("/static", cfg.StaticDir)

	session := NewSessionMiddleware(auth)
	limiter := AuthRateLimit(cfg.AuthRateInterval, cfg.AuthRateBurst)

	pages := NewPageHandler()
	authHandler := NewAuthHandler(auth)
	videoHandler := NewVideoHandler(videos)

	e.GET("/", pages.Home, session.OptionalUser)
	e.GET("/about", pages.About, session.OptionalUser)

	e.GET("/register", authHandler.RegisterForm, session.OptionalUser)
	e.POST("/register", authHandler.Register, session.OptionalUser, limiter)
	e.GET("/login", authHandler.LoginForm, session.OptionalUser)
	e.POST("/login", authHandler.Login, session.OptionalUser, limiter)
	e.GET("/logout", authHandler.Logout, session.OptionalUser)

	v := e.Group("/videos", session.RequireUser)
	v.GET("", videoHandler.List)
	v.GET("/upload", videoHandler.UploadForm)
	v.POST("/upload", videoHandler.Upload)

	// Stored files are served to authenticated viewers only.
	w := e.Group("/watch", session.RequireUser)
	w.Static("/", cfg.UploadDir)

	return e, nil
}
