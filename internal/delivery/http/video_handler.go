package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"blueskyvhs/internal/application/services"
)

type VideoHandler struct {
	videos *services.VideoService
}

func NewVideoHandler(videos *services.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// List renders the catalog. An empty catalog is the "No videos found"
// page, not an error.
func (h *VideoHandler) List(c echo.Context) error {
	user, _ := CurrentUser(c)

	videos, err := h.videos.List(c.Request().Context())
	if err != nil {
		log.Printf("listing videos: %v", err)
		return c.Render(http.StatusOK, "videos.html", map[string]interface{}{
			"Title": pageTitle("Videos"),
			"User":  user,
			"Error": "Database error, please try again later",
		})
	}

	return c.Render(http.StatusOK, "videos.html", map[string]interface{}{
		"Title":  pageTitle("Videos"),
		"User":   user,
		"Videos": videos,
		"Empty":  len(videos) == 0,
	})
}

func (h *VideoHandler) UploadForm(c echo.Context) error {
	user, _ := CurrentUser(c)
	return c.Render(http.StatusOK, "upload.html", map[string]interface{}{
		"Title": pageTitle("Upload"),
		"User":  user,
	})
}

// Upload accepts exactly one multipart file under the "video" field.
// Validation problems re-render the form inline; storage or catalog
// failures send the uploader back to the form with nothing left behind.
func (h *VideoHandler) Upload(c echo.Context) error {
	user, _ := CurrentUser(c)

	fh, err := c.FormFile("video")
	if err != nil {
		return c.Render(http.StatusOK, "upload.html", map[string]interface{}{
			"Title": pageTitle("Upload"),
			"User":  user,
			"Error": "Please choose a video file",
		})
	}

	if fh.Size > services.MaxUploadBytes {
		return c.Render(http.StatusOK, "upload.html", map[string]interface{}{
			"Title": pageTitle("Upload"),
			"User":  user,
			"Error": errorMessage(services.ErrFileTooLarge),
		})
	}

	src, err := fh.Open()
	if err != nil {
		log.Printf("opening upload from %s: %v", user.Email, err)
		return c.Redirect(http.StatusFound, "/videos/upload")
	}
	defer src.Close()

	if _, err := h.videos.Upload(c.Request().Context(), fh.Filename, fh.Size, src); err != nil {
		if errors.Is(err, services.ErrFileTooLarge) {
			return c.Render(http.StatusOK, "upload.html", map[string]interface{}{
				"Title": pageTitle("Upload"),
				"User":  user,
				"Error": errorMessage(err),
			})
		}
		log.Printf("upload from %s failed: %v", user.Email, err)
		return c.Redirect(http.StatusFound, "/videos/upload")
	}

	return c.Redirect(http.StatusFound, "/videos")
}
