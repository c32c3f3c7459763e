package http

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blueskyvhs/internal/application/services"
	"blueskyvhs/internal/domain/entities"
	"blueskyvhs/internal/infrastructure"
)

type memoryCatalog struct {
	names     []string
	appendErr error
}

func (m *memoryCatalog) Append(ctx context.Context, filename string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.names = append(m.names, filename)
	return nil
}

func (m *memoryCatalog) List(ctx context.Context) ([]string, error) {
	return m.names, nil
}

func newTestVideoHandler(t *testing.T, catalog *memoryCatalog) (*VideoHandler, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := infrastructure.NewLocalStorage(dir)
	require.NoError(t, err)
	return NewVideoHandler(services.NewVideoService(catalog, store)), dir
}

func videoContext(t *testing.T, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Renderer = stubRenderer{}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(userContextKey, &entities.User{ID: 1, Email: "user@example.com"})
	return c, rec
}

func multipartVideo(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("video", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/videos/upload", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func TestListRendersEmptyState(t *testing.T) {
	h, _ := newTestVideoHandler(t, &memoryCatalog{})

	c, rec := videoContext(t, httptest.NewRequest(http.MethodGet, "/videos", nil))
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "videos.html")
	assert.Contains(t, rec.Body.String(), "Empty:true")
}

func TestListShowsUploadedVideos(t *testing.T) {
	catalog := &memoryCatalog{names: []string{"aaa.mp4", "bbb.mp4"}}
	h, _ := newTestVideoHandler(t, catalog)

	c, rec := videoContext(t, httptest.NewRequest(http.MethodGet, "/videos", nil))
	require.NoError(t, h.List(c))

	assert.Contains(t, rec.Body.String(), "aaa.mp4")
	assert.Contains(t, rec.Body.String(), "bbb.mp4")
	assert.Contains(t, rec.Body.String(), "Empty:false")
}

func TestUploadStoresFileAndRedirectsToListing(t *testing.T) {
	catalog := &memoryCatalog{}
	h, dir := newTestVideoHandler(t, catalog)

	c, rec := videoContext(t, multipartVideo(t, "home movie.mp4", []byte("frames")))
	require.NoError(t, h.Upload(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/videos", rec.Header().Get(echo.HeaderLocation))

	require.Len(t, catalog.names, 1)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, catalog.names[0], entries[0].Name())
}

func TestUploadWithoutFileRendersFormError(t *testing.T) {
	h, _ := newTestVideoHandler(t, &memoryCatalog{})

	req := httptest.NewRequest(http.MethodPost, "/videos/upload", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c, rec := videoContext(t, req)
	require.NoError(t, h.Upload(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "upload.html")
	assert.Contains(t, rec.Body.String(), "choose a video file")
}

func TestUploadCatalogFailureLeavesNoOrphan(t *testing.T) {
	catalog := &memoryCatalog{appendErr: errors.New("connection refused")}
	h, dir := newTestVideoHandler(t, catalog)

	c, rec := videoContext(t, multipartVideo(t, "a.mp4", []byte("frames")))
	require.NoError(t, h.Upload(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/videos/upload", rec.Header().Get(echo.HeaderLocation))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rolled-back upload must not leave a file")
}
