package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/deppfellow/happy/internal/config"
	"github.com/deppfellow/happy/internal/handler"
	"github.com/deppfellow/happy/internal/model"
	"github.com/deppfellow/happy/internal/repository"
	"github.com/deppfellow/happy/internal/router"
	"github.com/deppfellow/happy/internal/server"
	"github.com/deppfellow/happy/internal/service"
	"github.com/deppfellow/happy/internal/upload"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu         sync.Mutex
	orphanages []model.Orphanage
	nextImage  int64
}

func (m *memoryStore) Create(_ context.Context, in *model.NewOrphanage) (*model.Orphanage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := int64(len(m.orphanages) + 1)
	o := model.Orphanage{
		ID:             id,
		Name:           in.Name,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		About:          in.About,
		Instructions:   in.Instructions,
		OpeningHours:   in.OpeningHours,
		OpenOnWeekends: in.OpenOnWeekends,
		Images:         []model.Image{},
	}
	for _, path := range in.ImagePaths {
		m.nextImage++
		o.Images = append(o.Images, model.Image{ID: m.nextImage, Path: path, OrphanageID: id})
	}
	m.orphanages = append(m.orphanages, o)
	return &o, nil
}

func (m *memoryStore) List(context.Context) ([]model.Orphanage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Orphanage(nil), m.orphanages...), nil
}

func (m *memoryStore) GetByID(_ context.Context, id int64) (*model.Orphanage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orphanages {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

// newTestAPI serves the real router and orphanage service, backed by an
// in-memory store and photos on disk.
func newTestAPI(t *testing.T) (*Client, string) {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			CORSAllowedOrigins: []string{"*"},
			PublicURL:          "http://happy.test",
		},
		Upload:        config.DefaultUploadConfig(),
		Observability: config.DefaultObservabilityConfig(),
	}

	dir := t.TempDir()
	storage, err := upload.NewDiskStorage(dir, cfg.Server.PublicURL)
	require.NoError(t, err)

	s := &server.Server{Config: cfg, Logger: &logger, Storage: storage}
	services := &service.Services{
		Orphanages: service.NewOrphanageService(service.OrphanageDeps{
			Store:    &memoryStore{},
			Uploader: upload.NewUploader(storage),
			Logger:   &logger,
		}),
	}

	ts := httptest.NewServer(router.NewRouter(s, handler.NewHandlers(s, services)))
	t.Cleanup(ts.Close)

	return NewWithURL(ts.URL), dir
}

func validForm() OrphanageForm {
	return OrphanageForm{
		Name:           "Lar das meninas",
		Latitude:       -27.2092052,
		Longitude:      -49.6401092,
		About:          "Sobre o orfanato",
		Instructions:   "Venha como se sentir a vontade",
		OpeningHours:   "Das 8h ate as 18h",
		OpenOnWeekends: true,
	}
}

func TestSubmission_Succeeds(t *testing.T) {
	api, dir := newTestAPI(t)
	ctx := context.Background()

	form := validForm()
	form.Photos = []Photo{{Name: "front.jpg", Data: []byte("front")}, {Name: "yard.jpg", Data: []byte("yard")}}
	sub := api.NewSubmission(form)
	require.Equal(t, Editing, sub.State())

	created, err := sub.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, Succeeded, sub.State())
	assert.Equal(t, "Lar das meninas", created.Name)
	assert.InDelta(t, -27.2092052, created.Latitude, 1e-9)
	assert.True(t, created.OpenOnWeekends)
	require.Len(t, created.Images, 2)
	assert.Regexp(t, `^http://happy\.test/uploads/\d+-front\.jpg$`, created.Images[0].URL)

	stored, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	got, ok := sub.Created()
	assert.True(t, ok)
	assert.Equal(t, created, got)

	_, err = sub.Submit(ctx)
	assert.ErrorIs(t, err, ErrSubmitted)
	assert.ErrorIs(t, sub.Edit(func(f *OrphanageForm) { f.Name = "x" }), ErrSubmitted)
}

func TestSubmission_ValidationFailureStaysEditable(t *testing.T) {
	api, dir := newTestAPI(t)
	ctx := context.Background()

	form := validForm()
	form.Name = ""
	form.Photos = []Photo{{Name: "front.jpg", Data: []byte("front")}}
	sub := api.NewSubmission(form)

	_, err := sub.Submit(ctx)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Validation fails", apiErr.Message)
	assert.True(t, apiErr.IsValidation())
	assert.Contains(t, apiErr.Errors, "name")
	assert.Equal(t, Failed, sub.State())

	stored, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, stored)

	require.NoError(t, sub.Edit(func(f *OrphanageForm) { f.Name = "Lar das meninas" }))
	created, err := sub.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, Succeeded, sub.State())
}

func TestSubmission_RejectsConcurrentSubmit(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"name":"Lar","images":[]}`))
	}))
	t.Cleanup(ts.Close)

	sub := NewWithURL(ts.URL).NewSubmission(validForm())

	done := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background())
		done <- err
	}()

	<-entered
	assert.Equal(t, Submitting, sub.State())

	_, err := sub.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.ErrorIs(t, sub.Edit(func(f *OrphanageForm) {}), ErrSubmitting)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, Succeeded, sub.State())
}

func TestSubmission_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	sub := NewWithURL(url).NewSubmission(validForm())
	_, err := sub.Submit(context.Background())

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, Failed, sub.State())
}

func TestListAndGetOrphanages(t *testing.T) {
	api, _ := newTestAPI(t)
	ctx := context.Background()

	list, err := api.ListOrphanages(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for range 2 {
		_, err := api.NewSubmission(validForm()).Submit(ctx)
		require.NoError(t, err)
	}

	list, err = api.ListOrphanages(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := api.GetOrphanage(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)

	_, err = api.GetOrphanage(ctx, 99)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "ORPHANAGE_NOT_FOUND", apiErr.Code)
}

func TestDecodeAPIError_NonJSONBody(t *testing.T) {
	apiErr := decodeAPIError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))

	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "BAD_GATEWAY", apiErr.Code)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestPhotoFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "front.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o644))

	photo, err := PhotoFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "front.jpg", photo.Name)
	assert.Equal(t, []byte("jpeg"), photo.Data)
}
