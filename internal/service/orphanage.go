package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/deppfellow/happy/internal/errs"
	"github.com/deppfellow/happy/internal/model"
	"github.com/deppfellow/happy/internal/repository"
	"github.com/deppfellow/happy/internal/sqlerr"
	"github.com/rs/zerolog"
)

// CodeOrphanageNotFound is the error code of a 404 on an orphanage.
const CodeOrphanageNotFound = "ORPHANAGE_NOT_FOUND"

type OrphanageStore interface {
	Create(ctx context.Context, in *model.NewOrphanage) (*model.Orphanage, error)
	List(ctx context.Context) ([]model.Orphanage, error)
	GetByID(ctx context.Context, id int64) (*model.Orphanage, error)
}

type ImageUploader interface {
	SaveAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
	RemoveAll(ctx context.Context, names []string) error
	URL(name string) string
}

// ListCache holds the orphanage list per write generation. Get reports the
// current generation even on a miss; Set only stores under the generation
// the caller read before loading, so a list loaded across a concurrent
// Invalidate is never served.
type ListCache interface {
	Get(ctx context.Context) ([]model.Orphanage, int64, bool)
	Set(ctx context.Context, generation int64, orphanages []model.Orphanage)
	Invalidate(ctx context.Context)
}

// CreatedNotifier schedules the registration notice.
type CreatedNotifier interface {
	EnqueueOrphanageCreated(ctx context.Context, o *model.Orphanage) error
}

// EventPublisher emits the OrphanageCreated domain event.
type EventPublisher interface {
	PublishOrphanageCreated(ctx context.Context, o *model.Orphanage) error
}

// OrphanageDeps groups the collaborators of OrphanageService. Cache,
// Notifier and Publisher are optional.
type OrphanageDeps struct {
	Store     OrphanageStore
	Uploader  ImageUploader
	Cache     ListCache
	Notifier  CreatedNotifier
	Publisher EventPublisher
	Logger    *zerolog.Logger
}

type OrphanageService struct {
	store     OrphanageStore
	uploader  ImageUploader
	cache     ListCache
	notifier  CreatedNotifier
	publisher EventPublisher
	logger    *zerolog.Logger
}

func NewOrphanageService(deps OrphanageDeps) *OrphanageService {
	return &OrphanageService{
		store:     deps.Store,
		uploader:  deps.Uploader,
		cache:     deps.Cache,
		notifier:  deps.Notifier,
		publisher: deps.Publisher,
		logger:    deps.Logger,
	}
}

// Create stores the photos, then the orphanage and its images in one
// transaction. Either everything is stored or nothing is: photos already
// written are removed when a later step fails.
//
// Notification and event publishing happen after the commit and never fail
// the request.
func (s *OrphanageService) Create(ctx context.Context, req *model.CreateOrphanageRequest) (*model.Orphanage, error) {
	names, err := s.uploader.SaveAll(ctx, req.FileHeaders())
	if err != nil {
		return nil, errs.NewInternalError(err)
	}

	orphanage, err := s.store.Create(ctx, req.ToNewOrphanage(names))
	if err != nil {
		if rmErr := s.uploader.RemoveAll(ctx, names); rmErr != nil {
			s.logger.Error().Err(rmErr).Strs("files", names).Msg("failed to remove uploads of a rejected orphanage")
		}
		return nil, sqlerr.HandleError(err)
	}

	s.afterCreate(ctx, orphanage)

	return orphanage, nil
}

func (s *OrphanageService) afterCreate(ctx context.Context, orphanage *model.Orphanage) {
	log := s.logger.With().Int64("orphanage_id", orphanage.ID).Logger()

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueOrphanageCreated(ctx, orphanage); err != nil {
			log.Warn().Err(err).Msg("failed to enqueue orphanage created notification")
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrphanageCreated(ctx, orphanage); err != nil {
			log.Warn().Err(err).Msg("failed to publish orphanage created event")
		}
	}

	log.Info().Int("images", len(orphanage.Images)).Msg("orphanage created")
}

// List returns every orphanage ordered by id, from the cache when fresh.
func (s *OrphanageService) List(ctx context.Context) ([]model.Orphanage, error) {
	var generation int64
	if s.cache != nil {
		orphanages, gen, ok := s.cache.Get(ctx)
		if ok {
			return orphanages, nil
		}
		generation = gen
	}

	orphanages, err := s.store.List(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, generation, orphanages)
	}
	return orphanages, nil
}

// Get returns a 404 *errs.HTTPError when no orphanage has id.
func (s *OrphanageService) Get(ctx context.Context, id int64) (*model.Orphanage, error) {
	orphanage, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		code := CodeOrphanageNotFound
		return nil, errs.NewNotFoundError("Orphanage not found", &code)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return orphanage, nil
}

// ImageURL resolves the public URL of a stored image.
func (s *OrphanageService) ImageURL(path string) string {
	return s.uploader.URL(path)
}
