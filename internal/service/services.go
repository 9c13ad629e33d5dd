package service

import (
	"github.com/deppfellow/happy/internal/lib/cache"
	"github.com/deppfellow/happy/internal/repository"
	"github.com/deppfellow/happy/internal/server"
	"github.com/deppfellow/happy/internal/upload"
)

type Services struct {
	Orphanages *OrphanageService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	uploader := upload.NewUploader(s.Storage)
	listCache := cache.NewListCache(s.Redis, s.Config.Redis.ListCacheTTL, s.Logger)

	orphanages := NewOrphanageService(OrphanageDeps{
		Store:     repos.Orphanages,
		Uploader:  uploader,
		Cache:     listCache,
		Notifier:  s.Job,
		Publisher: s.Events,
		Logger:    s.Logger,
	})

	return &Services{
		Orphanages: orphanages,
	}, nil
}
