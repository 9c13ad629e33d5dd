package repository

import (
	"github.com/deppfellow/happy/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Orphanages *OrphanageRepository
}

// NewRepositories builds every repository on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Orphanages: NewOrphanageRepository(s.DB.Pool),
	}
}
