//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/happy/internal/config"
	"github.com/deppfellow/happy/internal/database"
	"github.com/deppfellow/happy/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type OrphanageRepositorySuite struct {
	suite.Suite

	container testcontainers.Container
	pool      *pgxpool.Pool
	repo      *OrphanageRepository
}

func TestOrphanageRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrphanageRepositorySuite))
}

func (s *OrphanageRepositorySuite) SetupSuite() {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "happy",
			"POSTGRES_PASSWORD": "happy",
			"POSTGRES_DB":       "happy",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(2 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5432")
	s.Require().NoError(err)

	cfg := &config.Config{Database: config.DatabaseConfig{
		Host:     host,
		Port:     port.Int(),
		User:     "happy",
		Password: "happy",
		Name:     "happy",
		SSLMode:  "disable",
	}}

	log := zerolog.Nop()
	s.Require().NoError(database.Migrate(ctx, &log, cfg))

	s.pool, err = pgxpool.New(ctx, database.DSN(cfg.Database))
	s.Require().NoError(err)
	s.repo = NewOrphanageRepository(s.pool)
}

func (s *OrphanageRepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *OrphanageRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE orphanages RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func newOrphanage(name string, images ...string) *model.NewOrphanage {
	return &model.NewOrphanage{
		Name:           name,
		Latitude:       -27.2092052,
		Longitude:      -49.6401092,
		About:          "Sobre",
		Instructions:   "Venha",
		OpeningHours:   "8h-18h",
		OpenOnWeekends: true,
		ImagePaths:     images,
	}
}

func (s *OrphanageRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	created, err := s.repo.Create(ctx, newOrphanage("Lar", "1-b.jpg", "2-a.jpg"))
	s.Require().NoError(err)
	s.Positive(created.ID)
	s.Require().Len(created.Images, 2)
	s.Equal("1-b.jpg", created.Images[0].Path)

	got, err := s.repo.GetByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.Name, got.Name)
	s.True(got.OpenOnWeekends)
	s.Equal(created.Images, got.Images)
}

func (s *OrphanageRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(context.Background(), 999)
	s.ErrorIs(err, ErrNotFound)
}

func (s *OrphanageRepositorySuite) TestList() {
	ctx := context.Background()

	orphanages, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Empty(orphanages)

	for _, name := range []string{"A", "B", "C"} {
		_, err := s.repo.Create(ctx, newOrphanage(name, name+".jpg"))
		s.Require().NoError(err)
	}

	orphanages, err = s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(orphanages, 3)
	s.Equal("A", orphanages[0].Name)
	s.Equal("C.jpg", orphanages[2].Images[0].Path)
}

func (s *OrphanageRepositorySuite) TestCreate_RollsBackOnInvalidImage() {
	ctx := context.Background()

	tooLong := make([]byte, 600)
	for i := range tooLong {
		tooLong[i] = 'x'
	}

	_, err := s.repo.Create(ctx, newOrphanage("Broken", "ok.jpg", string(tooLong)))
	s.Require().Error(err)

	orphanages, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Empty(orphanages)
}
