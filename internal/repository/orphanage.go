package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/happy/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type OrphanageRepository struct {
	db DBTX
}

func NewOrphanageRepository(db DBTX) *OrphanageRepository {
	return &OrphanageRepository{db: db}
}

const orphanageColumns = `id, name, latitude, longitude, about, instructions, opening_hours, open_on_weekends, created_at`

// Create inserts the orphanage and its images in one transaction. Images
// keep the order of in.ImagePaths.
func (r *OrphanageRepository) Create(ctx context.Context, in *model.NewOrphanage) (*model.Orphanage, error) {
	var created *model.Orphanage

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO orphanages (name, latitude, longitude, about, instructions, opening_hours, open_on_weekends)
			VALUES (@name, @latitude, @longitude, @about, @instructions, @opening_hours, @open_on_weekends)
			RETURNING `+orphanageColumns,
			pgx.NamedArgs{
				"name":             in.Name,
				"latitude":         in.Latitude,
				"longitude":        in.Longitude,
				"about":            in.About,
				"instructions":     in.Instructions,
				"opening_hours":    in.OpeningHours,
				"open_on_weekends": in.OpenOnWeekends,
			},
		)
		if err != nil {
			return err
		}

		orphanage, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Orphanage])
		if err != nil {
			return err
		}

		orphanage.Images, err = insertImages(ctx, tx, orphanage.ID, in.ImagePaths)
		if err != nil {
			return err
		}

		created = orphanage
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create orphanage: %w", err)
	}

	return created, nil
}

// insertImages queues one INSERT per path in a single round trip. Batch
// results come back in queue order, which is the display order.
func insertImages(ctx context.Context, tx pgx.Tx, orphanageID int64, paths []string) ([]model.Image, error) {
	images := make([]model.Image, 0, len(paths))
	if len(paths) == 0 {
		return images, nil
	}

	batch := &pgx.Batch{}
	for _, path := range paths {
		batch.Queue(`INSERT INTO images (path, orphanage_id) VALUES ($1, $2) RETURNING id, path, orphanage_id`, path, orphanageID)
	}

	results := tx.SendBatch(ctx, batch)
	for range paths {
		var image model.Image
		if err := results.QueryRow().Scan(&image.ID, &image.Path, &image.OrphanageID); err != nil {
			results.Close()
			return nil, fmt.Errorf("insert image: %w", err)
		}
		images = append(images, image)
	}

	if err := results.Close(); err != nil {
		return nil, err
	}
	return images, nil
}

// List returns every orphanage ordered by id, with images.
func (r *OrphanageRepository) List(ctx context.Context) ([]model.Orphanage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orphanageColumns+` FROM orphanages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list orphanages: %w", err)
	}

	orphanages, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Orphanage])
	if err != nil {
		return nil, fmt.Errorf("list orphanages: %w", err)
	}
	if len(orphanages) == 0 {
		return []model.Orphanage{}, nil
	}

	ids := make([]int64, len(orphanages))
	for i := range orphanages {
		ids[i] = orphanages[i].ID
	}

	images, err := r.imagesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range orphanages {
		orphanages[i].Images = images[orphanages[i].ID]
		if orphanages[i].Images == nil {
			orphanages[i].Images = []model.Image{}
		}
	}
	return orphanages, nil
}

// GetByID wraps ErrNotFound when no orphanage has id.
func (r *OrphanageRepository) GetByID(ctx context.Context, id int64) (*model.Orphanage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orphanageColumns+` FROM orphanages WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get orphanage %d: %w", id, err)
	}

	orphanage, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Orphanage])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("orphanage %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get orphanage %d: %w", id, err)
	}

	images, err := r.imagesFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	orphanage.Images = images[id]
	if orphanage.Images == nil {
		orphanage.Images = []model.Image{}
	}

	return orphanage, nil
}

func (r *OrphanageRepository) imagesFor(ctx context.Context, orphanageIDs []int64) (map[int64][]model.Image, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, path, orphanage_id
		FROM images
		WHERE orphanage_id = ANY($1)
		ORDER BY orphanage_id, id`, orphanageIDs)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	images, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Image])
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	byOrphanage := make(map[int64][]model.Image, len(orphanageIDs))
	for _, image := range images {
		byOrphanage[image.OrphanageID] = append(byOrphanage[image.OrphanageID], image)
	}
	return byOrphanage, nil
}
