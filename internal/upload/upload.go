// Package upload stores the photos attached to orphanage submissions.
//
// Files are named "<unix_ms>-<original name>" and written to a Storage
// backend: the local disk or an S3-compatible bucket.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"time"

	"github.com/deppfellow/happy/internal/config"
)

// Storage persists uploaded files under a name and resolves the URL they
// are served from.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, name string) error
	URL(name string) string
}

// FileName is the stored name of a file uploaded at now. Two uploads of the
// same file get distinct names unless they share the millisecond.
func FileName(now time.Time, original string) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + filepath.Base(original)
}

// NewStorage builds the backend selected by cfg.Driver. publicURL is the
// server's own base URL, used by the disk driver to build image URLs.
func NewStorage(ctx context.Context, cfg *config.UploadConfig, publicURL string) (Storage, error) {
	switch cfg.Driver {
	case config.UploadDriverMinio:
		return NewMinioStorage(ctx, cfg.Minio)
	case config.UploadDriverLocal, "":
		return NewDiskStorage(cfg.Dir, publicURL)
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.Driver)
	}
}

// Uploader stores every file of a submission or none of them.
type Uploader struct {
	storage Storage
	now     func() time.Time
}

func NewUploader(storage Storage) *Uploader {
	return &Uploader{storage: storage, now: time.Now}
}

// SaveAll stores files in order and returns their stored names. When a file
// fails, the ones already stored are removed before the error is returned.
func (u *Uploader) SaveAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	names := make([]string, 0, len(files))

	for _, fh := range files {
		name := FileName(u.now(), fh.Filename)
		if err := u.save(ctx, name, fh); err != nil {
			if rmErr := u.RemoveAll(ctx, names); rmErr != nil {
				err = errors.Join(err, rmErr)
			}
			return nil, err
		}
		names = append(names, name)
	}

	return names, nil
}

func (u *Uploader) save(ctx context.Context, name string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	if err := u.storage.Save(ctx, name, src, fh.Size, fh.Header.Get("Content-Type")); err != nil {
		return fmt.Errorf("store upload %q: %w", fh.Filename, err)
	}
	return nil
}

// RemoveAll deletes stored files, attempting every name even after a
// failure. It uses a context detached from cancellation so cleanup still
// runs when the request that triggered it was aborted.
func (u *Uploader) RemoveAll(ctx context.Context, names []string) error {
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for _, name := range names {
		if err := u.storage.Remove(ctx, name); err != nil {
			errs = append(errs, fmt.Errorf("remove upload %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// URL resolves the public URL of a stored file.
func (u *Uploader) URL(name string) string {
	return u.storage.URL(name)
}
