package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// State is the lifecycle of a Submission.
type State int

const (
	// Editing is the initial state. The form can be changed.
	Editing State = iota
	// Submitting means a request is in flight. The form is frozen.
	Submitting
	// Succeeded means the API created the orphanage.
	Succeeded
	// Failed means the last attempt failed. The form can be edited and
	// submitted again.
	Failed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrSubmitting is returned while an attempt is in flight.
	ErrSubmitting = errors.New("submission already in progress")

	// ErrSubmitted is returned once the orphanage was created.
	ErrSubmitted = errors.New("submission already succeeded")
)

// Photo is one image file attached to a submission.
type Photo struct {
	Name string
	Data []byte
}

// PhotoFromFile reads the file at path. The photo keeps the base name.
func PhotoFromFile(path string) (Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Photo{}, fmt.Errorf("read photo %s: %w", path, err)
	}
	return Photo{Name: filepath.Base(path), Data: data}, nil
}

// OrphanageForm holds what a user fills in on the creation screen.
type OrphanageForm struct {
	Name           string
	Latitude       float64
	Longitude      float64
	About          string
	Instructions   string
	OpeningHours   string
	OpenOnWeekends bool
	Photos         []Photo
}

// Submission drives one orphanage creation:
// Editing → Submitting → Succeeded | Failed. A failed submission returns to
// an editable state and may be submitted again.
type Submission struct {
	client *Client

	mu      sync.Mutex
	state   State
	form    OrphanageForm
	created *Orphanage
}

// NewSubmission starts a submission in the Editing state.
func (c *Client) NewSubmission(form OrphanageForm) *Submission {
	return &Submission{client: c, form: form}
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Edit changes the form. It fails while submitting and after success.
func (s *Submission) Edit(change func(form *OrphanageForm)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}
	change(&s.form)
	return nil
}

// Created returns the orphanage once the submission succeeded.
func (s *Submission) Created() (*Orphanage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created, s.state == Succeeded
}

// Submit posts the form as multipart/form-data. On failure the error is an
// *APIError when the API answered, and the state becomes Failed.
func (s *Submission) Submit(ctx context.Context) (*Orphanage, error) {
	s.mu.Lock()
	if err := s.editable(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state = Submitting
	form := s.form
	s.mu.Unlock()

	created, err := s.client.createOrphanage(ctx, form)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = Failed
		return nil, err
	}
	s.state = Succeeded
	s.created = created
	return created, nil
}

func (s *Submission) editable() error {
	switch s.state {
	case Submitting:
		return ErrSubmitting
	case Succeeded:
		return ErrSubmitted
	default:
		return nil
	}
}

func (c *Client) createOrphanage(ctx context.Context, form OrphanageForm) (*Orphanage, error) {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return nil, err
	}

	var created Orphanage
	if err := c.do(ctx, http.MethodPost, "/orphanages", body, contentType, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// encodeForm builds the multipart body. Photos go under "images".
func encodeForm(form OrphanageForm) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := []struct{ key, value string }{
		{"name", form.Name},
		{"latitude", strconv.FormatFloat(form.Latitude, 'f', -1, 64)},
		{"longitude", strconv.FormatFloat(form.Longitude, 'f', -1, 64)},
		{"about", form.About},
		{"instructions", form.Instructions},
		{"opening_hours", form.OpeningHours},
		{"open_on_weekends", strconv.FormatBool(form.OpenOnWeekends)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.key, err)
		}
	}

	for _, photo := range form.Photos {
		part, err := w.CreateFormFile("images", photo.Name)
		if err != nil {
			return nil, "", fmt.Errorf("write photo %s: %w", photo.Name, err)
		}
		if _, err := part.Write(photo.Data); err != nil {
			return nil, "", fmt.Errorf("write photo %s: %w", photo.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return body, w.FormDataContentType(), nil
}
