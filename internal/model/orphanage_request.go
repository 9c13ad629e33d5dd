package model

import (
	"mime/multipart"
	"strconv"

	"github.com/deppfellow/happy/internal/errs"
	"github.com/deppfellow/happy/internal/validation"
	"github.com/labstack/echo/v4"
)

// ImageFormFields are the multipart keys photo files are accepted under.
// Browsers send "images", some form libraries append brackets.
var ImageFormFields = []string{"images", "images[]"}

// ImageUpload is one photo attached to a submission.
type ImageUpload struct {
	// Path is the original file name as sent by the client.
	Path string `form:"path" json:"path" validate:"required"`

	Header *multipart.FileHeader `form:"-" json:"-" validate:"-"`
}

// CreateOrphanageRequest is the multipart submission behind POST /orphanages.
//
// Values arrive as strings and are checked by the schema before being
// parsed, so a malformed number is reported per field like any other
// violation.
type CreateOrphanageRequest struct {
	Name           string        `form:"name" validate:"required,max=255"`
	Latitude       string        `form:"latitude" validate:"required,latitude"`
	Longitude      string        `form:"longitude" validate:"required,longitude"`
	About          string        `form:"about" validate:"required,max=300"`
	Instructions   string        `form:"instructions" validate:"required"`
	OpeningHours   string        `form:"opening_hours" validate:"required"`
	OpenOnWeekends string        `form:"open_on_weekends" validate:"required,boolean"`
	Images         []ImageUpload `form:"-" json:"images" validate:"dive"`
}

// BindFiles collects the photo files of a multipart body. Requests that are
// not multipart simply carry no images.
func (r *CreateOrphanageRequest) BindFiles(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	r.Images = r.Images[:0]
	for _, field := range ImageFormFields {
		for _, fh := range form.File[field] {
			r.Images = append(r.Images, ImageUpload{Path: fh.Filename, Header: fh})
		}
	}
	return nil
}

// Validate checks the declared schema.
func (r *CreateOrphanageRequest) Validate() errs.ValidationErrors {
	return validation.Struct(r)
}

// ToNewOrphanage converts a validated request. imagePaths are the stored
// file names, in the same order as r.Images.
func (r *CreateOrphanageRequest) ToNewOrphanage(imagePaths []string) *NewOrphanage {
	// Parsing cannot fail once Validate passed: the latitude, longitude and
	// boolean tags accept exactly what strconv accepts.
	latitude, _ := strconv.ParseFloat(r.Latitude, 64)
	longitude, _ := strconv.ParseFloat(r.Longitude, 64)
	openOnWeekends, _ := strconv.ParseBool(r.OpenOnWeekends)

	return &NewOrphanage{
		Name:           r.Name,
		Latitude:       latitude,
		Longitude:      longitude,
		About:          r.About,
		Instructions:   r.Instructions,
		OpeningHours:   r.OpeningHours,
		OpenOnWeekends: openOnWeekends,
		ImagePaths:     imagePaths,
	}
}

// FileHeaders returns the multipart headers of the attached images.
func (r *CreateOrphanageRequest) FileHeaders() []*multipart.FileHeader {
	headers := make([]*multipart.FileHeader, 0, len(r.Images))
	for _, image := range r.Images {
		headers = append(headers, image.Header)
	}
	return headers
}

// ListOrphanagesRequest is the (empty) payload of GET /orphanages.
type ListOrphanagesRequest struct{}

// Validate always succeeds.
func (r *ListOrphanagesRequest) Validate() errs.ValidationErrors {
	return nil
}

// ShowOrphanageRequest is the payload of GET /orphanages/:id.
type ShowOrphanageRequest struct {
	ID string `param:"id" validate:"required"`

	parsedID int64
}

// Validate requires id to be a positive integer.
func (r *ShowOrphanageRequest) Validate() errs.ValidationErrors {
	if fields := validation.Struct(r); len(fields) > 0 {
		return fields
	}

	id, err := strconv.ParseInt(r.ID, 10, 64)
	if err != nil || id <= 0 {
		return errs.ValidationErrors{"id": {"id must be a positive integer"}}
	}
	r.parsedID = id
	return nil
}

// OrphanageID returns the id parsed by Validate.
func (r *ShowOrphanageRequest) OrphanageID() int64 {
	return r.parsedID
}
