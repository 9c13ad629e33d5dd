package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/happy/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads that declare their schema
// with validator tags and check themselves.
//
// Validate returns nil when the payload is valid.
type Validatable interface {
	Validate() errs.ValidationErrors
}

// FileBinder is implemented by payloads that also carry multipart files.
// BindFiles runs after the regular form binding.
type FileBinder interface {
	BindFiles(c echo.Context) error
}

// validate is shared: a validator instance caches struct metadata and is
// safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name (form/param/json tag) instead of the
	// Go field name, so "OpeningHours" becomes "opening_hours".
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "param", "query", "json"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				continue
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	return v
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from path params, query and body.
//  2. FileBinder payloads collect their multipart files.
//  3. payload.Validate() applies the schema.
//
// Failures come back as *errs.HTTPError so the global handler can render them.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if fb, ok := payload.(FileBinder); ok {
		if err := fb.BindFiles(c); err != nil {
			return err
		}
	}

	if fields := payload.Validate(); len(fields) > 0 {
		return errs.NewValidationError(fields)
	}

	return nil
}

// bindError turns an Echo binding failure into a 400 without leaking the
// decoder internals.
func bindError(err error) error {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusUnsupportedMediaType {
			return errs.NewStatusError(http.StatusUnsupportedMediaType, "")
		}
		if echoErr.Code == http.StatusRequestEntityTooLarge {
			return errs.NewStatusError(http.StatusRequestEntityTooLarge, "")
		}
	}
	return errs.NewBadRequestError("Malformed request body", nil, nil)
}

// Struct runs the tag schema of v and returns the violations keyed by field
// path. The top-level struct name is stripped from the path, so nested
// errors read "images[0].path".
func Struct(v any) errs.ValidationErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// InvalidValidationError: a programming error (nil or non-struct).
		return errs.ValidationErrors{"_": {err.Error()}}
	}

	fields := errs.ValidationErrors{}
	for _, fe := range validationErrors {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		fields.Add(path, message(fe))
	}
	return fields
}

// message renders one violation as a readable sentence.
func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must not contain more than %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())

	case "latitude":
		return fmt.Sprintf("%s must be a valid latitude", field)

	case "longitude":
		return fmt.Sprintf("%s must be a valid longitude", field)

	case "boolean":
		return fmt.Sprintf("%s must be true or false", field)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())

	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)

	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s is invalid (%s=%s)", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
