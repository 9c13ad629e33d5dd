package validation

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/happy/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attachment struct {
	Path string `form:"path" validate:"required"`
}

type visitRequest struct {
	Name         string       `form:"name" validate:"required,max=10"`
	OpeningHours string       `form:"opening_hours" validate:"required"`
	Latitude     string       `form:"latitude" validate:"required,latitude"`
	Weekends     string       `form:"open_on_weekends" validate:"required,boolean"`
	Attachments  []attachment `form:"-" validate:"dive"`
}

func (r *visitRequest) Validate() errs.ValidationErrors {
	return Struct(r)
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name     string
		input    visitRequest
		expected errs.ValidationErrors
	}{
		{
			name: "valid",
			input: visitRequest{
				Name:         "Lar",
				OpeningHours: "8h-18h",
				Latitude:     "-27.2092052",
				Weekends:     "true",
			},
			expected: nil,
		},
		{
			name:  "everything missing",
			input: visitRequest{},
			expected: errs.ValidationErrors{
				"name":             {"name is required"},
				"opening_hours":    {"opening_hours is required"},
				"latitude":         {"latitude is required"},
				"open_on_weekends": {"open_on_weekends is required"},
			},
		},
		{
			name: "wrong shapes",
			input: visitRequest{
				Name:         "Lar das meninas",
				OpeningHours: "8h-18h",
				Latitude:     "north",
				Weekends:     "sometimes",
			},
			expected: errs.ValidationErrors{
				"name":             {"name must not exceed 10 characters"},
				"latitude":         {"latitude must be a valid latitude"},
				"open_on_weekends": {"open_on_weekends must be true or false"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.input.Validate()
			if tc.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestStruct_NestedPath(t *testing.T) {
	req := visitRequest{
		Name:         "Lar",
		OpeningHours: "8h-18h",
		Latitude:     "10",
		Weekends:     "false",
		Attachments:  []attachment{{Path: "a.png"}, {}},
	}

	// Fields without a wire name fall back to the Go field name.
	got := req.Validate()
	require.Len(t, got, 1)
	assert.Equal(t, []string{"path is required"}, got["Attachments[1].path"])
}

func TestBindAndValidate(t *testing.T) {
	e := echo.New()

	t.Run("form body is bound and validated", func(t *testing.T) {
		form := url.Values{}
		form.Set("name", "Lar")
		form.Set("opening_hours", "8h-18h")
		form.Set("latitude", "-27.2")
		form.Set("open_on_weekends", "false")

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		c := e.NewContext(req, httptest.NewRecorder())

		payload := &visitRequest{}
		require.NoError(t, BindAndValidate(c, payload))
		assert.Equal(t, "8h-18h", payload.OpeningHours)
	})

	t.Run("missing field yields a validation failure", func(t *testing.T) {
		form := url.Values{}
		form.Set("name", "Lar")

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		c := e.NewContext(req, httptest.NewRecorder())

		err := BindAndValidate(c, &visitRequest{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Contains(t, httpErr.Errors, "latitude")
		assert.NotContains(t, httpErr.Errors, "name")
	})

	t.Run("unsupported media type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("<xml/>"))
		req.Header.Set(echo.HeaderContentType, "text/plain")
		c := e.NewContext(req, httptest.NewRecorder())

		err := BindAndValidate(c, &visitRequest{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnsupportedMediaType, httpErr.Status)
	})
}
