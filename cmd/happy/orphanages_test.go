package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/deppfellow/happy/internal/client"
	"github.com/deppfellow/happy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintOrphanageTable(t *testing.T) {
	var out bytes.Buffer
	err := printOrphanageTable(&out, []client.Orphanage{
		{ID: 1, Name: "Lar das meninas", Latitude: -27.2092052, Longitude: -49.6401092, OpenOnWeekends: true, Images: []model.ImageView{{ID: 1}}},
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "ID  NAME")
	assert.Contains(t, out.String(), "Lar das meninas")
	assert.Contains(t, out.String(), "-27.209205,-49.640109")
}

func TestCreateOrphanageCommand(t *testing.T) {
	var gotName, gotWeekends string
	var gotFiles []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotName = r.FormValue("name")
		gotWeekends = r.FormValue("open_on_weekends")
		for _, fh := range r.MultipartForm.File["images"] {
			gotFiles = append(gotFiles, fh.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":7,"name":"Lar","images":[]}`)
	}))
	t.Cleanup(ts.Close)

	photo := filepath.Join(t.TempDir(), "front.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg"), 0o644))

	var out bytes.Buffer
	rootCmd.AddCommand(orphanagesCmd)
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"orphanages", "create",
		"--api-url", ts.URL,
		"--name", "Lar",
		"--latitude", "-27.2",
		"--longitude", "-49.6",
		"--about", "Sobre",
		"--instructions", "Venha",
		"--opening-hours", "8h-18h",
		"--open-on-weekends",
		"--image", photo,
	})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "Lar", gotName)
	assert.Equal(t, "true", gotWeekends)
	assert.Equal(t, []string{"front.jpg"}, gotFiles)
	assert.Contains(t, out.String(), `"id": 7`)
}
