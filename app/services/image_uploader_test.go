package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func TestReadImage(t *testing.T) {
	t.Run("png accepted", func(t *testing.T) {
		data, mt, err := ReadImage(bytes.NewReader(pngBytes))
		require.NoError(t, err)
		assert.Equal(t, pngBytes, data)
		assert.Equal(t, "image/png", mt.String())
	})

	t.Run("text rejected", func(t *testing.T) {
		_, _, err := ReadImage(strings.NewReader("bukan gambar"))
		assert.Equal(t, http.StatusBadRequest, helpers.StatusOf(err))
	})

	t.Run("svg rejected", func(t *testing.T) {
		svg := `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(document.cookie)</script></svg>`
		_, _, err := ReadImage(strings.NewReader(svg))
		assert.Equal(t, http.StatusBadRequest, helpers.StatusOf(err))
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, _, err := ReadImage(bytes.NewReader(nil))
		assert.Equal(t, http.StatusBadRequest, helpers.StatusOf(err))
	})

	t.Run("too large rejected", func(t *testing.T) {
		big := append(append([]byte{}, pngBytes...), make([]byte, MaxImageBytes)...)
		_, _, err := ReadImage(bytes.NewReader(big))
		assert.Equal(t, http.StatusBadRequest, helpers.StatusOf(err))
	})
}

func TestCloudinaryUploader_Sign(t *testing.T) {
	u := NewCloudinaryUploader(CloudinaryConfig{CloudName: "demo", APIKey: "key", APISecret: "secret"}, nil)

	got := u.Sign(map[string]string{"timestamp": "1700000000", "folder": "kids", "empty": ""})
	assert.Equal(t, "d24746f011df8cd493c08cd9a704a4fd0b647f01", got)
}

func newCloudinaryTestUploader(t *testing.T, handler http.HandlerFunc) *CloudinaryUploader {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u := NewCloudinaryUploader(CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "kids",
		BaseURL:   srv.URL,
	}, srv.Client())
	u.now = func() time.Time { return time.Unix(1700000000, 0) }
	return u
}

func TestCloudinaryUploader_Upload(t *testing.T) {
	u := newCloudinaryTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.Equal(t, "kids", r.FormValue("folder"))
		assert.Equal(t, "1700000000", r.FormValue("timestamp"))
		assert.Equal(t, "d24746f011df8cd493c08cd9a704a4fd0b647f01", r.FormValue("signature"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "foto.png", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://res.cloudinary.com/demo/image/upload/kids/abc.png",
			"public_id":  "kids/abc",
		})
	})

	res, err := u.Upload(context.Background(), "foto.png", pngBytes)
	require.NoError(t, err)
	assert.Equal(t, &UploadResult{URL: "https://res.cloudinary.com/demo/image/upload/kids/abc.png", PublicID: "kids/abc"}, res)
}

func TestCloudinaryUploader_Delete(t *testing.T) {
	called := false
	u := newCloudinaryTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "/v1_1/demo/image/destroy", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "kids/abc", r.FormValue("public_id"))
		assert.Equal(t, "60fa950b73caed01c21df8d1f68a167a2d2edfdc", r.FormValue("signature"))
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	})

	require.NoError(t, u.Delete(context.Background(), "kids/abc"))
	assert.True(t, called)

	called = false
	require.NoError(t, u.Delete(context.Background(), ""))
	assert.False(t, called)
}

func TestCloudinaryUploader_Error(t *testing.T) {
	u := newCloudinaryTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	})

	_, err := u.Upload(context.Background(), "foto.png", pngBytes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Signature")
}

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	u := NewLocalUploader(dir, "/uploads/")

	res, err := u.Upload(context.Background(), "foto.png", pngBytes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(res.PublicID, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, res.PublicID))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)

	require.NoError(t, u.Delete(context.Background(), res.PublicID))
	_, err = os.Stat(filepath.Join(dir, res.PublicID))
	assert.True(t, os.IsNotExist(err))

	// Paths outside the upload dir are ignored.
	assert.NoError(t, u.Delete(context.Background(), "../etc/passwd"))
}
