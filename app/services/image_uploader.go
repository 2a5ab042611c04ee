package services

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const MaxImageBytes = 5 << 20

// Raster formats only. SVG can carry scripts and uploads may be served from
// this origin.
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type ImageUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// ReadImage reads at most MaxImageBytes and accepts only content that sniffs
// as one of allowedImageTypes.
func ReadImage(r io.Reader) ([]byte, *mimetype.MIME, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, helpers.NewValidationError("File kosong.")
	}
	if len(data) > MaxImageBytes {
		return nil, nil, helpers.NewValidationError("Ukuran file maksimal 5 MB.")
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return nil, nil, helpers.NewValidationError("File harus berupa gambar JPG, PNG, GIF atau WEBP.")
	}
	return data, mt, nil
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	BaseURL   string
}

func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// CloudinaryUploader talks to the Cloudinary upload API with signed requests.
type CloudinaryUploader struct {
	cfg    CloudinaryConfig
	client *http.Client
	now    func() time.Time
}

func NewCloudinaryUploader(cfg CloudinaryConfig, client *http.Client) *CloudinaryUploader {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.cloudinary.com"
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &CloudinaryUploader{cfg: cfg, client: client, now: time.Now}
}

// Sign builds the Cloudinary signature: params sorted by key, joined as
// k=v with '&', secret appended, then SHA-1 hex.
func (u *CloudinaryUploader) Sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "&") + u.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Result    string `json:"result"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *CloudinaryUploader) post(ctx context.Context, action string, params map[string]string, filename string, data []byte) (*cloudinaryResponse, error) {
	params["timestamp"] = strconv.FormatInt(u.now().Unix(), 10)
	signature := u.Sign(params)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range params {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	_ = mw.WriteField("api_key", u.cfg.APIKey)
	_ = mw.WriteField("signature", signature)

	if data != nil {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(data); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/%s", strings.TrimRight(u.cfg.BaseURL, "/"), u.cfg.CloudName, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary %s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	var out cloudinaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("cloudinary %s: invalid response (status %d): %w", action, resp.StatusCode, err)
	}
	if resp.StatusCode >= 300 {
		msg := resp.Status
		if out.Error != nil {
			msg = out.Error.Message
		}
		return nil, fmt.Errorf("cloudinary %s failed: %s", action, msg)
	}
	return &out, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	out, err := u.post(ctx, "upload", map[string]string{"folder": u.cfg.Folder}, filename, data)
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

func (u *CloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := u.post(ctx, "destroy", map[string]string{"public_id": publicID}, "", nil)
	return err
}

// LocalUploader stores files under dir and serves them from urlPrefix.
type LocalUploader struct {
	dir       string
	urlPrefix string
}

func NewLocalUploader(dir, urlPrefix string) *LocalUploader {
	return &LocalUploader{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (u *LocalUploader) Upload(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.New().String() + mimetype.Detect(data).Extension()
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", filename, err)
	}
	return &UploadResult{URL: u.urlPrefix + "/" + name, PublicID: name}, nil
}

func (u *LocalUploader) Delete(ctx context.Context, publicID string) error {
	if publicID == "" || publicID != filepath.Base(publicID) {
		return nil
	}
	err := os.Remove(filepath.Join(u.dir, publicID))
	if err != nil && !os.IsNotExist(err) {
		log.Printf("LocalUploader.Delete: %v", err)
		return err
	}
	return nil
}
