package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUploadExpired     = errors.New("upload URL expired")
	ErrUploadDenied      = errors.New("upload URL not valid for this key")
	ErrUploadContentType = errors.New("content type differs from the presigned one")
)

// uploadClaims binds a presigned upload to one key and content type
type uploadClaims struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	jwt.RegisteredClaims
}

// MockStorageService implements image storage on the local filesystem.
// Uploads and downloads go through this server's /uploads routes.
type MockStorageService struct {
	baseURL    string // Server URL (e.g., "http://localhost:8080")
	imagesDir  string
	signingKey []byte
	now        func() time.Time
}

// NewMockStorageService creates the upload directory if needed.
// Upload URLs are signed with signingKey and verified by VerifyUpload.
func NewMockStorageService(baseURL, uploadsDir, signingKey string) (*MockStorageService, error) {
	if signingKey == "" {
		return nil, errors.New("upload signing key is required")
	}
	imagesDir := filepath.Join(uploadsDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	return &MockStorageService{
		baseURL:    baseURL,
		imagesDir:  imagesDir,
		signingKey: []byte(signingKey),
		now:        time.Now,
	}, nil
}

// PresignUpload returns an upload URL whose token query parameter is a signed
// grant for exactly this key and content type until expiresIn elapses
func (m *MockStorageService) PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	now := m.now()
	claims := uploadClaims{
		Key:         key,
		ContentType: contentType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign upload URL: %w", err)
	}

	q := url.Values{}
	q.Set("token", token)
	return fmt.Sprintf("%s/uploads/%s?%s", m.baseURL, key, q.Encode()), nil
}

func (m *MockStorageService) PublicURL(key string) string {
	return fmt.Sprintf("%s/uploads/%s", m.baseURL, key)
}

// KeyFromURL reports the key of a URL produced by PublicURL
func (m *MockStorageService) KeyFromURL(rawURL string) (string, bool) {
	key, ok := strings.CutPrefix(rawURL, m.baseURL+"/uploads/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// VerifyUpload checks that token was issued by PresignUpload for key and
// contentType and has not expired
func (m *MockStorageService) VerifyUpload(key, contentType, token string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrUploadDenied
	}

	parsed, err := jwt.ParseWithClaims(token, &uploadClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired(), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrUploadExpired
		}
		return ErrUploadDenied
	}

	claims, ok := parsed.Claims.(*uploadClaims)
	if !ok || !parsed.Valid || claims.Key != key {
		return ErrUploadDenied
	}
	if claims.ContentType != contentType {
		return ErrUploadContentType
	}
	return nil
}

func (m *MockStorageService) Exists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := m.localPath(key)
	if err != nil {
		return false, 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

// SaveFile writes at most maxBytes from reader; a larger body is an error and
// leaves no file behind.
func (m *MockStorageService) SaveFile(key string, reader io.Reader, maxBytes int64) error {
	fullPath, err := m.localPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	n, err := io.Copy(file, io.LimitReader(reader, maxBytes+1))
	closeErr := file.Close()
	if err == nil && n > maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadFile opens a stored object for reading
func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, error) {
	fullPath, err := m.localPath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (m *MockStorageService) localPath(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(m.imagesDir, filepath.FromSlash(key)), nil
}
