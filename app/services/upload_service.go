package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

// allowed upload extensions, lowercase.
var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
	".gif": true, ".svg": true, ".mp4": true, ".webm": true,
}

// MaxUploadSize caps a single uploaded file.
const MaxUploadSize = 10 << 20 // 10 MiB

// UploadService stores media files on the configured disk (local in
// development, S3 in production) under a per-tenant prefix and returns
// the public URL.
type UploadService struct{}

func NewUploadService() *UploadService { return &UploadService{} }

// Save validates and stores one uploaded file, returning its URL.
func (s *UploadService) Save(scope primitive.ObjectID, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxUploadSize {
		return "", apperr.New(apperr.Validation, "File exceeds the 10 MB limit")
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", apperr.Newf(apperr.Validation, "File type %q is not allowed", ext)
	}

	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	name, err := randomName()
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("uploads/%s/%s%s", scope.Hex(), name, ext)

	if err := storage.PutStream(path, io.LimitReader(f, MaxUploadSize)); err != nil {
		return "", err
	}
	return storage.URL(path), nil
}

// Delete removes a previously uploaded file by its storage path.
// Only paths under the tenant's own prefix are accepted.
func (s *UploadService) Delete(scope primitive.ObjectID, path string) error {
	prefix := "uploads/" + scope.Hex() + "/"
	if !strings.HasPrefix(path, prefix) || strings.Contains(path, "..") {
		return apperr.New(apperr.Validation, "Invalid file path")
	}
	return storage.Delete(path)
}

func randomName() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
