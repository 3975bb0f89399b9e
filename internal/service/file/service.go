package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/storage"
)

type FileService interface {
	// UploadCheckPhoto stores a check-in/check-out proof photo and returns
	// the stored path
	UploadCheckPhoto(ctx context.Context, nik string, date time.Time, file io.Reader, filename string, direction string) (string, error)

	// UploadAttachment stores a permit/confirmation supporting document
	UploadAttachment(ctx context.Context, nik string, file io.Reader, filename string) (string, error)

	// URL resolves a stored path to a public URL
	URL(ctx context.Context, path string) (string, error)

	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: storage}
}

var imageExts = []string{".jpg", ".jpeg", ".png"}

func validExt(filename string, allowed []string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return ext, true
		}
	}
	return ext, false
}

// UploadCheckPhoto implements FileService.
func (s *fileServiceImpl) UploadCheckPhoto(ctx context.Context, nik string, date time.Time, file io.Reader, filename string, direction string) (string, error) {
	ext, ok := validExt(filename, imageExts)
	if !ok {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	newFilename := fmt.Sprintf("%s-%s-%s%s", nik, direction, uuid.New().String(), ext)
	path := filepath.Join("checks", date.Format("2006-01-02"), newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload check photo: %w", err)
	}

	return uploadedPath, nil
}

// UploadAttachment implements FileService.
func (s *fileServiceImpl) UploadAttachment(ctx context.Context, nik string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	newFilename := fmt.Sprintf("%s-%s%s", uuid.New().String(), nik, ext)
	path := filepath.Join("attachments", nik, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, "application/octet-stream")
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}

	return uploadedPath, nil
}

// URL implements FileService.
func (s *fileServiceImpl) URL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path, 24*time.Hour)
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}
