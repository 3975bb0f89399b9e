package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	driveUploadEndpoint = "https://www.googleapis.com/upload/drive/v3/files?uploadType=multipart&fields=id"
	driveFilesEndpoint  = "https://www.googleapis.com/drive/v3/files"
)

// DriveStorage stores files in a Google Drive folder owned by a service
// account. Storage keys are Drive file IDs, so the path passed to Upload only
// determines the display name.
type DriveStorage struct {
	client   *http.Client
	folderID string
}

func NewDriveStorage(clientID, clientSecret, refreshToken, folderID string) *DriveStorage {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"https://www.googleapis.com/auth/drive.file"},
	}

	token := &oauth2.Token{RefreshToken: refreshToken}
	return &DriveStorage{
		client:   conf.Client(context.Background(), token),
		folderID: folderID,
	}
}

func (s *DriveStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := mw.CreatePart(metaHeader)
	if err != nil {
		return "", fmt.Errorf("failed to create metadata part: %w", err)
	}
	meta := map[string]interface{}{
		"name":    path,
		"parents": []string{s.folderID},
	}
	if err := json.NewEncoder(metaPart).Encode(meta); err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Type", contentType)
	filePart, err := mw.CreatePart(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(filePart, file); err != nil {
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, driveUploadEndpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload to drive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("drive upload failed with status %d", resp.StatusCode)
	}

	var uploaded struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	return uploaded.ID, nil
}

func (s *DriveStorage) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		driveFilesEndpoint+"/"+url.PathEscape(path), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete drive file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("drive delete failed with status %d", resp.StatusCode)
	}
	return nil
}

func (s *DriveStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	// Files uploaded with the drive.file scope are shared by link; the view
	// URL does not expire.
	return "https://drive.google.com/uc?id=" + url.QueryEscape(path), nil
}

func (s *DriveStorage) Exists(ctx context.Context, path string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		driveFilesEndpoint+"/"+url.PathEscape(path)+"?fields=id", nil)
	if err != nil {
		return false, fmt.Errorf("failed to build metadata request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to query drive file: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("drive metadata query failed with status %d", resp.StatusCode)
	}
}
