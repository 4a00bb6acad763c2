package sheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/huseyintonguc/DEPO/internal/domain"
)

// Blob is the transport under the workbook: whole-file download and upload.
// Download returns (nil, nil) when the file does not exist yet, so a fresh
// store starts as an empty workbook instead of an error.
type Blob interface {
	Download(ctx context.Context) ([]byte, error)
	Upload(ctx context.Context, data []byte) error
}

// FileBlob keeps the workbook on the local filesystem.
type FileBlob struct {
	Path string
}

// NewFileBlob builds a file-backed blob.
func NewFileBlob(path string) *FileBlob { return &FileBlob{Path: path} }

func (b *FileBlob) Download(context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrRemoteUnavailable, b.Path, err)
	}
	return data, nil
}

func (b *FileBlob) Upload(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	// Write-then-rename so a crash mid-write never leaves a torn workbook.
	tmp := b.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, b.Path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HTTPBlob keeps the workbook behind a remote GET/PUT endpoint (a Drive
// proxy, WebDAV share, S3 presigned pair...). Requests carry an explicit
// timeout; the upload gets one bounded retry since a failed write is the
// fault that actually hurts.
type HTTPBlob struct {
	url        string
	token      string
	client     *http.Client
	retryDelay time.Duration
}

// NewHTTPBlob builds the remote blob. token is an optional bearer token.
func NewHTTPBlob(url, token string, timeout time.Duration) *HTTPBlob {
	return &HTTPBlob{
		url:        url,
		token:      token,
		client:     &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
	}
}

func (b *HTTPBlob) Download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		return nil, err
	}
	b.authorize(req)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: download: unexpected status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: download body: %v", domain.ErrRemoteUnavailable, err)
	}
	return data, nil
}

func (b *HTTPBlob) Upload(ctx context.Context, data []byte) error {
	err := b.put(ctx, data)
	if err == nil {
		return nil
	}
	// One bounded retry.
	select {
	case <-time.After(b.retryDelay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return b.put(ctx, data)
}

func (b *HTTPBlob) put(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", xlsxContentType)
	b.authorize(req)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: upload: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: upload: unexpected status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}
	return nil
}

func (b *HTTPBlob) authorize(req *http.Request) {
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
}
