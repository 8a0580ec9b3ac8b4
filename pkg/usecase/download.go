package usecase

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/domain/interfaces"
	"github.com/m-mizutani/storeget/pkg/domain/model"
	"github.com/m-mizutani/storeget/pkg/domain/types"
)

// Defaults for the streamed download. Both are configurable via options; the
// timeout bounds the whole operation including the body transfer.
const (
	DefaultTimeout   = 120 * time.Second
	DefaultChunkSize = 8192
)

// ProgressFunc receives streaming progress. total is -1 when the response
// declares no Content-Length.
type ProgressFunc func(received, total int64)

type downloadUseCase struct {
	httpClient *http.Client
	timeout    time.Duration
	chunkSize  int
	progress   ProgressFunc
}

// DownloadOption is a functional option for the downloader
type DownloadOption func(*downloadUseCase)

// WithHTTPClient replaces the HTTP client used for asset transfers
func WithHTTPClient(httpClient *http.Client) DownloadOption {
	return func(uc *downloadUseCase) {
		uc.httpClient = httpClient
	}
}

// WithTimeout sets the total-operation timeout
func WithTimeout(d time.Duration) DownloadOption {
	return func(uc *downloadUseCase) {
		if d > 0 {
			uc.timeout = d
		}
	}
}

// WithChunkSize sets the streaming chunk size in bytes
func WithChunkSize(n int) DownloadOption {
	return func(uc *downloadUseCase) {
		if n > 0 {
			uc.chunkSize = n
		}
	}
}

// WithProgressFunc sets a progress callback invoked after each chunk
func WithProgressFunc(fn ProgressFunc) DownloadOption {
	return func(uc *downloadUseCase) {
		uc.progress = fn
	}
}

// NewDownload creates a new instance of DownloadUseCase
func NewDownload(opts ...DownloadOption) interfaces.DownloadUseCase {
	uc := &downloadUseCase{
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		chunkSize:  DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Download streams the asset body to destDir/<asset name> in fixed-size
// chunks. The body goes to a temp file in destDir first and is renamed into
// place only after it arrived completely, so a mid-stream failure never
// leaves a truncated file at the final path.
func (uc *downloadUseCase) Download(ctx context.Context, asset model.Asset, destDir string) (*model.DownloadResult, error) {
	logger := ctxlog.From(ctx)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create destination directory",
			goerr.T(types.ErrTagLocalIO), goerr.V("dir", destDir))
	}

	// Asset names come from catalog data; strip any path components
	destPath, err := filepath.Abs(filepath.Join(destDir, filepath.Base(asset.Name)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve destination path",
			goerr.T(types.ErrTagLocalIO), goerr.V("dir", destDir), goerr.V("name", asset.Name))
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request",
			goerr.T(types.ErrTagTransport), goerr.V("url", asset.DownloadURL))
	}

	resp, err := uc.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "download request failed",
			goerr.T(types.ErrTagTransport), goerr.V("url", asset.DownloadURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("download rejected by server",
			goerr.T(types.ErrTagHTTPStatus),
			goerr.V("status_code", resp.StatusCode),
			goerr.V("url", asset.DownloadURL),
		)
	}

	logger.Info("Downloading asset",
		"name", asset.Name,
		"dest", destPath,
		"content_length", resp.ContentLength,
	)

	size, err := uc.streamToFile(resp, destDir, destPath)
	if err != nil {
		return nil, err
	}

	logger.Info("Download completed", "dest", destPath, "size_bytes", size)

	return &model.DownloadResult{Path: destPath, Size: size}, nil
}

// streamToFile copies the response body to destPath via a temp file in the
// same directory. On any failure the temp file is removed.
func (uc *downloadUseCase) streamToFile(resp *http.Response, destDir, destPath string) (int64, error) {
	tmp, err := os.CreateTemp(destDir, ".storeget-*.part")
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create temp file",
			goerr.T(types.ErrTagLocalIO), goerr.V("dir", destDir))
	}

	var completed bool
	defer func() {
		_ = tmp.Close()
		if !completed {
			_ = os.Remove(tmp.Name())
		}
	}()

	// Fixed-size chunk loop: never buffers the full body in memory, and
	// keeps read failures (transport) distinct from write failures (local).
	buf := make([]byte, uc.chunkSize)
	var received int64
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := tmp.Write(buf[:n]); writeErr != nil {
				return 0, goerr.Wrap(writeErr, "failed to write chunk",
					goerr.T(types.ErrTagLocalIO), goerr.V("path", tmp.Name()))
			}
			received += int64(n)
			if uc.progress != nil {
				uc.progress(received, resp.ContentLength)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return 0, goerr.Wrap(readErr, "connection failed during transfer",
				goerr.T(types.ErrTagTransport),
				goerr.V("received_bytes", received),
			)
		}
	}

	if resp.ContentLength >= 0 && received != resp.ContentLength {
		return 0, goerr.New("transfer ended before declared content length",
			goerr.T(types.ErrTagTransport),
			goerr.V("received_bytes", received),
			goerr.V("content_length", resp.ContentLength),
		)
	}

	if err := tmp.Close(); err != nil {
		return 0, goerr.Wrap(err, "failed to close temp file",
			goerr.T(types.ErrTagLocalIO), goerr.V("path", tmp.Name()))
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return 0, goerr.Wrap(err, "failed to move download into place",
			goerr.T(types.ErrTagLocalIO), goerr.V("path", destPath))
	}

	completed = true
	return received, nil
}
