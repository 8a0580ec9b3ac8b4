package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/domain/interfaces"
	"github.com/m-mizutani/storeget/pkg/domain/model"
	"github.com/m-mizutani/storeget/pkg/domain/types"
	"github.com/m-mizutani/storeget/pkg/utils/async"
)

// APIHandler exposes the resolve/download pipeline over HTTP
type APIHandler struct {
	resolveUC   interfaces.ResolveUseCase
	downloadUC  interfaces.DownloadUseCase
	downloadDir string
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(resolveUC interfaces.ResolveUseCase, downloadUC interfaces.DownloadUseCase, downloadDir string) *APIHandler {
	return &APIHandler{
		resolveUC:   resolveUC,
		downloadUC:  downloadUC,
		downloadDir: downloadDir,
	}
}

type resolveRequest struct {
	URL string `json:"url"`
}

// Resolve handles POST /api/resolve: synchronous resolution to JSON
func (h *APIHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		writeError(w, goerr.New("url is required"), http.StatusBadRequest)
		return
	}

	result, err := h.resolveUC.Resolve(ctx, req.URL)
	if err != nil {
		logger.Warn("Resolution failed", "error", err, "url", req.URL)
		// A URL we cannot recognize is the caller's fault; everything else
		// means the store backend let us down.
		status := http.StatusBadGateway
		if goerr.HasTag(err, types.ErrTagInvalidInput) {
			status = http.StatusBadRequest
		}
		writeError(w, err, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Error("Failed to encode resolution response", "error", err)
	}
}

type downloadRequest struct {
	URL   string `json:"url"`
	Index int    `json:"index"`
	Dir   string `json:"dir,omitempty"`
}

type downloadAccepted struct {
	JobID string `json:"job_id"`
}

// Download handles POST /api/downloads: accepts the job and runs the
// resolve-then-download pipeline in the background.
func (h *APIHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		writeError(w, goerr.New("url is required"), http.StatusBadRequest)
		return
	}
	if req.Index < 0 {
		writeError(w, goerr.New("index must not be negative"), http.StatusBadRequest)
		return
	}

	destDir := h.downloadDir
	if req.Dir != "" {
		destDir = req.Dir
	}

	jobID := uuid.NewString()
	logger.Info("Accepted download job", "job_id", jobID, "url", req.URL, "index", req.Index)

	async.Dispatch(ctx, func(ctx context.Context) error {
		return h.runDownload(ctx, jobID, req.URL, req.Index, destDir)
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(downloadAccepted{JobID: jobID}); err != nil {
		logger.Error("Failed to encode download response", "error", err)
	}
}

// runDownload executes one resolve-then-download pipeline for an accepted job
func (h *APIHandler) runDownload(ctx context.Context, jobID, productURL string, index int, destDir string) error {
	logger := ctxlog.From(ctx)

	result, err := h.resolveUC.Resolve(ctx, productURL)
	if err != nil {
		return goerr.Wrap(err, "resolution failed for download job", goerr.V("job_id", jobID))
	}
	if index >= len(result.Assets) {
		return goerr.New("asset index out of range",
			goerr.V("job_id", jobID),
			goerr.V("index", index),
			goerr.V("asset_count", len(result.Assets)),
		)
	}

	asset := result.Assets[index]
	res, err := h.downloadUC.Download(ctx, asset, destDir)
	if err != nil {
		return goerr.Wrap(err, "download failed for job",
			goerr.V("job_id", jobID),
			goerr.V("asset", asset.Name),
			goerr.V("failure_kind", model.FailureKindOf(err)),
		)
	}

	logger.Info("Download job completed",
		"job_id", jobID,
		"asset", asset.Name,
		"path", res.Path,
		"size_bytes", res.Size,
	)
	return nil
}
