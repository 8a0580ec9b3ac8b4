package interfaces

import (
	"context"

	"github.com/m-mizutani/storeget/pkg/domain/model"
)

// ResolveUseCase turns a store product URL into an ordered asset list plus
// family tag
type ResolveUseCase interface {
	// Resolve queries the store backend and normalizes its packaging
	// metadata. The returned order is the backend's own listing order.
	Resolve(ctx context.Context, productURL string) (*model.ResolutionResult, error)
}

// DownloadUseCase streams one asset to local disk
type DownloadUseCase interface {
	// Download writes the asset body to destDir/<asset name> and returns the
	// absolute path. All failures come back as tagged errors, never panics.
	Download(ctx context.Context, asset model.Asset, destDir string) (*model.DownloadResult, error)
}
