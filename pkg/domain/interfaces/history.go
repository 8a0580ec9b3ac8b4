package interfaces

import (
	"context"

	"github.com/m-mizutani/storeget/pkg/domain/model"
)

// HistoryStore persists download records locally
type HistoryStore interface {
	// Record appends one download record
	Record(ctx context.Context, rec *model.DownloadRecord) error

	// List returns the most recent records, newest first. limit <= 0 means
	// no limit.
	List(ctx context.Context, limit int) ([]*model.DownloadRecord, error)

	Close() error
}
