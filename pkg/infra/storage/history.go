// Package storage persists download history in a local SQLite database.
package storage

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/domain/interfaces"
	"github.com/m-mizutani/storeget/pkg/domain/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type historyStore struct {
	db *gorm.DB
}

// New opens (and migrates) the history database at the given path
func New(path string) (interfaces.HistoryStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open history database", goerr.V("path", path))
	}

	if err := db.AutoMigrate(&model.DownloadRecord{}); err != nil {
		return nil, goerr.Wrap(err, "failed to migrate history schema", goerr.V("path", path))
	}

	return &historyStore{db: db}, nil
}

// Record appends one download record
func (s *historyStore) Record(ctx context.Context, rec *model.DownloadRecord) error {
	if rec == nil {
		return goerr.New("download record must not be nil")
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return goerr.Wrap(err, "failed to record download", goerr.V("asset", rec.AssetName))
	}
	return nil
}

// List returns the most recent records, newest first
func (s *historyStore) List(ctx context.Context, limit int) ([]*model.DownloadRecord, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []*model.DownloadRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to list download history")
	}
	return records, nil
}

func (s *historyStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return goerr.Wrap(err, "failed to access underlying database")
	}
	return sqlDB.Close()
}
