package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/storeget/pkg/domain/model"
	"github.com/m-mizutani/storeget/pkg/infra/storage"
)

func TestHistoryStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "storeget.db")

	store, err := storage.New(dbPath)
	gt.NoError(t, err)
	defer store.Close()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	records := []*model.DownloadRecord{
		{
			ProductURL: "https://apps.microsoft.com/detail/9pdxgncfsczv",
			AssetName:  "App_x64.msixbundle",
			Arch:       "x64",
			Extension:  "msixbundle",
			Family:     string(model.FamilyUWP),
			SourceURL:  "https://cdn.example.com/App_x64.msixbundle",
			DestPath:   "/tmp/downloads/App_x64.msixbundle",
			Size:       1024,
			Succeeded:  true,
			CreatedAt:  base,
		},
		{
			ProductURL:  "https://apps.microsoft.com/detail/9pdxgncfsczv",
			AssetName:   "App_arm64.msixbundle",
			Arch:        "arm64",
			Family:      string(model.FamilyUWP),
			SourceURL:   "https://cdn.example.com/App_arm64.msixbundle",
			Succeeded:   false,
			FailureKind: string(model.FailureHTTPStatus),
			Error:       "download rejected by server",
			CreatedAt:   base.Add(time.Minute),
		},
	}
	for _, rec := range records {
		gt.NoError(t, store.Record(ctx, rec))
	}

	listed, err := store.List(ctx, 0)
	gt.NoError(t, err)
	gt.Number(t, len(listed)).Equal(2)

	// Newest first
	gt.Value(t, listed[0].AssetName).Equal("App_arm64.msixbundle")
	gt.Value(t, listed[0].Succeeded).Equal(false)
	gt.Value(t, listed[0].FailureKind).Equal(string(model.FailureHTTPStatus))
	gt.Value(t, listed[1].AssetName).Equal("App_x64.msixbundle")
	gt.Value(t, listed[1].Succeeded).Equal(true)
	gt.Number(t, listed[1].Size).Equal(int64(1024))
}

func TestHistoryStore_ListLimit(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "storeget.db")

	store, err := storage.New(dbPath)
	gt.NoError(t, err)
	defer store.Close()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		gt.NoError(t, store.Record(ctx, &model.DownloadRecord{
			ProductURL: "https://apps.microsoft.com/detail/9pdxgncfsczv",
			AssetName:  "asset",
			SourceURL:  "https://cdn.example.com/asset",
			Succeeded:  true,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	listed, err := store.List(ctx, 3)
	gt.NoError(t, err)
	gt.Number(t, len(listed)).Equal(3)
}

func TestHistoryStore_RecordNil(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "storeget.db")

	store, err := storage.New(dbPath)
	gt.NoError(t, err)
	defer store.Close()

	gt.Error(t, store.Record(context.Background(), nil))
}

func TestHistoryStore_ReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "storeget.db")

	store, err := storage.New(dbPath)
	gt.NoError(t, err)
	gt.NoError(t, store.Record(ctx, &model.DownloadRecord{
		ProductURL: "https://apps.microsoft.com/detail/9pdxgncfsczv",
		AssetName:  "asset",
		SourceURL:  "https://cdn.example.com/asset",
		Succeeded:  true,
		CreatedAt:  time.Now(),
	}))
	gt.NoError(t, store.Close())

	reopened, err := storage.New(dbPath)
	gt.NoError(t, err)
	defer reopened.Close()

	listed, err := reopened.List(ctx, 0)
	gt.NoError(t, err)
	gt.Number(t, len(listed)).Equal(1)
}
