package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/storeget/pkg/controller/http"
	"github.com/m-mizutani/storeget/pkg/domain/model"
	"github.com/m-mizutani/storeget/pkg/domain/types"
)

// MockResolveUseCase is a mock implementation of ResolveUseCase
type MockResolveUseCase struct {
	resolveFunc func(ctx context.Context, productURL string) (*model.ResolutionResult, error)
}

func (m *MockResolveUseCase) Resolve(ctx context.Context, productURL string) (*model.ResolutionResult, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, productURL)
	}
	return nil, errors.New("mock not configured")
}

// MockDownloadUseCase is a mock implementation of DownloadUseCase
type MockDownloadUseCase struct {
	mu            sync.Mutex
	downloadFunc  func(ctx context.Context, asset model.Asset, destDir string) (*model.DownloadResult, error)
	downloadCalls []model.Asset
	done          chan struct{}
}

func (m *MockDownloadUseCase) Download(ctx context.Context, asset model.Asset, destDir string) (*model.DownloadResult, error) {
	m.mu.Lock()
	m.downloadCalls = append(m.downloadCalls, asset)
	m.mu.Unlock()
	defer func() {
		if m.done != nil {
			m.done <- struct{}{}
		}
	}()
	if m.downloadFunc != nil {
		return m.downloadFunc(ctx, asset, destDir)
	}
	return &model.DownloadResult{Path: "/tmp/" + asset.Name, Size: 1}, nil
}

func (m *MockDownloadUseCase) Calls() []model.Asset {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Asset(nil), m.downloadCalls...)
}

func uwpResult() *model.ResolutionResult {
	return &model.ResolutionResult{
		Family: model.FamilyUWP,
		Assets: []model.Asset{
			model.NewUWPAsset("App_x64.msixbundle", "x64", "msixbundle", "https://cdn.example.com/x64", "2024-01-01"),
			model.NewUWPAsset("App_arm64.msixbundle", "arm64", "msixbundle", "https://cdn.example.com/arm64", "2024-01-01"),
			model.NewUWPAsset("App_x86.msixbundle", "x86", "msixbundle", "https://cdn.example.com/x86", "2024-01-01"),
		},
	}
}

func newTestServer(t *testing.T, resolveUC *MockResolveUseCase, downloadUC *MockDownloadUseCase) *controller.Server {
	t.Helper()
	server, err := controller.NewServer(
		context.Background(),
		resolveUC,
		downloadUC,
		controller.WithAddr("localhost:0"),
		controller.WithDownloadDir(t.TempDir()),
	)
	gt.NoError(t, err)
	return server
}

func TestResolveEndpoint(t *testing.T) {
	resolveUC := &MockResolveUseCase{
		resolveFunc: func(ctx context.Context, productURL string) (*model.ResolutionResult, error) {
			return uwpResult(), nil
		},
	}
	server := newTestServer(t, resolveUC, &MockDownloadUseCase{})

	body := bytes.NewBufferString(`{"url":"https://apps.microsoft.com/detail/9pdxgncfsczv"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/resolve", body)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Number(t, w.Code).Equal(http.StatusOK)

	var result model.ResolutionResult
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	gt.Value(t, result.Family).Equal(model.FamilyUWP)
	gt.Number(t, len(result.Assets)).Equal(3)
	gt.Value(t, result.Assets[0].Name).Equal("App_x64.msixbundle")
}

func TestResolveEndpoint_MissingURL(t *testing.T) {
	server := newTestServer(t, &MockResolveUseCase{}, &MockDownloadUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/api/resolve", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Number(t, w.Code).Equal(http.StatusBadRequest)
}

func TestResolveEndpoint_UnrecognizedURL(t *testing.T) {
	resolveUC := &MockResolveUseCase{
		resolveFunc: func(ctx context.Context, productURL string) (*model.ResolutionResult, error) {
			return nil, goerr.New("unrecognized product URL",
				goerr.T(types.ErrTagResolution), goerr.T(types.ErrTagInvalidInput))
		},
	}
	server := newTestServer(t, resolveUC, &MockDownloadUseCase{})

	body := bytes.NewBufferString(`{"url":"https://example.com/not-a-store-page"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/resolve", body)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	// Caller-fault input comes back as 400, not as an upstream failure
	gt.Number(t, w.Code).Equal(http.StatusBadRequest)
}

func TestResolveEndpoint_ResolutionFailure(t *testing.T) {
	resolveUC := &MockResolveUseCase{
		resolveFunc: func(ctx context.Context, productURL string) (*model.ResolutionResult, error) {
			return nil, errors.New("catalog unreachable")
		},
	}
	server := newTestServer(t, resolveUC, &MockDownloadUseCase{})

	body := bytes.NewBufferString(`{"url":"https://apps.microsoft.com/detail/9pdxgncfsczv"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/resolve", body)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Number(t, w.Code).Equal(http.StatusBadGateway)
}

func TestDownloadEndpoint_RunsFirstAsset(t *testing.T) {
	resolveUC := &MockResolveUseCase{
		resolveFunc: func(ctx context.Context, productURL string) (*model.ResolutionResult, error) {
			return uwpResult(), nil
		},
	}
	downloadUC := &MockDownloadUseCase{done: make(chan struct{}, 1)}
	server := newTestServer(t, resolveUC, downloadUC)

	body := bytes.NewBufferString(`{"url":"https://apps.microsoft.com/detail/9pdxgncfsczv","index":0}`)
	req := httptest.NewRequest(http.MethodPost, "/api/downloads", body)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Number(t, w.Code).Equal(http.StatusAccepted)

	var accepted struct {
		JobID string `json:"job_id"`
	}
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&accepted))
	gt.Value(t, accepted.JobID).NotEqual("")

	// The pipeline runs in the background; wait for the dispatched download
	select {
	case <-downloadUC.done:
	case <-time.After(2 * time.Second):
		t.Fatal("download was not dispatched within timeout")
	}

	calls := downloadUC.Calls()
	gt.Number(t, len(calls)).Equal(1)
	gt.Value(t, calls[0].Name).Equal("App_x64.msixbundle")
}

func TestDownloadEndpoint_InvalidIndex(t *testing.T) {
	server := newTestServer(t, &MockResolveUseCase{}, &MockDownloadUseCase{})

	body := bytes.NewBufferString(`{"url":"https://apps.microsoft.com/detail/9pdxgncfsczv","index":-1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/downloads", body)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Number(t, w.Code).Equal(http.StatusBadRequest)
}
