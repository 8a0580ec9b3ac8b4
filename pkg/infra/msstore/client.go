package msstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/domain/model"
	"github.com/m-mizutani/storeget/pkg/domain/types"
)

// Defaults for the store catalog endpoint. The base URL is configurable so
// tests can point the client at a local server.
const (
	DefaultAPIBase = "https://storeedgefd.dsx.mp.microsoft.com/v9.0"
	DefaultMarket  = "US"
	DefaultLocale  = "en-us"
)

// Client queries the Microsoft Store catalog API
type Client struct {
	httpClient *http.Client
	apiBase    string
	market     string
	locale     string
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for catalog queries
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIBase overrides the catalog API base URL
func WithAPIBase(apiBase string) Option {
	return func(c *Client) {
		c.apiBase = apiBase
	}
}

// WithMarket sets the store market (e.g. "US", "JP")
func WithMarket(market string) Option {
	return func(c *Client) {
		c.market = market
	}
}

// WithLocale sets the catalog query locale (e.g. "en-us")
func WithLocale(locale string) Option {
	return func(c *Client) {
		c.locale = locale
	}
}

// New creates a store catalog client
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		apiBase:    DefaultAPIBase,
		market:     DefaultMarket,
		locale:     DefaultLocale,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetProduct fetches packaging metadata for a product ID. A single failed
// attempt surfaces immediately; the caller decides what to do next.
func (c *Client) GetProduct(ctx context.Context, productID string) (*model.ProductMetadata, error) {
	endpoint := fmt.Sprintf("%s/products/%s?market=%s&locale=%s",
		c.apiBase, url.PathEscape(productID), url.QueryEscape(c.market), url.QueryEscape(c.locale))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create catalog request",
			goerr.T(types.ErrTagResolution), goerr.V("endpoint", endpoint))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", types.AppName+"/"+types.Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "store catalog is unreachable",
			goerr.T(types.ErrTagResolution), goerr.V("endpoint", endpoint))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, goerr.New("product not found in store catalog",
			goerr.T(types.ErrTagResolution), goerr.V("product_id", productID))
	case resp.StatusCode != http.StatusOK:
		return nil, goerr.New("unexpected status from store catalog",
			goerr.T(types.ErrTagResolution),
			goerr.V("product_id", productID),
			goerr.V("status_code", resp.StatusCode),
		)
	}

	var payload productResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, goerr.Wrap(err, "failed to decode catalog response",
			goerr.T(types.ErrTagResolution), goerr.V("product_id", productID))
	}

	meta := &model.ProductMetadata{
		ID:    payload.ProductID,
		Title: payload.Title,
	}
	if meta.ID == "" {
		meta.ID = productID
	}

	for _, pkg := range payload.Packages {
		meta.Packages = append(meta.Packages, model.BundlePackage{
			Name:         pkg.PackageName,
			Architecture: pkg.Architecture,
			Format:       pkg.PackageFormat,
			Modified:     pkg.ModifiedDate,
			DownloadURL:  pkg.DownloadURL,
		})
	}
	for _, ins := range payload.Installers {
		meta.Installers = append(meta.Installers, model.Installer{
			Name:         ins.Name,
			Architecture: ins.Architecture,
			Type:         ins.InstallerType,
			Locale:       ins.Locale,
			DownloadURL:  ins.DownloadURL,
		})
	}

	return meta, nil
}
