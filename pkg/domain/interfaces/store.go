package interfaces

import (
	"context"

	"github.com/m-mizutani/storeget/pkg/domain/model"
)

// StoreCatalog defines operations for querying the store backend
type StoreCatalog interface {
	// ParseProductURL extracts the product ID from a store product page URL
	ParseProductURL(raw string) (string, error)

	// GetProduct fetches packaging metadata for a product ID
	GetProduct(ctx context.Context, productID string) (*model.ProductMetadata, error)
}
