package usecase

import (
	"context"
	"path"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/domain/interfaces"
	"github.com/m-mizutani/storeget/pkg/domain/model"
	"github.com/m-mizutani/storeget/pkg/domain/types"
	"golang.org/x/text/language"
)

type resolveUseCase struct {
	catalog interfaces.StoreCatalog
}

// NewResolve creates a new instance of ResolveUseCase
func NewResolve(catalog interfaces.StoreCatalog) interfaces.ResolveUseCase {
	return &resolveUseCase{
		catalog: catalog,
	}
}

// Resolve queries the store catalog and normalizes its packaging metadata
// into an ordered asset list plus family tag. The catalog's listing order is
// preserved; index 0 is the default choice for automated flows.
func (uc *resolveUseCase) Resolve(ctx context.Context, productURL string) (*model.ResolutionResult, error) {
	logger := ctxlog.From(ctx)

	productID, err := uc.catalog.ParseProductURL(productURL)
	if err != nil {
		return nil, goerr.Wrap(err, "unrecognized product URL",
			goerr.T(types.ErrTagResolution), goerr.T(types.ErrTagInvalidInput),
			goerr.V("url", productURL))
	}

	logger.Debug("Resolved product ID from URL", "product_id", productID, "url", productURL)

	meta, err := uc.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch product metadata",
			goerr.T(types.ErrTagResolution), goerr.V("product_id", productID))
	}

	if !meta.HasPackaging() {
		return nil, goerr.New("product has no packaging data",
			goerr.T(types.ErrTagResolution), goerr.V("product_id", productID))
	}

	// Bundle packages take precedence: a product listing them is UWP even if
	// the catalog also carries legacy installer entries.
	var result *model.ResolutionResult
	if len(meta.Packages) > 0 {
		result = normalizeBundle(meta)
	} else {
		result = normalizeInstallers(meta)
	}

	if err := result.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog returned unusable packaging metadata",
			goerr.T(types.ErrTagResolution), goerr.V("product_id", productID))
	}

	logger.Info("Resolved product assets",
		"product_id", productID,
		"title", meta.Title,
		"family", result.Family,
		"asset_count", len(result.Assets),
	)

	return result, nil
}

func normalizeBundle(meta *model.ProductMetadata) *model.ResolutionResult {
	assets := make([]model.Asset, 0, len(meta.Packages))
	for _, pkg := range meta.Packages {
		assets = append(assets, model.NewUWPAsset(
			pkg.Name,
			normalizeArch(pkg.Architecture),
			normalizeExtension(pkg.Format, pkg.DownloadURL),
			pkg.DownloadURL,
			pkg.Modified,
		))
	}
	return &model.ResolutionResult{Family: model.FamilyUWP, Assets: assets}
}

func normalizeInstallers(meta *model.ProductMetadata) *model.ResolutionResult {
	assets := make([]model.Asset, 0, len(meta.Installers))
	for _, ins := range meta.Installers {
		assets = append(assets, model.NewClassicAsset(
			ins.Name,
			normalizeArch(ins.Architecture),
			normalizeExtension(ins.Type, ins.DownloadURL),
			ins.DownloadURL,
			normalizeLocale(ins.Locale),
		))
	}
	return &model.ResolutionResult{Family: model.FamilyClassic, Assets: assets}
}

// normalizeArch lowercases the architecture tag; listings without one are
// architecture-neutral.
func normalizeArch(arch string) string {
	arch = strings.ToLower(strings.TrimSpace(arch))
	if arch == "" {
		return "neutral"
	}
	return arch
}

// normalizeExtension returns the lowercase file extension without a leading
// dot, preferring the declared package format over the URL path.
func normalizeExtension(format, downloadURL string) string {
	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if ext == "" {
		ext = strings.ToLower(strings.TrimPrefix(path.Ext(downloadURL), "."))
	}
	return ext
}

// normalizeLocale canonicalizes BCP 47 tags ("en-us" -> "en-US"); values the
// catalog omits or that do not parse become the unknown sentinel.
func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return model.LocaleUnknown
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return model.LocaleUnknown
	}
	return tag.String()
}
