package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// Family is the packaging model of a resolved product. A resolution result
// never mixes families: UWP bundles list per-architecture packages with a
// manifest timestamp, classic products list installers with a locale.
type Family string

const (
	FamilyUWP     Family = "uwp"
	FamilyClassic Family = "classic"
)

// LocaleUnknown is the sentinel locale for classic installers whose catalog
// entry does not declare one.
const LocaleUnknown = "unknown"

// Asset represents one downloadable artifact of a resolved product.
// Use NewUWPAsset or NewClassicAsset so the family-specific field is
// populated consistently.
type Asset struct {
	Name        string `json:"name"`
	Arch        string `json:"arch"`
	Extension   string `json:"extension"`
	DownloadURL string `json:"download_url"`
	Family      Family `json:"family"`

	// Modified is set for UWP assets only (bundle manifest timestamp)
	Modified string `json:"modified,omitempty"`

	// Locale is set for classic assets only, LocaleUnknown when undeclared
	Locale string `json:"locale,omitempty"`
}

// NewUWPAsset builds an asset of the UWP bundle family
func NewUWPAsset(name, arch, extension, downloadURL, modified string) Asset {
	return Asset{
		Name:        name,
		Arch:        arch,
		Extension:   extension,
		DownloadURL: downloadURL,
		Family:      FamilyUWP,
		Modified:    modified,
	}
}

// NewClassicAsset builds an asset of the classic installer family. An empty
// locale becomes LocaleUnknown.
func NewClassicAsset(name, arch, extension, downloadURL, locale string) Asset {
	if locale == "" {
		locale = LocaleUnknown
	}
	return Asset{
		Name:        name,
		Arch:        arch,
		Extension:   extension,
		DownloadURL: downloadURL,
		Family:      FamilyClassic,
		Locale:      locale,
	}
}

// Validate checks required fields and family-field consistency
func (a *Asset) Validate() error {
	if a.Name == "" {
		return goerr.New("asset name is empty")
	}
	if a.Arch == "" {
		return goerr.New("asset arch is empty", goerr.V("name", a.Name))
	}
	if a.DownloadURL == "" {
		return goerr.New("asset download URL is empty", goerr.V("name", a.Name))
	}

	switch a.Family {
	case FamilyUWP:
		if a.Locale != "" {
			return goerr.New("UWP asset must not carry a locale", goerr.V("name", a.Name))
		}
	case FamilyClassic:
		if a.Modified != "" {
			return goerr.New("classic asset must not carry a modified timestamp", goerr.V("name", a.Name))
		}
		if a.Locale == "" {
			return goerr.New("classic asset must carry a locale", goerr.V("name", a.Name))
		}
	default:
		return goerr.New("unknown asset family", goerr.V("family", a.Family), goerr.V("name", a.Name))
	}

	return nil
}

// MetaColumn returns the family-specific display value (modified timestamp
// for UWP, locale for classic)
func (a *Asset) MetaColumn() string {
	if a.Family == FamilyUWP {
		return a.Modified
	}
	return a.Locale
}

// ResolutionResult is the ordered asset list produced by one resolve call.
// Order is exactly the catalog's own listing; index 0 is the default choice
// in automated flows.
type ResolutionResult struct {
	Family Family  `json:"family"`
	Assets []Asset `json:"assets"`
}

// Validate verifies every asset is well-formed and belongs to the result's
// family
func (r *ResolutionResult) Validate() error {
	if r.Family != FamilyUWP && r.Family != FamilyClassic {
		return goerr.New("unknown result family", goerr.V("family", r.Family))
	}

	for i := range r.Assets {
		if err := r.Assets[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid asset in resolution result", goerr.V("index", i))
		}
		if r.Assets[i].Family != r.Family {
			return goerr.New("mixed families in resolution result",
				goerr.V("result_family", r.Family),
				goerr.V("asset_family", r.Assets[i].Family),
				goerr.V("index", i),
			)
		}
	}

	return nil
}
