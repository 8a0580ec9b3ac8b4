package model

// BundlePackage is one sub-package of a UWP app bundle as listed by the
// store catalog, before normalization into an Asset.
type BundlePackage struct {
	Name         string
	Architecture string
	Format       string // e.g. "msixbundle", "appx"
	Modified     string // bundle manifest timestamp
	DownloadURL  string
}

// Installer is one classic installer listing from the store catalog.
type Installer struct {
	Name         string
	Architecture string
	Type         string // e.g. "exe", "msi"
	Locale       string // may be empty
	DownloadURL  string
}

// ProductMetadata is the raw packaging metadata returned by the store
// backend for one product. Exactly one of Packages/Installers is expected to
// be populated; both empty means the product ships nothing downloadable.
type ProductMetadata struct {
	ID         string
	Title      string
	Packages   []BundlePackage
	Installers []Installer
}

// HasPackaging reports whether the product lists any downloadable packaging
func (p *ProductMetadata) HasPackaging() bool {
	return len(p.Packages) > 0 || len(p.Installers) > 0
}
