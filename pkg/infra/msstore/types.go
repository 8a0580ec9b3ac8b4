package msstore

// Wire types for the store catalog API. A product response lists either
// bundle packages (UWP) or installers (classic); the resolver decides the
// family from which list is populated.

type productResponse struct {
	ProductID  string           `json:"productId"`
	Title      string           `json:"title"`
	Packages   []packageEntry   `json:"packages"`
	Installers []installerEntry `json:"installers"`
}

type packageEntry struct {
	PackageName   string `json:"packageName"`
	Architecture  string `json:"architecture"`
	PackageFormat string `json:"packageFormat"`
	ModifiedDate  string `json:"modifiedDate"`
	DownloadURL   string `json:"downloadUrl"`
}

type installerEntry struct {
	Name          string `json:"name"`
	Architecture  string `json:"architecture"`
	InstallerType string `json:"installerType"`
	Locale        string `json:"locale"`
	DownloadURL   string `json:"downloadUrl"`
}
