package plugindomain

import "strings"

// Descriptor is a community plugin published as a repository in the
// plugin organization
type Descriptor struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	RepositoryURL string `json:"repository_url"`
	APIURL        string `json:"api_url"`
}

// ReleaseAsset is the downloadable file attached to a plugin release
type ReleaseAsset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

// InstallResult describes a plugin that was written to disk
type InstallResult struct {
	Plugin    Descriptor
	Asset     ReleaseAsset
	Path      string
	Extracted bool
}

// Asset file extensions accepted for installation
const (
	ExtLibrary = ".dll"
	ExtArchive = ".zip"
)

// IsSupportedAsset reports whether an asset can be installed into the
// plugins directory
func IsSupportedAsset(name string) bool {
	return strings.HasSuffix(name, ExtLibrary) || strings.HasSuffix(name, ExtArchive)
}

// IsArchiveAsset reports whether the asset must be extracted after download
func IsArchiveAsset(name string) bool {
	return strings.HasSuffix(name, ExtArchive)
}
