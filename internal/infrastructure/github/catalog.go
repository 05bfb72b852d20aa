package github

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
	plugindomain "github.com/soulstoneaddons/bepinex-installer/internal/core/domain/plugin"
	"github.com/soulstoneaddons/bepinex-installer/internal/infrastructure/archive"
)

// Transport is the subset of the HTTP client the catalog needs
type Transport interface {
	GetJSON(ctx context.Context, url string, v interface{}) error
	Download(ctx context.Context, url, path string) (int64, error)
}

// Options configures the catalog client
type Options struct {
	APIURL     string // https://api.github.com
	Org        string
	Topic      string
	PluginsDir string // relative to the install root
}

// repository is the part of a GitHub repository record the catalog uses
type repository struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	HTMLURL     string   `json:"html_url"`
	URL         string   `json:"url"`
	Private     bool     `json:"private"`
	Topics      []string `json:"topics"`
}

type release struct {
	TagName string  `json:"tag_name"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Catalog lists plugins published in a GitHub organization and installs
// their release assets
type Catalog struct {
	opts      Options
	transport Transport
	logger    zerolog.Logger
}

// NewCatalog creates a catalog client
func NewCatalog(opts Options, transport Transport, logger zerolog.Logger) *Catalog {
	opts.APIURL = strings.TrimRight(opts.APIURL, "/")
	return &Catalog{
		opts:      opts,
		transport: transport,
		logger:    logger.With().Str("component", "catalog").Logger(),
	}
}

// ListPlugins returns the public repositories of the organization tagged
// with the plugin topic. A rate-limited response is returned as
// domain.ErrRateLimited.
func (c *Catalog) ListPlugins(ctx context.Context) ([]plugindomain.Descriptor, error) {
	url := fmt.Sprintf("%s/orgs/%s/repos", c.opts.APIURL, c.opts.Org)

	var repos []repository
	if err := c.transport.GetJSON(ctx, url, &repos); err != nil {
		return nil, fmt.Errorf("failed to list repositories of %s: %w", c.opts.Org, err)
	}

	plugins := make([]plugindomain.Descriptor, 0, len(repos))
	for _, repo := range repos {
		if repo.Private || !hasTopic(repo.Topics, c.opts.Topic) {
			continue
		}
		plugins = append(plugins, plugindomain.Descriptor{
			Name:          deref(repo.Name),
			Description:   deref(repo.Description),
			RepositoryURL: repo.HTMLURL,
			APIURL:        repo.URL,
		})
	}

	c.logger.Debug().Int("repositories", len(repos)).Int("plugins", len(plugins)).Msg("catalog listed")
	return plugins, nil
}

// LatestAsset returns the first asset of the first release of a plugin
func (c *Catalog) LatestAsset(ctx context.Context, plugin plugindomain.Descriptor) (plugindomain.ReleaseAsset, error) {
	url := strings.TrimRight(plugin.APIURL, "/") + "/releases"

	var releases []release
	if err := c.transport.GetJSON(ctx, url, &releases); err != nil {
		return plugindomain.ReleaseAsset{}, err
	}

	if len(releases) == 0 {
		return plugindomain.ReleaseAsset{}, domain.NewError(domain.KindInstall, "resolve-release", domain.ErrNoRelease)
	}
	first := releases[0]
	if len(first.Assets) == 0 {
		return plugindomain.ReleaseAsset{}, domain.NewError(domain.KindInstall, "resolve-release",
			fmt.Errorf("%w in release %s", domain.ErrNoAsset, first.TagName))
	}

	return plugindomain.ReleaseAsset{
		Name:        first.Assets[0].Name,
		DownloadURL: first.Assets[0].BrowserDownloadURL,
	}, nil
}

// DownloadPlugin installs the latest release asset of plugin under
// <installRoot>/<PluginsDir>. Archives are extracted in place and removed.
// Assets that are neither a library nor an archive are rejected before
// anything is downloaded.
func (c *Catalog) DownloadPlugin(ctx context.Context, plugin plugindomain.Descriptor, installRoot string) (plugindomain.InstallResult, error) {
	result := plugindomain.InstallResult{Plugin: plugin}

	releaseAsset, err := c.LatestAsset(ctx, plugin)
	if err != nil {
		return result, err
	}
	result.Asset = releaseAsset

	// The name becomes a path, so it must not carry directories
	if filepath.Base(releaseAsset.Name) != releaseAsset.Name || !plugindomain.IsSupportedAsset(releaseAsset.Name) {
		return result, domain.NewError(domain.KindInstall, "validate-asset",
			fmt.Errorf("%w: %s (expected %s or %s)", domain.ErrUnsupportedAsset, releaseAsset.Name, plugindomain.ExtLibrary, plugindomain.ExtArchive))
	}

	pluginsDir := filepath.Join(installRoot, filepath.FromSlash(c.opts.PluginsDir))
	if err := os.MkdirAll(pluginsDir, 0755); err != nil {
		return result, domain.NewError(domain.KindIO, "create-plugins-dir", err)
	}

	target := filepath.Join(pluginsDir, releaseAsset.Name)
	if _, err := c.transport.Download(ctx, releaseAsset.DownloadURL, target); err != nil {
		return result, err
	}
	result.Path = target

	if plugindomain.IsArchiveAsset(releaseAsset.Name) {
		if err := archive.ExtractZip(target, pluginsDir); err != nil {
			return result, err
		}
		if err := os.Remove(target); err != nil {
			return result, domain.NewError(domain.KindIO, "remove-archive", err)
		}
		result.Path = pluginsDir
		result.Extracted = true
	}

	c.logger.Debug().Str("plugin", plugin.Name).Str("asset", releaseAsset.Name).Str("path", result.Path).Msg("plugin installed")
	return result, nil
}

func hasTopic(topics []string, topic string) bool {
	for _, t := range topics {
		if t == topic {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
