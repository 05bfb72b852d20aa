package bepinex

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
	"github.com/soulstoneaddons/bepinex-installer/internal/infrastructure/archive"
)

// RuntimeDir is the top-level folder the runtime archive unpacks into
const RuntimeDir = "BepInEx"

const archiveName = "bepinex.zip"

// requiredDirs must all exist for the runtime to count as installed
var requiredDirs = []string{
	RuntimeDir,
	filepath.Join(RuntimeDir, "core"),
	filepath.Join(RuntimeDir, "plugins"),
	filepath.Join(RuntimeDir, "config"),
}

// Downloader saves a URL to a local file
type Downloader interface {
	Download(ctx context.Context, url, path string) (int64, error)
}

// Options configures the runtime installer
type Options struct {
	ArchiveURL  string
	ScratchDir  string        // created inside the game directory
	SettleDelay time.Duration // pause after extraction before moving files
}

// Installer installs the BepInEx runtime into a game directory
type Installer struct {
	opts       Options
	downloader Downloader
	logger     zerolog.Logger
}

// NewInstaller creates a runtime installer
func NewInstaller(opts Options, downloader Downloader, logger zerolog.Logger) *Installer {
	return &Installer{
		opts:       opts,
		downloader: downloader,
		logger:     logger.With().Str("component", "bepinex").Logger(),
	}
}

// IsInstalled reports whether BepInEx and its core, plugins and config
// folders exist under gameDir
func (i *Installer) IsInstalled(gameDir string) bool {
	for _, dir := range requiredDirs {
		if !dirExists(filepath.Join(gameDir, dir)) {
			return false
		}
	}
	return true
}

// HasRun reports whether the game has been started with the runtime at
// least once, which is when BepInEx generates its interop assemblies
func (i *Installer) HasRun(gameDir string) bool {
	return dirExists(filepath.Join(gameDir, RuntimeDir, "interop"))
}

// Install downloads and unpacks the runtime unless it is already present,
// in which case no network request is made and false is returned.
//
// A failure leaves whatever was already written in place: the scratch
// directory and any entries moved before the failing one are not cleaned up.
func (i *Installer) Install(ctx context.Context, gameDir string) (bool, error) {
	if i.IsInstalled(gameDir) {
		i.logger.Debug().Str("game", gameDir).Msg("runtime already installed")
		return false, nil
	}

	scratch := filepath.Join(gameDir, i.opts.ScratchDir)
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return false, domain.NewError(domain.KindIO, "create-scratch", err)
	}

	archivePath := filepath.Join(scratch, archiveName)
	i.logger.Debug().Str("url", i.opts.ArchiveURL).Str("path", archivePath).Msg("downloading runtime")
	if _, err := i.downloader.Download(ctx, i.opts.ArchiveURL, archivePath); err != nil {
		return false, stage("download", err)
	}

	if err := archive.ExtractZip(archivePath, scratch); err != nil {
		return false, stage("extract", err)
	}

	// Give the filesystem a moment before touching the extracted files
	if err := sleep(ctx, i.opts.SettleDelay); err != nil {
		return false, domain.NewError(domain.KindInstall, "extract", err)
	}

	if err := os.Remove(archivePath); err != nil {
		return false, domain.NewError(domain.KindIO, "remove-archive", err)
	}

	if err := moveEntries(scratch, gameDir); err != nil {
		return false, err
	}

	if err := os.RemoveAll(scratch); err != nil {
		return false, domain.NewError(domain.KindIO, "cleanup", err)
	}

	i.logger.Debug().Str("game", gameDir).Msg("runtime installed")
	return true, nil
}

// moveEntries moves every top-level entry of src into dest. An entry whose
// name already exists in dest fails the move.
func moveEntries(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return domain.NewError(domain.KindIO, "move", err)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dest, entry.Name())

		if _, err := os.Lstat(to); err == nil {
			return domain.NewError(domain.KindInstall, "move", fmt.Errorf("%w: %s", domain.ErrDestinationExists, to))
		}
		if err := os.Rename(from, to); err != nil {
			return domain.NewError(domain.KindIO, "move", err)
		}
	}
	return nil
}

// stage tags err with the install stage, keeping the kind of an already
// tagged error
func stage(op string, err error) error {
	kind := domain.KindOf(err)
	if kind == domain.KindUnknown {
		kind = domain.KindInstall
	}
	return &domain.Error{Kind: kind, Op: op, Err: err}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func dirExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}
