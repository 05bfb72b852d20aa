package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
)

const (
	manifestPrefix = "appmanifest_"
	manifestSuffix = ".acf"
)

// Locator discovers Steam libraries and the games installed in them
type Locator struct {
	steamPath string // configured override, empty means detect
	logger    zerolog.Logger
}

// NewLocator creates a locator. A non-empty steamPath skips platform
// detection.
func NewLocator(steamPath string, logger zerolog.Logger) *Locator {
	return &Locator{
		steamPath: steamPath,
		logger:    logger.With().Str("component", "steam").Logger(),
	}
}

// SteamPath returns the configured Steam root or detects it for the current
// platform
func (l *Locator) SteamPath() (string, error) {
	if l.steamPath != "" {
		if stat, err := os.Stat(l.steamPath); err != nil || !stat.IsDir() {
			return "", domain.NewError(domain.KindIO, "locate-steam",
				fmt.Errorf("%w: configured path %s is not a directory", domain.ErrSteamNotFound, l.steamPath))
		}
		return l.steamPath, nil
	}

	path, err := findSteamPath()
	if err != nil {
		return "", domain.NewError(domain.KindIO, "locate-steam", err)
	}
	l.logger.Debug().Str("path", path).Msg("detected steam installation")
	return path, nil
}

// ListLibraryFolders returns every library path listed in
// steamapps/libraryfolders.vdf, in file order
func (l *Locator) ListLibraryFolders(steamRoot string) ([]string, error) {
	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	data, err := os.ReadFile(vdfPath)
	if err != nil {
		return nil, domain.NewError(domain.KindIO, "list-libraries",
			fmt.Errorf("%w: %v", domain.ErrNoLibraryFolders, err))
	}

	folders := ScanValues(string(data), "path")
	l.logger.Debug().Strs("folders", folders).Msg("library folders")
	return folders, nil
}

// ListGames returns the games of every library folder. Libraries without a
// readable steamapps directory and manifests missing a name or install
// directory are skipped.
func (l *Locator) ListGames(steamRoot string) ([]domain.SteamGame, error) {
	folders, err := l.ListLibraryFolders(steamRoot)
	if err != nil {
		return nil, err
	}

	var games []domain.SteamGame
	for _, folder := range folders {
		games = append(games, l.scanLibrary(folder)...)
	}
	return games, nil
}

// FindGame returns the installed game with the given app id
func (l *Locator) FindGame(steamRoot, appID string) (domain.SteamGame, error) {
	games, err := l.ListGames(steamRoot)
	if err != nil {
		return domain.SteamGame{}, err
	}
	for _, game := range games {
		if game.ID == appID {
			return game, nil
		}
	}
	return domain.SteamGame{}, fmt.Errorf("app %s: %w", appID, domain.ErrGameNotFound)
}

func (l *Locator) scanLibrary(folder string) []domain.SteamGame {
	appsDir := filepath.Join(folder, "steamapps")
	entries, err := os.ReadDir(appsDir)
	if err != nil {
		l.logger.Debug().Err(err).Str("library", folder).Msg("skipping library")
		return nil
	}

	var games []domain.SteamGame
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := manifestAppID(entry.Name())
		if !ok {
			continue
		}

		data, err := os.ReadFile(filepath.Join(appsDir, manifestFileName(id)))
		if err != nil {
			l.logger.Debug().Err(err).Str("app", id).Msg("skipping unreadable manifest")
			continue
		}

		content := string(data)
		name := ScanValue(content, "name")
		installDir := ScanValue(content, "installdir")
		if name == "" || installDir == "" {
			l.logger.Debug().Str("app", id).Msg("skipping manifest without name or installdir")
			continue
		}

		games = append(games, domain.SteamGame{
			ID:   id,
			Name: name,
			Path: filepath.Join(appsDir, "common", installDir),
		})
	}
	return games
}

// manifestAppID extracts the numeric id from appmanifest_<id>.acf
func manifestAppID(fileName string) (string, bool) {
	if !strings.HasPrefix(fileName, manifestPrefix) || !strings.HasSuffix(fileName, manifestSuffix) {
		return "", false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(fileName, manifestPrefix), manifestSuffix)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return "", false
	}
	return strconv.FormatUint(id, 10), true
}

func manifestFileName(id string) string {
	return manifestPrefix + id + manifestSuffix
}
