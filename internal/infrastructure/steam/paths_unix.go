//go:build !windows

package steam

import (
	"fmt"
	"os"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
)

func findSteamPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	return firstExistingDir(steamPathCandidates(homeDir))
}

func firstExistingDir(candidates []string) (string, error) {
	for _, path := range candidates {
		if stat, err := os.Stat(path); err == nil && stat.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in any known location", domain.ErrSteamNotFound)
}
