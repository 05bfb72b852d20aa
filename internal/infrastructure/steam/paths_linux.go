package steam

import (
	"os"
	"path/filepath"
)

func steamPathCandidates(homeDir string) []string {
	candidates := []string{
		filepath.Join(homeDir, ".steam", "steam"),
		filepath.Join(homeDir, ".local", "share", "Steam"),
		filepath.Join(homeDir, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		filepath.Join(homeDir, "snap", "steam", "common", ".local", "share", "Steam"),
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "Steam"))
	}
	return candidates
}
