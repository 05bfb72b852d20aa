//go:build !windows && !linux && !darwin

package steam

import "path/filepath"

func steamPathCandidates(homeDir string) []string {
	return []string{
		filepath.Join(homeDir, ".steam", "steam"),
	}
}
