package steam

import "path/filepath"

func steamPathCandidates(homeDir string) []string {
	return []string{
		filepath.Join(homeDir, "Library", "Application Support", "Steam"),
	}
}
