//go:build !windows

package steam

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
)

func TestFirstExistingDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	home := t.TempDir()
	candidates := steamPathCandidates(home)
	require.NotEmpty(t, candidates)

	_, err := firstExistingDir(candidates)
	assert.ErrorIs(t, err, domain.ErrSteamNotFound)

	last := candidates[len(candidates)-1]
	require.NoError(t, os.MkdirAll(last, 0755))

	path, err := firstExistingDir(candidates)
	require.NoError(t, err)
	assert.Equal(t, last, path)
}

func TestFirstExistingDir_IgnoresFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "steam")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := firstExistingDir([]string{file})
	assert.ErrorIs(t, err, domain.ErrSteamNotFound)
}
