package steam

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/windows/registry"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
)

type registryLocation struct {
	root   registry.Key
	path   string
	value  string
	access uint32
}

// Steam writes InstallPath under the 32-bit view on 64-bit Windows. The
// per-user SteamPath is the last resort.
var steamRegistryLocations = []registryLocation{
	{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Valve\Steam`, "InstallPath", registry.QUERY_VALUE | registry.WOW64_32KEY},
	{registry.LOCAL_MACHINE, `SOFTWARE\Valve\Steam`, "InstallPath", registry.QUERY_VALUE | registry.WOW64_64KEY},
	{registry.CURRENT_USER, `Software\Valve\Steam`, "SteamPath", registry.QUERY_VALUE},
}

func findSteamPath() (string, error) {
	var lastErr error
	for _, loc := range steamRegistryLocations {
		path, err := readRegistryString(loc)
		if err != nil {
			lastErr = err
			continue
		}
		path = strings.ReplaceAll(path, "/", `\`)
		if stat, err := os.Stat(path); err == nil && stat.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %v", domain.ErrSteamNotFound, lastErr)
}

func readRegistryString(loc registryLocation) (string, error) {
	key, err := registry.OpenKey(loc.root, loc.path, loc.access)
	if err != nil {
		return "", fmt.Errorf("error opening registry key %s: %w", loc.path, err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(loc.value)
	if err != nil {
		return "", fmt.Errorf("error querying %s: %w", loc.value, err)
	}
	return value, nil
}
