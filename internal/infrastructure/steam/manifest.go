package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
)

// ReadAppState parses the full app manifest of an installed game. Unlike the
// line scanner used for discovery this goes through a real VDF parser, since
// the state fields live in a nested block.
func (l *Locator) ReadAppState(game domain.SteamGame) (domain.AppState, error) {
	// <library>/steamapps/common/<installdir> -> <library>/steamapps
	appsDir := filepath.Dir(filepath.Dir(game.Path))
	return ReadAppStateFile(filepath.Join(appsDir, manifestFileName(game.ID)))
}

// ReadAppStateFile parses an appmanifest_<id>.acf file
func ReadAppStateFile(path string) (domain.AppState, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.AppState{}, domain.NewError(domain.KindIO, "read-manifest", err)
	}
	defer f.Close()

	parsed, err := vdf.NewParser(f).Parse()
	if err != nil {
		return domain.AppState{}, domain.NewError(domain.KindDecode, "read-manifest",
			fmt.Errorf("couldn't parse %s: %w", path, err))
	}

	block, ok := lookupBlock(parsed, "AppState")
	if !ok {
		return domain.AppState{}, domain.Errorf(domain.KindDecode, "read-manifest", "%s has no AppState block", path)
	}

	state := domain.AppState{
		AppID:      lookupString(block, "appid"),
		Name:       lookupString(block, "name"),
		InstallDir: lookupString(block, "installdir"),
		BuildID:    lookupString(block, "buildid"),
	}
	state.StateFlags, _ = strconv.Atoi(lookupString(block, "StateFlags"))
	state.SizeOnDisk, _ = strconv.ParseInt(lookupString(block, "SizeOnDisk"), 10, 64)
	state.LastUpdated, _ = strconv.ParseInt(lookupString(block, "LastUpdated"), 10, 64)

	return state, nil
}

// VDF keys are case-insensitive in practice: Steam has written both
// "StateFlags" and "stateflags" over the years.
func lookupBlock(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			block, ok := v.(map[string]interface{})
			return block, ok
		}
	}
	return nil, false
}

func lookupString(m map[string]interface{}, key string) string {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			s, _ := v.(string)
			return s
		}
	}
	return ""
}
