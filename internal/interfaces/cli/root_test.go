package cli

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steamTree builds a steam root with one library holding Soulstone Survivors
func steamTree(t *testing.T) (root, gameDir string) {
	t.Helper()
	root = t.TempDir()
	library := t.TempDir()

	vdf := fmt.Sprintf("\"libraryfolders\"\n{\n\t\"0\"\n\t{\n\t\t\"path\"\t\t\"%s\"\n\t}\n}\n",
		strings.ReplaceAll(library, `\`, `\\`))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "steamapps"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "steamapps", "libraryfolders.vdf"), []byte(vdf), 0644))

	manifest := "\"AppState\"\n{\n\t\"appid\"\t\t\"2066020\"\n\t\"name\"\t\t\"Soulstone Survivors\"\n\t\"StateFlags\"\t\t\"4\"\n\t\"installdir\"\t\t\"Soulstone Survivors\"\n}\n"
	require.NoError(t, os.MkdirAll(filepath.Join(library, "steamapps"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(library, "steamapps", "appmanifest_2066020.acf"), []byte(manifest), 0644))

	gameDir = filepath.Join(library, "steamapps", "common", "Soulstone Survivors")
	require.NoError(t, os.MkdirAll(gameDir, 0755))
	return root, gameDir
}

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// fakeHost serves the runtime archive and a small plugin organization
func fakeHost(t *testing.T, rateLimited bool) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/bepinex.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipOf(t, map[string]string{
			"BepInEx/core/BepInEx.Core.dll": "core",
			"BepInEx/plugins/":              "",
			"BepInEx/config/":               "",
			"winhttp.dll":                   "proxy",
		}))
	})
	mux.HandleFunc("/orgs/SoulstoneAddons/repos", func(w http.ResponseWriter, r *http.Request) {
		if rateLimited {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"name": "DamageMeter", "description": "Shows damage", "html_url": "https://github.com/SoulstoneAddons/DamageMeter",
				"url": server.URL + "/repos/SoulstoneAddons/DamageMeter", "private": false, "topics": []string{"plugin"}},
			{"name": "Skada", "description": nil, "html_url": "https://github.com/SoulstoneAddons/Skada",
				"url": server.URL + "/repos/SoulstoneAddons/Skada", "private": false, "topics": []string{"plugin"}},
		})
	})
	mux.HandleFunc("/repos/SoulstoneAddons/DamageMeter/releases", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{{
			"tag_name": "v1",
			"assets": []map[string]string{{
				"name": "DamageMeter.dll", "browser_download_url": server.URL + "/download/DamageMeter.dll",
			}},
		}})
	})
	mux.HandleFunc("/repos/SoulstoneAddons/Skada/releases", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	mux.HandleFunc("/download/DamageMeter.dll", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("MZ"))
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, host string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "installer.yaml")
	content := fmt.Sprintf("runtime_url: %s/bepinex.zip\ngithub_api_url: %s\nsettle_delay: 0s\n", host, host)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the root command with args, isolated from any config on the
// machine running the tests
func run(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("SSI_CONFIG", "")
	var out, errOut bytes.Buffer
	rootCmd := NewRootCommand(IOStreams{In: strings.NewReader(stdin), Out: &out, ErrOut: &errOut})
	rootCmd.SetArgs(args)

	code = 0
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(&errOut, "Error: %v\n", err)
		code = 1
	}
	return code, out.String(), errOut.String()
}

func TestInstall_EndToEnd(t *testing.T) {
	steamRoot, gameDir := steamTree(t)
	host := fakeHost(t, false)

	code, out, _ := run(t, "y\ny\n", "--config", writeConfig(t, host.URL), "--steam-path", steamRoot)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Steam found!")
	assert.Contains(t, out, "1 Games found!")
	assert.Contains(t, out, "Soulstone Survivors found!")
	assert.Contains(t, out, "BepInEx installed!")
	assert.Contains(t, out, "Do you want to install DamageMeter? (Y/N)")
	assert.Contains(t, out, "DamageMeter downloaded successfully!")
	assert.Contains(t, out, "Error downloading Skada")
	assert.Contains(t, out, "Enjoy!")
	assert.NotContains(t, out, pausePrompt, "no pause without a terminal")

	assert.FileExists(t, filepath.Join(gameDir, "winhttp.dll"))
	assert.DirExists(t, filepath.Join(gameDir, "BepInEx", "core"))
	assert.FileExists(t, filepath.Join(gameDir, "bepinex", "plugins", "DamageMeter.dll"))
}

func TestInstall_SkipPlugins(t *testing.T) {
	steamRoot, gameDir := steamTree(t)
	host := fakeHost(t, false)

	code, out, _ := run(t, "", "--config", writeConfig(t, host.URL), "--steam-path", steamRoot, "--skip-plugins")

	assert.Equal(t, 0, code)
	assert.NotContains(t, out, "Fetching plugin list...")
	assert.DirExists(t, filepath.Join(gameDir, "BepInEx", "plugins"))
}

func TestInstall_RateLimitedCatalogFails(t *testing.T) {
	steamRoot, _ := steamTree(t)
	host := fakeHost(t, true)

	code, out, stderr := run(t, "", "--config", writeConfig(t, host.URL), "--steam-path", steamRoot, "--yes")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Rate limit exceeded, please wait a few minutes and try again.")
	assert.Contains(t, stderr, "rate limit exceeded")
}

func TestInstall_GameMissing(t *testing.T) {
	steamRoot, _ := steamTree(t)
	host := fakeHost(t, false)

	code, out, _ := run(t, "", "--config", writeConfig(t, host.URL), "--steam-path", steamRoot, "--game-id", "4000")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "not found!")
}

func TestInstall_MissingConfigFile(t *testing.T) {
	code, _, stderr := run(t, "", "--config", filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to read config file")
}

func TestGamesCommand(t *testing.T) {
	steamRoot, gameDir := steamTree(t)

	code, out, _ := run(t, "", "games", "--steam-path", steamRoot)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "2066020")
	assert.Contains(t, out, gameDir)
	assert.Contains(t, out, "1 Games found!")
}

func TestGamesCommand_Dump(t *testing.T) {
	steamRoot, _ := steamTree(t)

	code, out, _ := run(t, "", "games", "--steam-path", steamRoot, "--dump")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Soulstone Survivors")
	assert.Contains(t, out, "StateFlags: 4")
	assert.Contains(t, out, "Target: true")
}

func TestPluginsCommand(t *testing.T) {
	host := fakeHost(t, false)

	code, out, _ := run(t, "", "plugins", "--config", writeConfig(t, host.URL), "--assets")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "DamageMeter")
	assert.Contains(t, out, "Shows damage")
	assert.Contains(t, out, "asset: DamageMeter.dll")
	assert.Contains(t, out, "no installable asset")
	assert.Contains(t, out, "2 plugins available")
}

func TestVersionFlag(t *testing.T) {
	code, out, _ := run(t, "", "--version")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "soulstone-installer version dev")
}

func TestConfigShow_MasksToken(t *testing.T) {
	t.Setenv("SSI_GITHUB_TOKEN", "ghp_abcdefghijkl")

	code, out, _ := run(t, "", "config", "show", "--game-id", "42")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "game_id: \"42\"")
	assert.Contains(t, out, "github_token: ghp_...ijkl")
	assert.NotContains(t, out, "ghp_abcdefghijkl")
}

func TestConfigSave_WritesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	code, out, _ := run(t, "", "config", "save", "--steam-path", "/srv/steam", "--output", path)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Configuration saved to "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "steam_path: /srv/steam")
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", maskToken(""))
	assert.Equal(t, "***", maskToken("short"))
	assert.Equal(t, "ghp_...wxyz", maskToken("ghp_0123456789wxyz"))
}
