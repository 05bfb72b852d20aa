package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_PlainOutputWhenNotATerminal(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(&out)

	console.Step("Checking for Steam...")
	console.Success("Steam found!")
	console.Failure("Soulstone Survivors not found!")
	console.Warn("careful")
	console.Info("")
	console.Info("Enjoy!")

	assert.Equal(t, strings.Join([]string{
		"Checking for Steam...",
		"Steam found!",
		"Soulstone Survivors not found!",
		"careful",
		"",
		"Enjoy!",
		"",
	}, "\n"), out.String())
}

func TestConsole_Banner(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(&out)

	console.Banner("1.2.3")
	console.RestoreCursor()

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\x1b]0;Soulstone Survivors BepInEx Installer - v1.2.3\x07"))
	assert.Contains(t, s, "Soulstone Survivors BepInEx Installer v1.2.3\n")
	assert.Contains(t, s, "Author: SoulstoneAddons\n")
	assert.Contains(t, s, "License: GNU General Public License v3.0\n")
	assert.True(t, strings.HasSuffix(s, "\x1b[?25h"))
}
