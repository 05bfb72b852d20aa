package steam

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

const libraryFoldersVDF = `"libraryfolders"
{
	"0"
	{
		"path"		"C:\\Program Files (x86)\\Steam"
		"label"		""
		"contentid"		"7194373281254837386"
		"totalsize"		"0"
		"apps"
		{
			"228980"		"384284425"
		}
	}
	"1"
	{
		"path"		"D:\\SteamLibrary"
		"label"		""
		"apps"
		{
			"2066020"		"2147483648"
		}
	}
}
`

func TestScanValues_LibraryFolders(t *testing.T) {
	paths := ScanValues(libraryFoldersVDF, "path")

	assert.Equal(t, []string{`C:\Program Files (x86)\Steam`, `D:\SteamLibrary`}, paths)
}

func TestScanValues_SkipsMalformedLines(t *testing.T) {
	content := strings.Join([]string{
		`"path"`,              // no value token
		`"path"		""`,         // empty value
		`path  D:\Games`,      // not quoted
		`	"path"		"E:\\Lib"`, // valid
	}, "\n")

	assert.Equal(t, []string{`E:\Lib`}, ScanValues(content, "path"))
}

func TestScanValues_CRLF(t *testing.T) {
	content := "\"name\"\t\t\"Soulstone Survivors\"\r\n\"installdir\"\t\t\"Soulstone Survivors\"\r\n"

	assert.Equal(t, "Soulstone Survivors", ScanValue(content, "name"))
	assert.Equal(t, "Soulstone Survivors", ScanValue(content, "installdir"))
}

func TestScanValue_MissingKey(t *testing.T) {
	assert.Equal(t, "", ScanValue(`"appid"		"2066020"`, "installdir"))
}

func TestScanValue_LastAssignmentWins(t *testing.T) {
	content := "\"name\"\t\"first\"\n\"name\"\t\"second\"\n"
	assert.Equal(t, "second", ScanValue(content, "name"))
}

// Property: N path entries come back as N strings in file order with quotes
// removed and doubled backslashes collapsed
func TestScanValues_PropertyBased_PathCountAndOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		segments := rapid.SliceOfN(
			rapid.StringMatching(`[A-Za-z0-9 ()_.-]{1,12}`), 1, 4,
		)
		paths := rapid.SliceOfN(segments, 0, 8).Draw(t, "paths")

		var b strings.Builder
		b.WriteString("\"libraryfolders\"\n{\n")
		var want []string
		for i, segs := range paths {
			escaped := strings.Join(segs, `\\`)
			fmt.Fprintf(&b, "\t\"%d\"\n\t{\n\t\t\"path\"\t\t\"%s\"\n\t\t\"label\"\t\t\"\"\n\t}\n", i, escaped)
			want = append(want, strings.Join(segs, `\`))
		}
		b.WriteString("}\n")

		got := ScanValues(b.String(), "path")

		assert.Len(t, got, len(want))
		if len(want) > 0 {
			assert.Equal(t, want, got)
		}
	})
}
