package steam

import (
	"strings"
)

// valueToken is the position of the value when a `"key"  "value"` line is
// split on double quotes: ["\t", "key", "\t\t", "value", ""]
const valueToken = 3

// ScanValues returns every non-empty value assigned to key in Valve's
// key-value text format, in file order.
//
// This is a line scanner, not a VDF parser: a line counts when it contains
// the quoted key, and the value is taken from its fixed quote-delimited
// position. Nesting is ignored and the only escape handled is the doubled
// backslash used in Windows paths. Lines that do not match are skipped.
func ScanValues(content, key string) []string {
	quotedKey := `"` + key + `"`

	var values []string
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, quotedKey) {
			continue
		}
		if v := lineValue(line); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// ScanValue returns the last non-empty value assigned to key, or "" when the
// key is absent
func ScanValue(content, key string) string {
	values := ScanValues(content, key)
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

// lineValue extracts the value token of a quoted pair line
func lineValue(line string) string {
	parts := strings.Split(strings.TrimRight(line, "\r"), `"`)
	if len(parts) <= valueToken {
		return ""
	}
	return strings.ReplaceAll(parts[valueToken], `\\`, `\`)
}
