package platform

import "strings"

// ParseKeyLabel normalizes a keyboard label from HostConfig.Keys. Only
// single letters and digits are accepted; letters come back upper case.
func ParseKeyLabel(label string) (rune, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) != 1 {
		return 0, false
	}
	c := rune(label[0])
	switch {
	case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return c, true
	}
	return 0, false
}
