package plant

import "strings"

// HumanizeKey turns an attribute key into a display label: underscores become
// spaces and the first character of every word is upper-cased, so
// "power_output_mw" reads "Power Output Mw".
func HumanizeKey(key string) string {
	spaced := strings.ReplaceAll(key, "_", " ")

	b := []byte(spaced)
	for i := range b {
		if !isWordByte(b[i]) {
			continue
		}
		if i == 0 || !isWordByte(b[i-1]) {
			if b[i] >= 'a' && b[i] <= 'z' {
				b[i] -= 'a' - 'A'
			}
		}
	}
	return string(b)
}

// ModuleID derives the element identifier of a module from its display name.
// The server resolves module ids the same way.
func ModuleID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// NormalizeStatus returns the status attribute form of a server status.
func NormalizeStatus(status string) string {
	return strings.ToLower(status)
}

// isWordByte reports whether b is an ASCII word character.
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
