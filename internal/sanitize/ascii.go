// internal/sanitize/ascii.go
package sanitize

// Allowed reports whether b survives ASCII cleaning: tab, LF, CR and the
// printable range 0x20-0x7E.
func Allowed(b byte) bool {
	switch b {
	case '\t', '\n', '\r':
		return true
	}
	return b >= 0x20 && b <= 0x7e
}

// ASCII returns a copy of raw with every disallowed byte deleted.
// Order is preserved; nothing is substituted. The result may be empty.
func ASCII(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		if Allowed(b) {
			out = append(out, b)
		}
	}
	return out
}
