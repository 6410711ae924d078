package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// unsafeChars are stored as %XX in note directory names.
const unsafeChars = `<>:"/\|?*%`

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	// Replace Windows separators and collapse redundant separators/segments.
	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// VaultRelative returns the path to target relative to the provided base directory.
// The returned path always uses forward slashes.
func VaultRelative(baseDir, target string) (string, error) {
	base := NormalizePath(baseDir)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// ExpandHome substitutes the {home} placeholder used by base path templates.
func ExpandHome(template, home string) string {
	return strings.ReplaceAll(template, "{home}", home)
}

// EscapeName returns the on-disk directory name for a note title.
func EscapeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if strings.IndexByte(unsafeChars, c) >= 0 {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// UnescapeName reverses EscapeName. Malformed escape sequences are kept
// verbatim so that directories created by other tools still list.
func UnescapeName(escaped string) string {
	if !strings.Contains(escaped, "%") {
		return escaped
	}

	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		c := escaped[i]
		if c == '%' && i+2 < len(escaped) {
			hi, okHi := unhex(escaped[i+1])
			lo, okLo := unhex(escaped[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
