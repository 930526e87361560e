package filestore

import (
	"os"
	"path"
	"strings"
)

// Sanitize reduces a file name to its final path component, discarding any
// directory prefixes or traversal attempts.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(path.Clean("/" + name))
	if base == "/" || base == "." {
		return ""
	}
	return base
}

// NormalizeKey strips leading slashes from an object key.
func NormalizeKey(key string) string {
	return strings.TrimLeft(key, "/")
}

// BuildKey joins a prefix and a name with exactly one slash.
func BuildKey(prefix, name string) string {
	prefix = strings.TrimSuffix(NormalizeKey(prefix), "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// ResolveKey computes the object key for a received file:
// a destination ending in "/" is a prefix, a non-blank destination is the
// full key, a blank destination falls back to the sanitised name.
func ResolveKey(destination, name string) string {
	switch {
	case strings.HasSuffix(destination, "/"):
		return NormalizeKey(destination) + Sanitize(name)
	case strings.TrimSpace(destination) != "":
		return NormalizeKey(destination)
	default:
		return Sanitize(name)
	}
}

// DeleteTempQuietly removes a temp file, ignoring errors. Used on paths where
// the interesting error has already been captured.
func DeleteTempQuietly(path string) {
	_ = os.Remove(path)
}
