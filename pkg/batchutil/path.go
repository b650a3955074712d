// Package batchutil provides small, dependency-free helpers shared across
// transports and plugins: path joining for mixed local/remote filesystem
// conventions, Slurm-style wall-time parsing, and POSIX shell argument
// escaping.
package batchutil

import (
	"path"
	"strings"
)

// PathJoin joins base with the given path elements using POSIX ("/") or
// Windows ("\") separators depending on isPosix, mirroring how a remote
// host's shell would interpret the resulting string regardless of the
// separator convention of the machine running this process.
func PathJoin(base string, isPosix bool, elems ...string) string {
	if isPosix {
		return path.Join(append([]string{base}, elems...)...)
	}
	parts := append([]string{strings.TrimRight(base, `\`)}, elems...)
	for i, p := range parts {
		parts[i] = strings.Trim(p, `\`)
	}
	return strings.Join(parts, `\`)
}

// IsAbsolute reports whether p is an absolute path under the given
// filesystem convention.
func IsAbsolute(p string, isPosix bool) bool {
	if isPosix {
		return strings.HasPrefix(p, "/")
	}
	if len(p) >= 2 && p[1] == ':' {
		return true
	}
	return strings.HasPrefix(p, `\\`)
}
