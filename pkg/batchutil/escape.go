package batchutil

import "strings"

const shellSpecialChars = " ()[]{}*?$#'\\"

// EscapeShellArg wraps val in single quotes if it contains any character a
// POSIX shell would treat specially, replacing each embedded single quote
// with '\'' so the result can be safely concatenated into a command line
// built as a plain string (as the sshexec and sshpersist transports do when
// handing a command to the remote shell).
func EscapeShellArg(val string) string {
	if !strings.ContainsAny(val, shellSpecialChars) {
		return val
	}
	escaped := strings.ReplaceAll(val, "'", `'\''`)
	return "'" + escaped + "'"
}

// JoinShellArgs escapes and joins argv into a single command-line string.
func JoinShellArgs(argv []string) string {
	escaped := make([]string, len(argv))
	for i, a := range argv {
		escaped[i] = EscapeShellArg(a)
	}
	return strings.Join(escaped, " ")
}
