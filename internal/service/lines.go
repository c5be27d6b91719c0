package service

import (
	"strings"
)

const maxStderrBytes = 512

// splitLines splits tool output into lines without dropping blank ones.
// A trailing newline does not produce a final empty line. Lines have no
// length limit and a trailing \r is removed.
func splitLines(out string) []string {
	if out == "" {
		return []string{}
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// stderrTail keeps the last maxStderrBytes of a tool's stderr for logging.
func stderrTail(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if len(stderr) <= maxStderrBytes {
		return stderr
	}
	return "..." + stderr[len(stderr)-maxStderrBytes:]
}
