package uci

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultPaths lists engine locations in order of preference: system install,
// container image, the process search path, then Homebrew.
var DefaultPaths = []string{
	"/usr/local/bin/stockfish",
	"/app/stockfish",
	"stockfish",
	"/opt/homebrew/bin/stockfish",
}

// Discover returns the first candidate the caller may execute. Bare names
// (no separator) are resolved through PATH; the returned path is the
// resolved one.
func Discover(paths []string) (string, error) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !strings.ContainsRune(p, os.PathSeparator) {
			if resolved, err := exec.LookPath(p); err == nil {
				return resolved, nil
			}
			continue
		}
		if isExecutable(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrEngineNotFound, strings.Join(paths, ", "))
}

func isExecutable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return false
	}
	return canExecute(path, fi)
}
