// Package ucitest provides scripted stand-in engines and process checks for
// tests that drive real child processes.
package ucitest

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

const responsive = `#!/bin/sh
while IFS= read -r line; do
  [ -n "$UCI_LOG" ] && echo "$line" >> "$UCI_LOG"
  case "$line" in
    uci) echo "id name Fake"; echo "id author test"; echo "uciok" ;;
    isready) echo "readyok" ;;
    "go "*) echo "info depth 1 score cp 13 pv {{MOVE}}"; echo "bestmove {{MOVE}}{{PONDER}}" ;;
    quit) exit 0 ;;
  esac
done
`

// Responsive answers the handshake and replies "bestmove <move>" to go.
// When ponder is non-empty it is appended as "ponder <ponder>". Every command
// received is appended to the file named by $UCI_LOG, if set.
func Responsive(move, ponder string) string {
	p := ""
	if ponder != "" {
		p = " ponder " + ponder
	}
	return strings.NewReplacer("{{MOVE}}", move, "{{PONDER}}", p).Replace(responsive)
}

// HangAfterReady completes the handshake, then never answers go.
const HangAfterReady = `#!/bin/sh
while IFS= read -r line; do
  case "$line" in
    uci) echo "uciok" ;;
    isready) echo "readyok" ;;
    "go "*) sleep 60 ;;
  esac
done
`

// NeverReady swallows everything and answers only go, late enough that
// readyok is never seen.
const NeverReady = `#!/bin/sh
while IFS= read -r line; do
  case "$line" in
    "go "*) echo "bestmove g1f3" ;;
  esac
done
`

// IgnoresTerm hangs on go and ignores SIGTERM, so only SIGKILL ends it.
const IgnoresTerm = `#!/bin/sh
trap '' TERM
while IFS= read -r line; do
  case "$line" in
    uci) echo "uciok" ;;
    isready) echo "readyok" ;;
    "go "*) sleep 60 ;;
  esac
done
`

// ExitsImmediately closes its streams before the handshake starts.
const ExitsImmediately = `#!/bin/sh
exit 0
`

// NoBestMove finishes the search without ever printing bestmove.
const NoBestMove = `#!/bin/sh
while IFS= read -r line; do
  case "$line" in
    uci) echo "uciok" ;;
    isready) echo "readyok" ;;
    "go "*) echo "info depth 1 score cp 0"; exit 0 ;;
  esac
done
`

// RequireUnix skips tests that need /bin/sh.
func RequireUnix(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests require /bin/sh on Unix-like systems")
	}
}

// WriteEngine writes script as an executable file in a temp dir and returns
// its path.
func WriteEngine(t testing.TB, script string) string {
	t.Helper()
	RequireUnix(t)
	path := filepath.Join(t.TempDir(), "engine.sh")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write engine script: %v", err)
	}
	return path
}

// OpenFDs counts this process's open descriptors. It skips the test where
// /proc/self/fd is unavailable.
func OpenFDs(t testing.TB) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skipf("cannot list descriptors: %v", err)
	}
	return len(entries)
}

// AssertReaped fails the test if pid still exists, running or zombie.
func AssertReaped(t testing.TB, pid int) {
	t.Helper()
	exists, err := process.PidExists(int32(pid))
	if err != nil {
		t.Fatalf("PidExists(%d): %v", pid, err)
	}
	if exists {
		t.Errorf("pid %d still present after teardown", pid)
	}
}

// Within fails the test if elapsed exceeds limit.
func Within(t testing.TB, elapsed, limit time.Duration) {
	t.Helper()
	if elapsed > limit {
		t.Errorf("took %s, want under %s", elapsed, limit)
	}
}
