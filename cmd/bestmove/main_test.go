package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeeve/chessbot"
	"github.com/freeeve/chessbot/internal/uci/ucitest"
)

func TestRunBatch_PreservesOrder(t *testing.T) {
	path := ucitest.WriteEngine(t, ucitest.Responsive("g1f3", ""))
	engine := chessbot.New(chessbot.Config{Paths: []string{path}, TeardownGrace: 200 * time.Millisecond})

	in := strings.NewReader(strings.Join([]string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
	}, "\n"))
	var out bytes.Buffer
	require.NoError(t, runBatch(context.Background(), engine, in, &out, 3, zerolog.Nop()))
	assert.Equal(t, "g1f3\ng1f3\ng1f3\n", out.String())
}

func TestRunBatch_FailuresPrintEmptyLines(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	engine := chessbot.New(chessbot.Config{Paths: []string{"/nonexistent/stockfish"}})

	var out bytes.Buffer
	in := strings.NewReader("8/8/8/8/8/8/8/4K2k w - - 0 1\n8/8/8/8/8/8/8/4K2k b - - 0 1\n")
	require.NoError(t, runBatch(context.Background(), engine, in, &out, 2, zerolog.Nop()))
	assert.Equal(t, "\n\n", out.String())
}

func TestParseFlags_CoversEveryConfigField(t *testing.T) {
	cli, err := parseFlags([]string{
		"-stockfish", "/opt/sf",
		"-threads", "4", "-hash", "64", "-skill", "10", "-multipv", "3",
		"-movetime", "500ms", "-uci-wait", "250ms",
		"-handshake-timeout", "3s", "-search-timeout", "9s", "-teardown-grace", "2s",
		"-workers", "5", "-verify", "-debug",
		"8/8/8/8/8/8/8/4K2k", "w", "-", "-", "0", "1",
	})
	require.NoError(t, err)

	cfg := cli.engine
	assert.Equal(t, "/opt/sf", cfg.Paths[0])
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, 64, cfg.HashMB)
	assert.Equal(t, 10, cfg.SkillLevel)
	assert.Equal(t, 3, cfg.MultiPV)
	assert.Equal(t, 500*time.Millisecond, cfg.MoveTime)
	assert.Equal(t, 250*time.Millisecond, cfg.UCIWait)
	assert.Equal(t, 3*time.Second, cfg.HandshakeTimeout)
	assert.Equal(t, 9*time.Second, cfg.SearchTimeout)
	assert.Equal(t, 2*time.Second, cfg.TeardownGrace)
	assert.True(t, cfg.Verify)
	assert.Equal(t, 5, cli.workers)
	assert.True(t, cli.debug)
	assert.Equal(t, "8/8/8/8/8/8/8/4K2k w - - 0 1", strings.Join(cli.fens, " "))
}

func TestParseFlags_Defaults(t *testing.T) {
	cli, err := parseFlags(nil)
	require.NoError(t, err)

	cfg := chessbot.New(cli.engine).Config()
	assert.Equal(t, 1, cfg.MultiPV)
	assert.Equal(t, 100*time.Millisecond, cfg.UCIWait)
	assert.Equal(t, time.Second, cfg.TeardownGrace)
	assert.Equal(t, 1, cli.workers)
	assert.Empty(t, cli.fens)
}
