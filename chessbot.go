// Package chessbot asks an external UCI engine (Stockfish) for the best move
// in a position. Every call starts a fresh engine process, drives the UCI
// handshake and a timed search, and reaps the process before returning.
package chessbot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/freeeve/chessbot/internal/logx"
	"github.com/freeeve/chessbot/internal/position"
	"github.com/freeeve/chessbot/internal/uci"
)

// Config configures an Engine. Zero fields take the defaults listed.
type Config struct {
	Paths  []string       // candidate engine paths, tried in order (uci.DefaultPaths)
	Logger zerolog.Logger // zero value logs nothing

	Threads    int // setoption Threads (runtime.NumCPU)
	HashMB     int // setoption Hash (512)
	SkillLevel int // setoption Skill Level (20)
	MultiPV    int // setoption MultiPV (1)

	MoveTime         time.Duration // go movetime (1s)
	UCIWait          time.Duration // max wait for uciok (100ms)
	HandshakeTimeout time.Duration // isready -> readyok (5s)
	SearchTimeout    time.Duration // go -> bestmove (7s)
	TeardownGrace    time.Duration // SIGTERM -> SIGKILL (1s)

	// Verify parses the FEN before spawning and checks the reply is a legal
	// move in that position.
	Verify bool
}

// DefaultConfig returns the defaults with diagnostics written to stderr.
// UCI traffic is logged at debug level and stays hidden unless the caller
// lowers the logger's level.
func DefaultConfig() Config {
	return Config{Logger: defaultLogger(os.Stderr)}
}

func defaultLogger(w io.Writer) zerolog.Logger {
	return logx.New(w).Level(zerolog.InfoLevel)
}

// Engine runs one engine process per call. It holds no process between
// calls and is safe for concurrent use.
type Engine struct {
	cfg Config
	log zerolog.Logger
}

// New returns an Engine with defaults filled in.
func New(cfg Config) *Engine {
	if len(cfg.Paths) == 0 {
		cfg.Paths = uci.DefaultPaths
	}
	if cfg.Threads <= 0 {
		cfg.Threads = max(runtime.NumCPU(), 1)
	}
	if cfg.HashMB <= 0 {
		cfg.HashMB = 512
	}
	if cfg.SkillLevel <= 0 {
		cfg.SkillLevel = 20
	}
	if cfg.MultiPV <= 0 {
		cfg.MultiPV = 1
	}
	if cfg.MoveTime <= 0 {
		cfg.MoveTime = time.Second
	}
	if cfg.UCIWait <= 0 {
		cfg.UCIWait = 100 * time.Millisecond
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 5 * time.Second
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 7 * time.Second
	}
	if cfg.TeardownGrace <= 0 {
		cfg.TeardownGrace = uci.DefaultTeardownGrace
	}
	return &Engine{cfg: cfg, log: cfg.Logger}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) options() uci.Options {
	return uci.Options{
		Threads:          e.cfg.Threads,
		HashMB:           e.cfg.HashMB,
		SkillLevel:       e.cfg.SkillLevel,
		MultiPV:          e.cfg.MultiPV,
		UCIWait:          e.cfg.UCIWait,
		HandshakeTimeout: e.cfg.HandshakeTimeout,
		MoveTime:         e.cfg.MoveTime,
		SearchTimeout:    e.cfg.SearchTimeout,
	}
}

var defaultEngine = sync.OnceValue(func() *Engine {
	return New(DefaultConfig())
})

// Move returns the engine's best move for fen in long algebraic form, or ""
// if anything fails. Failures are logged to stderr.
func Move(fen string) string {
	return defaultEngine().Move(fen)
}

// Move is the total form of BestMove: it never panics and returns "" on
// any error, logging the cause.
func (e *Engine) Move(fen string) (move string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Str("fen", fen).Msg("engine call panicked")
			move = ""
		}
	}()

	move, err := e.BestMove(context.Background(), fen)
	if err != nil {
		e.log.Error().Err(err).Str("fen", fen).Msg("no move from engine")
		return ""
	}
	return move
}

// BestMove spawns the engine, searches fen and returns the bestmove token.
// "(none)" is returned unchanged for mated or stalemated positions. The
// engine process is reaped before BestMove returns on every path.
func (e *Engine) BestMove(ctx context.Context, fen string) (string, error) {
	if err := uci.CheckFEN(fen); err != nil {
		return "", err
	}
	if e.cfg.Verify {
		if _, err := position.Parse(fen); err != nil {
			return "", err
		}
	}

	path, err := uci.Discover(e.cfg.Paths)
	if err != nil {
		return "", err
	}

	start := time.Now()
	s, err := uci.Spawn(path, e.log, e.cfg.TeardownGrace)
	if err != nil {
		return "", err
	}
	defer s.Close()

	log := e.log.With().Int("pid", s.PID()).Logger()
	opts := e.options()

	if _, err := s.Handshake(ctx, opts); err != nil {
		if !errors.Is(err, uci.ErrHandshakeTimeout) {
			return "", fmt.Errorf("handshake: %w", err)
		}
		log.Warn().Err(err).Msg("continuing to search without readyok")
	}

	reply, err := s.Search(ctx, fen, opts)
	if err != nil && !errors.Is(err, uci.ErrEngineExited) {
		return "", fmt.Errorf("search: %w", err)
	}

	move := uci.ExtractBestMove(reply)
	if move == "" {
		if err != nil {
			return "", fmt.Errorf("%w: %w", uci.ErrParseFailure, err)
		}
		return "", uci.ErrParseFailure
	}
	if e.cfg.Verify {
		if err := position.CheckMove(fen, move); err != nil {
			return "", err
		}
	}

	log.Debug().Str("move", move).Dur("elapsed", time.Since(start)).Msg("best move")
	return move, nil
}
