package uci

import "errors"

var (
	// ErrEngineNotFound means no candidate path is executable.
	ErrEngineNotFound = errors.New("could not find stockfish executable")
	// ErrSpawnFailed means pipe creation or process start failed.
	ErrSpawnFailed = errors.New("failed to start engine")
	// ErrHandshakeTimeout means readyok was not seen before the handshake deadline.
	// The search is still attempted.
	ErrHandshakeTimeout = errors.New("engine handshake timed out")
	// ErrSearchTimeout means no bestmove line arrived before the search deadline.
	ErrSearchTimeout = errors.New("engine search timed out")
	// ErrParseFailure means the reply held no usable bestmove token.
	ErrParseFailure = errors.New("bestmove not found in engine output")
	// ErrEngineExited means the engine closed its output stream.
	ErrEngineExited = errors.New("engine exited")
	// ErrInvalidFEN means the position cannot be sent or parsed.
	ErrInvalidFEN = errors.New("invalid FEN")
)
