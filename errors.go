package chessbot

import (
	"github.com/freeeve/chessbot/internal/position"
	"github.com/freeeve/chessbot/internal/uci"
)

// Errors returned by BestMove. Match with errors.Is.
var (
	ErrEngineNotFound   = uci.ErrEngineNotFound
	ErrSpawnFailed      = uci.ErrSpawnFailed
	ErrHandshakeTimeout = uci.ErrHandshakeTimeout
	ErrSearchTimeout    = uci.ErrSearchTimeout
	ErrParseFailure     = uci.ErrParseFailure
	ErrEngineExited     = uci.ErrEngineExited
	ErrInvalidFEN       = position.ErrInvalidFEN
	ErrIllegalMove      = position.ErrIllegalMove
)
