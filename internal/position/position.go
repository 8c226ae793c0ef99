// Package position checks FENs and engine replies against the rules of chess.
package position

import (
	"errors"
	"fmt"

	"github.com/freeeve/pgn/v3"

	"github.com/freeeve/chessbot/internal/uci"
)

var (
	ErrInvalidFEN  = uci.ErrInvalidFEN
	ErrIllegalMove = errors.New("illegal move")
)

// Parse parses fen into a game state.
func Parse(fen string) (*pgn.GameState, error) {
	gs, err := pgn.NewGame(fen)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidFEN, fen, err)
	}
	return gs, nil
}

// LegalMoves returns every legal move in fen as a UCI token.
func LegalMoves(fen string) ([]string, error) {
	gs, err := Parse(fen)
	if err != nil {
		return nil, err
	}
	moves := pgn.GenerateLegalMoves(gs)
	out := make([]string, 0, len(moves))
	for _, mv := range moves {
		out = append(out, mvToUCI(mv))
	}
	return out, nil
}

// CheckMove reports whether move is legal in fen. "(none)" is accepted only
// when the side to move has no legal moves.
func CheckMove(fen, move string) error {
	legal, err := LegalMoves(fen)
	if err != nil {
		return err
	}
	if move == uci.NoMove {
		if len(legal) == 0 {
			return nil
		}
		return fmt.Errorf("%w: engine reported %s with %d legal moves", ErrIllegalMove, move, len(legal))
	}
	m, err := uci.ParseMove(move)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	for _, l := range legal {
		if l == m.String() {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrIllegalMove, move)
}

// mvToUCI converts a move to UCI notation
func mvToUCI(mv pgn.Mv) string {
	files := "abcdefgh"
	ranks := "12345678"

	from := string(files[mv.From%8]) + string(ranks[mv.From/8])
	to := string(files[mv.To%8]) + string(ranks[mv.To/8])

	s := from + to
	switch mv.Promo {
	case pgn.PromoQueen:
		s += "q"
	case pgn.PromoRook:
		s += "r"
	case pgn.PromoBishop:
		s += "b"
	case pgn.PromoKnight:
		s += "n"
	}
	return s
}
