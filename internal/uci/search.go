package uci

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Options configures the handshake and the search request.
type Options struct {
	Threads    int
	HashMB     int
	SkillLevel int
	MultiPV    int

	UCIWait          time.Duration // upper bound on waiting for uciok
	HandshakeTimeout time.Duration // isready -> readyok
	MoveTime         time.Duration // sent as go movetime
	SearchTimeout    time.Duration // go -> bestmove
}

type option struct {
	name  string
	value int
}

// Handshake sends uci, waits briefly for uciok, configures the engine and
// waits for readyok. It returns the collected output. ErrHandshakeTimeout is
// advisory: the engine may still answer a search.
func (s *Session) Handshake(ctx context.Context, opts Options) (string, error) {
	var buf strings.Builder
	if err := s.Send("uci"); err != nil {
		return buf.String(), err
	}
	err := s.ReadUntil(ctx, &buf, "uciok", time.Now().Add(opts.UCIWait))
	if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
		return buf.String(), err
	}

	for _, o := range []option{
		{"Threads", opts.Threads},
		{"Hash", opts.HashMB},
		{"Skill Level", opts.SkillLevel},
		{"MultiPV", opts.MultiPV},
	} {
		if err := s.Send(fmt.Sprintf("setoption name %s value %d", o.name, o.value)); err != nil {
			return buf.String(), err
		}
	}
	if err := s.Send("isready"); err != nil {
		return buf.String(), err
	}

	err = s.ReadUntil(ctx, &buf, "readyok", time.Now().Add(opts.HandshakeTimeout))
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return buf.String(), fmt.Errorf("%w after %s", ErrHandshakeTimeout, opts.HandshakeTimeout)
	}
	return buf.String(), err
}

// CheckFEN rejects a FEN that would smuggle extra commands onto the
// engine's command stream.
func CheckFEN(fen string) error {
	if strings.ContainsAny(fen, "\r\n") {
		return fmt.Errorf("%w %q: contains a line break", ErrInvalidFEN, fen)
	}
	return nil
}

// Search submits the position and reads until a bestmove line. The returned
// reply holds only search output, partial when an error is returned.
func (s *Session) Search(ctx context.Context, fen string, opts Options) (string, error) {
	var buf strings.Builder
	if err := CheckFEN(fen); err != nil {
		return "", err
	}
	if err := s.Send("position fen " + fen); err != nil {
		return "", err
	}
	if err := s.Send(fmt.Sprintf("go movetime %d", opts.MoveTime.Milliseconds())); err != nil {
		return "", err
	}

	err := s.ReadUntil(ctx, &buf, bestMoveToken, time.Now().Add(opts.SearchTimeout))
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return buf.String(), fmt.Errorf("%w after %s", ErrSearchTimeout, opts.SearchTimeout)
	}
	return buf.String(), err
}
