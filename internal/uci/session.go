package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTeardownGrace is how long Close waits after SIGTERM before SIGKILL.
const DefaultTeardownGrace = time.Second

// Session is one engine child process with its two pipes. A Session that
// Spawn returned must be closed; Close always reaps the child.
type Session struct {
	path    string
	cmd     *exec.Cmd
	pid     int
	started time.Time
	log     zerolog.Logger
	grace   time.Duration

	w  *os.File // parent end of the child's stdin
	bw *bufio.Writer
	r  *os.File // parent end of the child's stdout
	br *bufio.Reader

	closeOnce sync.Once
}

// Spawn starts the engine at path with no arguments, its stdin and stdout
// bound to fresh pipes. A grace of zero means DefaultTeardownGrace.
func Spawn(path string, log zerolog.Logger, grace time.Duration) (*Session, error) {
	if grace <= 0 {
		grace = DefaultTeardownGrace
	}

	inR, inW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %w", ErrSpawnFailed, err)
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		closeFiles(inR, inW)
		return nil, fmt.Errorf("%w: stdout pipe: %w", ErrSpawnFailed, err)
	}

	cmd := exec.Command(path)
	cmd.Stdin = inR
	cmd.Stdout = outW
	configureSysProcAttr(cmd)
	if err := cmd.Start(); err != nil {
		closeFiles(inR, inW, outR, outW)
		return nil, fmt.Errorf("%w: %w", ErrSpawnFailed, err)
	}
	// The child holds its own copies now.
	closeFiles(inR, outW)

	s := &Session{
		path:    path,
		cmd:     cmd,
		pid:     cmd.Process.Pid,
		started: time.Now(),
		grace:   grace,
		w:       inW,
		bw:      bufio.NewWriter(inW),
		r:       outR,
		br:      bufio.NewReader(outR),
	}
	s.log = log.With().Str("path", path).Int("pid", s.pid).Logger()
	s.log.Debug().Msg("engine started")
	return s, nil
}

// PID returns the child's process id.
func (s *Session) PID() int { return s.pid }

// Send writes one command line and flushes it before returning.
func (s *Session) Send(command string) error {
	if _, err := s.bw.WriteString(command + "\n"); err != nil {
		return fmt.Errorf("%w: send %q: %w", ErrEngineExited, command, err)
	}
	if err := s.bw.Flush(); err != nil {
		return fmt.Errorf("%w: send %q: %w", ErrEngineExited, command, err)
	}
	s.log.Debug().Str("dir", ">").Msg(command)
	return nil
}

// ReadUntil appends engine output to buf until a line containing token is
// read. It returns os.ErrDeadlineExceeded when deadline passes first,
// ErrEngineExited on end of stream, or the context's error if ctx ends.
// Whatever arrived before the failure is still appended.
func (s *Session) ReadUntil(ctx context.Context, buf *strings.Builder, token string, deadline time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.r.SetReadDeadline(deadline); err != nil {
		return fmt.Errorf("set read deadline: %w", err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = s.r.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		line, err := s.br.ReadString('\n')
		if line != "" {
			buf.WriteString(line)
			s.log.Debug().Str("dir", "<").Msg(strings.TrimRight(line, "\r\n"))
			if strings.Contains(line, token) {
				return nil
			}
		}
		if err == nil {
			continue
		}
		switch {
		case errors.Is(err, os.ErrDeadlineExceeded):
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return os.ErrDeadlineExceeded
		case errors.Is(err, io.EOF):
			return ErrEngineExited
		default:
			return fmt.Errorf("read engine output: %w", err)
		}
	}
}

// Close sends quit, closes both pipes, signals the process group and reaps
// the child. Errors are logged and dropped. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if err := s.Send("quit"); err != nil {
			s.log.Debug().Err(err).Msg("quit not delivered")
		}
		closeFiles(s.w, s.r)

		if err := signalGroup(s.pid, syscall.SIGTERM); err != nil {
			s.log.Debug().Err(err).Msg("sigterm")
		}

		done := make(chan error, 1)
		go func() { done <- s.cmd.Wait() }()

		var err error
		select {
		case err = <-done:
		case <-time.After(s.grace):
			s.log.Warn().Dur("grace", s.grace).Msg("engine ignored SIGTERM, killing")
			_ = signalGroup(s.pid, syscall.SIGKILL)
			err = <-done
		}
		s.log.Debug().Err(err).Dur("elapsed", time.Since(s.started)).Msg("engine reaped")
	})
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
