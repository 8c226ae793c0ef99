package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/freeeve/chessbot"
	"github.com/freeeve/chessbot/internal/logx"
	"github.com/freeeve/chessbot/internal/uci"
)

type cliConfig struct {
	engine  chessbot.Config
	workers int
	debug   bool
	fens    []string
}

func parseFlags(args []string) (cliConfig, error) {
	fs := flag.NewFlagSet("bestmove", flag.ContinueOnError)
	var (
		// Engine
		stockfishPath = fs.String("stockfish", "", "engine path tried before the default locations")
		threads       = fs.Int("threads", 0, "Stockfish threads (0 = all CPUs)")
		hashMB        = fs.Int("hash", 512, "Stockfish hash MB")
		skill         = fs.Int("skill", 20, "Stockfish Skill Level")
		multiPV       = fs.Int("multipv", 1, "Stockfish MultiPV")

		// Timing
		moveTime         = fs.Duration("movetime", 0, "search time per move (default 1s)")
		uciWait          = fs.Duration("uci-wait", 0, "max wait for uciok (default 100ms)")
		handshakeTimeout = fs.Duration("handshake-timeout", 0, "wait for readyok (default 5s)")
		searchTimeout    = fs.Duration("search-timeout", 0, "wait for bestmove (default 7s)")
		teardownGrace    = fs.Duration("teardown-grace", 0, "SIGTERM to SIGKILL delay (default 1s)")

		// Batch
		workers = fs.Int("workers", 1, "concurrent engine processes when reading FENs from stdin")
		verify  = fs.Bool("verify", false, "reject invalid FENs and illegal engine moves")
		debug   = fs.Bool("debug", false, "log UCI traffic")
	)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: bestmove [flags] [FEN]\n\nWith no FEN, one FEN per line is read from stdin.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}

	paths := uci.DefaultPaths
	if *stockfishPath != "" {
		paths = append([]string{*stockfishPath}, paths...)
	}
	return cliConfig{
		engine: chessbot.Config{
			Paths:            paths,
			Threads:          *threads,
			HashMB:           *hashMB,
			SkillLevel:       *skill,
			MultiPV:          *multiPV,
			MoveTime:         *moveTime,
			UCIWait:          *uciWait,
			HandshakeTimeout: *handshakeTimeout,
			SearchTimeout:    *searchTimeout,
			TeardownGrace:    *teardownGrace,
			Verify:           *verify,
		},
		workers: *workers,
		debug:   *debug,
		fens:    fs.Args(),
	}, nil
}

func main() {
	cli, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cli.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logger := logx.NewLogger()
	cli.engine.Logger = logger
	engine := chessbot.New(cli.engine)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(cli.fens) > 0 {
		move, err := engine.BestMove(ctx, strings.Join(cli.fens, " "))
		if err != nil {
			logger.Error().Err(err).Msg("no move")
			os.Exit(1)
		}
		fmt.Println(move)
		return
	}

	if err := runBatch(ctx, engine, os.Stdin, os.Stdout, cli.workers, logger); err != nil {
		logger.Error().Err(err).Msg("batch failed")
		os.Exit(1)
	}
}

// runBatch answers one FEN per input line, printing moves in input order.
// Failed positions print an empty line.
func runBatch(ctx context.Context, engine *chessbot.Engine, in io.Reader, out io.Writer, workers int, log zerolog.Logger) error {
	var fens []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if fen := strings.TrimSpace(sc.Text()); fen != "" {
			fens = append(fens, fen)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	moves := make([]string, len(fens))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, fen := range fens {
		g.Go(func() error {
			move, err := engine.BestMove(gctx, fen)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Error().Err(err).Str("fen", fen).Msg("no move")
				return nil
			}
			moves[i] = move
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	for _, m := range moves {
		fmt.Fprintln(w, m)
	}
	return w.Flush()
}
