package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/peterkuimelis/breach/internal/cli"
	"github.com/peterkuimelis/breach/internal/config"
	"github.com/peterkuimelis/breach/internal/game"
	"github.com/peterkuimelis/breach/internal/opponent"
)

func main() {
	configFile := flag.String("config", "", "path to config YAML file")
	seed := flag.Int64("seed", 0, "shuffle seed (overrides config)")
	transcript := flag.String("transcript", "", "append the game log to this file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, *transcript); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, transcript string) error {
	store, _, err := cfg.NewStore(logger)
	if err != nil {
		return err
	}

	oppSide := cfg.OpponentSide()
	human := cli.NewTerminal(oppSide.Opponent(), os.Stdin, os.Stdout)
	if transcript != "" {
		f, err := os.OpenFile(transcript, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		human.SetTranscript(f)
	}
	npc := opponent.NewController(opponent.NewPolicy(cfg.Opponent.Seed), cfg.Opponent.PacingDelay, logger)

	var ctrls [2]game.PlayerController
	ctrls[oppSide.Opponent()] = human
	ctrls[oppSide] = npc
	match := game.NewMatch(store, game.MatchConfig{MaxTurns: cfg.Game.MaxTurns, Logger: logger}, ctrls[0], ctrls[1])

	fmt.Println("BREACH: destroy all four enemy servers. Type help for commands.")
	for {
		_, err := match.Run(ctx)
		switch {
		case errors.Is(err, cli.ErrQuit), errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			return nil
		case errors.Is(err, game.ErrTurnLimit):
			fmt.Println(err)
		case err != nil:
			return err
		}

		human.GameOver(store.State())
		again, err := human.Confirm(ctx, "Play again?")
		if err != nil || !again {
			return nil
		}
		store.ResetGame()
	}
}
