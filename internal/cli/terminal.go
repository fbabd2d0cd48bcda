package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterkuimelis/breach/internal/game"
	"github.com/peterkuimelis/breach/internal/log"
	"github.com/peterkuimelis/breach/internal/view"
)

// ErrQuit is returned by ChooseAction when the player quits.
var ErrQuit = errors.New("player quit")

// Terminal implements game.PlayerController for a human at a terminal.
type Terminal struct {
	side       game.Side
	out        io.Writer
	lines      chan string
	transcript *log.TextLogger
}

// NewTerminal starts reading lines from in. The reader goroutine ends at EOF.
func NewTerminal(side game.Side, in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		side:  side,
		out:   out,
		lines: make(chan string),
	}
	go func() {
		defer close(t.lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			t.lines <- scanner.Text()
		}
	}()
	return t
}

// SetTranscript copies every game event to w, one line each.
func (t *Terminal) SetTranscript(w io.Writer) {
	t.transcript = log.NewTextLogger(w)
}

// readLine prints prompt and waits for the next input line.
func (t *Terminal) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	select {
	case line, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ChooseAction implements game.PlayerController.
func (t *Terminal) ChooseAction(ctx context.Context, state *game.GameState) (game.Action, error) {
	view.RenderState(t.out, view.BuildStateView(state, t.side))
	for {
		line, err := t.readLine(ctx, "> ")
		if err != nil {
			return game.Action{}, err
		}
		if line == "" {
			continue
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(t.out, err)
			continue
		}

		switch cmd.Verb {
		case VerbQuit:
			return game.Action{}, ErrQuit
		case VerbHelp:
			fmt.Fprintln(t.out, Usage)
			continue
		case VerbState:
			view.RenderState(t.out, view.BuildStateView(state, t.side))
			continue
		case VerbCards:
			for _, c := range view.CatalogView() {
				fmt.Fprintf(t.out, "  %-8s %s\n", c.Kind, view.FormatCard(c))
			}
			continue
		}

		action, err := cmd.Action(state, t.side)
		if err != nil {
			fmt.Fprintln(t.out, err)
			continue
		}
		return action, nil
	}
}

// Notify implements game.PlayerController.
func (t *Terminal) Notify(ctx context.Context, event log.GameEvent) error {
	view.RenderEvents(t.out, []view.EventView{view.NewEventView(event)})
	if t.transcript != nil {
		t.transcript.Log(event)
	}
	return nil
}

// Confirm asks a yes/no question.
func (t *Terminal) Confirm(ctx context.Context, prompt string) (bool, error) {
	for {
		line, err := t.readLine(ctx, prompt+" (y/n): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// GameOver prints the final banner.
func (t *Terminal) GameOver(state *game.GameState) {
	sv := view.BuildStateView(state, t.side)
	view.RenderState(t.out, sv)
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "═══════════════════════════════════")
	fmt.Fprintln(t.out, "          GAME OVER")
	fmt.Fprintln(t.out, "═══════════════════════════════════")
	if sv.Winner != "" {
		fmt.Fprintf(t.out, "%s wins: %s\n", sv.Winner, sv.Result)
	} else {
		fmt.Fprintln(t.out, sv.Result)
	}
	fmt.Fprintln(t.out, "═══════════════════════════════════")
}
