package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peterkuimelis/breach/internal/game"
	"github.com/peterkuimelis/breach/internal/view"
)

// Verb is a parsed REPL command.
type Verb int

const (
	VerbDraw Verb = iota
	VerbAttack
	VerbHeal
	VerbDefend
	VerbEnd
	VerbReset
	VerbState
	VerbCards
	VerbHelp
	VerbQuit
)

var verbs = map[string]Verb{
	"draw": VerbDraw, "d": VerbDraw,
	"attack": VerbAttack, "a": VerbAttack,
	"heal": VerbHeal, "h": VerbHeal, "utility": VerbHeal,
	"defend": VerbDefend, "def": VerbDefend, "f": VerbDefend,
	"end": VerbEnd, "e": VerbEnd,
	"reset": VerbReset,
	"state": VerbState, "s": VerbState,
	"cards": VerbCards, "c": VerbCards,
	"help": VerbHelp, "?": VerbHelp,
	"quit": VerbQuit, "q": VerbQuit, "exit": VerbQuit,
}

// Command is one line of player input. Card and Slot are 0-based; the
// player types them 1-based, matching the board display.
type Command struct {
	Verb Verb
	Card int
	Slot int
}

// Usage is printed by the help command.
const Usage = `Commands (card and server numbers as shown on the board):
  draw                 draw a card
  attack <card> <srv>  attack opponent server
  heal <card> <srv>    play a utility card on your server
  defend <card> <srv>  place a defense card on your server
  end                  end your turn
  reset                abandon this game and deal a new one
  state | cards | help | quit`

// ParseCommand parses a REPL line.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	verb, ok := verbs[fields[0]]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	cmd := Command{Verb: verb}

	switch verb {
	case VerbAttack, VerbHeal, VerbDefend:
		if len(fields) != 3 {
			return Command{}, fmt.Errorf("%s needs a card number and a server number", fields[0])
		}
		card, err := strconv.Atoi(fields[1])
		if err != nil || card < 1 {
			return Command{}, fmt.Errorf("bad card number %q", fields[1])
		}
		slot, err := strconv.Atoi(fields[2])
		if err != nil || slot < 1 || slot > game.ServerSlots {
			return Command{}, fmt.Errorf("server number must be 1-%d", game.ServerSlots)
		}
		cmd.Card, cmd.Slot = card-1, slot-1
	default:
		if len(fields) != 1 {
			return Command{}, fmt.Errorf("%s takes no arguments", fields[0])
		}
	}
	return cmd, nil
}

// IsAction reports whether the command is submitted to the game.
func (c Command) IsAction() bool {
	switch c.Verb {
	case VerbDraw, VerbAttack, VerbHeal, VerbDefend, VerbEnd, VerbReset:
		return true
	}
	return false
}

// Action resolves the command against side's hand.
func (c Command) Action(state *game.GameState, side game.Side) (game.Action, error) {
	switch c.Verb {
	case VerbDraw:
		return game.DrawAction(side), nil
	case VerbEnd:
		return game.EndTurnAction(), nil
	case VerbReset:
		return game.ResetAction(), nil
	}

	card, err := view.HandCard(state, side, c.Card)
	if err != nil {
		return game.Action{}, err
	}
	switch c.Verb {
	case VerbAttack:
		return game.AttackAction(card, side.Opponent(), c.Slot), nil
	case VerbHeal:
		return game.UtilityAction(card, side, c.Slot), nil
	case VerbDefend:
		return game.DefenseAction(card, c.Slot), nil
	}
	return game.Action{}, fmt.Errorf("command is not a game action")
}
