package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/breach/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined script of actions.
// Used in tests to deterministically drive the game. Once the script runs out
// it ends the turn.
type ScriptedController struct {
	t       *testing.T
	name    string
	actions []Action
	pos     int
	events  []log.GameEvent
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) Add(actions ...Action) *ScriptedController {
	sc.actions = append(sc.actions, actions...)
	return sc
}

func (sc *ScriptedController) ChooseAction(ctx context.Context, state *GameState) (Action, error) {
	if sc.pos >= len(sc.actions) {
		return EndTurnAction(), nil
	}
	a := sc.actions[sc.pos]
	sc.pos++
	sc.t.Logf("[%s] turn %d: %s", sc.name, state.Turn.Number, a)
	return a, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.events = append(sc.events, event)
	return nil
}

// --- Test card helpers ---

func attack(cat Category, power int) Card {
	return Card{Kind: KindAttack, Category: cat, Power: power}
}

func defense(cat Category, power int) Card {
	return Card{Kind: KindDefense, Category: cat, Power: power}
}

func utility(cat Category, power int) Card {
	return Card{Kind: KindUtility, Category: cat, Power: power}
}

// filler pads hands and decks; it never matches a card a test plays.
var filler = utility(CategoryScan, 0)

// stackedDeck builds an unshuffled deck that deals handA to side A and handB
// to side B (each padded with filler to InitialHandSize), followed by
// drawPile and at least minRest filler cards.
func stackedDeck(handA, handB, drawPile []Card, minRest int) []Card {
	pad := func(h []Card) []Card {
		out := append([]Card(nil), h...)
		for len(out) < InitialHandSize {
			out = append(out, filler)
		}
		return out
	}
	deck := append(pad(handA), pad(handB)...)
	deck = append(deck, drawPile...)
	for i := len(drawPile); i < minRest; i++ {
		deck = append(deck, filler)
	}
	return deck
}

// newTestStore returns a Store dealing deck as-is, with zap output routed
// through t.
func newTestStore(t *testing.T, deck []Card) (*Store, *log.MemoryLogger) {
	t.Helper()
	events := log.NewMemoryLogger()
	s, err := NewStore(StoreConfig{
		MasterDeck: deck,
		NoShuffle:  true,
		Logger:     zaptest.NewLogger(t),
		Events:     events,
	})
	require.NoError(t, err)
	return s, events
}

// setSPV overwrites one server's SPV for scenario setup.
func setSPV(s *Store, side Side, spv [ServerSlots]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Board(side).SPV = spv
}

// setDefense places a defense card directly, bypassing turn rules.
func setDefense(s *Store, side Side, slot int, card Card, health int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Board(side).Defense[slot] = DefenseSlot{Occupied: true, Card: card, Health: health}
}

// dumpEvents logs the full event log when a test fails.
func dumpEvents(t *testing.T, events *log.MemoryLogger) {
	t.Helper()
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("Event log:\n%s", log.FormatAll(events.Events()))
		}
	})
}
