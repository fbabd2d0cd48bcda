package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/breach/internal/log"
)

// TestMatchScriptedWin: side A fortifies then knocks out side B's last
// server over two turns while side B passes.
func TestMatchScriptedWin(t *testing.T) {
	s, events := newTestStore(t, stackedDeck(
		[]Card{zeroDay, sqlInjection, firewall},
		nil, nil, 10))
	dumpEvents(t, events)
	setSPV(s, SideB, [ServerSlots]int{0, 4, 5, 0})

	p0 := NewScriptedController(t, "A").Add(
		DefenseAction(firewall, 0),
		AttackAction(zeroDay, SideB, 1),
		EndTurnAction(),
		// turn 3
		AttackAction(sqlInjection, SideB, 2),
	)
	p1 := NewScriptedController(t, "B")

	m := NewMatch(s, MatchConfig{MaxTurns: 10, Logger: zaptest.NewLogger(t)}, p0, p1)
	winner, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SideA, winner)

	gs := s.State()
	assert.True(t, gs.Over)
	assert.Equal(t, 3, gs.Turn.Number)
	assert.Equal(t, 9, gs.Boards[SideA].Score)

	// Both controllers saw the whole log, including the win.
	assert.Equal(t, len(events.Events()), len(p0.events))
	assert.Equal(t, log.EventWin, p1.events[len(p1.events)-1].Type)
}

func TestMatchAutoEndsTurnWhenOutOfMoves(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck(nil, nil, nil, 10))
	// Two draws fill the hand to 7; the third move is a filler heal on a full server.
	p0 := NewScriptedController(t, "A").Add(
		DrawAction(SideA),
		DrawAction(SideA),
		UtilityAction(filler, SideA, 0),
	)
	m := NewMatch(s, MatchConfig{}, p0, NewScriptedController(t, "B"))
	require.NoError(t, m.PlayTurn(context.Background()))

	gs := s.State()
	assert.Equal(t, SideB, gs.Turn.Active)
	assert.Equal(t, 2, gs.Turn.Number)
	assert.Equal(t, MaxHandSize-1, gs.Boards[SideA].HandCount())
}

// stubbornController keeps submitting the same rejected action.
type stubbornController struct {
	calls int
}

func (c *stubbornController) ChooseAction(ctx context.Context, state *GameState) (Action, error) {
	c.calls++
	return AttackAction(zeroDay, state.Turn.Active, 0), nil
}

func (c *stubbornController) Notify(ctx context.Context, event log.GameEvent) error { return nil }

func TestMatchForcesEndTurnAfterRepeatedRejections(t *testing.T) {
	s, events := newTestStore(t, stackedDeck(nil, nil, nil, 10))
	stubborn := &stubbornController{}
	m := NewMatch(s, MatchConfig{Logger: zaptest.NewLogger(t)}, stubborn, NewScriptedController(t, "B"))

	require.NoError(t, m.PlayTurn(context.Background()))
	assert.Equal(t, MaxConsecutiveRejections, stubborn.calls)
	assert.Equal(t, SideB, s.State().Turn.Active)
	assert.Len(t, events.EventsOfType(log.EventRejected), MaxConsecutiveRejections)
}

func TestMatchTurnLimit(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck(nil, nil, nil, 10))
	m := NewMatch(s, MatchConfig{MaxTurns: 4}, NewScriptedController(t, "A"), NewScriptedController(t, "B"))

	winner, err := m.Run(context.Background())
	assert.ErrorIs(t, err, ErrTurnLimit)
	assert.Equal(t, NoSide, winner)
	assert.Equal(t, 5, s.State().Turn.Number)
}

func TestMatchStopsOnCancel(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck(nil, nil, nil, 10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMatch(s, MatchConfig{}, NewScriptedController(t, "A"), NewScriptedController(t, "B"))
	_, err := m.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMatchResetEndsTurnLoop(t *testing.T) {
	s, events := newTestStore(t, stackedDeck(nil, nil, nil, 10))
	p0 := NewScriptedController(t, "A").Add(DrawAction(SideA), ResetAction())
	m := NewMatch(s, MatchConfig{}, p0, nil)

	require.NoError(t, m.PlayTurn(context.Background()))
	gs := s.State()
	assert.Equal(t, SideA, gs.Turn.Active)
	assert.Equal(t, MovesPerTurn, gs.Turn.MovesRemaining)
	assert.Len(t, events.EventsOfType(log.EventReset), 1)
}

func TestMatchNilControllerForActiveSide(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck(nil, nil, nil, 10))
	m := NewMatch(s, MatchConfig{}, nil, NewScriptedController(t, "B"))
	assert.Error(t, m.PlayTurn(context.Background()))
}

// TestMatchForwardsEventsBeyondActionLogCap: a two-entry action log still
// lets the controllers see every event of an attack that logs four.
func TestMatchForwardsEventsBeyondActionLogCap(t *testing.T) {
	display := log.NewBoundedLogger(2)
	s, err := NewStore(StoreConfig{
		MasterDeck: stackedDeck([]Card{zeroDay}, nil, nil, 10),
		NoShuffle:  true,
		Logger:     zaptest.NewLogger(t),
		Events:     display,
	})
	require.NoError(t, err)
	setDefense(s, SideB, 0, firewall, 3)

	p0 := NewScriptedController(t, "A").Add(AttackAction(zeroDay, SideB, 0))
	p1 := NewScriptedController(t, "B")
	m := NewMatch(s, MatchConfig{MaxTurns: 1, Logger: zaptest.NewLogger(t)}, p0, p1)
	_, err = m.Run(context.Background())
	require.ErrorIs(t, err, ErrTurnLimit)

	var types []log.EventType
	for i, e := range p1.events {
		if i > 0 {
			assert.Equal(t, p1.events[i-1].Seq+1, e.Seq, "no gaps once the match is running")
		}
		types = append(types, e.Type)
	}
	assert.Subset(t, types, []log.EventType{
		log.EventAttack, log.EventDefenseDestroyed, log.EventServerDamage,
		log.EventServerDestroyed, log.EventEndTurn, log.EventNewTurn,
	})
	assert.Len(t, display.Events(), 2)
	assert.Equal(t, display.LastEvent().Seq, p1.events[len(p1.events)-1].Seq)
}
