package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/breach/internal/log"
)

var (
	sqlInjection = attack(CategorySQLInjection, 5)
	bruteForce   = attack(CategoryBruteForce, 3)
	zeroDay      = attack(CategoryZeroDay, 8)
	firewall     = defense(CategoryFirewall, 3)
	dataVault    = defense(CategoryDataVault, 6)
	virusScan    = utility(CategoryVirusScan, 4)
)

// TestAttackUnguardedServer: 5 power against an undefended 5 SPV server
// destroys it outright.
func TestAttackUnguardedServer(t *testing.T) {
	s, events := newTestStore(t, stackedDeck([]Card{sqlInjection}, nil, nil, 10))
	dumpEvents(t, events)

	require.NoError(t, s.PlayAttack(sqlInjection, SideB, 0))

	gs := s.State()
	assert.Equal(t, 0, gs.Boards[SideB].SPV[0])
	assert.False(t, gs.Boards[SideB].Defense[0].Occupied)
	assert.Equal(t, InitialHandSize-1, gs.Boards[SideA].HandCount())
	assert.Equal(t, MovesPerTurn-1, gs.Turn.MovesRemaining)
	assert.Equal(t, 5, gs.Boards[SideA].Score)
	assert.Len(t, events.EventsOfType(log.EventDirectHit), 1)
	assert.Len(t, events.EventsOfType(log.EventServerDestroyed), 1)
}

// TestAttackAbsorbedByDefense: 3 power against 6 defense health leaves the
// server untouched.
func TestAttackAbsorbedByDefense(t *testing.T) {
	s, events := newTestStore(t, stackedDeck([]Card{bruteForce}, nil, nil, 10))
	dumpEvents(t, events)
	setDefense(s, SideB, 1, dataVault, 6)

	require.NoError(t, s.PlayAttack(bruteForce, SideB, 1))

	gs := s.State()
	slot := gs.Boards[SideB].Defense[1]
	assert.True(t, slot.Occupied)
	assert.Equal(t, 3, slot.Health)
	assert.Equal(t, 5, gs.Boards[SideB].SPV[1])
	assert.Len(t, events.EventsOfType(log.EventDefenseAbsorb), 1)
	assert.Empty(t, events.EventsOfType(log.EventServerDamage))
}

// TestAttackDestroysDefenseAndSpills: 8 power against 3 defense health
// clears the slot and deals the excess 5 to the server.
func TestAttackDestroysDefenseAndSpills(t *testing.T) {
	s, events := newTestStore(t, stackedDeck([]Card{zeroDay}, nil, nil, 10))
	dumpEvents(t, events)
	setDefense(s, SideB, 2, firewall, 3)

	require.NoError(t, s.PlayAttack(zeroDay, SideB, 2))

	gs := s.State()
	assert.Equal(t, DefenseSlot{}, gs.Boards[SideB].Defense[2])
	assert.Equal(t, 0, gs.Boards[SideB].SPV[2])
	assert.Len(t, events.EventsOfType(log.EventDefenseDestroyed), 1)
}

func TestAttackPartialSpillover(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck([]Card{sqlInjection}, nil, nil, 10))
	setDefense(s, SideB, 0, firewall, 3)

	require.NoError(t, s.PlayAttack(sqlInjection, SideB, 0))

	gs := s.State()
	assert.False(t, gs.Boards[SideB].Defense[0].Occupied)
	assert.Equal(t, 3, gs.Boards[SideB].SPV[0])
	assert.Equal(t, 2, gs.Boards[SideA].Score)
}

// TestHealIsCapped: 4 power on a 2 SPV server heals to 5, not 6.
func TestHealIsCapped(t *testing.T) {
	s, events := newTestStore(t, stackedDeck([]Card{virusScan}, nil, nil, 10))
	setSPV(s, SideA, [ServerSlots]int{5, 5, 2, 5})

	require.NoError(t, s.PlayUtility(virusScan, SideA, 2))

	gs := s.State()
	assert.Equal(t, 5, gs.Boards[SideA].SPV[2])
	heals := events.EventsOfType(log.EventHeal)
	require.Len(t, heals, 1)
	assert.Contains(t, heals[0].Details, "by 3 SPV")
}

// TestHealFullServer: a utility on an intact server is a legal play that
// spends the card and a move and restores nothing.
func TestHealFullServer(t *testing.T) {
	s, events := newTestStore(t, stackedDeck([]Card{virusScan}, nil, nil, 10))

	require.NoError(t, s.PlayUtility(virusScan, SideA, 1))

	gs := s.State()
	assert.Equal(t, 5, gs.Boards[SideA].SPV[1])
	assert.Equal(t, -1, gs.Boards[SideA].HandIndex(virusScan))
	assert.Equal(t, 4, gs.Boards[SideA].HandCount())
	assert.Equal(t, MovesPerTurn-1, gs.Turn.MovesRemaining)
	heals := events.EventsOfType(log.EventHeal)
	require.Len(t, heals, 1)
	assert.Contains(t, heals[0].Details, "by 0 SPV")
}

// TestHealDestroyedServerRejected: healing an SPV 0 server consumes neither
// the card nor a move.
func TestHealDestroyedServerRejected(t *testing.T) {
	s, events := newTestStore(t, stackedDeck([]Card{virusScan}, nil, nil, 10))
	setSPV(s, SideA, [ServerSlots]int{5, 5, 5, 0})
	before := s.State()

	err := s.PlayUtility(virusScan, SideA, 3)
	assert.ErrorIs(t, err, ErrServerDestroyed)
	assert.Equal(t, before, s.State())
	assert.Len(t, events.EventsOfType(log.EventRejected), 1)
}

func TestHealOpponentRejected(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck([]Card{virusScan}, nil, nil, 10))
	err := s.PlayUtility(virusScan, SideB, 0)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestPlayDefense(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck([]Card{firewall, firewall}, nil, nil, 10))

	require.NoError(t, s.PlayDefense(firewall, 1))
	gs := s.State()
	assert.Equal(t, DefenseSlot{Occupied: true, Card: firewall, Health: 3}, gs.Boards[SideA].Defense[1])
	assert.Equal(t, InitialHandSize-1, gs.Boards[SideA].HandCount())

	assert.ErrorIs(t, s.PlayDefense(firewall, 1), ErrSlotOccupied)

	setSPV(s, SideA, [ServerSlots]int{5, 5, 0, 5})
	assert.ErrorIs(t, s.PlayDefense(firewall, 2), ErrServerDestroyed)

	assert.ErrorIs(t, s.PlayDefense(firewall, ServerSlots), ErrInvalidSlot)
	assert.ErrorIs(t, s.PlayDefense(firewall, -1), ErrInvalidSlot)
}

func TestRejectionsLeaveStateUnchanged(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck([]Card{sqlInjection, firewall}, []Card{zeroDay}, nil, 10))

	cases := map[string]struct {
		op   func() error
		want error
	}{
		"draw out of turn":      {func() error { return s.DrawCard(SideB) }, ErrNotYourTurn},
		"card not in hand":      {func() error { return s.PlayAttack(zeroDay, SideB, 0) }, ErrCardNotInHand},
		"wrong kind for attack": {func() error { return s.PlayAttack(firewall, SideB, 0) }, ErrWrongCardKind},
		"attack own side":       {func() error { return s.PlayAttack(sqlInjection, SideA, 0) }, ErrInvalidTarget},
		"attack bad slot":       {func() error { return s.PlayAttack(sqlInjection, SideB, 7) }, ErrInvalidSlot},
		"defense as utility":    {func() error { return s.PlayUtility(firewall, SideA, 0) }, ErrWrongCardKind},
		"unknown action":        {func() error { return s.Apply(Action{Type: ActionType(99)}) }, ErrUnknownAction},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			before := s.State()
			err := tc.op()
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, IsRejection(err))
			assert.Equal(t, before, s.State())
		})
	}
}

func TestDrawCard(t *testing.T) {
	s, events := newTestStore(t, stackedDeck(nil, nil, []Card{zeroDay, firewall}, 10))

	require.NoError(t, s.DrawCard(SideA))
	gs := s.State()
	assert.Equal(t, InitialHandSize+1, gs.Boards[SideA].HandCount())
	assert.Equal(t, zeroDay, gs.Boards[SideA].Hand[InitialHandSize])
	assert.Equal(t, firewall, gs.Deck[0])
	assert.Equal(t, MovesPerTurn-1, gs.Turn.MovesRemaining)

	draws := events.EventsOfType(log.EventDraw)
	require.Len(t, draws, 1)
	assert.Equal(t, zeroDay.String(), draws[0].Card)
}

func TestDrawRespectsHandCapacity(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck(nil, nil, nil, 10))

	require.NoError(t, s.DrawCard(SideA))
	require.NoError(t, s.DrawCard(SideA))
	before := s.State()
	assert.Equal(t, MaxHandSize, before.Boards[SideA].HandCount())

	assert.ErrorIs(t, s.DrawCard(SideA), ErrHandFull)
	assert.Equal(t, before, s.State())
	assert.Equal(t, 1, s.State().Turn.MovesRemaining)
}

func TestDrawFromEmptyDeck(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck(nil, nil, nil, 0))
	assert.Zero(t, s.State().DeckCount())
	assert.ErrorIs(t, s.DrawCard(SideA), ErrDeckEmpty)
}

func TestNoMovesLeft(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck([]Card{firewall, firewall, firewall}, nil, nil, 10))

	for slot := 0; slot < MovesPerTurn; slot++ {
		require.NoError(t, s.PlayDefense(firewall, slot))
	}
	assert.Zero(t, s.State().Turn.MovesRemaining)
	assert.ErrorIs(t, s.DrawCard(SideA), ErrNoMovesLeft)
}

func TestEndTurnAlternates(t *testing.T) {
	s, events := newTestStore(t, stackedDeck(nil, nil, nil, 10))
	require.NoError(t, s.DrawCard(SideA))

	prev := s.State().Turn
	for i := 0; i < 6; i++ {
		require.NoError(t, s.EndTurn())
		cur := s.State().Turn
		assert.Equal(t, prev.Active.Opponent(), cur.Active)
		assert.Equal(t, prev.Number+1, cur.Number)
		assert.Equal(t, MovesPerTurn, cur.MovesRemaining)
		prev = cur
	}
	assert.Len(t, events.EventsOfType(log.EventEndTurn), 6)
}

func TestWinIsTerminal(t *testing.T) {
	s, events := newTestStore(t, stackedDeck([]Card{sqlInjection, sqlInjection}, nil, nil, 10))
	dumpEvents(t, events)
	setSPV(s, SideB, [ServerSlots]int{0, 0, 3, 0})

	require.NoError(t, s.PlayAttack(sqlInjection, SideB, 2))

	gs := s.State()
	require.True(t, gs.Over)
	assert.Equal(t, SideA, gs.Winner)
	assert.Len(t, events.EventsOfType(log.EventWin), 1)

	assert.ErrorIs(t, s.PlayAttack(sqlInjection, SideB, 2), ErrGameOver)
	assert.ErrorIs(t, s.DrawCard(SideA), ErrGameOver)
	assert.ErrorIs(t, s.PlayDefense(firewall, 0), ErrGameOver)
	assert.ErrorIs(t, s.PlayUtility(virusScan, SideA, 0), ErrGameOver)
	assert.ErrorIs(t, s.EndTurn(), ErrGameOver)
	assert.Equal(t, gs, s.State())
	assert.Len(t, events.EventsOfType(log.EventWin), 1)
}

func TestResetGame(t *testing.T) {
	s, events := newTestStore(t, stackedDeck([]Card{sqlInjection}, nil, nil, 10))
	setSPV(s, SideB, [ServerSlots]int{5, 0, 0, 0})
	require.NoError(t, s.PlayAttack(sqlInjection, SideB, 0))
	old := s.State()
	require.True(t, old.Over)

	s.ResetGame()

	gs := s.State()
	assert.NotEqual(t, old.ID, gs.ID)
	assert.False(t, gs.Over)
	assert.Equal(t, NoSide, gs.Winner)
	assert.Equal(t, SideA, gs.Turn.Active)
	assert.Equal(t, 1, gs.Turn.Number)
	assert.Equal(t, [ServerSlots]int{5, 5, 5, 5}, gs.Boards[SideB].SPV)
	assert.Equal(t, InitialHandSize, gs.Boards[SideA].HandCount())
	assert.Len(t, events.EventsOfType(log.EventReset), 1)
	assert.Len(t, events.EventsOfType(log.EventNewGame), 2)
}

func TestResetMidTurn(t *testing.T) {
	s, _ := newTestStore(t, stackedDeck(nil, nil, nil, 10))
	require.NoError(t, s.DrawCard(SideA))
	require.NoError(t, s.EndTurn())

	require.NoError(t, s.Apply(ResetAction()))
	gs := s.State()
	assert.Equal(t, SideA, gs.Turn.Active)
	assert.Equal(t, MovesPerTurn, gs.Turn.MovesRemaining)
}

func TestNewStoreRejectsBadDecks(t *testing.T) {
	_, err := NewStore(StoreConfig{MasterDeck: BuildMasterDeck()[:5]})
	assert.ErrorIs(t, err, ErrShortDeck)

	deck := BuildMasterDeck()
	deck[3] = ServerMarker(SideA, 5)
	_, err = NewStore(StoreConfig{MasterDeck: deck})
	assert.Error(t, err)

	deck = BuildMasterDeck()
	deck[25] = defense(CategoryFirewall, 0)
	_, err = NewStore(StoreConfig{MasterDeck: deck})
	assert.ErrorContains(t, err, "positive power")
}

func TestSeededStoresDealIdentically(t *testing.T) {
	a, err := NewStore(StoreConfig{Seed: 99})
	require.NoError(t, err)
	b, err := NewStore(StoreConfig{Seed: 99})
	require.NoError(t, err)

	assert.Equal(t, a.State().Deck, b.State().Deck)
	assert.Equal(t, a.State().Boards[SideA].Hand, b.State().Boards[SideA].Hand)
}

// TestRandomPlayKeepsInvariants drives a shuffled game with random actions
// and checks the structural properties after every step.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s, err := NewStore(StoreConfig{Seed: 5, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	prev := s.State()
	for step := 0; step < 2000; step++ {
		gs := s.State()
		side := gs.Turn.Active
		hand := gs.Board(side).Hand

		var a Action
		switch r := rng.Intn(20); {
		case r == 0:
			a = EndTurnAction()
		case r == 1 && step%500 == 1:
			a = ResetAction()
		case r < 6 || len(hand) == 0:
			a = DrawAction(Side(rng.Intn(2)))
		default:
			c := hand[rng.Intn(len(hand))]
			slot := rng.Intn(ServerSlots + 1)
			switch c.Kind {
			case KindAttack:
				a = AttackAction(c, Side(rng.Intn(2)), slot)
			case KindUtility:
				a = UtilityAction(c, Side(rng.Intn(2)), slot)
			default:
				a = DefenseAction(c, slot)
			}
		}

		err := s.Apply(a)
		cur := s.State()
		if err != nil {
			require.True(t, IsRejection(err), "step %d: %v", step, err)
			require.Equal(t, gs, cur, "step %d: rejected %s mutated state", step, a)
		}

		for _, b := range cur.Boards {
			require.LessOrEqual(t, len(b.Hand), MaxHandSize)
		}
		if cur.ID == prev.ID && cur.Turn.Number == prev.Turn.Number {
			require.LessOrEqual(t, cur.Turn.MovesRemaining, prev.Turn.MovesRemaining, "step %d", step)
		}
		if cur.Over {
			require.ErrorIs(t, s.DrawCard(cur.Turn.Active), ErrGameOver)
			require.Equal(t, cur, s.State(), "step %d: state changed after game over", step)
			s.ResetGame()
			cur = s.State()
		}
		prev = cur
	}
}
