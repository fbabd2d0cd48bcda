package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/breach/internal/log"
)

// StoreConfig holds configuration for creating a Store.
type StoreConfig struct {
	MasterDeck []Card          // card set shuffled at every game start (nil = BuildMasterDeck())
	Seed       int64           // RNG seed (0 for time-based)
	Rand       *rand.Rand      // overrides Seed when set
	NoShuffle  bool            // deal from MasterDeck as-is (for deterministic tests)
	Logger     *zap.Logger     // operational logging (nil = no-op)
	Events     log.EventLogger // gameplay action log (nil = in-memory)
}

// Store is the single owner of the authoritative GameState. Every operation
// either applies fully or returns a rejection and leaves the state untouched.
type Store struct {
	mu sync.Mutex

	state     *GameState
	master    []Card
	rng       *rand.Rand
	noShuffle bool
	logger    *zap.Logger
	events    log.EventLogger
	seq       int
	watchers  []func(log.GameEvent)
}

// NewStore validates the config and starts the first game.
func NewStore(cfg StoreConfig) (*Store, error) {
	master := cfg.MasterDeck
	if master == nil {
		master = BuildMasterDeck()
	}
	for i, c := range master {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("master deck card %d (%s): %w", i, c, err)
		}
	}
	if len(master) < 2*InitialHandSize {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortDeck, len(master), 2*InitialHandSize)
	}

	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	events := cfg.Events
	if events == nil {
		events = log.NewMemoryLogger()
	}

	s := &Store{
		master:    append([]Card(nil), master...),
		rng:       rng,
		noShuffle: cfg.NoShuffle,
		logger:    logger,
		events:    events,
	}
	s.state = s.newGame()
	return s, nil
}

// newGame shuffles the master set and deals a fresh GameState.
func (s *Store) newGame() *GameState {
	deck := s.master
	if !s.noShuffle {
		deck = Shuffle(deck, s.rng)
	}
	gs, err := NewGameState(deck)
	// NewStore checked the deck size, so dealing cannot fail here.
	invariant(err == nil, fmt.Sprintf("deal initial hands: %v", err))

	s.emit(log.NewGameEvent(gs.Turn.Number, gs.ID.String(), len(s.master)))
	if !s.noShuffle {
		s.emit(log.NewShuffleEvent(gs.Turn.Number, len(deck)))
	}
	for _, side := range []Side{SideA, SideB} {
		s.emit(log.NewDealEvent(gs.Turn.Number, int(side), InitialHandSize))
	}
	s.emit(log.NewTurnEvent(gs.Turn.Number, int(gs.Turn.Active), gs.Turn.MovesRemaining))

	s.logger.Info("game started",
		zap.String("game_id", gs.ID.String()),
		zap.Int("deck_size", len(gs.Deck)),
	)
	return gs
}

// State returns a deep copy of the current GameState.
func (s *Store) State() *GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Events returns the gameplay action log.
func (s *Store) Events() log.EventLogger {
	return s.events
}

// Watch registers fn to receive every event logged from now on, whatever
// the action log retains, and returns the events the log holds right now.
// fn runs with the Store locked and must not call back into the Store.
func (s *Store) Watch(fn func(log.GameEvent)) []log.GameEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
	return append([]log.GameEvent(nil), s.events.Events()...)
}

// emit numbers e, appends it to the action log and hands it to the watchers.
func (s *Store) emit(e log.GameEvent) {
	s.seq++
	e.Seq = s.seq
	s.events.Log(e)
	for _, fn := range s.watchers {
		fn(e)
	}
}

// Apply dispatches a tagged Action to the matching operation.
func (s *Store) Apply(a Action) error {
	switch a.Type {
	case ActionDraw:
		return s.DrawCard(a.Side)
	case ActionPlayAttack:
		return s.PlayAttack(a.Card, a.TargetSide, a.Slot)
	case ActionPlayUtility:
		return s.PlayUtility(a.Card, a.TargetSide, a.Slot)
	case ActionPlayDefense:
		return s.PlayDefense(a.Card, a.Slot)
	case ActionEndTurn:
		return s.EndTurn()
	case ActionReset:
		s.ResetGame()
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAction, a.Type)
	}
}

// DrawCard moves the head of the deck into side's hand.
func (s *Store) DrawCard(side Side) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs := s.state

	if err := s.checkMove(side); err != nil {
		return s.reject(side, "draw a card", err)
	}
	if len(gs.Deck) == 0 {
		return s.reject(side, "draw a card", ErrDeckEmpty)
	}
	b := gs.Board(side)
	if len(b.Hand) >= MaxHandSize {
		return s.reject(side, "draw a card", ErrHandFull)
	}

	card := gs.Deck[0]
	gs.Deck = gs.Deck[1:]
	b.Hand = append(b.Hand, card)
	gs.Turn.MovesRemaining--

	s.emit(log.NewDrawEvent(gs.Turn.Number, int(side), card.String(), len(gs.Deck)))
	s.commit()
	return nil
}

// PlayAttack plays an attack card from the active hand against targetSide's
// server in targetSlot.
func (s *Store) PlayAttack(card Card, targetSide Side, targetSlot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs := s.state
	side := gs.Turn.Active
	what := fmt.Sprintf("attack with %s", card)

	if err := s.checkMove(side); err != nil {
		return s.reject(side, what, err)
	}
	idx, err := s.checkCard(card, KindAttack)
	if err != nil {
		return s.reject(side, what, err)
	}
	if targetSide != side.Opponent() {
		return s.reject(side, what, ErrInvalidTarget)
	}
	if err := checkSlot(targetSlot); err != nil {
		return s.reject(side, what, err)
	}

	me := gs.ActiveBoard()
	target := gs.OpponentBoard()
	me.removeFromHand(idx)
	gs.Turn.MovesRemaining--

	turn := gs.Turn.Number
	s.emit(log.NewAttackEvent(turn, int(side), card.Category.String(), card.Power, int(targetSide), targetSlot))

	def := &target.Defense[targetSlot]
	out := ResolveAttack(card.Power, def.Health, def.Occupied)
	switch {
	case out.DefenseDestroyed:
		s.emit(log.NewDefenseDestroyedEvent(turn, int(targetSide), def.Card.Category.String(), targetSlot))
		*def = DefenseSlot{}
	case def.Occupied && def.Health > 0:
		def.Health = out.DefenseRemaining
		s.emit(log.NewDefenseAbsorbEvent(turn, int(targetSide), def.Card.Category.String(), out.DefenseAbsorbed, def.Health, targetSlot))
	default:
		s.emit(log.NewDirectHitEvent(turn, int(side), card.Category.String(), int(targetSide), targetSlot))
	}

	if out.ServerDamage > 0 {
		old := target.SPV[targetSlot]
		target.SPV[targetSlot] = ApplyDamageToSPV(old, out.ServerDamage)
		me.Score += old - target.SPV[targetSlot]
		s.emit(log.NewServerDamageEvent(turn, int(targetSide), targetSlot, old, target.SPV[targetSlot]))
		if old > 0 && target.SPV[targetSlot] == 0 {
			s.emit(log.NewServerDestroyedEvent(turn, int(targetSide), targetSlot))
		}
	}

	s.commit()
	return nil
}

// PlayUtility heals one of the active side's own servers.
func (s *Store) PlayUtility(card Card, targetSide Side, targetSlot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs := s.state
	side := gs.Turn.Active
	what := fmt.Sprintf("heal with %s", card)

	if err := s.checkMove(side); err != nil {
		return s.reject(side, what, err)
	}
	idx, err := s.checkCard(card, KindUtility)
	if err != nil {
		return s.reject(side, what, err)
	}
	if targetSide != side {
		return s.reject(side, what, ErrInvalidTarget)
	}
	if err := checkSlot(targetSlot); err != nil {
		return s.reject(side, what, err)
	}
	me := gs.Board(side)
	healed, err := ResolveHeal(me.SPV[targetSlot], card.Power)
	if err != nil {
		return s.reject(side, fmt.Sprintf("heal destroyed Server %d", targetSlot+1), err)
	}

	restored := healed - me.SPV[targetSlot]
	me.removeFromHand(idx)
	gs.Turn.MovesRemaining--
	me.SPV[targetSlot] = healed

	s.emit(log.NewHealEvent(gs.Turn.Number, int(side), card.Category.String(), card.Power, targetSlot, restored))
	s.commit()
	return nil
}

// PlayDefense places a defense card over one of the active side's servers.
func (s *Store) PlayDefense(card Card, slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs := s.state
	side := gs.Turn.Active
	what := fmt.Sprintf("place %s", card)

	if err := s.checkMove(side); err != nil {
		return s.reject(side, what, err)
	}
	idx, err := s.checkCard(card, KindDefense)
	if err != nil {
		return s.reject(side, what, err)
	}
	if err := checkSlot(slot); err != nil {
		return s.reject(side, what, err)
	}
	me := gs.Board(side)
	if me.Defense[slot].Occupied {
		return s.reject(side, what, ErrSlotOccupied)
	}
	if me.Destroyed(slot) {
		return s.reject(side, what, ErrServerDestroyed)
	}

	me.removeFromHand(idx)
	gs.Turn.MovesRemaining--
	me.Defense[slot] = DefenseSlot{Occupied: true, Card: card, Health: card.Power}

	s.emit(log.NewPlaceDefenseEvent(gs.Turn.Number, int(side), card.Category.String(), card.Power, slot))
	s.commit()
	return nil
}

// EndTurn hands the turn to the other side with a fresh move budget. Unused
// moves are forfeited.
func (s *Store) EndTurn() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs := s.state

	if gs.Over {
		return s.reject(gs.Turn.Active, "end the turn", ErrGameOver)
	}

	s.emit(log.NewEndTurnEvent(gs.Turn.Number, int(gs.Turn.Active), gs.Turn.MovesRemaining))
	gs.Turn.Active = gs.Turn.Active.Opponent()
	gs.Turn.Number++
	gs.Turn.MovesRemaining = MovesPerTurn
	s.emit(log.NewTurnEvent(gs.Turn.Number, int(gs.Turn.Active), gs.Turn.MovesRemaining))

	s.commit()
	return nil
}

// ResetGame discards the current game and deals a new one. Safe at any time.
func (s *Store) ResetGame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.state.ID
	s.emit(log.NewResetEvent(old.String()))
	s.state = s.newGame()
	s.logger.Info("game reset",
		zap.String("previous_game_id", old.String()),
		zap.String("game_id", s.state.ID.String()),
	)
}

// checkMove validates the preconditions shared by every move-consuming action.
func (s *Store) checkMove(side Side) error {
	gs := s.state
	if gs.Over {
		return ErrGameOver
	}
	if side != gs.Turn.Active {
		return ErrNotYourTurn
	}
	if gs.Turn.MovesRemaining <= 0 {
		return ErrNoMovesLeft
	}
	return nil
}

// checkCard returns the hand index of card in the active hand.
func (s *Store) checkCard(card Card, kind Kind) (int, error) {
	if card.Kind != kind {
		return -1, ErrWrongCardKind
	}
	idx := s.state.ActiveBoard().HandIndex(card)
	if idx < 0 {
		return -1, ErrCardNotInHand
	}
	return idx, nil
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= ServerSlots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return nil
}

// reject records a refused operation. The returned error wraps the reason.
func (s *Store) reject(side Side, what string, err error) error {
	s.emit(log.NewRejectedEvent(s.state.Turn.Number, int(side), what, err.Error()))
	s.logger.Debug("operation rejected",
		zap.String("game_id", s.state.ID.String()),
		zap.Stringer("side", side),
		zap.String("operation", what),
		zap.Error(err),
	)
	return err
}

// commit runs win detection after a mutation and re-checks invariants.
func (s *Store) commit() {
	gs := s.state
	wasOver := gs.Over
	gs.validate()
	if gs.CheckWinCondition() && !wasOver {
		s.emit(log.NewWinEvent(gs.Turn.Number, int(gs.Winner), "all enemy servers destroyed"))
		s.logger.Info("game over",
			zap.String("game_id", gs.ID.String()),
			zap.Stringer("winner", gs.Winner),
			zap.Int("turn", gs.Turn.Number),
		)
	}
}
