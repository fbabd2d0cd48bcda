package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/breach/internal/log"
)

// MaxConsecutiveRejections is how many refused actions in a row a controller
// may submit before its turn is ended for it.
const MaxConsecutiveRejections = 10

// ErrTurnLimit is returned by Match.Run when the turn cap is reached before
// either side has lost.
var ErrTurnLimit = errors.New("turn limit reached")

// PlayerController is the interface that both human (CLI) and scripted
// (opponent policy, tests) players implement.
type PlayerController interface {
	// ChooseAction is shown a private copy of the state and returns the next
	// action for the active side.
	ChooseAction(ctx context.Context, state *GameState) (Action, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// MatchConfig holds configuration for a Match.
type MatchConfig struct {
	MaxTurns int         // stop after this many turns (0 = 200)
	Logger   *zap.Logger // nil = no-op
}

// Match drives a Store by asking each side's controller for actions until
// the game ends.
type Match struct {
	Store       *Store
	Controllers [2]PlayerController
	logger      *zap.Logger
	maxTurns    int

	mu      sync.Mutex
	pending []log.GameEvent // logged but not yet forwarded
}

// NewMatch binds a controller to each side of store. A nil controller is
// allowed for a side that is driven from outside the Match.
func NewMatch(store *Store, cfg MatchConfig, a, b PlayerController) *Match {
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 200 // safety limit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Match{
		Store:       store,
		Controllers: [2]PlayerController{a, b},
		logger:      logger,
		maxTurns:    maxTurns,
	}
	m.pending = store.Watch(m.enqueue)
	return m
}

func (m *Match) enqueue(e log.GameEvent) {
	m.mu.Lock()
	m.pending = append(m.pending, e)
	m.mu.Unlock()
}

// Run plays turns until the game is over. Returns the winning side.
func (m *Match) Run(ctx context.Context) (Side, error) {
	if err := m.notify(ctx); err != nil {
		return NoSide, err
	}
	for {
		gs := m.Store.State()
		if gs.Over {
			return gs.Winner, nil
		}
		if gs.Turn.Number > m.maxTurns {
			m.logger.Warn("turn limit reached",
				zap.String("game_id", gs.ID.String()),
				zap.Int("max_turns", m.maxTurns),
			)
			return NoSide, fmt.Errorf("%w (%d turns)", ErrTurnLimit, m.maxTurns)
		}
		if err := m.PlayTurn(ctx); err != nil {
			return NoSide, err
		}
	}
}

// PlayTurn asks the active side's controller for actions until its turn
// ends, the game ends or the game is reset. A turn with no moves left is
// ended automatically.
func (m *Match) PlayTurn(ctx context.Context) error {
	start := m.Store.State()
	if start.Over {
		return nil
	}
	side := start.Turn.Active
	ctrl := m.Controllers[side]
	if ctrl == nil {
		return fmt.Errorf("no controller for side %s", side)
	}

	rejections := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		gs := m.Store.State()
		if gs.Over || gs.ID != start.ID || gs.Turn.Active != side {
			return nil
		}
		if gs.Turn.MovesRemaining == 0 {
			if err := m.Store.EndTurn(); err != nil {
				return err
			}
			return m.notify(ctx)
		}

		action, err := ctrl.ChooseAction(ctx, gs)
		if err != nil {
			return err
		}
		if action.Type == ActionDraw {
			action.Side = side
		}
		applyErr := m.Store.Apply(action)
		if err := m.notify(ctx); err != nil {
			return err
		}

		switch {
		case applyErr == nil:
			rejections = 0
		case IsRejection(applyErr):
			rejections++
			if rejections >= MaxConsecutiveRejections {
				m.logger.Warn("forcing end of turn after repeated rejections",
					zap.String("game_id", gs.ID.String()),
					zap.Stringer("side", side),
					zap.Error(applyErr),
				)
				if err := m.Store.EndTurn(); err != nil {
					return err
				}
				return m.notify(ctx)
			}
		default:
			return applyErr
		}
	}
}

// notify forwards every event logged since the last call to both controllers.
func (m *Match) notify(ctx context.Context) error {
	m.mu.Lock()
	events := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, e := range events {
		for _, c := range m.Controllers {
			if c == nil {
				continue
			}
			if err := c.Notify(ctx, e); err != nil {
				return err
			}
		}
	}
	return nil
}
