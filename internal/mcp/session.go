package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/breach/internal/config"
	"github.com/peterkuimelis/breach/internal/game"
	"github.com/peterkuimelis/breach/internal/log"
	"github.com/peterkuimelis/breach/internal/opponent"
	"github.com/peterkuimelis/breach/internal/view"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionGameOver     DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type  DecisionType    `json:"type"`
	State *view.StateView `json:"state"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []view.EventView `json:"events"`
	State    *view.StateView  `json:"state,omitempty"`
	Pending  DecisionType     `json:"pending,omitempty"`
	Rejected string           `json:"rejected,omitempty"`
	GameOver bool             `json:"game_over"`
	Winner   string           `json:"winner,omitempty"`
	Result   string           `json:"result,omitempty"`
}

// GameSession holds the state of a single MCP game session: the MCP client
// plays one side, the scripted opponent the other.
type GameSession struct {
	store  *game.Store
	match  *game.Match
	ctrl   *MCPController
	human  game.Side
	logger *zap.Logger

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision
	restartCh      chan struct{}
	cancel         context.CancelFunc

	mu       sync.Mutex
	events   []view.EventView
	gameOver bool
	winner   string
	result   string
}

// NewGameSession deals a game and starts the match loop in a goroutine. The
// opponent plays without pacing delay so tool calls return promptly.
func NewGameSession(cfg *config.Config, logger *zap.Logger) (*GameSession, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, _, err := cfg.NewStore(logger)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	oppSide := cfg.OpponentSide()
	sess := &GameSession{
		store:     store,
		human:     oppSide.Opponent(),
		logger:    logger,
		pendingCh: make(chan *PendingDecision),
		restartCh: make(chan struct{}),
	}
	sess.ctrl = NewMCPController(sess.human, sess)
	npc := opponent.NewController(opponent.NewPolicy(cfg.Opponent.Seed), 0, logger)

	var ctrls [2]game.PlayerController
	ctrls[sess.human] = sess.ctrl
	ctrls[oppSide] = npc
	sess.match = game.NewMatch(store, game.MatchConfig{MaxTurns: cfg.Game.MaxTurns, Logger: logger}, ctrls[0], ctrls[1])

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	go sess.run(ctx)

	logger.Info("mcp session started",
		zap.Stringer("human_side", sess.human),
		zap.Stringer("opponent_side", oppSide),
	)
	return sess, nil
}

// run drives matches until the session is closed. After a game ends it
// waits for reset_game before playing the next one.
func (s *GameSession) run(ctx context.Context) {
	for {
		winner, err := s.match.Run(ctx)
		if ctx.Err() != nil {
			return
		}

		state := s.store.State()
		result := state.Result
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
			s.logger.Warn("match stopped", zap.Error(err))
		}
		s.mu.Lock()
		s.gameOver = true
		s.winner = ""
		if winner.Valid() {
			s.winner = view.PlayerLabel(winner, s.human)
		}
		s.result = result
		s.mu.Unlock()

		select {
		case s.pendingCh <- &PendingDecision{Type: DecisionGameOver, State: view.BuildStateView(state, s.human)}:
		case <-ctx.Done():
			return
		}
		select {
		case <-s.restartCh:
		case <-ctx.Done():
			return
		}
	}
}

// Close stops the match goroutine.
func (s *GameSession) Close() {
	s.cancel()
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev view.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []view.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// submit hands the human side's action to the match and waits for the next
// decision.
func (s *GameSession) submit(a game.Action) (*ToolResponse, error) {
	if s.currentPending == nil || s.currentPending.Type != DecisionChooseAction {
		return nil, fmt.Errorf("no action is pending")
	}
	s.ctrl.responseCh <- a
	return s.waitForPending()
}

// restart deals a new game. Mid-game the reset goes through the match like
// any other action; after game over the match loop is woken up instead.
func (s *GameSession) restart() (*ToolResponse, error) {
	s.mu.Lock()
	over := s.gameOver
	s.mu.Unlock()
	if !over {
		return s.submit(game.ResetAction())
	}

	s.store.ResetGame()
	s.mu.Lock()
	s.gameOver = false
	s.winner = ""
	s.result = ""
	s.mu.Unlock()
	s.restartCh <- struct{}{}
	return s.waitForPending()
}

// waitForPending blocks until the next decision arrives from the game engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending() (*ToolResponse, error) {
	pending := <-s.pendingCh
	s.currentPending = pending

	resp := &ToolResponse{
		Events:  s.drainEvents(),
		State:   pending.State,
		Pending: pending.Type,
	}
	resp.Rejected = s.lastRejection(resp.Events)

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
	}
	return resp, nil
}

// lastRejection returns the reason of the human side's most recent rejected
// action among events, if any.
func (s *GameSession) lastRejection(events []view.EventView) string {
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if e.Type == log.EventRejected.String() && e.Player == int(s.human) {
			return e.Details
		}
	}
	return ""
}

// stateResponse reports the current state without advancing the game.
func (s *GameSession) stateResponse() *ToolResponse {
	s.mu.Lock()
	resp := &ToolResponse{
		Events:   s.events,
		GameOver: s.gameOver,
		Winner:   s.winner,
		Result:   s.result,
	}
	s.events = nil
	s.mu.Unlock()

	resp.State = view.BuildStateView(s.store.State(), s.human)
	if s.currentPending != nil {
		resp.Pending = s.currentPending.Type
	}
	return resp
}

// handCard resolves a hand index of the human side.
func (s *GameSession) handCard(index int) (game.Card, error) {
	return view.HandCard(s.store.State(), s.human, index)
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp any) string {
	if r, ok := resp.(*ToolResponse); ok && r.Events == nil {
		r.Events = []view.EventView{}
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
