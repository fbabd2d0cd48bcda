package mcp

import (
	"context"

	"github.com/peterkuimelis/breach/internal/game"
	"github.com/peterkuimelis/breach/internal/log"
	"github.com/peterkuimelis/breach/internal/view"
)

// MCPController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	side       game.Side
	session    *GameSession
	responseCh chan game.Action
}

// NewMCPController creates a controller for the given side.
func NewMCPController(side game.Side, session *GameSession) *MCPController {
	return &MCPController{
		side:       side,
		session:    session,
		responseCh: make(chan game.Action),
	}
}

// ChooseAction implements game.PlayerController.
func (c *MCPController) ChooseAction(ctx context.Context, state *game.GameState) (game.Action, error) {
	pending := &PendingDecision{
		Type:  DecisionChooseAction,
		State: view.BuildStateView(state, c.side),
	}
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	select {
	case a := <-c.responseCh:
		return a, nil
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}
}

// Notify implements game.PlayerController.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(view.NewEventView(event))
	return nil
}
