package opponent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/breach/internal/game"
	"github.com/peterkuimelis/breach/internal/log"
)

// Controller implements game.PlayerController by consulting a Policy, waiting
// delay before each move.
type Controller struct {
	policy *Policy
	delay  time.Duration
	logger *zap.Logger
}

// NewController creates a Controller. A zero delay plays instantly.
func NewController(policy *Policy, delay time.Duration, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{policy: policy, delay: delay, logger: logger}
}

func (c *Controller) ChooseAction(ctx context.Context, state *game.GameState) (game.Action, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return game.Action{}, ctx.Err()
		case <-timer.C:
		}
	}

	d := c.policy.Evaluate(state)
	c.logger.Debug("opponent decision",
		zap.Stringer("side", state.Turn.Active),
		zap.Int("turn", state.Turn.Number),
		zap.Stringer("tactic", d.Tactic),
		zap.Stringer("action", d.Action),
	)
	return d.Action, nil
}

func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
