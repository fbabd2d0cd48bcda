// Package opponent implements the scripted side of a game: a fixed priority
// cascade of tactics, with a seeded random source for target selection.
package opponent

import (
	"math/rand"
	"time"

	"github.com/peterkuimelis/breach/internal/game"
)

// Tactic names one step of the decision cascade.
type Tactic int

const (
	TacticFortify Tactic = iota
	TacticHeal
	TacticStrike
	TacticDraw
	TacticPass
)

func (t Tactic) String() string {
	switch t {
	case TacticFortify:
		return "Fortify"
	case TacticHeal:
		return "Heal"
	case TacticStrike:
		return "Strike"
	case TacticDraw:
		return "Draw"
	case TacticPass:
		return "Pass"
	default:
		return "Unknown"
	}
}

// Decision is what Evaluate returns.
type Decision struct {
	Tactic Tactic
	Action game.Action
}

// Rule is a guard/action pair. Try returns ok=false when its guard does not
// hold for side in gs.
type Rule struct {
	Tactic Tactic
	Try    func(gs *game.GameState, side game.Side, rng *rand.Rand) (game.Action, bool)
}

// DefaultRules is the cascade evaluated top-down; the first rule whose guard
// holds wins. Pass always holds.
var DefaultRules = []Rule{
	{TacticFortify, fortify},
	{TacticHeal, heal},
	{TacticStrike, strike},
	{TacticDraw, draw},
	{TacticPass, pass},
}

// Policy decides one action at a time for whichever side is active.
type Policy struct {
	rng   *rand.Rand
	rules []Rule
}

// NewPolicy creates a Policy with the default cascade. A zero seed uses the
// current time.
func NewPolicy(seed int64) *Policy {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewPolicyWithRand(rand.New(rand.NewSource(seed)))
}

// NewPolicyWithRand creates a Policy drawing strike targets from rng.
func NewPolicyWithRand(rng *rand.Rand) *Policy {
	return &Policy{rng: rng, rules: DefaultRules}
}

// Decide returns the next action for the active side of gs. gs is only read.
func (p *Policy) Decide(gs *game.GameState) game.Action {
	return p.Evaluate(gs).Action
}

// Evaluate is Decide plus the tactic that produced the action.
func (p *Policy) Evaluate(gs *game.GameState) Decision {
	side := gs.Turn.Active
	for _, r := range p.rules {
		if a, ok := r.Try(gs, side, p.rng); ok {
			return Decision{Tactic: r.Tactic, Action: a}
		}
	}
	return Decision{Tactic: TacticPass, Action: game.EndTurnAction()}
}

// fortify places the first defense card on the lowest empty slot over a
// live server.
func fortify(gs *game.GameState, side game.Side, _ *rand.Rand) (game.Action, bool) {
	me := gs.Board(side)
	card, ok := me.FirstOfKind(game.KindDefense)
	if !ok {
		return game.Action{}, false
	}
	slot := me.FreeDefenseSlot()
	if slot < 0 {
		return game.Action{}, false
	}
	return game.DefenseAction(card, slot), true
}

// heal repairs the weakest server, but only if it is damaged and alive.
func heal(gs *game.GameState, side game.Side, _ *rand.Rand) (game.Action, bool) {
	me := gs.Board(side)
	card, ok := me.FirstOfKind(game.KindUtility)
	if !ok {
		return game.Action{}, false
	}
	slot := me.WeakestSlot()
	if spv := me.SPV[slot]; spv <= 0 || spv >= game.MaxSPV {
		return game.Action{}, false
	}
	return game.UtilityAction(card, side, slot), true
}

// strike attacks a random live enemy server, or any slot once all are down.
func strike(gs *game.GameState, side game.Side, rng *rand.Rand) (game.Action, bool) {
	card, ok := gs.Board(side).FirstOfKind(game.KindAttack)
	if !ok {
		return game.Action{}, false
	}
	enemy := side.Opponent()
	var slot int
	if live := gs.Board(enemy).LiveSlots(); len(live) > 0 {
		slot = live[rng.Intn(len(live))]
	} else {
		slot = rng.Intn(game.ServerSlots)
	}
	return game.AttackAction(card, enemy, slot), true
}

func draw(gs *game.GameState, side game.Side, _ *rand.Rand) (game.Action, bool) {
	if gs.Board(side).HandCount() >= game.MaxHandSize || gs.DeckCount() == 0 {
		return game.Action{}, false
	}
	return game.DrawAction(side), true
}

func pass(*game.GameState, game.Side, *rand.Rand) (game.Action, bool) {
	return game.EndTurnAction(), true
}
