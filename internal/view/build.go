package view

import (
	"fmt"

	"github.com/peterkuimelis/breach/internal/game"
	"github.com/peterkuimelis/breach/internal/log"
)

// PlayerLabel names a side for display, marking which one is the viewer.
func PlayerLabel(side, you game.Side) string {
	name := log.PlayerName(int(side))
	if side == you {
		return name + " (You)"
	}
	return name + " (NPC)"
}

// BuildStateView creates a StateView from the perspective of the given side.
// The opponent's hand is reduced to a count.
func BuildStateView(state *game.GameState, you game.Side) *StateView {
	opp := you.Opponent()
	sv := &StateView{
		GameID:         state.ID.String(),
		Turn:           state.Turn.Number,
		ActiveSide:     state.Turn.Active.String(),
		MovesRemaining: state.Turn.MovesRemaining,
		IsYourTurn:     state.Turn.Active == you,
		DeckCount:      state.DeckCount(),
		GameOver:       state.Over,
		Result:         state.Result,
	}
	if state.Over && state.Winner.Valid() {
		sv.Winner = PlayerLabel(state.Winner, you)
	}

	sv.You = buildPlayerView(state, you, you)
	for i, c := range state.Board(you).Hand {
		sv.You.Hand = append(sv.You.Hand, NewCardView(c, i))
	}
	sv.Opponent = buildPlayerView(state, opp, you)
	return sv
}

func buildPlayerView(state *game.GameState, side, you game.Side) PlayerView {
	b := state.Board(side)
	pv := PlayerView{
		Side:      side.String(),
		Label:     PlayerLabel(side, you),
		HandCount: b.HandCount(),
		Score:     b.Score,
	}
	for i := 0; i < game.ServerSlots; i++ {
		pv.Servers[i] = ServerSlotView(b, side, i)
	}
	return pv
}

// ServerSlotView creates a ServerView for one slot of a board.
func ServerSlotView(b *game.Board, side game.Side, slot int) ServerView {
	sv := ServerView{
		Slot:      slot,
		SPV:       b.SPV[slot],
		Destroyed: b.Destroyed(slot),
		Marker:    game.ServerMarker(side, b.SPV[slot]).Category.String(),
	}
	if d := b.Defense[slot]; d.Occupied {
		cv := NewCardView(d.Card, -1)
		sv.Defense = &cv
		sv.DefenseHealth = d.Health
	}
	return sv
}

// NewCardView converts a card; index is its hand position or -1.
func NewCardView(c game.Card, index int) CardView {
	return CardView{
		Index:    index,
		Kind:     c.Kind.String(),
		Category: c.Category.String(),
		Power:    c.Power,
	}
}

// CatalogView lists one entry per card category.
func CatalogView() []CardView {
	cards := game.Catalog()
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = NewCardView(c, -1)
	}
	return out
}

// NewEventView converts a logged event.
func NewEventView(e log.GameEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Slot:    e.Slot,
		Details: e.Details,
	}
}

// EventViews converts events, keeping at most the newest max (0 = all).
func EventViews(events []log.GameEvent, max int) []EventView {
	if max > 0 && len(events) > max {
		events = events[len(events)-max:]
	}
	out := make([]EventView, len(events))
	for i, e := range events {
		out[i] = NewEventView(e)
	}
	return out
}

// HandCard resolves a 0-based hand index for side.
func HandCard(state *game.GameState, side game.Side, index int) (game.Card, error) {
	hand := state.Board(side).Hand
	if index < 0 || index >= len(hand) {
		return game.Card{}, fmt.Errorf("%w: index %d (hand has %d cards)", game.ErrCardNotInHand, index, len(hand))
	}
	return hand[index], nil
}
