package game

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	MaxSPV          = 5
	ServerSlots     = 4
	InitialHandSize = 5
	MaxHandSize     = 7
	MovesPerTurn    = 3
)

// DefenseSlot holds at most one defense card and its own health pool.
type DefenseSlot struct {
	Occupied bool
	Card     Card
	Health   int
}

// Board represents one side's entire state.
type Board struct {
	Hand    []Card
	SPV     [ServerSlots]int
	Defense [ServerSlots]DefenseSlot
	Score   int // server damage this side has inflicted
}

func newBoard(hand []Card) *Board {
	b := &Board{Hand: hand}
	for i := range b.SPV {
		b.SPV[i] = MaxSPV
	}
	return b
}

// HandCount returns the number of cards in hand.
func (b *Board) HandCount() int {
	return len(b.Hand)
}

// HandIndex returns the position of the first card equal to c, or -1.
func (b *Board) HandIndex(c Card) int {
	for i, h := range b.Hand {
		if h == c {
			return i
		}
	}
	return -1
}

// FirstOfKind returns the first card of the given kind in hand.
func (b *Board) FirstOfKind(k Kind) (Card, bool) {
	for _, c := range b.Hand {
		if c.Kind == k {
			return c, true
		}
	}
	return Card{}, false
}

// removeFromHand removes the card at index i.
func (b *Board) removeFromHand(i int) {
	b.Hand = append(b.Hand[:i], b.Hand[i+1:]...)
}

// Destroyed reports whether the server in slot has SPV 0.
func (b *Board) Destroyed(slot int) bool {
	return b.SPV[slot] == 0
}

// AllDestroyed reports whether every server on the board is destroyed.
func (b *Board) AllDestroyed() bool {
	for _, spv := range b.SPV {
		if spv > 0 {
			return false
		}
	}
	return true
}

// LiveSlots returns the indices of servers that are not destroyed.
func (b *Board) LiveSlots() []int {
	var slots []int
	for i, spv := range b.SPV {
		if spv > 0 {
			slots = append(slots, i)
		}
	}
	return slots
}

// FreeDefenseSlot returns the lowest empty defense slot over a live server, or -1.
func (b *Board) FreeDefenseSlot() int {
	for i, d := range b.Defense {
		if !d.Occupied && b.SPV[i] > 0 {
			return i
		}
	}
	return -1
}

// WeakestSlot returns the slot with the lowest SPV; ties go to the lowest index.
func (b *Board) WeakestSlot() int {
	weakest := 0
	for i := 1; i < ServerSlots; i++ {
		if b.SPV[i] < b.SPV[weakest] {
			weakest = i
		}
	}
	return weakest
}

func (b *Board) clone() *Board {
	c := *b
	c.Hand = append([]Card(nil), b.Hand...)
	return &c
}

// TurnState tracks whose turn it is and how many moves they have left.
type TurnState struct {
	Active         Side
	Number         int // 1-based turn counter
	MovesRemaining int
}

// --- GameState ---

// GameState holds the complete state of a game.
type GameState struct {
	ID     uuid.UUID
	Deck   []Card // head of the deck is index 0
	Boards [2]*Board
	Turn   TurnState

	// Game result
	Over   bool
	Winner Side // NoSide until Over
	Result string
}

// NewGameState deals the initial hands from an already shuffled deck.
func NewGameState(shuffled []Card) (*GameState, error) {
	rest, handA, handB, err := DealInitialHands(shuffled, InitialHandSize)
	if err != nil {
		return nil, err
	}
	gs := &GameState{
		ID:     uuid.New(),
		Deck:   rest,
		Boards: [2]*Board{newBoard(handA), newBoard(handB)},
		Turn: TurnState{
			Active:         SideA,
			Number:         1,
			MovesRemaining: MovesPerTurn,
		},
		Winner: NoSide,
	}
	gs.validate()
	return gs, nil
}

// Board returns the board of the given side.
func (gs *GameState) Board(side Side) *Board {
	invariant(side.Valid(), fmt.Sprintf("no board for side %d", side))
	return gs.Boards[side]
}

// ActiveBoard returns the board of the side whose turn it is.
func (gs *GameState) ActiveBoard() *Board {
	return gs.Board(gs.Turn.Active)
}

// OpponentBoard returns the board of the side waiting for its turn.
func (gs *GameState) OpponentBoard() *Board {
	return gs.Board(gs.Turn.Active.Opponent())
}

// DeckCount returns the number of cards remaining in the deck.
func (gs *GameState) DeckCount() int {
	return len(gs.Deck)
}

// Clone returns a deep copy that shares no mutable data with gs.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.Deck = append([]Card(nil), gs.Deck...)
	for i, b := range gs.Boards {
		c.Boards[i] = b.clone()
	}
	return &c
}

// CheckWinCondition ends the game when a side has lost every server.
// Returns true if the game is over.
func (gs *GameState) CheckWinCondition() bool {
	if gs.Over {
		return true
	}
	for _, side := range []Side{SideA, SideB} {
		if gs.Boards[side].AllDestroyed() {
			gs.Over = true
			gs.Winner = side.Opponent()
			gs.Result = fmt.Sprintf("Player %d wins: all of Player %d's servers destroyed", gs.Winner+1, side+1)
			return true
		}
	}
	return false
}

// validate panics when the state breaks a structural invariant. The public
// operation set can never trigger it.
func (gs *GameState) validate() {
	invariant(gs.Turn.Active.Valid(), "active side out of range")
	invariant(gs.Turn.MovesRemaining >= 0 && gs.Turn.MovesRemaining <= MovesPerTurn, "moves remaining out of range")
	for side, b := range gs.Boards {
		invariant(b != nil, fmt.Sprintf("missing board for side %d", side))
		invariant(len(b.Hand) <= MaxHandSize, fmt.Sprintf("side %d hand exceeds %d cards", side, MaxHandSize))
		for i := 0; i < ServerSlots; i++ {
			invariant(b.SPV[i] >= 0 && b.SPV[i] <= MaxSPV, fmt.Sprintf("side %d server %d SPV %d out of range", side, i, b.SPV[i]))
			d := b.Defense[i]
			invariant(!d.Occupied || d.Card.Kind == KindDefense, fmt.Sprintf("side %d slot %d holds a non-defense card", side, i))
			invariant(d.Occupied || d.Health == 0, fmt.Sprintf("side %d slot %d has health without a card", side, i))
		}
	}
}
