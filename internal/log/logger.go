package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
	max    int // 0 = unbounded
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

// NewBoundedLogger keeps only the newest max events. Sequence numbers keep
// counting across evictions, so Seq still identifies an event uniquely.
func NewBoundedLogger(max int) *MemoryLogger {
	if max < 0 {
		max = 0
	}
	return &MemoryLogger{max: max}
}

// Log appends event. An event that already carries a sequence number ahead
// of the logger's keeps it; otherwise the next number is assigned.
func (l *MemoryLogger) Log(event GameEvent) {
	if event.Seq > l.seq {
		l.seq = event.Seq
	} else {
		l.seq++
		event.Seq = l.seq
	}
	l.events = append(l.events, event)
	if l.max > 0 && len(l.events) > l.max {
		l.events = append([]GameEvent(nil), l.events[len(l.events)-l.max:]...)
	}
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// EventsSince returns the retained events with a sequence number greater than seq.
func (l *MemoryLogger) EventsSince(seq int) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Seq > seq {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

// TextLogger retains nothing; Events always returns nil.
type TextLogger struct {
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	fmt.Fprintln(l.w, FormatEvent(event))
}

func (l *TextLogger) Events() []GameEvent {
	return nil
}

// --- Formatting ---

// PlayerName returns "Player 1" or "Player 2" for display.
func PlayerName(p int) string {
	return fmt.Sprintf("Player %d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-3d %-16s| %s", e.Turn, e.Type, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewGameEvent(turn int, gameID string, deckSize int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Slot:    -1,
		Type:    EventNewGame,
		Details: fmt.Sprintf("New game %s (%d cards in deck)", gameID, deckSize),
	}
}

func NewShuffleEvent(turn int, deckSize int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Slot:    -1,
		Type:    EventShuffle,
		Details: fmt.Sprintf("Deck shuffled (%d cards)", deckSize),
	}
}

func NewDealEvent(turn int, player int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    -1,
		Type:    EventDeal,
		Details: fmt.Sprintf("%s is dealt %d cards", PlayerName(player), count),
	}
}

func NewTurnEvent(turn int, player int, moves int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    -1,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s, %d moves) ===", turn, PlayerName(player), moves),
	}
}

func NewDrawEvent(turn int, player int, card string, deckLeft int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    -1,
		Type:    EventDraw,
		Card:    card,
		Details: fmt.Sprintf("%s draws %s (%d left in deck)", PlayerName(player), card, deckLeft),
	}
}

func NewAttackEvent(turn int, player int, card string, power int, target int, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    slot,
		Type:    EventAttack,
		Card:    card,
		Details: fmt.Sprintf("%s plays %s (%d) against %s Server %d", PlayerName(player), card, power, PlayerName(target), slot+1),
	}
}

func NewDirectHitEvent(turn int, player int, card string, target int, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    slot,
		Type:    EventDirectHit,
		Card:    card,
		Details: fmt.Sprintf("Direct hit to %s Server %d", PlayerName(target), slot+1),
	}
}

func NewDefenseAbsorbEvent(turn int, player int, defense string, absorbed, remaining int, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    slot,
		Type:    EventDefenseAbsorb,
		Card:    defense,
		Details: fmt.Sprintf("%s absorbs %d damage, defense reduced to %d", defense, absorbed, remaining),
	}
}

func NewDefenseDestroyedEvent(turn int, player int, defense string, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    slot,
		Type:    EventDefenseDestroyed,
		Card:    defense,
		Details: fmt.Sprintf("%s on %s Server %d is destroyed", defense, PlayerName(player), slot+1),
	}
}

func NewServerDamageEvent(turn int, player int, slot int, oldSPV, newSPV int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    slot,
		Type:    EventServerDamage,
		Details: fmt.Sprintf("%s Server %d SPV: %d → %d", PlayerName(player), slot+1, oldSPV, newSPV),
	}
}

func NewServerDestroyedEvent(turn int, player int, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    slot,
		Type:    EventServerDestroyed,
		Details: fmt.Sprintf("%s Server %d is destroyed", PlayerName(player), slot+1),
	}
}

func NewHealEvent(turn int, player int, card string, power int, slot int, restored int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    slot,
		Type:    EventHeal,
		Card:    card,
		Details: fmt.Sprintf("%s plays %s (%d) to heal Server %d by %d SPV", PlayerName(player), card, power, slot+1, restored),
	}
}

func NewPlaceDefenseEvent(turn int, player int, card string, power int, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    slot,
		Type:    EventPlaceDefense,
		Card:    card,
		Details: fmt.Sprintf("%s places %s (%d defense points) on Server %d", PlayerName(player), card, power, slot+1),
	}
}

func NewEndTurnEvent(turn int, player int, unused int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    -1,
		Type:    EventEndTurn,
		Details: fmt.Sprintf("%s ends the turn (%d moves unused)", PlayerName(player), unused),
	}
}

func NewWinEvent(turn int, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Slot:    -1,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", PlayerName(winner), reason),
	}
}

func NewResetEvent(gameID string) GameEvent {
	return GameEvent{
		Slot:    -1,
		Type:    EventReset,
		Details: fmt.Sprintf("Game %s abandoned, dealing a new game", gameID),
	}
}

func NewRejectedEvent(turn int, player int, action string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Slot:    -1,
		Type:    EventRejected,
		Details: fmt.Sprintf("%s tried to %s - action failed (%s)", PlayerName(player), action, reason),
	}
}
