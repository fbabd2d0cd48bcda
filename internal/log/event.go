package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewGame EventType = iota
	EventShuffle
	EventDeal
	EventNewTurn
	EventDraw
	EventAttack
	EventDirectHit
	EventDefenseAbsorb
	EventDefenseDestroyed
	EventServerDamage
	EventServerDestroyed
	EventHeal
	EventPlaceDefense
	EventEndTurn
	EventWin
	EventReset
	EventRejected
)

func (e EventType) String() string {
	switch e {
	case EventNewGame:
		return "NewGame"
	case EventShuffle:
		return "Shuffle"
	case EventDeal:
		return "Deal"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventAttack:
		return "Attack"
	case EventDirectHit:
		return "DirectHit"
	case EventDefenseAbsorb:
		return "DefenseAbsorb"
	case EventDefenseDestroyed:
		return "DefenseDestroyed"
	case EventServerDamage:
		return "ServerDamage"
	case EventServerDestroyed:
		return "ServerDestroyed"
	case EventHeal:
		return "Heal"
	case EventPlaceDefense:
		return "PlaceDefense"
	case EventEndTurn:
		return "EndTurn"
	case EventWin:
		return "Win"
	case EventReset:
		return "Reset"
	case EventRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Player  int       // acting side (0 or 1)
	Type    EventType // event type
	Card    string    // card label (if applicable)
	Slot    int       // server slot (0-3), -1 when not applicable
	Details string    // human-readable detail string
}
