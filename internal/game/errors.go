package game

import "errors"

// Rejections. A Store operation returning one of these left the game state
// exactly as it was and consumed no move.
var (
	ErrNotYourTurn     = errors.New("not this side's turn")
	ErrNoMovesLeft     = errors.New("no moves remaining this turn")
	ErrGameOver        = errors.New("game is over")
	ErrDeckEmpty       = errors.New("deck is empty")
	ErrHandFull        = errors.New("hand is full")
	ErrCardNotInHand   = errors.New("card is not in hand")
	ErrWrongCardKind   = errors.New("card kind does not match the action")
	ErrInvalidTarget   = errors.New("invalid target side")
	ErrInvalidSlot     = errors.New("server slot out of range")
	ErrSlotOccupied    = errors.New("defense slot is already occupied")
	ErrServerDestroyed = errors.New("server is destroyed")
	ErrUnknownAction   = errors.New("unknown action type")
)

var rejections = []error{
	ErrNotYourTurn, ErrNoMovesLeft, ErrGameOver, ErrDeckEmpty, ErrHandFull,
	ErrCardNotInHand, ErrWrongCardKind, ErrInvalidTarget, ErrInvalidSlot,
	ErrSlotOccupied, ErrServerDestroyed, ErrUnknownAction,
}

// IsRejection reports whether err is a precondition rejection.
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}

// InvalidStateError marks a broken invariant. It is only ever panicked with.
type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func invariant(ok bool, msg string) {
	if !ok {
		panic(InvalidStateError(msg))
	}
}
