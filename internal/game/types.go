package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Kind int

const (
	KindAttack Kind = iota
	KindDefense
	KindUtility
	KindPlayer // cosmetic server marker, never drawn into a hand
)

func (k Kind) String() string {
	switch k {
	case KindAttack:
		return "attack"
	case KindDefense:
		return "defense"
	case KindUtility:
		return "utility"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// ParseKind accepts the lowercase kind names, plus the "defence" spelling.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attack":
		return KindAttack, nil
	case "defense", "defence":
		return KindDefense, nil
	case "utility":
		return KindUtility, nil
	case "player":
		return KindPlayer, nil
	default:
		return 0, fmt.Errorf("unknown card kind %q", s)
	}
}

type Category int

const (
	// Attack categories
	CategorySQLInjection Category = iota
	CategoryDDoSAttack
	CategoryRansomware
	CategoryPhishing
	CategoryBruteForce
	CategoryZeroDay
	CategoryWorm
	CategoryRootkit
	CategoryKeylogger
	CategoryPortScanner

	// Defense categories
	CategoryFirewall
	CategoryDataVault
	CategoryHoneypot
	CategoryBackup
	CategoryMultiFactor
	CategoryEncrypted
	CategorySegmentation
	CategoryDecoySystem
	CategoryProxyServer
	CategoryAudit

	// Utility categories
	CategoryVirusScan
	CategoryForceReboot
	CategoryScan
	CategoryOverclock
	CategoryPatch

	categoryCount
)

var categoryLabels = [categoryCount]string{
	CategorySQLInjection: "SQL INJECTION",
	CategoryDDoSAttack:   "DDOS ATTACK",
	CategoryRansomware:   "RANSOMWARE",
	CategoryPhishing:     "PHISHING",
	CategoryBruteForce:   "BRUTE FORCE",
	CategoryZeroDay:      "ZERO-DAY",
	CategoryWorm:         "WORM",
	CategoryRootkit:      "ROOTKIT",
	CategoryKeylogger:    "KEYLOGGER",
	CategoryPortScanner:  "PORT SCANNER",
	CategoryFirewall:     "FIREWALL",
	CategoryDataVault:    "DATA VAULT",
	CategoryHoneypot:     "HONEYPOT",
	CategoryBackup:       "BACKUP",
	CategoryMultiFactor:  "MULTI-FACTOR",
	CategoryEncrypted:    "ENCRYPTED",
	CategorySegmentation: "SEGMENTATION",
	CategoryDecoySystem:  "DECOY SYSTEM",
	CategoryProxyServer:  "PROXY SERVER",
	CategoryAudit:        "AUDIT",
	CategoryVirusScan:    "VIRUS SCAN",
	CategoryForceReboot:  "FORCE REBOOT",
	CategoryScan:         "SCAN",
	CategoryOverclock:    "OVERCLOCK",
	CategoryPatch:        "PATCH",
}

func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return "UNKNOWN"
	}
	return categoryLabels[c]
}

// ParseCategory maps a label such as "ZERO-DAY" back to its Category.
// Matching ignores case and surrounding whitespace.
func ParseCategory(label string) (Category, error) {
	want := strings.ToUpper(strings.TrimSpace(label))
	for i, l := range categoryLabels {
		if l == want {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown card category %q", label)
}

// Side identifies one of the two players. Side A moves first.
type Side int

const (
	NoSide Side = -1
	SideA  Side = 0
	SideB  Side = 1
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return 1 - s
}

// Valid reports whether s names one of the two players.
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "none"
	}
}

// ParseSide accepts "A"/"B" as well as the "player1"/"player2" aliases.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "player1", "1":
		return SideA, nil
	case "b", "player2", "2":
		return SideB, nil
	default:
		return NoSide, fmt.Errorf("unknown side %q", s)
	}
}

// --- Card definition ---

// Card is an immutable value. Two cards with the same kind, category and
// power are interchangeable.
type Card struct {
	Kind     Kind
	Category Category
	Power    int
}

func (c Card) String() string {
	return fmt.Sprintf("%s (%d)", c.Category, c.Power)
}

// Playable reports whether the card can ever sit in a hand.
func (c Card) Playable() bool {
	return c.Kind == KindAttack || c.Kind == KindDefense || c.Kind == KindUtility
}

// Validate reports whether the card may be dealt. A defense must have
// positive power: a placed defense with no health would never be cleared.
func (c Card) Validate() error {
	if !c.Playable() {
		return fmt.Errorf("%s cards cannot be dealt", c.Kind)
	}
	if c.Power < 0 {
		return fmt.Errorf("negative power %d", c.Power)
	}
	if c.Kind == KindDefense && c.Power == 0 {
		return fmt.Errorf("defense cards need positive power")
	}
	return nil
}

// --- Action types ---

type ActionType int

const (
	ActionDraw ActionType = iota
	ActionPlayAttack
	ActionPlayUtility
	ActionPlayDefense
	ActionEndTurn
	ActionReset
)

func (a ActionType) String() string {
	switch a {
	case ActionDraw:
		return "Draw"
	case ActionPlayAttack:
		return "Play Attack"
	case ActionPlayUtility:
		return "Play Utility"
	case ActionPlayDefense:
		return "Play Defense"
	case ActionEndTurn:
		return "End Turn"
	case ActionReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// Action is a tagged request against the Store. Only the fields relevant to
// Type are read.
type Action struct {
	Type       ActionType
	Side       Side // acting side (Draw)
	Card       Card // card from the acting side's hand (Play*)
	TargetSide Side // Attack and Utility
	Slot       int  // server slot 0-3 (Play*)
}

func (a Action) String() string {
	switch a.Type {
	case ActionDraw:
		return fmt.Sprintf("Draw (side %s)", a.Side)
	case ActionPlayAttack, ActionPlayUtility:
		return fmt.Sprintf("%s %s -> side %s server %d", a.Type, a.Card, a.TargetSide, a.Slot+1)
	case ActionPlayDefense:
		return fmt.Sprintf("%s %s -> server %d", a.Type, a.Card, a.Slot+1)
	default:
		return a.Type.String()
	}
}

// DrawAction, AttackAction and friends build well-formed Actions.

func DrawAction(side Side) Action {
	return Action{Type: ActionDraw, Side: side}
}

func AttackAction(card Card, target Side, slot int) Action {
	return Action{Type: ActionPlayAttack, Card: card, TargetSide: target, Slot: slot}
}

func UtilityAction(card Card, target Side, slot int) Action {
	return Action{Type: ActionPlayUtility, Card: card, TargetSide: target, Slot: slot}
}

func DefenseAction(card Card, slot int) Action {
	return Action{Type: ActionPlayDefense, Card: card, Slot: slot}
}

func EndTurnAction() Action {
	return Action{Type: ActionEndTurn}
}

func ResetAction() Action {
	return Action{Type: ActionReset}
}
