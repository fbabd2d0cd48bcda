// Package view projects game state into JSON-friendly structures for one
// player's perspective, and renders them as text.
package view

import "github.com/peterkuimelis/breach/internal/game"

// StateView is the game state from one player's perspective.
type StateView struct {
	GameID         string      `json:"game_id"`
	You            PlayerView  `json:"you"`
	Opponent       PlayerView  `json:"opponent"`
	Turn           int         `json:"turn"`
	ActiveSide     string      `json:"active_side"`
	MovesRemaining int         `json:"moves_remaining"`
	IsYourTurn     bool        `json:"is_your_turn"`
	DeckCount      int         `json:"deck_count"`
	GameOver       bool        `json:"game_over"`
	Winner         string      `json:"winner,omitempty"`
	Result         string      `json:"result,omitempty"`
	Log            []EventView `json:"log,omitempty"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	Side      string                       `json:"side"`
	Label     string                       `json:"label"`
	HandCount int                          `json:"hand_count"`
	Hand      []CardView                   `json:"hand,omitempty"` // only for "you"
	Servers   [game.ServerSlots]ServerView `json:"servers"`
	Score     int                          `json:"score"`
}

// ServerView describes one server slot and the defense card over it.
type ServerView struct {
	Slot          int       `json:"slot"`
	SPV           int       `json:"spv"`
	Destroyed     bool      `json:"destroyed,omitempty"`
	Marker        string    `json:"marker"`
	Defense       *CardView `json:"defense,omitempty"`
	DefenseHealth int       `json:"defense_health,omitempty"`
}

// CardView describes a card. Index is its position in hand, or -1.
type CardView struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Power    int    `json:"power"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Slot    int    `json:"slot"`
	Details string `json:"details"`
}
