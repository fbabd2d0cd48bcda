package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/breach/internal/game"
	"github.com/peterkuimelis/breach/internal/log"
)

// OpponentSide returns the side played by the scripted opponent.
func (c *Config) OpponentSide() game.Side {
	side, err := game.ParseSide(c.Opponent.Side)
	if err != nil {
		// Validate only lets A or B through.
		panic(err)
	}
	return side
}

// MasterDeck returns the configured deck file's cards, or nil for the
// built-in master set.
func (c *Config) MasterDeck() ([]game.Card, error) {
	if c.Game.DeckFile == "" {
		return nil, nil
	}
	cards, err := game.LoadDeck(c.Game.DeckFile, c.Game.DeckName)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	return cards, nil
}

// NewStore builds a Store and its bounded action log from the game and
// logging sections.
func (c *Config) NewStore(logger *zap.Logger) (*game.Store, *log.MemoryLogger, error) {
	deck, err := c.MasterDeck()
	if err != nil {
		return nil, nil, err
	}
	events := log.NewBoundedLogger(c.Logging.ActionLogSize)
	store, err := game.NewStore(game.StoreConfig{
		MasterDeck: deck,
		Seed:       c.Game.Seed,
		Logger:     logger,
		Events:     events,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, events, nil
}
