package game

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrShortDeck is returned when a deck cannot cover both initial hands.
var ErrShortDeck = errors.New("deck too small to deal initial hands")

// Shuffle returns a uniformly shuffled copy of cards (Fisher–Yates).
// The input slice is left untouched.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	shuffled := append([]Card(nil), cards...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// DealInitialHands removes n cards per side from the head of deck, side A
// first. It returns the reduced deck and the two hands. When the deck holds
// fewer than 2n cards nothing is dealt and ErrShortDeck is returned.
func DealInitialHands(deck []Card, n int) (rest []Card, handA, handB []Card, err error) {
	if n < 0 {
		return nil, nil, nil, fmt.Errorf("invalid hand size %d", n)
	}
	if len(deck) < 2*n {
		return nil, nil, nil, fmt.Errorf("%w: have %d, need %d", ErrShortDeck, len(deck), 2*n)
	}
	handA = append(make([]Card, 0, MaxHandSize), deck[:n]...)
	handB = append(make([]Card, 0, MaxHandSize), deck[n:2*n]...)
	rest = append([]Card(nil), deck[2*n:]...)
	return rest, handA, handB, nil
}

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck. Kind and Power are
// optional and default to the catalog definition of the category.
type CardEntry struct {
	Category string `yaml:"category"`
	Kind     string `yaml:"kind,omitempty"`
	Power    *int   `yaml:"power,omitempty"`
	Count    int    `yaml:"count"`
}

// ParseDeckFile reads and decodes a YAML deck file. Decks are validated
// when built, not here.
func ParseDeckFile(path string) (DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeckFile{}, err
	}
	return ParseDeckYAML(data)
}

// ParseDeckYAML decodes a deck file held in memory.
func ParseDeckYAML(data []byte) (DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// LoadDeck returns the named deck from a deck file. An empty name selects the
// first deck in the file.
func LoadDeck(path, name string) ([]Card, error) {
	df, err := ParseDeckFile(path)
	if err != nil {
		return nil, err
	}
	if len(df.Decks) == 0 {
		return nil, fmt.Errorf("no decks in %s", path)
	}
	if name == "" {
		return df.Decks[0].Build()
	}
	for _, d := range df.Decks {
		if d.Name == name {
			cards, err := d.Build()
			if err != nil {
				return nil, fmt.Errorf("deck %q: %w", name, err)
			}
			return cards, nil
		}
	}
	return nil, fmt.Errorf("deck %q not found (have %d decks)", name, len(df.Decks))
}

// Build expands the entry into individual cards and validates it.
func (d DeckEntry) Build() ([]Card, error) {
	var cards []Card
	for _, entry := range d.Cards {
		card, err := entry.card()
		if err != nil {
			return nil, err
		}
		if entry.Count < 0 {
			return nil, fmt.Errorf("%s: negative count %d", entry.Category, entry.Count)
		}
		for i := 0; i < entry.Count; i++ {
			cards = append(cards, card)
		}
	}
	if len(cards) < 2*InitialHandSize {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortDeck, len(cards), 2*InitialHandSize)
	}
	return cards, nil
}

func (e CardEntry) card() (Card, error) {
	base, ok := FindCard(e.Category)
	if !ok {
		return Card{}, fmt.Errorf("unknown card category %q", e.Category)
	}
	if e.Kind != "" {
		kind, err := ParseKind(e.Kind)
		if err != nil {
			return Card{}, err
		}
		base.Kind = kind
	}
	if e.Power != nil {
		base.Power = *e.Power
	}
	if err := base.Validate(); err != nil {
		return Card{}, fmt.Errorf("%s: %w", e.Category, err)
	}
	return base, nil
}
