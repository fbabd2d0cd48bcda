package game

import "fmt"

// CardRegistry maps category labels to the catalog definition of that card.
var CardRegistry = func() map[string]func() Card {
	reg := make(map[string]func() Card, len(catalog))
	for _, c := range catalog {
		card := c
		reg[card.Category.String()] = func() Card { return card }
	}
	return reg
}()

// LookupCard looks up a card by category label and returns its catalog definition.
// Panics if the card is not found.
func LookupCard(label string) Card {
	ctor, ok := CardRegistry[label]
	if !ok {
		panic(fmt.Sprintf("card not found in registry: %q", label))
	}
	return ctor()
}

// FindCard is the non-panicking form of LookupCard. The label match is
// case-insensitive.
func FindCard(label string) (Card, bool) {
	cat, err := ParseCategory(label)
	if err != nil {
		return Card{}, false
	}
	ctor, ok := CardRegistry[cat.String()]
	if !ok {
		return Card{}, false
	}
	return ctor(), true
}
