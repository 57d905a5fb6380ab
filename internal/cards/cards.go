package cards

import (
	"fmt"
	"strings"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// Card is a 0..51 id, where:
// - rank = (id % 13) + 2  (2..14)
// - suit = (id / 13)      (0..3)
type Card uint8

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

func (c Card) Valid() bool {
	return c < DeckSize
}

func (c Card) Rank() uint8 { // 2..14
	return uint8(c%13) + 2
}

func (c Card) Suit() uint8 { // 0..3
	return uint8(c / 13)
}

func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()-2], suitChars[c.Suit()]})
}

// Parse reads the two-character form produced by String ("As", "Td", "2c").
func Parse(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("cards: invalid card %q", s)
	}
	r := strings.IndexByte(rankChars, strings.ToUpper(s[:1])[0])
	st := strings.IndexByte(suitChars, strings.ToLower(s[1:])[0])
	if r < 0 || st < 0 {
		return 0, fmt.Errorf("cards: invalid card %q", s)
	}
	return Card(st*13 + r), nil
}

// MarshalJSON encodes the card in its two-character form so hands stay
// readable in stored state.
func (c Card) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cards: invalid card id %d", uint8(c))
	}
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Card) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("cards: expected JSON string, got %s", s)
	}
	out, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// ParseAll parses every card in ss, failing on the first invalid one.
func ParseAll(ss []string) ([]Card, error) {
	out := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
