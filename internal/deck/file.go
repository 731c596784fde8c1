package deck

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// File is the on-disk layout of a deck.
type File struct {
	Cards []*domain.Card `json:"cards"`
}

// Decode reads a deck from r and validates every card.
func Decode(r io.Reader) ([]*domain.Card, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding deck: %w", err)
	}

	for i, card := range f.Cards {
		if card == nil {
			return nil, fmt.Errorf("card %d: %w: null entry", i, domain.ErrValidation)
		}
		if err := card.Validate(); err != nil {
			return nil, fmt.Errorf("card %d (%s): %w", i, card.ID, err)
		}
	}
	return f.Cards, nil
}

// Encode writes cards to w as an indented deck document.
func Encode(w io.Writer, cards []*domain.Card) error {
	if cards == nil {
		cards = []*domain.Card{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(File{Cards: cards}); err != nil {
		return fmt.Errorf("encoding deck: %w", err)
	}
	return nil
}

// ReadFile loads a deck file into a new Store.
func ReadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}
	defer f.Close()

	cards, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewStore(cards...)
}

// WriteFile writes cards to path, replacing it atomically via a temporary
// file in the same directory.
func WriteFile(path string, cards []*domain.Card) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".deck-*.json")
	if err != nil {
		return fmt.Errorf("creating temp deck: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, cards); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp deck: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing deck: %w", err)
	}
	return nil
}
