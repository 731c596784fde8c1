package deck

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// ErrDuplicateCard is returned when a card with the same ID is already stored.
var ErrDuplicateCard = errors.New("card already exists")

// Store is a concurrency-safe in-memory card collection that preserves
// insertion order. It hands out copies, so callers may mutate what they get
// back and write it with Update.
type Store struct {
	mu    sync.RWMutex
	cards map[uuid.UUID]*domain.Card
	order []uuid.UUID
}

// NewStore creates a store holding the given cards.
func NewStore(cards ...*domain.Card) (*Store, error) {
	s := &Store{
		cards: make(map[uuid.UUID]*domain.Card, len(cards)),
		order: make([]uuid.UUID, 0, len(cards)),
	}
	for _, card := range cards {
		if err := s.add(card); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add validates and stores a new card.
func (s *Store) Add(ctx context.Context, card *domain.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(card)
}

func (s *Store) add(card *domain.Card) error {
	if card == nil {
		return fmt.Errorf("%w: nil card", domain.ErrValidation)
	}
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if _, exists := s.cards[card.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCard, card.ID)
	}

	s.cards[card.ID] = card.Clone()
	s.order = append(s.order, card.ID)
	return nil
}

// GetByID returns a copy of the card with the given ID.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCardNotFound, id)
	}
	return card.Clone(), nil
}

// List returns copies of every card in insertion order.
func (s *Store) List(ctx context.Context) ([]*domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]*domain.Card, 0, len(s.order))
	for _, id := range s.order {
		cards = append(cards, s.cards[id].Clone())
	}
	return cards, nil
}

// Update replaces a stored card with a copy of card.
func (s *Store) Update(ctx context.Context, card *domain.Card) error {
	return s.UpdateAll(ctx, []*domain.Card{card})
}

// UpdateAll replaces every given card. Either all cards are replaced or, if
// any is unknown or invalid, none are.
func (s *Store) UpdateAll(ctx context.Context, cards []*domain.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, card := range cards {
		if card == nil {
			return fmt.Errorf("%w: nil card", domain.ErrValidation)
		}
		if _, ok := s.cards[card.ID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrCardNotFound, card.ID)
		}
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
	}

	for _, card := range cards {
		s.cards[card.ID] = card.Clone()
	}
	return nil
}

// Len returns the number of stored cards.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
