package deck

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// FileStore is a Store that rewrites its deck file after every successful update.
type FileStore struct {
	*Store
	path string

	// mu orders file writes so the last update always wins on disk
	mu sync.Mutex
}

// OpenFile loads the deck at path into a FileStore.
func OpenFile(path string) (*FileStore, error) {
	store, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{Store: store, path: path}, nil
}

// Path returns the deck file location.
func (s *FileStore) Path() string {
	return s.path
}

// Update replaces a stored card and rewrites the deck file.
func (s *FileStore) Update(ctx context.Context, card *domain.Card) error {
	return s.UpdateAll(ctx, []*domain.Card{card})
}

// UpdateAll replaces the given cards and rewrites the deck file.
func (s *FileStore) UpdateAll(ctx context.Context, cards []*domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Store.UpdateAll(ctx, cards); err != nil {
		return err
	}
	return s.flush(ctx)
}

// Add stores a new card and rewrites the deck file.
func (s *FileStore) Add(ctx context.Context, card *domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Store.Add(ctx, card); err != nil {
		return err
	}
	return s.flush(ctx)
}

func (s *FileStore) flush(ctx context.Context) error {
	cards, err := s.Store.List(ctx)
	if err != nil {
		return err
	}
	if err := WriteFile(s.path, cards); err != nil {
		return fmt.Errorf("saving deck %s: %w", s.path, err)
	}
	return nil
}
