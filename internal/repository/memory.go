package repository

import (
	"context"
	"sync"

	"github.com/lanternworks/api-template/internal/models"
)

// InMemoryItemRepository keeps items in insertion order behind a RWMutex.
// It is the default store when no database is configured, and the test
// double everywhere else.
type InMemoryItemRepository struct {
	mu    sync.RWMutex
	items map[int]models.Item
	order []int
}

func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{items: make(map[int]models.Item)}
}

func (r *InMemoryItemRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *InMemoryItemRepository) GetItem(ctx context.Context, id int) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (r *InMemoryItemRepository) CreateItem(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return ErrItemExists
	}
	r.items[item.ID] = *item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *InMemoryItemRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return ErrItemNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *InMemoryItemRepository) DeleteItem(ctx context.Context, id int) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &item, nil
}
