// Package service holds the business rules for the demo item resource.
package service

import (
	"context"

	"github.com/lanternworks/api-template/internal/models"
	"github.com/lanternworks/api-template/internal/repository"
)

// ItemService enforces the CRUD semantics of the demo items: ids are chosen
// by the client, duplicates are rejected, updates and deletes require the
// item to exist.
type ItemService struct {
	repo repository.ItemRepository
}

func NewItemService(repo repository.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

func (s *ItemService) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, id int) (*models.Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *ItemService) Create(ctx context.Context, item *models.Item) error {
	return s.repo.CreateItem(ctx, item)
}

func (s *ItemService) Update(ctx context.Context, id int, item *models.Item) error {
	item.ID = id
	return s.repo.UpdateItem(ctx, item)
}

func (s *ItemService) Delete(ctx context.Context, id int) (*models.Item, error) {
	return s.repo.DeleteItem(ctx, id)
}
