package repository

import (
	"context"
	"errors"

	"github.com/lanternworks/api-template/internal/models"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrItemExists   = errors.New("item already exists")
	ErrKeyNotFound  = errors.New("key not found")
)

// ItemRepository stores the demo items.
type ItemRepository interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItem(ctx context.Context, id int) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int) (*models.Item, error)
}

// LogRepository reads back the records written by the database log sink.
type LogRepository interface {
	ListLogs(ctx context.Context, filter models.LogFilter) ([]models.LogEntry, int64, error)
	LogStats(ctx context.Context) (*models.LogStats, error)
	ListLogComponents(ctx context.Context) ([]string, error)
}

// KVRepository is the storage demo: a tiny upsert/get table.
type KVRepository interface {
	InitKV(ctx context.Context) error
	UpsertKV(ctx context.Context, key, value string) error
	GetKV(ctx context.Context, key string) (string, error)
}
