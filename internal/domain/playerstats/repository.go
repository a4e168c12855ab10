package playerstats

import "context"

// Backend is the REST transport the record service persists through.
type Backend interface {
	Get(ctx context.Context, table string, filters map[string]any) ([]Row, error)
	Post(ctx context.Context, table string, record Row) (Row, error)
	Patch(ctx context.Context, table, id string, record Row) (Row, error)
	Delete(ctx context.Context, table, id string) error
}
