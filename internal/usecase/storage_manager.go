package usecase

import (
	"context"

	"github.com/riskibarqy/playerstats/internal/domain/playerstats"
)

// RecordStore is the surface StorageManager forwards to. PlayerStatsService implements it.
type RecordStore interface {
	Init(ctx context.Context, handler DataHandler) error
	SetConfig(url, apiKey, table string)
	Config() StoreConfig
	Create(ctx context.Context, input playerstats.Input) (playerstats.Record, error)
	Read(ctx context.Context, filters map[string]any) ([]playerstats.View, error)
	Update(ctx context.Context, input playerstats.Input) (playerstats.Record, error)
	Delete(ctx context.Context, input playerstats.Input) error
	GetStats(ctx context.Context) StatsSnapshot
	TestConnection(ctx context.Context) ConnectionReport
}

var _ RecordStore = (*PlayerStatsService)(nil)

type StorageInfo struct {
	Mode          string `json:"mode"`
	ActiveService string `json:"activeService"`
	Configured    bool   `json:"configured"`
}

// StorageManager keeps callers independent of the backend behind it.
type StorageManager struct {
	store RecordStore
}

func NewStorageManager(store RecordStore) *StorageManager {
	return &StorageManager{store: store}
}

func (m *StorageManager) Init(ctx context.Context, handler DataHandler) error {
	return m.store.Init(ctx, handler)
}

func (m *StorageManager) Configure(url, apiKey, table string) {
	m.store.SetConfig(url, apiKey, table)
}

func (m *StorageManager) Config() StoreConfig {
	return m.store.Config()
}

func (m *StorageManager) Create(ctx context.Context, input playerstats.Input) (playerstats.Record, error) {
	return m.store.Create(ctx, input)
}

func (m *StorageManager) Read(ctx context.Context, filters map[string]any) ([]playerstats.View, error) {
	return m.store.Read(ctx, filters)
}

func (m *StorageManager) Update(ctx context.Context, input playerstats.Input) (playerstats.Record, error) {
	return m.store.Update(ctx, input)
}

func (m *StorageManager) Delete(ctx context.Context, input playerstats.Input) error {
	return m.store.Delete(ctx, input)
}

func (m *StorageManager) GetStats(ctx context.Context) StatsSnapshot {
	return m.store.GetStats(ctx)
}

func (m *StorageManager) TestConnection(ctx context.Context) ConnectionReport {
	return m.store.TestConnection(ctx)
}

func (m *StorageManager) Info() StorageInfo {
	return StorageInfo{
		Mode:          ModeSupabase,
		ActiveService: ModeSupabase,
		Configured:    m.store.Config().Configured(),
	}
}
