package mock

import (
	"context"

	"github.com/fwojciec/veritas"
)

// Compile-time interface verification.
var (
	_ veritas.HistoryStore  = (*HistoryStore)(nil)
	_ veritas.SettingsStore = (*SettingsStore)(nil)
)

// HistoryStore is a mock implementation of veritas.HistoryStore.
type HistoryStore struct {
	LoadFn   func(ctx context.Context) ([]veritas.HistoryItem, error)
	AppendFn func(ctx context.Context, item veritas.HistoryItem) error
	GetFn    func(ctx context.Context, id string) (*veritas.HistoryItem, error)
	ClearFn  func(ctx context.Context) error
}

func (s *HistoryStore) Load(ctx context.Context) ([]veritas.HistoryItem, error) {
	return s.LoadFn(ctx)
}

func (s *HistoryStore) Append(ctx context.Context, item veritas.HistoryItem) error {
	return s.AppendFn(ctx, item)
}

func (s *HistoryStore) Get(ctx context.Context, id string) (*veritas.HistoryItem, error) {
	return s.GetFn(ctx, id)
}

func (s *HistoryStore) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}

// SettingsStore is a mock implementation of veritas.SettingsStore.
type SettingsStore struct {
	LoadFn func() (veritas.Settings, error)
	SaveFn func(s veritas.Settings) error
}

func (s *SettingsStore) Load() (veritas.Settings, error) {
	return s.LoadFn()
}

func (s *SettingsStore) Save(settings veritas.Settings) error {
	return s.SaveFn(settings)
}
