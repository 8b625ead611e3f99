package storage

import (
	"context"
	"sync"
)

// MockLister serves a fixed listing per folder and counts calls.
type MockLister struct {
	Folders map[string][]FileRecord
	Err     error

	mu    sync.Mutex
	calls []string
}

func (m *MockLister) ListFiles(ctx context.Context, folderID string) ([]FileRecord, error) {
	m.mu.Lock()
	m.calls = append(m.calls, folderID)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	records := m.Folders[folderID]
	out := make([]FileRecord, len(records))
	copy(out, records)
	return out, nil
}

func (m *MockLister) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
