package testutil

import (
	"context"
	"sort"
	"sync"

	"yt2t/internal/app/model"
)

// MockExtractionDAO is an in-memory repository.ExtractionDAO with per-method
// error injection and call tracking.
type MockExtractionDAO struct {
	mu      sync.Mutex
	records []model.ExtractionRecord
	nextID  int64
	closed  bool

	ErrorMap map[string]error // method -> error
	calls    map[string]int
}

// NewMockExtractionDAO creates an empty MockExtractionDAO.
func NewMockExtractionDAO() *MockExtractionDAO {
	return &MockExtractionDAO{
		nextID:   1,
		ErrorMap: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// SetErrorForMethod makes every later call of method fail with err.
func (m *MockExtractionDAO) SetErrorForMethod(method string, err error) *MockExtractionDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[method] = err
	return m
}

func (m *MockExtractionDAO) track(method string) error {
	m.calls[method]++
	return m.ErrorMap[method]
}

func (m *MockExtractionDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("Close"); err != nil {
		return err
	}
	m.closed = true
	return nil
}

func (m *MockExtractionDAO) Record(_ context.Context, rec *model.ExtractionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("Record"); err != nil {
		return err
	}
	rec.ID = m.nextID
	m.nextID++
	m.records = append(m.records, *rec)
	return nil
}

// ListRecent returns records newest first, ties broken by id.
func (m *MockExtractionDAO) ListRecent(_ context.Context, limit int) ([]model.ExtractionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("ListRecent"); err != nil {
		return nil, err
	}

	out := append([]model.ExtractionRecord(nil), m.records...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Records returns what Record stored, in insertion order.
func (m *MockExtractionDAO) Records() []model.ExtractionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ExtractionRecord(nil), m.records...)
}

// CallCount returns how often method was called, failed calls included.
func (m *MockExtractionDAO) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockExtractionDAO) WasCloseCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
