package devserver

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store is the record persistence behind the fixture server. Documents are
// loosely-typed maps so one store serves every entity collection; the
// handlers own field semantics.
type Store interface {
	List(ctx context.Context, entity string) ([]map[string]any, error)
	Insert(ctx context.Context, entity string, doc map[string]any) (map[string]any, error)
	Update(ctx context.Context, entity string, id int, doc map[string]any) (map[string]any, bool, error)
	Delete(ctx context.Context, entity string, id int) (bool, error)
}

// MemoryStore keeps collections in process memory. It is the default for
// tests and quick local runs; the Mongo-backed store is selected by config
// when persistence across restarts matters.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]map[string]any
	nextID map[string]int
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:   map[string][]map[string]any{},
		nextID: map[string]int{},
	}
}

func (s *MemoryStore) List(_ context.Context, entity string) ([]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.data[entity]
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, cloneDoc(row))
	}
	sort.Slice(out, func(i, j int) bool {
		return docID(out[i]) < docID(out[j])
	})
	return out, nil
}

func (s *MemoryStore) Insert(_ context.Context, entity string, doc map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID[entity]++
	stored := cloneDoc(doc)
	stored["id"] = s.nextID[entity]
	now := time.Now().UTC()
	stored["created_at"] = now
	stored["updated_at"] = now

	s.data[entity] = append(s.data[entity], stored)
	return cloneDoc(stored), nil
}

func (s *MemoryStore) Update(_ context.Context, entity string, id int, doc map[string]any) (map[string]any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range s.data[entity] {
		if docID(row) != id {
			continue
		}
		stored := cloneDoc(doc)
		stored["id"] = id
		stored["created_at"] = row["created_at"]
		stored["updated_at"] = time.Now().UTC()
		s.data[entity][i] = stored
		return cloneDoc(stored), true, nil
	}
	return nil, false, nil
}

func (s *MemoryStore) Delete(_ context.Context, entity string, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.data[entity]
	for i, row := range rows {
		if docID(row) == id {
			s.data[entity] = append(rows[:i], rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func cloneDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// docID reads the id field regardless of how the decoder typed it.
func docID(doc map[string]any) int {
	switch v := doc["id"].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
