package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

// Record store keys.
const (
	StudentsKey    = "students"
	NoticesKey     = "notices"
	TimetableKey   = "timetable"
	AssignmentsKey = "assignments"
)

// RecordStore keeps a whole collection as one JSON document under a single key.
// Until the first write the seed collection is served.
type RecordStore[T any] struct {
	kv   KeyValue
	key  string
	seed []T
}

// NewRecordStore constructs a store for key seeded with seed.
func NewRecordStore[T any](kv KeyValue, key string, seed []T) *RecordStore[T] {
	return &RecordStore[T]{kv: kv, key: key, seed: seed}
}

// List returns a copy of the full collection.
func (s *RecordStore[T]) List(ctx context.Context) ([]T, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	if !ok {
		out := make([]T, len(s.seed))
		copy(out, s.seed)
		return out, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Replace writes back the full collection.
func (s *RecordStore[T]) Replace(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.kv.Set(ctx, s.key, string(payload)); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}
