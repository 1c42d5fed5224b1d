package tasks

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps tasks in a map. Ids grow monotonically and are never
// handed out twice, matching an auto-increment column. The zero value is
// ready to use.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]string

	// PingErr, when set, is returned by Ping.
	PingErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[int64]string)}
}

func (s *MemoryStore) List(_ context.Context) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, 0, len(s.tasks))
	for id, name := range s.tasks {
		out = append(out, Task{TaskID: id, Task: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out, nil
}

func (s *MemoryStore) Create(_ context.Context, name string) (int64, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tasks == nil {
		s.tasks = make(map[int64]string)
	}
	s.nextID++
	s.tasks[s.nextID] = name
	return s.nextID, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return s.PingErr
}

func (s *MemoryStore) Close() {}

// Len reports how many tasks are stored.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
