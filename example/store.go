package main

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Todo is one item of the demo list.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
}

// TodoStats summarizes the list for the deferred sidebar prop.
type TodoStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Store is an in-memory todo store.
type Store struct {
	mu     sync.RWMutex
	todos  map[string]*Todo
	nextID int
}

// NewStore creates a store with sample data.
func NewStore() *Store {
	s := &Store{
		todos:  make(map[string]*Todo),
		nextID: 1,
	}
	s.Add("Buy groceries")
	s.Add("Review PR #123")
	s.Add("Write documentation")
	return s
}

// Add creates a todo and returns its ID.
func (s *Store) Add(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("todo-%d", s.nextID)
	s.nextID++
	s.todos[id] = &Todo{ID: id, Title: title, CreatedAt: time.Now()}
	return id
}

// Toggle flips the done flag of a todo.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	if !ok {
		return false
	}
	todo.Done = !todo.Done
	return true
}

// Delete removes a todo by ID.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[id]; !ok {
		return false
	}
	delete(s.todos, id)
	return true
}

// Page returns one page of todos, newest first, and whether more follow.
func (s *Store) Page(page, size int) ([]Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Todo, 0, len(s.todos))
	for _, t := range s.todos {
		all = append(all, *t)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start := (page - 1) * size
	if start >= len(all) {
		return []Todo{}, false
	}
	end := min(start+size, len(all))
	return all[start:end], end < len(all)
}

// Stats returns statistics about the todos.
func (s *Store) Stats() TodoStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats TodoStats
	for _, t := range s.todos {
		stats.Total++
		if t.Done {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	return stats
}
