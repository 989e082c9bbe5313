// Package memory implements the repository ports in process memory. It backs
// local development without MongoDB and the service tests.
package memory

import (
	"context"
	"strings"
	"sync"
)

// table keeps rows in insertion order, mirroring MongoDB's natural order.
type table[T any] struct {
	rows  map[string]*T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*T)}
}

func (t *table[T]) get(id string) (*T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) insert(id string, row *T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// each visits rows in insertion order until fn returns false.
func (t *table[T]) each(fn func(row *T) bool) {
	for _, id := range t.order {
		if !fn(t.rows[id]) {
			return
		}
	}
}

func (t *table[T]) len() int {
	return len(t.rows)
}

// Store holds every collection behind a single lock.
type Store struct {
	mu sync.RWMutex

	users        *table[userRow]
	jobs         *table[jobRow]
	applications *table[applicationRow]
	connections  *table[connectionRow]
	posts        *table[postRow]
	comments     *table[commentRow]
	likes        *table[likeRow]
	statusChecks *table[statusCheckRow]
}

func NewStore() *Store {
	return &Store{
		users:        newTable[userRow](),
		jobs:         newTable[jobRow](),
		applications: newTable[applicationRow](),
		connections:  newTable[connectionRow](),
		posts:        newTable[postRow](),
		comments:     newTable[commentRow](),
		likes:        newTable[likeRow](),
		statusChecks: newTable[statusCheckRow](),
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Users() *UserRepository               { return &UserRepository{s: s} }
func (s *Store) Jobs() *JobRepository                 { return &JobRepository{s: s} }
func (s *Store) Applications() *ApplicationRepository { return &ApplicationRepository{s: s} }
func (s *Store) Connections() *ConnectionRepository   { return &ConnectionRepository{s: s} }
func (s *Store) Posts() *PostRepository               { return &PostRepository{s: s} }
func (s *Store) Comments() *CommentRepository         { return &CommentRepository{s: s} }
func (s *Store) Likes() *LikeRepository               { return &LikeRepository{s: s} }
func (s *Store) StatusChecks() *StatusCheckRepository { return &StatusCheckRepository{s: s} }
func (s *Store) Transactor() *Transactor              { return &Transactor{} }

// Transactor runs functions directly; the in-memory store has no transactions.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (Transactor) Atomic() bool { return false }

// containsFold is the in-memory counterpart of a case-insensitive regex on an escaped pattern.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func page[T any](rows []T, skip, limit int) []T {
	if skip >= len(rows) {
		return []T{}
	}
	rows = rows[skip:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
