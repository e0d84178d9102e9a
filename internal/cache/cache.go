// Package cache holds the in-memory mirror of the remote collections.
//
// Each collection is stored as one snapshot that is replaced whole on a
// successful fetch and retained unchanged on a failed one, so dependent views
// keep showing the last known good data instead of going empty. Partial
// updates are deliberately not supported: the server owns derived fields like
// availability, so mutating workflows re-fetch instead of patching locally.
package cache

import (
	"sync"

	"libradesk/internal/models"
)

// Store is safe for concurrent use. Accessors return copies so callers can
// never mutate a stored snapshot.
type Store struct {
	mu           sync.RWMutex
	users        []models.User
	books        []models.Book
	transactions []models.Transaction
}

func New() *Store {
	return &Store{}
}

func (s *Store) ReplaceUsers(users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = cloneSlice(users)
}

func (s *Store) ReplaceBooks(books []models.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = cloneSlice(books)
}

func (s *Store) ReplaceTransactions(txs []models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = cloneSlice(txs)
}

// Users returns the last stored snapshot, or an empty slice before the first
// successful fetch.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.users)
}

func (s *Store) Books() []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.books)
}

func (s *Store) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.transactions)
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
