package data

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ResultStore keeps recent simulation results in memory, keyed by a generated
// id. The oldest entries are evicted once size is reached, and entries expire
// after ttl. It is safe for concurrent use.
//
// Results are not persisted; a restart forgets them.
type ResultStore[V any] struct {
	lru *expirable.LRU[string, V]
}

// NewResultStore returns a store holding at most size results. A zero ttl
// keeps results until they are evicted.
func NewResultStore[V any](size int, ttl time.Duration) *ResultStore[V] {
	if size <= 0 {
		size = 128
	}
	return &ResultStore[V]{lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

// Put stores v and returns its id.
func (s *ResultStore[V]) Put(v V) string {
	id := uuid.NewString()
	s.lru.Add(id, v)
	return id
}

func (s *ResultStore[V]) Get(id string) (V, bool) {
	return s.lru.Get(id)
}

func (s *ResultStore[V]) Len() int {
	return s.lru.Len()
}
