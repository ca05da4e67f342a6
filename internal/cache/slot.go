package cache

import (
	"sync"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// slot holds one timestamped value. The mutex guards the fields only; it is
// never held while a value is being computed.
type slot[T any] struct {
	name      string
	size      func(T) int
	mu        sync.RWMutex
	value     T
	storedAt  time.Time
	populated bool
}

func newSlot[T any](name string, size func(T) int) *slot[T] {
	return &slot[T]{name: name, size: size}
}

// fresh returns the value when it was stored less than ttl before now.
func (s *slot[T]) fresh(now time.Time, ttl time.Duration) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.populated || now.Sub(s.storedAt) >= ttl {
		var zero T
		return zero, false
	}
	return s.value, true
}

// stale returns the stored value regardless of age.
func (s *slot[T]) stale() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.populated
}

func (s *slot[T]) store(value T, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.storedAt = at
	s.populated = true
}

func (s *slot[T]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.value = zero
	s.storedAt = time.Time{}
	s.populated = false
}

func (s *slot[T]) status(now time.Time, ttl time.Duration) interfaces.SlotStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := interfaces.SlotStatus{Name: s.name, Populated: s.populated}
	if !s.populated {
		return st
	}
	st.StoredAt = s.storedAt
	st.Age = now.Sub(s.storedAt)
	st.Fresh = st.Age < ttl
	if s.size != nil {
		st.Items = s.size(s.value)
	}
	return st
}
