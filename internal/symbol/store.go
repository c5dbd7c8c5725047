package symbol

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknown is returned when selecting a symbol that is not in Indices.
var ErrUnknown = errors.New("unknown symbol")

// Store holds the currently selected index and notifies subscribers on change.
type Store struct {
	mu       sync.RWMutex
	selected string
	nextID   int
	subs     map[int]chan string
}

// NewStore creates a store with initial selected. An empty or unknown initial
// value falls back to Default.
func NewStore(initial string) *Store {
	if _, ok := Lookup(initial); !ok {
		initial = Default
	}
	return &Store{selected: initial, subs: make(map[int]chan string)}
}

// Selected returns the current symbol.
func (s *Store) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select changes the current symbol. It reports whether the value changed.
func (s *Store) Select(sym string) (bool, error) {
	if _, ok := Lookup(sym); !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknown, sym)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == sym {
		return false, nil
	}
	s.selected = sym
	for _, ch := range s.subs {
		notify(ch, sym)
	}
	return true, nil
}

// Subscribe returns a channel receiving each new symbol and a func that
// unsubscribes and closes the channel. A slow reader only sees the latest value.
func (s *Store) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// notify replaces any unread value so the send never blocks.
func notify(ch chan string, sym string) {
	select {
	case ch <- sym:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- sym:
	default:
	}
}
