package tui

import (
	"sync"

	"github.com/Makepad-fr/ccauto/internal/model"
)

// frame is the last item a carousel asked to display.
type frame[T any] struct {
	item  T
	dir   model.Direction
	seq   uint64
	valid bool
}

// slot is the render target a controller writes into. It keeps only the
// latest frame and pokes the program through a one-slot channel, so a
// render never blocks on the event loop.
type slot[T any] struct {
	mu     sync.Mutex
	cur    frame[T]
	notify chan<- struct{}
}

func newSlot[T any](notify chan<- struct{}) *slot[T] {
	return &slot[T]{notify: notify}
}

func (s *slot[T]) render(item T, dir model.Direction) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.cur = frame[T]{item: item, dir: dir, seq: s.cur.seq + 1, valid: true}
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *slot[T]) snapshot() frame[T] {
	if s == nil {
		return frame[T]{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}
