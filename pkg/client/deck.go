package client

import (
	"errors"
	"fmt"
	"sync"
)

// Direction is a swipe gesture.
type Direction string

const (
	SwipeLeft  Direction = "left"
	SwipeRight Direction = "right"
)

// ErrDeckEmpty is returned when every item has been swiped.
var ErrDeckEmpty = errors.New("client: deck is empty")

// Deck walks an ordered list of postings one card at a time. Swiping a card
// notifies listeners and advances the resume position, which callers may
// persist and hand back to Resume later.
type Deck[T any] struct {
	mu        sync.Mutex
	items     []T
	pos       int
	listeners []func(item T, dir Direction)
}

// NewDeck returns a deck over items positioned at the first one.
func NewDeck[T any](items []T) *Deck[T] {
	return &Deck[T]{items: append([]T(nil), items...)}
}

// OnSwipe registers a listener called after every swipe, in registration order.
func (d *Deck[T]) OnSwipe(listener func(item T, dir Direction)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Append adds items at the end, e.g. after fetching the next page.
func (d *Deck[T]) Append(items ...T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, items...)
}

// Current returns the card on top. ok is false when the deck is exhausted.
func (d *Deck[T]) Current() (item T, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pos >= len(d.items) {
		return item, false
	}
	return d.items[d.pos], true
}

// Remaining is the number of cards not yet swiped.
func (d *Deck[T]) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items) - d.pos
}

// Swipe consumes the top card in the given direction and returns it.
func (d *Deck[T]) Swipe(dir Direction) (T, error) {
	var zero T
	if dir != SwipeLeft && dir != SwipeRight {
		return zero, fmt.Errorf("client: invalid swipe direction %q", dir)
	}

	d.mu.Lock()
	if d.pos >= len(d.items) {
		d.mu.Unlock()
		return zero, ErrDeckEmpty
	}
	item := d.items[d.pos]
	d.pos++
	listeners := append([]func(T, Direction)(nil), d.listeners...)
	d.mu.Unlock()

	// Listeners run unlocked so they may call back into the deck.
	for _, fn := range listeners {
		fn(item, dir)
	}
	return item, nil
}

// Position is the index of the next card to show.
func (d *Deck[T]) Position() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos
}

// Resume moves to pos, which must lie within [0, len(items)].
func (d *Deck[T]) Resume(pos int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pos < 0 || pos > len(d.items) {
		return fmt.Errorf("client: resume position %d out of range [0, %d]", pos, len(d.items))
	}
	d.pos = pos
	return nil
}
