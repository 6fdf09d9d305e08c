// Package arena provides an index-linked doubly linked list stored in a
// growable slot array.
//
// Links are slot indices rather than pointers, so the backing slice can grow
// without invalidating handles held elsewhere (for example in a key index).
// Several Lists may share one Arena; each slot belongs to at most one List.
//
// Nothing here is safe for concurrent use. Callers hold their own lock.
package arena

// None marks the absence of a slot.
const None = -1

type slot[T any] struct {
	value T
	prev  int
	next  int
	live  bool
}

// Arena owns the slots of one or more Lists.
// The zero value is ready to use.
type Arena[T any] struct {
	slots []slot[T]
	free  []int
	live  int
}

// List is a handle to a chain of slots inside an Arena.
// Front is the oldest end, Back the newest end.
type List struct {
	head int
	tail int
	n    int
}

// NewList returns an empty List.
func NewList() List {
	return List{head: None, tail: None}
}

// Len returns the number of elements in l.
func (l *List) Len() int { return l.n }

// Front returns the first slot of l, or None.
func (l *List) Front() int { return l.head }

// Back returns the last slot of l, or None.
func (l *List) Back() int { return l.tail }

// New returns an Arena with room for capacity slots before it has to grow.
func New[T any](capacity int) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena[T]{slots: make([]slot[T], 0, capacity)}
}

// Len returns the number of live slots across all lists.
func (a *Arena[T]) Len() int { return a.live }

// Value returns the value stored in slot i.
func (a *Arena[T]) Value(i int) T { return a.slots[i].value }

// Set overwrites the value stored in slot i.
func (a *Arena[T]) Set(i int, v T) { a.slots[i].value = v }

// Live reports whether i refers to an allocated slot.
func (a *Arena[T]) Live(i int) bool {
	return i >= 0 && i < len(a.slots) && a.slots[i].live
}

// Next returns the slot after i in its list, or None.
func (a *Arena[T]) Next(i int) int { return a.slots[i].next }

// Prev returns the slot before i in its list, or None.
func (a *Arena[T]) Prev(i int) int { return a.slots[i].prev }

func (a *Arena[T]) alloc(v T) int {
	a.live++
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[i] = slot[T]{value: v, prev: None, next: None, live: true}
		return i
	}
	a.slots = append(a.slots, slot[T]{value: v, prev: None, next: None, live: true})
	return len(a.slots) - 1
}

func (a *Arena[T]) release(i int) {
	// Zero the slot so the arena does not pin the caller's values.
	a.slots[i] = slot[T]{prev: None, next: None}
	a.free = append(a.free, i)
	a.live--
}

// PushBack appends v to the back of l and returns its slot.
func (a *Arena[T]) PushBack(l *List, v T) int {
	i := a.alloc(v)
	a.linkBack(l, i)
	return i
}

// Remove unlinks slot i from l, frees it and returns its value.
func (a *Arena[T]) Remove(l *List, i int) T {
	v := a.slots[i].value
	a.unlink(l, i)
	a.release(i)
	return v
}

// MoveToBack relinks slot i as the last element of l.
func (a *Arena[T]) MoveToBack(l *List, i int) {
	if l.tail == i {
		return
	}
	a.unlink(l, i)
	a.linkBack(l, i)
}

// MoveToList unlinks slot i from src and appends it to the back of dst.
// The slot index is preserved.
func (a *Arena[T]) MoveToList(src, dst *List, i int) {
	a.unlink(src, i)
	a.linkBack(dst, i)
}

// Reset frees every slot. Lists pointing into a must be reset by the caller.
func (a *Arena[T]) Reset() {
	clear(a.slots)
	a.slots = a.slots[:0]
	a.free = a.free[:0]
	a.live = 0
}

func (a *Arena[T]) linkBack(l *List, i int) {
	s := &a.slots[i]
	s.prev, s.next = l.tail, None
	if l.tail == None {
		l.head = i
	} else {
		a.slots[l.tail].next = i
	}
	l.tail = i
	l.n++
}

func (a *Arena[T]) unlink(l *List, i int) {
	s := &a.slots[i]
	if s.prev == None {
		l.head = s.next
	} else {
		a.slots[s.prev].next = s.next
	}
	if s.next == None {
		l.tail = s.prev
	} else {
		a.slots[s.next].prev = s.prev
	}
	s.prev, s.next = None, None
	l.n--
}
