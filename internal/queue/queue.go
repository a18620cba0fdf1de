// Package queue implements a double-ended queue used as FIFO worklist or LIFO stack.
package queue

// Queue is a double-ended queue. Zero value is an empty queue ready to use.
type Queue[T any] struct {
	items []T
	head  int
}

func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{items: make([]T, 0, len(items))}
	q.items = append(q.items, items...)
	return q
}

func (q *Queue[T]) IsEmpty() bool {
	return q.head == len(q.items)
}

func (q *Queue[T]) Append(items ...T) *Queue[T] {
	q.items = append(q.items, items...)
	return q
}

// First removes and returns the first item.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 32 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return result, true
}

// Last removes and returns the last item.
func (q *Queue[T]) Last() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}

	l := len(q.items) - 1
	result := q.items[l]
	q.items[l] = zero
	q.items = q.items[:l]
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return result, true
}
