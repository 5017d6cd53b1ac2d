package packed

import "iter"

// Slice returns the packed prefix [0, Len()) of the backing buffer. Elements
// may be modified in place; the slice's capacity is clipped so appending to
// it never touches the array. It is invalidated by the next structural
// mutation.
func (a *Array[T]) Slice() []T {
	return a.buffer[:a.size:a.size]
}

// Values iterates over the live elements in packed order.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		version := a.version
		for slot := 0; slot < a.size; slot++ {
			if !yield(a.buffer[slot]) {
				return
			}
			a.checkVersion(version)
		}
	}
}

// Pointers iterates over pointers to the live elements in packed order,
// allowing them to be modified in place.
func (a *Array[T]) Pointers() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		version := a.version
		for slot := 0; slot < a.size; slot++ {
			if !yield(&a.buffer[slot]) {
				return
			}
			a.checkVersion(version)
		}
	}
}

// All iterates over (external index, element) pairs in packed order.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		version := a.version
		for slot := 0; slot < a.size; slot++ {
			if !yield(a.entryToIndex[slot], a.buffer[slot]) {
				return
			}
			a.checkVersion(version)
		}
	}
}

func (a *Array[T]) checkVersion(version uint64) {
	if a.version != version {
		fail(ErrConcurrentMutation, "size changed to %d", a.size)
	}
}
