package packed

// Array is a fixed-capacity container of T with stable external indices.
// The zero value is an array of capacity 0; use New to create a usable one.
type Array[T any] struct {
	size         int
	buffer       []T
	indexToEntry []int
	entryToIndex []int

	// version is bumped by every structural mutation so iterators and
	// Update can detect that the packed prefix moved under them.
	version uint64
}

// New creates an empty array able to hold exactly capacity elements.
// Storage for all elements is allocated up front and never grows.
func New[T any](capacity int) *Array[T] {
	if capacity < 0 {
		fail(ErrInvalidCapacity, "%d", capacity)
	}

	a := &Array[T]{
		buffer:       make([]T, capacity),
		indexToEntry: make([]int, capacity),
		entryToIndex: make([]int, capacity),
	}
	for i := range capacity {
		a.indexToEntry[i] = i
		a.entryToIndex[i] = i
	}
	return a
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int {
	return a.size
}

// Cap returns the fixed capacity the array was created with.
func (a *Array[T]) Cap() int {
	return len(a.buffer)
}

// Full reports whether no more elements can be added.
func (a *Array[T]) Full() bool {
	return a.size == len(a.buffer)
}

// Has reports whether index names a live element.
// It panics if index is outside [0, Cap()).
func (a *Array[T]) Has(index int) bool {
	a.checkRange(index)
	return a.indexToEntry[index] < a.size
}

// Get returns the element stored under index.
// It panics if index is not live.
func (a *Array[T]) Get(index int) T {
	return a.buffer[a.entry(index)]
}

// GetMut returns a pointer to the element stored under index. The pointer
// is only valid until the next structural mutation of the array.
// It panics if index is not live.
func (a *Array[T]) GetMut(index int) *T {
	return &a.buffer[a.entry(index)]
}

// Assign overwrites the element stored under index. Unlike Set, the index
// must already be live.
func (a *Array[T]) Assign(index int, value T) {
	a.buffer[a.entry(index)] = value
}

// Append stores value in the first free slot and returns the external index
// now naming it. The index handed out is whichever one the maps currently
// park at that slot, so indices of removed elements get recycled.
// It panics with ErrFull if the array is full.
func (a *Array[T]) Append(value T) int {
	if a.Full() {
		fail(ErrFull, "capacity %d", len(a.buffer))
	}

	a.buffer[a.size] = value
	index := a.entryToIndex[a.size]
	a.size++
	a.mutated()
	return index
}

// Set stores value under index. A live index is simply overwritten. A free
// index is first moved to the boundary slot and made live, which lets the
// caller choose the index a new element occupies.
func (a *Array[T]) Set(index int, value T) {
	if a.Has(index) {
		a.buffer[a.indexToEntry[index]] = value
		return
	}
	if a.Full() {
		fail(ErrFull, "capacity %d", len(a.buffer))
	}

	a.swapWithBack(index)
	a.buffer[a.size] = value
	a.size++
	a.mutated()
}

// Remove deletes the element stored under index. The last live element is
// moved into the hole, so the cost is O(1) and every other index stays valid.
// It panics if index is not live.
func (a *Array[T]) Remove(index int) {
	entry := a.entry(index)

	a.size--
	if entry != a.size {
		a.buffer[entry] = a.buffer[a.size]
		a.swapWithBack(index)
	}

	var zero T
	a.buffer[a.size] = zero
	a.mutated()
}

// Clear removes every element. Indices handed out before remain dead until
// they are recycled by Append or Set.
func (a *Array[T]) Clear() {
	clear(a.buffer[:a.size])
	a.size = 0
	a.mutated()
}

// IndexAt returns the external index of the element in packed slot slot.
// It panics if slot is outside [0, Len()).
func (a *Array[T]) IndexAt(slot int) int {
	if slot < 0 || slot >= a.size {
		fail(ErrOutOfRange, "slot %d not in [0, %d)", slot, a.size)
	}
	return a.entryToIndex[slot]
}

// Update calls fn with a pointer to the element stored under index. The
// pointer must not escape fn, and fn must not append to, remove from or
// clear the array.
func (a *Array[T]) Update(index int, fn func(v *T)) {
	version := a.version
	fn(&a.buffer[a.entry(index)])
	if a.version != version {
		fail(ErrConcurrentMutation, "update of index %d", index)
	}
}

// swapWithBack exchanges index with whichever index is parked at the
// boundary slot Len(), in both maps.
func (a *Array[T]) swapWithBack(index int) {
	entry := a.indexToEntry[index]
	last := a.entryToIndex[a.size]

	a.indexToEntry[index], a.indexToEntry[last] = a.indexToEntry[last], a.indexToEntry[index]
	a.entryToIndex[entry], a.entryToIndex[a.size] = a.entryToIndex[a.size], a.entryToIndex[entry]
}

// entry returns the slot of a live index or panics.
func (a *Array[T]) entry(index int) int {
	a.checkRange(index)
	entry := a.indexToEntry[index]
	if entry >= a.size {
		fail(ErrNotLive, "index %d", index)
	}
	return entry
}

func (a *Array[T]) checkRange(index int) {
	if index < 0 || index >= len(a.buffer) {
		fail(ErrOutOfRange, "index %d not in [0, %d)", index, len(a.buffer))
	}
}

func (a *Array[T]) mutated() {
	a.version++
	if debugChecks {
		if err := a.Validate(); err != nil {
			panic(err)
		}
	}
}
