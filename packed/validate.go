package packed

import "fmt"

// Validate checks the bookkeeping invariants and returns a description of
// the first violation found, or nil.
//
// The two maps must be inverse permutations of [0, Cap()) and the size must
// not exceed the capacity. Liveness is derived from the maps, so these two
// checks together guarantee that the live indices address exactly the packed
// prefix.
func (a *Array[T]) Validate() error {
	capacity := len(a.buffer)
	if len(a.indexToEntry) != capacity || len(a.entryToIndex) != capacity {
		return fmt.Errorf("packed: map lengths %d/%d do not match capacity %d",
			len(a.indexToEntry), len(a.entryToIndex), capacity)
	}
	if a.size < 0 || a.size > capacity {
		return fmt.Errorf("packed: size %d not in [0, %d]", a.size, capacity)
	}

	for index, entry := range a.indexToEntry {
		if entry < 0 || entry >= capacity {
			return fmt.Errorf("packed: index %d maps to slot %d outside [0, %d)", index, entry, capacity)
		}
		if back := a.entryToIndex[entry]; back != index {
			return fmt.Errorf("packed: index %d maps to slot %d which maps back to %d", index, entry, back)
		}
	}
	return nil
}
