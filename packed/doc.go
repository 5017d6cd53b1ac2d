// Package packed provides Array, a fixed-capacity container that keeps its live
// elements packed contiguously while handing out stable external indices.
//
// Every element lives somewhere in the packed prefix [0, Len()) of a single
// backing slice, so iterating the elements is a linear walk with no holes.
// Callers do not address elements by slot though: Append returns an external
// index that stays valid until that element is removed, even when other
// removals relocate it inside the buffer.
//
// Two index slices translate between the two spaces:
//
//	indexToEntry[index] -> slot currently holding the element
//	entryToIndex[slot]  -> external index of the element in that slot
//
// They are always inverse permutations of [0, Cap()). An index is live iff
// indexToEntry[index] < Len(). Removal moves the last live element into the
// hole and swaps the two indices' map entries, so every operation except
// iteration is O(1).
//
// Misuse (a stale index, an index outside [0, Cap()), appending to a full
// array) is a programming error and panics with an error wrapping one of the
// exported Err* values.
//
// An Array is not safe for concurrent use. Pointers returned by GetMut and
// slices returned by Slice are invalidated by the next Append, Remove, Clear
// or Set of a free index.
package packed
