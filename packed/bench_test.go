package packed_test

import (
	"testing"

	"github.com/plus3/packedarray/packed"
)

const benchCapacity = 1 << 16

type benchPosition struct {
	X, Y, Z float32
}

func BenchmarkAppendRemove(b *testing.B) {
	a := packed.New[benchPosition](benchCapacity)

	for i := 0; i < b.N; i++ {
		index := a.Append(benchPosition{X: 1})
		a.Remove(index)
	}
}

func BenchmarkRemoveFront(b *testing.B) {
	a := packed.New[benchPosition](benchCapacity)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if a.Len() == 0 {
			b.StopTimer()
			for !a.Full() {
				a.Append(benchPosition{})
			}
			b.StartTimer()
		}
		a.Remove(a.IndexAt(0))
	}
}

func BenchmarkGet(b *testing.B) {
	a := packed.New[benchPosition](benchCapacity)
	index := a.Append(benchPosition{X: 1, Y: 2, Z: 3})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Get(index)
	}
}

func BenchmarkIterateValues(b *testing.B) {
	a := packed.New[benchPosition](benchCapacity)
	for !a.Full() {
		a.Append(benchPosition{X: 1})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var sum float32
		for p := range a.Values() {
			sum += p.X
		}
		_ = sum
	}
}

func BenchmarkIteratePointers(b *testing.B) {
	a := packed.New[benchPosition](benchCapacity)
	for !a.Full() {
		a.Append(benchPosition{})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for p := range a.Pointers() {
			p.X += 1
		}
	}
}

func BenchmarkIterateSlice(b *testing.B) {
	a := packed.New[benchPosition](benchCapacity)
	for !a.Full() {
		a.Append(benchPosition{})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view := a.Slice()
		for j := range view {
			view[j].X += 1
		}
	}
}
