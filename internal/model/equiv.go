package model

// TypeEq reports whether two values have the same structural type. Scalars
// compare by kind, arrays by length and pairwise element equivalence, tables
// by identical key sets and pairwise equivalence under each key. Key order is
// irrelevant here, unlike field emission. Empty arrays are equivalent to
// empty arrays, empty tables to empty tables.
func TypeEq(a, b *Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindArray:
		if len(a.Array) != len(b.Array) {
			return false
		}
		for i := range a.Array {
			if !TypeEq(a.Array[i], b.Array[i]) {
				return false
			}
		}
		return true
	case KindTable:
		if a.Table.Len() != b.Table.Len() {
			return false
		}
		for _, k := range a.Table.Keys() {
			av, _ := a.Table.Get(k)
			bv, ok := b.Table.Get(k)
			if !ok || !TypeEq(av, bv) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Layout is the verdict of the array classifier.
type Layout int

const (
	// Homogeneous arrays emit as fixed-length sequences of one element type.
	Homogeneous Layout = iota
	// Heterogeneous arrays emit as positional structs, one type per element.
	Heterogeneous
)

// Classify decides the layout for array. With preferSlices disabled every
// array is a tuple; otherwise arrays of length <= 1 and arrays whose adjacent
// elements are pairwise equivalent (transitively, the whole array) are
// homogeneous.
func Classify(array []*Value, preferSlices bool) Layout {
	if !preferSlices {
		return Heterogeneous
	}
	for i := 0; i+1 < len(array); i++ {
		if !TypeEq(array[i], array[i+1]) {
			return Heterogeneous
		}
	}
	return Homogeneous
}
