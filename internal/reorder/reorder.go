// Package reorder implements display-order moves for the editor's ordered
// collections (menu categories, items within a category, store images).
package reorder

// Move returns a copy of list with the element at from relocated to to. The
// relocation is performed as a walk of adjacent swaps so that a drag gesture
// can re-invoke it one step at a time; the net effect equals removing the
// element at from and reinserting it at to. Indices outside [0, len) leave
// the list unchanged.
func Move[T any](list []T, from, to int) []T {
	out := make([]T, len(list))
	copy(out, list)

	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}

	step := 1
	if to < from {
		step = -1
	}
	for i := from; i != to; i += step {
		out[i], out[i+step] = out[i+step], out[i]
	}
	return out
}
