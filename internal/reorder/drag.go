package reorder

// DragTracker converts a continuous pointer displacement into discrete
// one-position move steps. A step fires each time the accumulated displacement
// crosses half an item extent (item size plus inter-item spacing); the
// accumulator is then debited exactly one extent so further displacement in
// the same drag keeps the same mapping.
type DragTracker struct {
	extent float64
	acc    float64
}

// NewDragTracker creates a tracker for items of the given extent. Extent must
// include inter-item spacing.
func NewDragTracker(extent float64) *DragTracker {
	return &DragTracker{extent: extent}
}

// Advance adds a displacement delta and returns the move steps it released:
// +1 per downward step, -1 per upward step. Multiple steps can be released by
// a single large delta.
func (d *DragTracker) Advance(delta float64) []int {
	if d.extent <= 0 {
		return nil
	}
	d.acc += delta

	var steps []int
	for d.acc > d.extent/2 {
		steps = append(steps, 1)
		d.acc -= d.extent
	}
	for d.acc < -d.extent/2 {
		steps = append(steps, -1)
		d.acc += d.extent
	}
	return steps
}

// Reset clears the accumulator at the end of a drag.
func (d *DragTracker) Reset() {
	d.acc = 0
}
