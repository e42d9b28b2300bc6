package bufutils

import "math"

// nothingPending is the sentinel stored in first while no writes are tracked.
const nothingPending = math.MaxInt

// Range is a half-open [First, End) interval of element indices.
type Range struct {
	First int
	End   int
}

// Count returns the number of elements covered by the range.
func (r Range) Count() int {
	return r.End - r.First
}

// ChangeRange accumulates a conservative bounding interval over many discrete
// writes to an array, so that a flush can re-upload one contiguous span instead
// of the whole array. Precision is traded for O(1) bookkeeping: indices that lie
// between two tracked writes are treated as changed even when they were not
// touched.
//
// The tracker is not cleared when the range is read- consumers must call Reset
// after acting on the returned interval.
type ChangeRange struct {
	size  int
	first int
	end   int
}

// NewChangeRange creates a tracker for an array of size elements with no
// pending changes.
func NewChangeRange(size int) ChangeRange {
	return ChangeRange{
		size:  size,
		first: nothingPending,
	}
}

// Size returns the array size the tracker was created or last resized with.
func (c *ChangeRange) Size() int {
	return c.size
}

// Update expands the tracked interval to the bounding union of itself and
// [first, end).
func (c *ChangeRange) Update(first, end int) {
	if c.first == nothingPending {
		c.first = first
		c.end = end
		return
	}

	if first < c.first {
		c.first = first
	}
	if end > c.end {
		c.end = end
	}
}

// UpdateAll marks the entire array as changed.
func (c *ChangeRange) UpdateAll() {
	if c.size == 0 {
		c.Reset()
		return
	}

	c.first = 0
	c.end = c.size
}

// Reset discards all tracked changes.
func (c *ChangeRange) Reset() {
	c.first = nothingPending
	c.end = 0
}

// Resize informs the tracker that the array now holds size elements. Tracking
// collapses to "no change" when the previously tracked start index no longer
// exists in the shrunk array; otherwise the interval is clamped to the new
// size.
func (c *ChangeRange) Resize(size int) {
	c.size = size

	if c.first == nothingPending {
		return
	}
	if c.first >= size {
		c.Reset()
		return
	}
	if c.end > size {
		c.end = size
	}
}

// Range returns the bounding interval of all writes recorded since the last
// Reset. The second return value is false when there is nothing to flush.
func (c *ChangeRange) Range() (Range, bool) {
	if c.first == nothingPending {
		return Range{}, false
	}

	return Range{First: c.first, End: c.end}, true
}
