// Package arena implements an element-granularity block allocator over a
// single growable backing store. It hands out contiguous element ranges inside
// the store, reclaims them through a size-bucketed free list, and bounds
// fragmentation via explicit compaction.
//
// One arena backs one physical buffer: batching systems keep an arena per
// attribute stream, suballocate a block per draw object, and re-upload only
// the regions that changed. The arena is not a general-purpose heap- element
// counts are caller-known, record granularity is fixed by the element type,
// and a single goroutine must own each instance.
package arena

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vkngwrapper/quiver/bufutils"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// Handle is a stable index into the arena's block table. Holders keep the
// handle for the lifetime of the allocation; Reallocate and Defragment mutate
// the underlying record in place, so a handle observes relocation without
// being re-acquired. Raw offsets must never be retained across those calls.
type Handle int32

// NoBlock is the Handle value that does not map to any allocation.
const NoBlock Handle = -1

// Block is one contiguous allocation inside the arena, in element units.
type Block struct {
	First int
	Size  int
}

// Factory allocates backing storage with at least capacity elements, copying
// the first copyLen elements of old into the fresh storage. Implementations
// backed by plain memory can simply make and copy; implementations shadowing
// an external resource may also rebuild that resource here.
type Factory[T any] func(old []T, capacity, copyLen int) []T

// DefaultFactory backs the arena with ordinary slices.
func DefaultFactory[T any](old []T, capacity, copyLen int) []T {
	data := make([]T, capacity)
	copy(data, old[:copyLen])
	return data
}

// Buffer is the block allocator over one growable backing store of T.
type Buffer[T any] struct {
	data []T
	last int

	blocks    []Block
	alive     []bool
	freeSlots []Handle

	pending           *freeList
	fragmentationSize int
	allocationCount   int

	factory Factory[T]
	logger  *slog.Logger
}

var _ bufutils.Validatable = &Buffer[int]{}

// New creates an empty arena. A nil factory falls back to DefaultFactory and a
// nil logger falls back to slog.Default.
func New[T any](logger *slog.Logger, factory Factory[T]) *Buffer[T] {
	if factory == nil {
		factory = DefaultFactory[T]
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Buffer[T]{
		pending: newFreeList(),
		factory: factory,
		logger:  logger,
	}
}

// Capacity returns the element capacity of the backing store.
func (b *Buffer[T]) Capacity() int {
	return len(b.data)
}

// Last returns the high-water mark: the first element offset that has never
// been inside any allocation.
func (b *Buffer[T]) Last() int {
	return b.last
}

// AllocationCount returns the number of live blocks.
func (b *Buffer[T]) AllocationCount() int {
	return b.allocationCount
}

// FragmentationSize returns the total element count of freed-but-unreclaimed
// blocks.
func (b *Buffer[T]) FragmentationSize() int {
	return b.fragmentationSize
}

// Block returns a copy of the record for a live handle.
func (b *Buffer[T]) Block(h Handle) Block {
	bufutils.DebugAssert(b.isLive(h), "arena: Block on dead handle %d", h)
	return b.blocks[h]
}

// Slice returns the backing elements of a live block. The slice is invalidated
// by any call that can relocate data (Allocate growth, Reallocate,
// Defragment).
func (b *Buffer[T]) Slice(h Handle) []T {
	bufutils.DebugAssert(b.isLive(h), "arena: Slice on dead handle %d", h)
	blk := b.blocks[h]
	return b.data[blk.First : blk.First+blk.Size]
}

// Data returns the full backing store. Only [0, Last()) has ever held
// allocation contents.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// Allocate hands out a contiguous block of size elements.
//
// The free list is searched for the smallest size class that can hold the
// request; within a class the most recently freed block is reused first. A
// larger-than-needed block is split, with the remainder re-queued under its
// new size. When no pending block fits, the block is appended at the
// high-water mark, growing the backing store to twice the required size if it
// does not fit. Zero-size allocations are legal, never split a pending block,
// and never grow the store.
func (b *Buffer[T]) Allocate(size int) Handle {
	bufutils.DebugCheckNonNegative(size, "allocation size")

	if size == 0 {
		return b.insertBlock(Block{First: b.last})
	}

	if blk, ok := b.pending.take(size); ok {
		b.fragmentationSize -= blk.Size
		if blk.Size > size {
			remainder := Block{First: blk.First + size, Size: blk.Size - size}
			b.pending.put(remainder)
			b.fragmentationSize += remainder.Size
			blk.Size = size
		}
		return b.insertBlock(blk)
	}

	blk := Block{First: b.last, Size: size}
	b.grow(b.last + size)
	b.last += size
	return b.insertBlock(blk)
}

// Reallocate resizes a live block.
//
// Shrinking happens in place: a tail block retracts the high-water mark, an
// interior block splits its remainder off to the free list. Growing allocates
// a fresh block and swaps the two records' offsets and sizes, so the caller's
// handle addresses the new location without re-acquisition; the prefix of the
// old contents is carried over and the vacated span joins the free list.
func (b *Buffer[T]) Reallocate(h Handle, newSize int) {
	bufutils.DebugAssert(b.isLive(h), "arena: Reallocate on dead handle %d", h)
	bufutils.DebugCheckNonNegative(newSize, "reallocation size")

	blk := b.blocks[h]
	if newSize <= blk.Size {
		if blk.First+blk.Size == b.last {
			b.last = blk.First + newSize
		} else if remainder := blk.Size - newSize; remainder > 0 {
			b.pending.put(Block{First: blk.First + newSize, Size: remainder})
			b.fragmentationSize += remainder
		}
		b.blocks[h].Size = newSize
		return
	}

	// Allocate can grow the backing store and the block table, so records are
	// re-read through indices after it returns.
	fresh := b.Allocate(newSize)
	oldBlk := b.blocks[h]
	freshBlk := b.blocks[fresh]
	copy(b.data[freshBlk.First:freshBlk.First+oldBlk.Size], b.data[oldBlk.First:oldBlk.First+oldBlk.Size])
	b.blocks[h], b.blocks[fresh] = freshBlk, oldBlk
	b.Free(fresh)
}

// Free releases a live block, queueing its span for reuse. The span is not
// zeroed and the high-water mark does not retract.
func (b *Buffer[T]) Free(h Handle) {
	bufutils.DebugAssert(b.isLive(h), "arena: Free on dead handle %d", h)

	blk := b.blocks[h]
	b.releaseSlot(h)
	if blk.Size > 0 {
		b.pending.put(blk)
		b.fragmentationSize += blk.Size
	}
}

// Reset instantly drops every allocation and pending block. All outstanding
// handles become invalid.
func (b *Buffer[T]) Reset() {
	b.blocks = b.blocks[:0]
	b.alive = b.alive[:0]
	b.freeSlots = b.freeSlots[:0]
	b.pending.clear()
	b.fragmentationSize = 0
	b.allocationCount = 0
	b.last = 0
}

// Defragment repacks all live blocks contiguously from offset 0, preserving
// their contents, and clears the free list. Records are updated in place, so
// handles stay valid while any cached raw offset does not. It must only be
// called at a quiescent point.
//
// Live blocks are walked in stable handle order and copied into fresh backing
// storage, so a move can never clobber a block that has not been copied yet.
func (b *Buffer[T]) Defragment() {
	freedSize := b.fragmentationSize
	fresh := b.factory(nil, len(b.data), 0)

	offset := 0
	for i := range b.blocks {
		if !b.alive[i] {
			continue
		}
		blk := &b.blocks[i]
		copy(fresh[offset:offset+blk.Size], b.data[blk.First:blk.First+blk.Size])
		blk.First = offset
		offset += blk.Size
	}

	b.data = fresh
	b.last = offset
	b.pending.clear()
	b.fragmentationSize = 0

	b.logger.LogAttrs(context.Background(), slog.LevelDebug, "arena: defragmented",
		slog.Int("liveBlocks", b.allocationCount),
		slog.Int("reclaimedElements", freedSize),
		slog.Int("last", b.last))
}

// VisitBlocks calls handleBlock once per live block, in stable handle order,
// until it returns false.
func (b *Buffer[T]) VisitBlocks(handleBlock func(h Handle, blk Block) bool) {
	for i := range b.blocks {
		if !b.alive[i] {
			continue
		}
		if !handleBlock(Handle(i), b.blocks[i]) {
			return
		}
	}
}

// AddDetailedStatistics sums this arena's occupancy into stats.
func (b *Buffer[T]) AddDetailedStatistics(stats *bufutils.DetailedStatistics) {
	stats.ArenaCount++
	stats.CapacityElements += b.Capacity()

	for i := range b.blocks {
		if b.alive[i] {
			stats.AddAllocation(b.blocks[i].Size)
		}
	}

	b.pending.visit(func(blk Block) bool {
		stats.AddPendingRegion(blk.Size)
		return true
	})
}

// Validate performs internal consistency checks: live blocks must be pairwise
// disjoint and inside [0, last], last must fit the capacity, and the recorded
// fragmentation must equal the free-list total. When the arena is functioning
// correctly this cannot fail, but it assists in diagnosing misuse.
func (b *Buffer[T]) Validate() error {
	if b.last > len(b.data) {
		return errors.Errorf("the high-water mark %d exceeds the backing capacity %d", b.last, len(b.data))
	}

	live := make([]Block, 0, b.allocationCount)
	for i := range b.blocks {
		if b.alive[i] {
			live = append(live, b.blocks[i])
		}
	}
	if len(live) != b.allocationCount {
		return errors.Errorf("the arena records %d allocations but %d slots are live", b.allocationCount, len(live))
	}

	slices.SortFunc(live, func(a, c Block) bool { return a.First < c.First })
	for i, blk := range live {
		if blk.First < 0 || blk.First+blk.Size > b.last {
			return errors.Errorf("block [%d, %d) lies outside [0, %d)", blk.First, blk.First+blk.Size, b.last)
		}
		if i > 0 {
			prev := live[i-1]
			if prev.First+prev.Size > blk.First {
				return errors.Errorf("blocks [%d, %d) and [%d, %d) overlap",
					prev.First, prev.First+prev.Size, blk.First, blk.First+blk.Size)
			}
		}
	}

	if total := b.pending.totalSize(); total != b.fragmentationSize {
		return errors.Errorf("the arena records %d fragmented elements but the free list holds %d", b.fragmentationSize, total)
	}

	return nil
}

func (b *Buffer[T]) isLive(h Handle) bool {
	return h >= 0 && int(h) < len(b.blocks) && b.alive[h]
}

func (b *Buffer[T]) insertBlock(blk Block) Handle {
	b.allocationCount++

	if n := len(b.freeSlots); n > 0 {
		h := b.freeSlots[n-1]
		b.freeSlots = b.freeSlots[:n-1]
		b.blocks[h] = blk
		b.alive[h] = true
		return h
	}

	b.blocks = append(b.blocks, blk)
	b.alive = append(b.alive, true)
	return Handle(len(b.blocks) - 1)
}

func (b *Buffer[T]) releaseSlot(h Handle) {
	b.alive[h] = false
	b.freeSlots = append(b.freeSlots, h)
	b.allocationCount--
}

func (b *Buffer[T]) grow(required int) {
	if required <= len(b.data) {
		return
	}

	newCapacity := 2 * required
	b.logger.LogAttrs(context.Background(), slog.LevelDebug, "arena: growing backing store",
		slog.Int("required", required),
		slog.Int("capacity", len(b.data)),
		slog.Int("newCapacity", newCapacity))

	fresh := b.factory(b.data, newCapacity, b.last)
	if len(fresh) < required {
		panic(errors.Errorf("arena: factory produced %d elements for a requirement of %d", len(fresh), required))
	}
	b.data = fresh
}
