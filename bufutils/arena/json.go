package arena

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// ArenaJsonData populates a json object with occupancy information about this
// arena.
func (b *Buffer[T]) ArenaJsonData(json jwriter.ObjectState) {
	json.Name("CapacityElements").Int(b.Capacity())
	json.Name("Last").Int(b.last)
	json.Name("Allocations").Int(b.allocationCount)
	json.Name("FragmentationElements").Int(b.fragmentationSize)
	json.Name("PendingRegions").Int(b.pending.regionCount())
}

// PrintDetailedMap writes every live block and pending region held by this
// arena. This walks the whole block table and should only be used for
// diagnostics.
func (b *Buffer[T]) PrintDetailedMap(json jwriter.ObjectState) {
	b.ArenaJsonData(json)

	blockState := json.Name("Blocks").Array()
	b.VisitBlocks(func(h Handle, blk Block) bool {
		obj := blockState.Object()
		obj.Name("Handle").Int(int(h))
		obj.Name("Offset").Int(blk.First)
		obj.Name("Size").Int(blk.Size)
		obj.End()
		return true
	})
	blockState.End()

	pendingState := json.Name("Pending").Array()
	b.pending.visit(func(blk Block) bool {
		obj := pendingState.Object()
		obj.Name("Offset").Int(blk.First)
		obj.Name("Size").Int(blk.Size)
		obj.End()
		return true
	})
	pendingState.End()
}
