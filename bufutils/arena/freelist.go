package arena

import "github.com/google/btree"

// sizeBucket collects every pending block of one exact size. Blocks within a
// bucket are reused in LIFO order- the most recently freed block of a size
// class is handed out first.
type sizeBucket struct {
	size   int
	blocks []Block
}

// freeList is the size-bucketed multi-queue of freed blocks. Lookup is
// first-fit-by-size-class: the smallest bucket whose size can hold the request
// wins, regardless of how much larger than the request it is. This is
// deliberately not global best-fit; reallocation and compaction behavior is
// defined against this policy.
type freeList struct {
	tree *btree.BTreeG[*sizeBucket]
}

func newFreeList() *freeList {
	return &freeList{
		tree: btree.NewG(8, func(a, b *sizeBucket) bool {
			return a.size < b.size
		}),
	}
}

// take pops the most recently freed block from the smallest size class holding
// at least size elements.
func (f *freeList) take(size int) (Block, bool) {
	var found *sizeBucket
	f.tree.AscendGreaterOrEqual(&sizeBucket{size: size}, func(item *sizeBucket) bool {
		found = item
		return false
	})
	if found == nil {
		return Block{}, false
	}

	blk := found.blocks[len(found.blocks)-1]
	found.blocks = found.blocks[:len(found.blocks)-1]
	if len(found.blocks) == 0 {
		f.tree.Delete(found)
	}

	return blk, true
}

func (f *freeList) put(blk Block) {
	if existing, ok := f.tree.Get(&sizeBucket{size: blk.Size}); ok {
		existing.blocks = append(existing.blocks, blk)
		return
	}

	f.tree.ReplaceOrInsert(&sizeBucket{
		size:   blk.Size,
		blocks: []Block{blk},
	})
}

func (f *freeList) clear() {
	f.tree.Clear(false)
}

func (f *freeList) regionCount() int {
	count := 0
	f.tree.Ascend(func(item *sizeBucket) bool {
		count += len(item.blocks)
		return true
	})
	return count
}

func (f *freeList) totalSize() int {
	total := 0
	f.tree.Ascend(func(item *sizeBucket) bool {
		total += item.size * len(item.blocks)
		return true
	})
	return total
}

func (f *freeList) visit(handleBlock func(blk Block) bool) {
	f.tree.Ascend(func(item *sizeBucket) bool {
		for _, blk := range item.blocks {
			if !handleBlock(blk) {
				return false
			}
		}
		return true
	})
}
