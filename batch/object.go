package batch

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/quiver/bufutils/arena"
)

// ObjectID is the opaque identity of one draw object inside a Batch. Ids are
// issued by Queue.Add and never reused.
type ObjectID uint64

// NoObject is the ObjectID value that does not map to any object.
const NoObject ObjectID = 0

// object is the logical side of one draw object: its attribute arrays, its
// pending per-attribute transforms, and the block each attribute occupies in
// its stream's arena. Transforms are applied during write-back and are never
// baked into the stored arrays.
type object struct {
	id    ObjectID
	order int

	data       []AttributeData
	transforms []*mgl32.Mat4
	blocks     []arena.Handle
}

func newObject(id ObjectID, order int, data []AttributeData) *object {
	return &object{
		id:         id,
		order:      order,
		data:       data,
		transforms: make([]*mgl32.Mat4, len(data)),
		blocks:     make([]arena.Handle, len(data)),
	}
}

// vertexCount returns the shared element count of the object's vertex
// attribute arrays.
func (o *object) vertexCount() int {
	if len(o.data) <= vertexBaseAttribute {
		return 0
	}
	return o.data[vertexBaseAttribute].Len()
}
