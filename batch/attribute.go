package batch

import "github.com/go-gl/mathgl/mgl32"

// AttributeKind identifies the element type of one logical attribute array.
type AttributeKind uint32

const (
	// AttributeIndex is a stream of u32 vertex indices, local to the object
	// until write-back rebases them against the shared vertex buffer.
	AttributeIndex AttributeKind = iota
	// AttributeVec2 is a stream of 2-component float vectors.
	AttributeVec2
	// AttributeVec3 is a stream of 3-component float vectors.
	AttributeVec3
	// AttributeVec4 is a stream of 4-component float vectors.
	AttributeVec4
)

var attributeKindMapping = map[AttributeKind]string{
	AttributeIndex: "AttributeIndex",
	AttributeVec2:  "AttributeVec2",
	AttributeVec3:  "AttributeVec3",
	AttributeVec4:  "AttributeVec4",
}

func (k AttributeKind) String() string {
	return attributeKindMapping[k]
}

// AttributeData is one logical attribute array of a batch object. The concrete
// type determines which stream the array may be written to.
type AttributeData interface {
	Kind() AttributeKind
	Len() int
}

// IndexData is an object-local index array.
type IndexData []uint32

func (d IndexData) Kind() AttributeKind { return AttributeIndex }
func (d IndexData) Len() int            { return len(d) }

// Vec2Data is a 2-component vertex attribute array.
type Vec2Data []mgl32.Vec2

func (d Vec2Data) Kind() AttributeKind { return AttributeVec2 }
func (d Vec2Data) Len() int            { return len(d) }

// Vec3Data is a 3-component vertex attribute array.
type Vec3Data []mgl32.Vec3

func (d Vec3Data) Kind() AttributeKind { return AttributeVec3 }
func (d Vec3Data) Len() int            { return len(d) }

// Vec4Data is a 4-component vertex attribute array.
type Vec4Data []mgl32.Vec4

func (d Vec4Data) Kind() AttributeKind { return AttributeVec4 }
func (d Vec4Data) Len() int            { return len(d) }
