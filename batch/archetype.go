package batch

// Archetype selects the fixed attribute layout of a Batch. The set is closed:
// every mesh family the renderer draws maps to one of these variants, and the
// per-archetype behavior is dispatched by switch rather than per-type
// implementations.
type Archetype uint32

const (
	// ArchetypeSprite2D draws 2D quads and shapes: index, position (vec2),
	// color (vec4).
	ArchetypeSprite2D Archetype = iota
	// ArchetypeMesh3D draws lit 3D geometry: index, position (vec3), normal
	// (vec3), texcoord (vec2).
	ArchetypeMesh3D
	// ArchetypeLine draws line lists: index, position (vec3).
	ArchetypeLine
	// ArchetypeBillboard draws camera-facing quads: index, center (vec3),
	// per-vertex origin offset (vec2), texcoord (vec2). The offset attribute
	// lets the vertex stage expand the quad in view space.
	ArchetypeBillboard
)

var archetypeMapping = map[Archetype]string{
	ArchetypeSprite2D:  "ArchetypeSprite2D",
	ArchetypeMesh3D:    "ArchetypeMesh3D",
	ArchetypeLine:      "ArchetypeLine",
	ArchetypeBillboard: "ArchetypeBillboard",
}

func (a Archetype) String() string {
	return archetypeMapping[a]
}

// indexAttribute is the attribute index of the index stream in every schema.
const indexAttribute = 0

// vertexBaseAttribute is the vertex stream whose block offset rebases the
// object's index values. All vertex streams of an object share one element
// count, so they share one base.
const vertexBaseAttribute = 1

// Schema returns the attribute kinds of the archetype. Attribute 0 is always
// the index stream; the remaining entries are vertex streams. A nil return
// means the archetype value is unknown.
func (a Archetype) Schema() []AttributeKind {
	switch a {
	case ArchetypeSprite2D:
		return []AttributeKind{AttributeIndex, AttributeVec2, AttributeVec4}
	case ArchetypeMesh3D:
		return []AttributeKind{AttributeIndex, AttributeVec3, AttributeVec3, AttributeVec2}
	case ArchetypeLine:
		return []AttributeKind{AttributeIndex, AttributeVec3}
	case ArchetypeBillboard:
		return []AttributeKind{AttributeIndex, AttributeVec3, AttributeVec2, AttributeVec2}
	}
	return nil
}
