package batch

import (
	"context"

	cerrors "github.com/cockroachdb/errors"
	"github.com/vkngwrapper/quiver/bufutils"
	"github.com/vkngwrapper/quiver/bufutils/arena"
	"golang.org/x/exp/slog"
)

// provider adapts one archetype's schema onto a set of attribute streams. It
// owns the physical side of the batch: block allocation, write-back with index
// rebasing, relayout after ordering changes, and the per-frame upload.
type provider struct {
	archetype Archetype
	streams   []attributeStream
	logger    *slog.Logger
}

func newProvider(archetype Archetype, logger *slog.Logger) (*provider, error) {
	schema := archetype.Schema()
	if schema == nil {
		return nil, cerrors.Newf("batch: unknown archetype %d", int(archetype))
	}

	streams := make([]attributeStream, len(schema))
	for i, kind := range schema {
		streams[i] = newAttributeStream(kind, logger)
	}

	return &provider{
		archetype: archetype,
		streams:   streams,
		logger:    logger,
	}, nil
}

func (p *provider) attributeCount() int {
	return len(p.streams)
}

// validateData checks one Add payload against the schema: one array per
// attribute, matching kinds, and a shared element count across the vertex
// attributes.
func (p *provider) validateData(data []AttributeData) error {
	if len(data) != len(p.streams) {
		return cerrors.Wrapf(AttributeTypeMismatchError,
			"archetype %s expects %d attribute arrays, got %d",
			p.archetype, len(p.streams), len(data))
	}

	for i, attrData := range data {
		if attrData == nil || attrData.Kind() != p.streams[i].kind() {
			return cerrors.Wrapf(AttributeTypeMismatchError,
				"attribute %d of archetype %s expects %s data",
				i, p.archetype, p.streams[i].kind())
		}
	}

	return checkVertexCounts(data)
}

// checkVertexCounts verifies that every vertex attribute array holds the same
// element count. Index rebasing derives one base offset per object from the
// position stream, so diverged counts would misalign every later object's
// non-position attributes.
func checkVertexCounts(data []AttributeData) error {
	vertexCount := -1
	for i := vertexBaseAttribute; i < len(data); i++ {
		if vertexCount < 0 {
			vertexCount = data[i].Len()
		} else if data[i].Len() != vertexCount {
			return cerrors.Wrapf(MismatchedVertexCountError,
				"attribute %d has %d elements, attribute %d has %d",
				vertexBaseAttribute, vertexCount, i, data[i].Len())
		}
	}

	return nil
}

func (p *provider) allocate(obj *object) {
	for i, s := range p.streams {
		obj.blocks[i] = s.allocate(obj.data[i].Len())
	}
}

func (p *provider) free(obj *object) {
	for i, s := range p.streams {
		if obj.blocks[i] != arena.NoBlock {
			s.free(obj.blocks[i])
			obj.blocks[i] = arena.NoBlock
		}
	}
}

func (p *provider) reallocate(obj *object, attribute int) {
	p.streams[attribute].reallocate(obj.blocks[attribute], obj.data[attribute].Len())
}

// relayout rebuilds every stream's block layout to match the sorted object
// sequence. Blocks come out contiguous and ascending in draw order, so the
// index stream's live prefix is directly drawable. Every attribute of every
// object must be rewritten afterwards.
func (p *provider) relayout(sorted []ObjectID, lookup func(ObjectID) (*object, bool)) {
	for _, s := range p.streams {
		s.reset()
	}
	for _, id := range sorted {
		obj, ok := lookup(id)
		if !ok {
			continue
		}
		for i, s := range p.streams {
			obj.blocks[i] = s.allocate(obj.data[i].Len())
		}
	}

	p.logger.LogAttrs(context.Background(), slog.LevelDebug, "batch: relaid out streams",
		slog.String("archetype", p.archetype.String()),
		slog.Int("objects", len(sorted)),
	)
}

// write materializes one attribute of one object into its stream's staging
// arena. Index data is rebased by the object's offset in the vertex streams so
// object-local indices stay valid inside the shared vertex buffers.
func (p *provider) write(obj *object, attribute int) {
	indexBase := 0
	if attribute == indexAttribute && len(p.streams) > vertexBaseAttribute {
		indexBase = p.streams[vertexBaseAttribute].first(obj.blocks[vertexBaseAttribute])
	}
	p.streams[attribute].write(obj.blocks[attribute], obj.data[attribute], obj.transforms[attribute], indexBase)
}

func (p *provider) upload(dev Device) error {
	var firstErr error
	for _, s := range p.streams {
		if err := s.upload(dev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (p *provider) drawInfo() DrawInfo {
	info := DrawInfo{
		IndexBuffer: p.streams[indexAttribute].buffer(),
		IndexCount:  p.streams[indexAttribute].last(),
	}
	for _, s := range p.streams[vertexBaseAttribute:] {
		info.VertexBuffers = append(info.VertexBuffers, s.buffer())
	}
	return info
}

func (p *provider) fragmentationSize() int {
	var total int
	for _, s := range p.streams {
		total += s.fragmentation()
	}
	return total
}

func (p *provider) defragment() {
	for _, s := range p.streams {
		s.defragment()
	}
}

func (p *provider) destroy(dev Device) {
	for _, s := range p.streams {
		s.destroy(dev)
	}
}

func (p *provider) addDetailedStatistics(stats *bufutils.DetailedStatistics) {
	for _, s := range p.streams {
		s.addDetailedStatistics(stats)
	}
}

func (p *provider) validate() error {
	for i, s := range p.streams {
		if err := s.validate(); err != nil {
			return cerrors.Wrapf(err, "attribute stream %d (%s)", i, s.kind())
		}
	}
	return nil
}
