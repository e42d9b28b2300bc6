package batch

import (
	"context"

	cerrors "github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/quiver/bufutils"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// objectManager owns the logical object set of one Batch: the id->object map,
// the dirty-attribute bookkeeping, and the draw-order sequence. It applies the
// drained command log and then drives write-back through the provider.
type objectManager struct {
	objects *swiss.Map[ObjectID, *object]
	dirty   map[ObjectID]uint32

	// resized holds objects whose vertex-attribute counts changed this frame.
	// Their counts are re-checked once the whole command log has applied, so a
	// producer may replace every vertex attribute to a new count within one
	// frame without tripping the shared-count invariant mid-sequence.
	resized map[ObjectID]struct{}

	sorted    []ObjectID
	needsSort bool

	logger *slog.Logger
}

func newObjectManager(logger *slog.Logger) *objectManager {
	return &objectManager{
		objects: swiss.NewMap[ObjectID, *object](61),
		dirty:   map[ObjectID]uint32{},
		resized: map[ObjectID]struct{}{},
		logger:  logger,
	}
}

func (m *objectManager) objectCount() int {
	return m.objects.Count()
}

func (m *objectManager) lookup(id ObjectID) (*object, bool) {
	return m.objects.Get(id)
}

func (m *objectManager) markDirty(id ObjectID, attribute int) {
	m.dirty[id] |= 1 << attribute
}

// refreshAttribute marks one attribute dirty on every live object, forcing a
// full rewrite of that stream at the next write-back.
func (m *objectManager) refreshAttribute(attribute int) {
	m.objects.Iter(func(id ObjectID, obj *object) bool {
		bufutils.DebugAssert(attribute >= 0 && attribute < len(obj.data),
			"Refresh on attribute %d of a %d-attribute object", attribute, len(obj.data))
		if attribute >= 0 && attribute < len(obj.data) {
			m.markDirty(id, attribute)
		}
		return false
	})
}

// apply performs one command's state transition. Commands naming unknown ids
// are silent no-ops. Payload validation failures are reported to the caller
// and leave the object set unchanged.
func (m *objectManager) apply(cmd *command, p *provider) error {
	switch cmd.kind {
	case commandAdd:
		if err := p.validateData(cmd.data); err != nil {
			m.logger.LogAttrs(context.Background(), slog.LevelError, "batch: rejected Add",
				slog.Uint64("object.id", uint64(cmd.id)),
				slog.String("error", err.Error()),
			)
			return err
		}

		obj := newObject(cmd.id, cmd.order, cmd.data)
		p.allocate(obj)
		m.objects.Put(cmd.id, obj)
		m.dirty[cmd.id] = 1<<len(obj.data) - 1
		m.needsSort = true

	case commandRemove:
		obj, ok := m.objects.Get(cmd.id)
		if !ok {
			return nil
		}

		p.free(obj)
		m.objects.Delete(cmd.id)
		delete(m.dirty, cmd.id)
		delete(m.resized, cmd.id)
		m.needsSort = true

	case commandReplace:
		obj, ok := m.objects.Get(cmd.id)
		if !ok {
			return nil
		}
		if cmd.attribute < 0 || cmd.attribute >= len(obj.data) {
			bufutils.DebugAssert(false,
				"Replace on attribute %d of a %d-attribute object", cmd.attribute, len(obj.data))
			return nil
		}

		if cmd.payload == nil || cmd.payload.Kind() != obj.data[cmd.attribute].Kind() {
			return cerrors.Wrapf(AttributeTypeMismatchError,
				"Replace on attribute %d of object %d expects %s data",
				cmd.attribute, cmd.id, obj.data[cmd.attribute].Kind())
		}

		countChanged := cmd.payload.Len() != obj.data[cmd.attribute].Len()
		obj.data[cmd.attribute] = cmd.payload
		if countChanged {
			p.reallocate(obj, cmd.attribute)
			m.needsSort = true
			if cmd.attribute >= vertexBaseAttribute {
				m.resized[cmd.id] = struct{}{}
			}
		}
		m.markDirty(cmd.id, cmd.attribute)

	case commandTransform:
		obj, ok := m.objects.Get(cmd.id)
		if !ok {
			return nil
		}
		if cmd.attribute < 0 || cmd.attribute >= len(obj.data) {
			bufutils.DebugAssert(false,
				"Transform on attribute %d of a %d-attribute object", cmd.attribute, len(obj.data))
			return nil
		}

		if cmd.attribute == indexAttribute {
			return cerrors.Wrapf(AttributeTypeMismatchError,
				"Transform on the index stream of object %d", cmd.id)
		}

		if existing := obj.transforms[cmd.attribute]; existing != nil {
			composed := cmd.transform.Mul4(*existing)
			obj.transforms[cmd.attribute] = &composed
		} else {
			pending := cmd.transform
			obj.transforms[cmd.attribute] = &pending
		}
		m.markDirty(cmd.id, cmd.attribute)

	case commandRefresh:
		m.refreshAttribute(cmd.attribute)
	}

	return nil
}

// flush settles the object set into the streams: objects whose vertex counts
// diverged over the frame are dropped, a pending ordering change regenerates
// the draw order and relays out every stream, then each dirty attribute of
// each touched object is written back. The first count violation is returned.
func (m *objectManager) flush(p *provider) error {
	var firstErr error
	for id := range m.resized {
		if obj, ok := m.objects.Get(id); ok {
			if err := checkVertexCounts(obj.data); err != nil {
				m.logger.LogAttrs(context.Background(), slog.LevelError,
					"batch: dropped object with diverged vertex counts",
					slog.Uint64("object.id", uint64(id)),
					slog.String("error", err.Error()),
				)
				p.free(obj)
				m.objects.Delete(id)
				delete(m.dirty, id)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		delete(m.resized, id)
	}

	if m.needsSort {
		m.regenerateOrder()
		p.relayout(m.sorted, m.lookup)
		for attribute := 0; attribute < p.attributeCount(); attribute++ {
			m.refreshAttribute(attribute)
		}
		m.needsSort = false
	}

	for id, mask := range m.dirty {
		if obj, ok := m.objects.Get(id); ok {
			for attribute := range obj.data {
				if mask&(1<<attribute) != 0 {
					p.write(obj, attribute)
				}
			}
		}
		delete(m.dirty, id)
	}

	return firstErr
}

// regenerateOrder rebuilds the draw sequence sorted by order, with id as the
// tiebreaker so equal-order objects keep a stable relative position.
func (m *objectManager) regenerateOrder() {
	m.sorted = m.sorted[:0]
	m.objects.Iter(func(id ObjectID, _ *object) bool {
		m.sorted = append(m.sorted, id)
		return false
	})

	slices.SortFunc(m.sorted, func(a, b ObjectID) bool {
		objA, _ := m.objects.Get(a)
		objB, _ := m.objects.Get(b)
		if objA.order != objB.order {
			return objA.order < objB.order
		}
		return a < b
	})
}
