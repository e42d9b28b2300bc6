package batch

import (
	cerrors "github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/quiver/bufutils"
	"github.com/vkngwrapper/quiver/bufutils/arena"
	"golang.org/x/exp/slog"
)

// attributeStream binds one logical attribute to one physical buffer: a CPU
// staging arena that blocks are suballocated from, a dirty-range tracker, and
// the GPU buffer the dirty span is uploaded to. The concrete element type is
// fixed per stream by the archetype schema.
type attributeStream interface {
	kind() AttributeKind
	allocate(size int) arena.Handle
	reallocate(h arena.Handle, size int)
	free(h arena.Handle)
	reset()
	first(h arena.Handle) int
	last() int
	fragmentation() int
	defragment()

	write(h arena.Handle, data AttributeData, transform *mgl32.Mat4, indexBase int)
	upload(dev Device) error
	buffer() Buffer
	destroy(dev Device)

	addDetailedStatistics(stats *bufutils.DetailedStatistics)
	jsonData(json jwriter.ObjectState)
	printDetailedMap(json jwriter.ObjectState)
	validate() error
}

// copyFunc materializes one object's attribute array into staging elements,
// applying the pending transform (vector streams) or rebasing object-local
// values against the shared vertex offset (index stream).
type copyFunc[T any] func(dst []T, src AttributeData, transform *mgl32.Mat4, indexBase int)

type stream[T any] struct {
	elemKind AttributeKind
	bufUsage BufferUsage

	staging *arena.Buffer[T]
	dirty   bufutils.ChangeRange

	gpu         Buffer
	gpuCapacity int

	copyElements copyFunc[T]
}

func newStream[T any](kind AttributeKind, usage BufferUsage, logger *slog.Logger, copyElements copyFunc[T]) *stream[T] {
	return &stream[T]{
		elemKind:     kind,
		bufUsage:     usage,
		staging:      arena.New[T](logger, nil),
		dirty:        bufutils.NewChangeRange(0),
		copyElements: copyElements,
	}
}

// newAttributeStream builds the concrete stream for one schema slot.
func newAttributeStream(kind AttributeKind, logger *slog.Logger) attributeStream {
	switch kind {
	case AttributeIndex:
		return newStream[uint32](kind, BufferUsageIndex, logger, copyIndices)
	case AttributeVec2:
		return newStream[mgl32.Vec2](kind, BufferUsageVertex, logger, copyVec2)
	case AttributeVec3:
		return newStream[mgl32.Vec3](kind, BufferUsageVertex, logger, copyVec3)
	case AttributeVec4:
		return newStream[mgl32.Vec4](kind, BufferUsageVertex, logger, copyVec4)
	}
	return nil
}

func (s *stream[T]) kind() AttributeKind { return s.elemKind }

func (s *stream[T]) allocate(size int) arena.Handle {
	return s.staging.Allocate(size)
}

func (s *stream[T]) reallocate(h arena.Handle, size int) {
	s.staging.Reallocate(h, size)
}

func (s *stream[T]) free(h arena.Handle) {
	s.staging.Free(h)
}

func (s *stream[T]) reset() {
	s.staging.Reset()
	s.dirty = bufutils.NewChangeRange(0)
}

func (s *stream[T]) first(h arena.Handle) int {
	return s.staging.Block(h).First
}

func (s *stream[T]) last() int {
	return s.staging.Last()
}

func (s *stream[T]) fragmentation() int {
	return s.staging.FragmentationSize()
}

func (s *stream[T]) defragment() {
	s.staging.Defragment()
}

func (s *stream[T]) write(h arena.Handle, data AttributeData, transform *mgl32.Mat4, indexBase int) {
	bufutils.DebugAssert(data.Kind() == s.elemKind,
		"stream %s: write of %s data", s.elemKind, data.Kind())

	s.copyElements(s.staging.Slice(h), data, transform, indexBase)

	blk := s.staging.Block(h)
	s.dirty.Resize(s.staging.Last())
	s.dirty.Update(blk.First, blk.First+blk.Size)
}

// upload materializes the dirty staging span into the GPU buffer. A staging
// arena that outgrew the GPU buffer forces recreation and a full re-upload.
// Buffer creation failure is fatal; only the write primitive may fail
// recoverably.
func (s *stream[T]) upload(dev Device) error {
	s.dirty.Resize(s.staging.Last())
	if s.staging.Capacity() == 0 {
		return nil
	}

	stride := bufutils.ElementSize[T]()
	if s.gpu == nil || s.gpuCapacity < s.staging.Capacity() {
		if s.gpu != nil {
			dev.DestroyBuffer(s.gpu)
		}
		buf, err := dev.CreateBuffer(s.bufUsage, s.staging.Capacity()*stride)
		if err != nil {
			panic(cerrors.Wrapf(err, "batch: failed to create %s buffer of %d bytes",
				s.bufUsage, s.staging.Capacity()*stride))
		}
		s.gpu = buf
		s.gpuCapacity = s.staging.Capacity()
		s.dirty.UpdateAll()
	}

	rng, ok := s.dirty.Range()
	if !ok || rng.Count() == 0 {
		s.dirty.Reset()
		return nil
	}

	data := bufutils.AsBytes(s.staging.Data()[rng.First:rng.End])
	if mapped, isMapped := dev.(MappableDevice); isMapped {
		mem, err := mapped.OpenMapped(s.gpu)
		if err != nil {
			return err
		}
		copy(mem[rng.First*stride:], data)
		if err := mapped.CloseMapped(s.gpu); err != nil {
			return err
		}
	} else if err := dev.WriteBuffer(s.gpu, rng.First*stride, data); err != nil {
		return err
	}

	s.dirty.Reset()
	return nil
}

func (s *stream[T]) buffer() Buffer {
	return s.gpu
}

func (s *stream[T]) destroy(dev Device) {
	if s.gpu != nil {
		dev.DestroyBuffer(s.gpu)
		s.gpu = nil
		s.gpuCapacity = 0
	}
}

func (s *stream[T]) addDetailedStatistics(stats *bufutils.DetailedStatistics) {
	s.staging.AddDetailedStatistics(stats)
}

func (s *stream[T]) jsonData(json jwriter.ObjectState) {
	json.Name("Kind").String(s.elemKind.String())
	s.staging.ArenaJsonData(json)
}

func (s *stream[T]) printDetailedMap(json jwriter.ObjectState) {
	json.Name("Kind").String(s.elemKind.String())
	s.staging.PrintDetailedMap(json)
}

func (s *stream[T]) validate() error {
	return s.staging.Validate()
}

func copyIndices(dst []uint32, src AttributeData, _ *mgl32.Mat4, indexBase int) {
	indices := src.(IndexData)
	for i, v := range indices {
		dst[i] = v + uint32(indexBase)
	}
}

func copyVec2(dst []mgl32.Vec2, src AttributeData, transform *mgl32.Mat4, _ int) {
	vecs := src.(Vec2Data)
	if transform == nil {
		copy(dst, vecs)
		return
	}
	for i, v := range vecs {
		moved := transform.Mul4x1(mgl32.Vec4{v[0], v[1], 0, 1})
		dst[i] = mgl32.Vec2{moved[0], moved[1]}
	}
}

func copyVec3(dst []mgl32.Vec3, src AttributeData, transform *mgl32.Mat4, _ int) {
	vecs := src.(Vec3Data)
	if transform == nil {
		copy(dst, vecs)
		return
	}
	for i, v := range vecs {
		dst[i] = mgl32.TransformCoordinate(v, *transform)
	}
}

func copyVec4(dst []mgl32.Vec4, src AttributeData, transform *mgl32.Mat4, _ int) {
	vecs := src.(Vec4Data)
	if transform == nil {
		copy(dst, vecs)
		return
	}
	for i, v := range vecs {
		dst[i] = transform.Mul4x1(v)
	}
}
