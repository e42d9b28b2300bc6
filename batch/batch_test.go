package batch_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/quiver/batch"
	mock_batch "github.com/vkngwrapper/quiver/batch/mocks"
	"go.uber.org/mock/gomock"
)

type fakeBuffer struct {
	usage batch.BufferUsage
	bytes []byte
}

func (b *fakeBuffer) ByteSize() int { return len(b.bytes) }

type fakeDevice struct {
	created   []*fakeBuffer
	destroyed int
	writes    int
}

func (d *fakeDevice) CreateBuffer(usage batch.BufferUsage, byteSize int) (batch.Buffer, error) {
	buf := &fakeBuffer{usage: usage, bytes: make([]byte, byteSize)}
	d.created = append(d.created, buf)
	return buf, nil
}

func (d *fakeDevice) WriteBuffer(buf batch.Buffer, byteOffset int, data []byte) error {
	d.writes++
	copy(buf.(*fakeBuffer).bytes[byteOffset:], data)
	return nil
}

func (d *fakeDevice) DestroyBuffer(buf batch.Buffer) {
	d.destroyed++
}

type fakeMappedDevice struct {
	fakeDevice
	opens  int
	closes int
}

func (d *fakeMappedDevice) OpenMapped(buf batch.Buffer) ([]byte, error) {
	d.opens++
	return buf.(*fakeBuffer).bytes, nil
}

func (d *fakeMappedDevice) CloseMapped(buf batch.Buffer) error {
	d.closes++
	return nil
}

func indexContents(t *testing.T, buf batch.Buffer, count int) []uint32 {
	t.Helper()
	raw := buf.(*fakeBuffer).bytes
	require.GreaterOrEqual(t, len(raw), count*4)

	indices := make([]uint32, count)
	for i := 0; i < count; i++ {
		indices[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return indices
}

func vec2Contents(t *testing.T, buf batch.Buffer, count int) []mgl32.Vec2 {
	t.Helper()
	raw := buf.(*fakeBuffer).bytes
	require.GreaterOrEqual(t, len(raw), count*8)

	vecs := make([]mgl32.Vec2, count)
	for i := 0; i < count; i++ {
		vecs[i] = mgl32.Vec2{
			math.Float32frombits(binary.LittleEndian.Uint32(raw[i*8:])),
			math.Float32frombits(binary.LittleEndian.Uint32(raw[i*8+4:])),
		}
	}
	return vecs
}

func vec3Contents(t *testing.T, buf batch.Buffer, count int) []mgl32.Vec3 {
	t.Helper()
	raw := buf.(*fakeBuffer).bytes
	require.GreaterOrEqual(t, len(raw), count*12)

	vecs := make([]mgl32.Vec3, count)
	for i := 0; i < count; i++ {
		vecs[i] = mgl32.Vec3{
			math.Float32frombits(binary.LittleEndian.Uint32(raw[i*12:])),
			math.Float32frombits(binary.LittleEndian.Uint32(raw[i*12+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(raw[i*12+8:])),
		}
	}
	return vecs
}

func spriteData(indices []uint32, positions []mgl32.Vec2, colors []mgl32.Vec4) []batch.AttributeData {
	return []batch.AttributeData{
		batch.IndexData(indices),
		batch.Vec2Data(positions),
		batch.Vec4Data(colors),
	}
}

func solidColors(count int) []mgl32.Vec4 {
	colors := make([]mgl32.Vec4, count)
	for i := range colors {
		colors[i] = mgl32.Vec4{1, 1, 1, 1}
	}
	return colors
}

func TestBatchFlushWritesEachDirtyStreamOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := mock_batch.NewMockDevice(ctrl)

	indexBuf := mock_batch.NewMockBuffer(ctrl)
	posBuf := mock_batch.NewMockBuffer(ctrl)
	colorBuf := mock_batch.NewMockBuffer(ctrl)

	device.EXPECT().CreateBuffer(batch.BufferUsageIndex, 24).Return(indexBuf, nil)
	device.EXPECT().CreateBuffer(batch.BufferUsageVertex, 48).Return(posBuf, nil)
	device.EXPECT().CreateBuffer(batch.BufferUsageVertex, 96).Return(colorBuf, nil)
	device.EXPECT().WriteBuffer(indexBuf, 0, gomock.Len(12)).Return(nil)
	device.EXPECT().WriteBuffer(posBuf, 0, gomock.Len(24)).Return(nil)
	device.EXPECT().WriteBuffer(colorBuf, 0, gomock.Len(48)).Return(nil)

	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)

	info, err := b.Flush()
	require.NoError(t, err)
	require.Equal(t, 3, info.IndexCount)
	require.Same(t, batch.Buffer(indexBuf), info.IndexBuffer)
	require.Len(t, info.VertexBuffers, 2)
	require.Same(t, batch.Buffer(posBuf), info.VertexBuffers[0])
	require.Same(t, batch.Buffer(colorBuf), info.VertexBuffers[1])

	// Nothing changed, so the second flush must not touch the device.
	info, err = b.Flush()
	require.NoError(t, err)
	require.Equal(t, 3, info.IndexCount)
}

func TestBatchRebasesIndicesPerObject(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{10, 0}, {11, 0}, {12, 0}},
		solidColors(3),
	), 1)
	q.Add(spriteData(
		[]uint32{0, 2, 1},
		[]mgl32.Vec2{{20, 0}, {21, 0}, {22, 0}},
		solidColors(3),
	), 2)

	info, err := b.Flush()
	require.NoError(t, err)
	require.Equal(t, 6, info.IndexCount)

	// The second object's vertices start at element 3, so its local indices
	// come out shifted by 3.
	require.Equal(t, []uint32{0, 1, 2, 3, 5, 4}, indexContents(t, info.IndexBuffer, 6))
	require.Equal(t,
		[]mgl32.Vec2{{10, 0}, {11, 0}, {12, 0}, {20, 0}, {21, 0}, {22, 0}},
		vec2Contents(t, info.VertexBuffers[0], 6))
}

func TestBatchDrawOrderControlsLayout(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{10, 0}, {11, 0}, {12, 0}},
		solidColors(3),
	), 5)
	q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{20, 0}, {21, 0}, {22, 0}},
		solidColors(3),
	), 1)

	info, err := b.Flush()
	require.NoError(t, err)

	// Lower order draws first, so the second object's vertices lead.
	require.Equal(t,
		[]mgl32.Vec2{{20, 0}, {21, 0}, {22, 0}, {10, 0}, {11, 0}, {12, 0}},
		vec2Contents(t, info.VertexBuffers[0], 6))
}

func TestBatchEqualOrderBreaksTiesByID(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	first := b.CreateQueue()
	second := b.CreateQueue()

	firstID := first.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{10, 0}, {11, 0}, {12, 0}},
		solidColors(3),
	), 7)
	secondID := second.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{20, 0}, {21, 0}, {22, 0}},
		solidColors(3),
	), 7)
	require.Less(t, firstID, secondID)

	info, err := b.Flush()
	require.NoError(t, err)
	require.Equal(t,
		[]mgl32.Vec2{{10, 0}, {11, 0}, {12, 0}, {20, 0}, {21, 0}, {22, 0}},
		vec2Contents(t, info.VertexBuffers[0], 6))
}

func TestBatchRemoveCompactsRemainingObjects(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	firstID := q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{10, 0}, {11, 0}, {12, 0}},
		solidColors(3),
	), 1)
	q.Add(spriteData(
		[]uint32{0, 2, 1},
		[]mgl32.Vec2{{20, 0}, {21, 0}, {22, 0}},
		solidColors(3),
	), 2)

	_, err = b.Flush()
	require.NoError(t, err)
	require.Equal(t, 2, b.ObjectCount())

	q.Remove(firstID)
	info, err := b.Flush()
	require.NoError(t, err)

	require.Equal(t, 1, b.ObjectCount())
	require.Equal(t, 3, info.IndexCount)
	require.Equal(t, []uint32{0, 2, 1}, indexContents(t, info.IndexBuffer, 3))
	require.Equal(t,
		[]mgl32.Vec2{{20, 0}, {21, 0}, {22, 0}},
		vec2Contents(t, info.VertexBuffers[0], 3))
	require.Equal(t, 0, b.FragmentationSize())
	require.NoError(t, b.Validate())
}

func TestBatchRemoveUnknownIDIsNoOp(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Remove(batch.ObjectID(12345))

	_, err = b.Flush()
	require.NoError(t, err)
	require.Equal(t, 0, b.ObjectCount())
}

func TestBatchReplaceSameCountOnlyWritesThatStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	device := mock_batch.NewMockDevice(ctrl)

	indexBuf := mock_batch.NewMockBuffer(ctrl)
	posBuf := mock_batch.NewMockBuffer(ctrl)
	colorBuf := mock_batch.NewMockBuffer(ctrl)

	device.EXPECT().CreateBuffer(batch.BufferUsageIndex, gomock.Any()).Return(indexBuf, nil)
	device.EXPECT().CreateBuffer(batch.BufferUsageVertex, 48).Return(posBuf, nil)
	device.EXPECT().CreateBuffer(batch.BufferUsageVertex, 96).Return(colorBuf, nil)
	device.EXPECT().WriteBuffer(indexBuf, gomock.Any(), gomock.Any()).Return(nil)
	device.EXPECT().WriteBuffer(posBuf, gomock.Any(), gomock.Any()).Return(nil)
	device.EXPECT().WriteBuffer(colorBuf, gomock.Any(), gomock.Any()).Return(nil).Times(2)

	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	id := q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)

	_, err = b.Flush()
	require.NoError(t, err)

	q.Replace(id, 2, batch.Vec4Data{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}})
	info, err := b.Flush()
	require.NoError(t, err)
	require.Equal(t, 3, info.IndexCount)
}

func TestBatchReplaceCountChangeReallocates(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	id := q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)

	info, err := b.Flush()
	require.NoError(t, err)
	require.Equal(t, 3, info.IndexCount)

	q.Replace(id, 0, batch.IndexData{0, 1, 2, 2, 1, 0})
	info, err = b.Flush()
	require.NoError(t, err)

	require.Equal(t, 6, info.IndexCount)
	require.Equal(t, []uint32{0, 1, 2, 2, 1, 0}, indexContents(t, info.IndexBuffer, 6))
	require.NoError(t, b.Validate())
}

func TestBatchReplaceDivergedVertexCountsDropsObject(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	firstID := q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{10, 0}, {11, 0}, {12, 0}},
		solidColors(3),
	), 1)
	q.Add(spriteData(
		[]uint32{0, 2, 1},
		[]mgl32.Vec2{{20, 0}, {21, 0}, {22, 0}},
		solidColors(3),
	), 2)

	_, err = b.Flush()
	require.NoError(t, err)

	// Grow only the position array; the color array stays at 3 elements, so
	// the object's vertex streams no longer share one base offset.
	q.Replace(firstID, 1, batch.Vec2Data{{10, 0}, {11, 0}, {12, 0}, {13, 0}})
	info, err := b.Flush()
	require.ErrorIs(t, err, batch.MismatchedVertexCountError)

	// The diverged object is dropped; the survivor's streams stay aligned.
	require.Equal(t, 1, b.ObjectCount())
	require.Equal(t, 3, info.IndexCount)
	require.Equal(t, []uint32{0, 2, 1}, indexContents(t, info.IndexBuffer, 3))
	require.Equal(t,
		[]mgl32.Vec2{{20, 0}, {21, 0}, {22, 0}},
		vec2Contents(t, info.VertexBuffers[0], 3))
	require.NoError(t, b.Validate())

	_, err = b.Flush()
	require.NoError(t, err)
}

func TestBatchReplaceAllVertexAttributesToNewCount(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	id := q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)

	_, err = b.Flush()
	require.NoError(t, err)

	// Replacing every vertex attribute to the new count within one frame is
	// legal; the shared-count invariant only has to hold once the whole
	// command log has applied.
	q.Replace(id, 0, batch.IndexData{0, 1, 2, 2, 3, 0})
	q.Replace(id, 1, batch.Vec2Data{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	q.Replace(id, 2, batch.Vec4Data(solidColors(4)))

	info, err := b.Flush()
	require.NoError(t, err)
	require.Equal(t, 1, b.ObjectCount())
	require.Equal(t, 6, info.IndexCount)
	require.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, indexContents(t, info.IndexBuffer, 6))
	require.Equal(t,
		[]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		vec2Contents(t, info.VertexBuffers[0], 4))
	require.NoError(t, b.Validate())
}

func TestBatchReplaceKindMismatch(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	id := q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)

	_, err = b.Flush()
	require.NoError(t, err)

	q.Replace(id, 1, batch.Vec3Data{{0, 0, 0}})
	_, err = b.Flush()
	require.ErrorIs(t, err, batch.AttributeTypeMismatchError)

	// The object keeps its previous contents.
	info, err := b.Flush()
	require.NoError(t, err)
	require.Equal(t, 3, info.IndexCount)
}

func TestBatchTransformAppliesAtWriteBack(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	id := q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{1, 0}, {0, 1}, {1, 1}},
		solidColors(3),
	), 0)

	info, err := b.Flush()
	require.NoError(t, err)
	require.Equal(t,
		[]mgl32.Vec2{{1, 0}, {0, 1}, {1, 1}},
		vec2Contents(t, info.VertexBuffers[0], 3))

	q.Transform(id, 1, mgl32.Translate3D(5, 7, 0))
	info, err = b.Flush()
	require.NoError(t, err)
	require.Equal(t,
		[]mgl32.Vec2{{6, 7}, {5, 8}, {6, 8}},
		vec2Contents(t, info.VertexBuffers[0], 3))

	// Transforms compose with what is already applied rather than replacing it.
	q.Transform(id, 1, mgl32.Translate3D(5, 7, 0))
	info, err = b.Flush()
	require.NoError(t, err)
	require.Equal(t,
		[]mgl32.Vec2{{11, 14}, {10, 15}, {11, 15}},
		vec2Contents(t, info.VertexBuffers[0], 3))
}

func TestBatchTransformVec3Positions(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeLine, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	id := q.Add([]batch.AttributeData{
		batch.IndexData{0, 1},
		batch.Vec3Data{{1, 0, 0}, {0, 1, 0}},
	}, 0)

	_, err = b.Flush()
	require.NoError(t, err)

	q.Transform(id, 1, mgl32.Translate3D(5, 7, 9))
	info, err := b.Flush()
	require.NoError(t, err)
	require.Equal(t,
		[]mgl32.Vec3{{6, 7, 9}, {5, 8, 9}},
		vec3Contents(t, info.VertexBuffers[0], 2))
}

func TestBatchTransformIndexStreamFails(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	id := q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)

	q.Transform(id, 0, mgl32.Translate3D(1, 0, 0))
	info, err := b.Flush()
	require.ErrorIs(t, err, batch.AttributeTypeMismatchError)

	// The add still went through.
	require.Equal(t, 1, b.ObjectCount())
	require.Equal(t, 3, info.IndexCount)
}

func TestBatchAddRejectsWrongAttributeKinds(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Add([]batch.AttributeData{
		batch.IndexData{0, 1, 2},
		batch.Vec3Data{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		batch.Vec4Data(solidColors(3)),
	}, 0)
	q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)

	info, err := b.Flush()
	require.ErrorIs(t, err, batch.AttributeTypeMismatchError)

	// The rejected command is dropped, later commands still apply.
	require.Equal(t, 1, b.ObjectCount())
	require.Equal(t, 3, info.IndexCount)
}

func TestBatchAddRejectsMismatchedVertexCounts(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(4),
	), 0)

	_, err = b.Flush()
	require.ErrorIs(t, err, batch.MismatchedVertexCountError)
	require.Equal(t, 0, b.ObjectCount())
}

func TestBatchRefreshRewritesAttribute(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)

	_, err = b.Flush()
	require.NoError(t, err)
	writesAfterAdd := device.writes

	q.Refresh(1)
	_, err = b.Flush()
	require.NoError(t, err)
	require.Equal(t, writesAfterAdd+1, device.writes)
}

func TestBatchRefreshOutOfRangeIsNoOp(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)

	_, err = b.Flush()
	require.NoError(t, err)
	writesAfterAdd := device.writes

	q.Refresh(7)
	_, err = b.Flush()
	require.NoError(t, err)
	require.Equal(t, writesAfterAdd, device.writes)
}

func TestBatchMappedDeviceUsesMappedPath(t *testing.T) {
	device := &fakeMappedDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{10, 0}, {11, 0}, {12, 0}},
		solidColors(3),
	), 0)

	info, err := b.Flush()
	require.NoError(t, err)

	require.Equal(t, 0, device.writes)
	require.Equal(t, 3, device.opens)
	require.Equal(t, 3, device.closes)
	require.Equal(t, []uint32{0, 1, 2}, indexContents(t, info.IndexBuffer, 3))
	require.Equal(t,
		[]mgl32.Vec2{{10, 0}, {11, 0}, {12, 0}},
		vec2Contents(t, info.VertexBuffers[0], 3))
}

func TestBatchQueuesDrainInCreationOrder(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	first := b.CreateQueue()
	second := b.CreateQueue()

	// Enqueue the removal before the add lands in the later queue; both settle
	// in the same flush.
	id := first.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)
	second.Remove(id)

	_, err = b.Flush()
	require.NoError(t, err)
	require.Equal(t, 0, b.ObjectCount())
}

func TestBatchDestroyReleasesBuffers(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Add(spriteData(
		[]uint32{0, 1, 2},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		solidColors(3),
	), 0)

	_, err = b.Flush()
	require.NoError(t, err)
	require.Len(t, device.created, 3)

	b.Destroy()
	require.Equal(t, 3, device.destroyed)
}

func TestBatchNewValidation(t *testing.T) {
	_, err := batch.New(nil, batch.ArchetypeSprite2D, batch.CreateOptions{})
	require.Error(t, err)

	_, err = batch.New(&fakeDevice{}, batch.Archetype(99), batch.CreateOptions{})
	require.Error(t, err)
}

func TestBatchBuildStatsString(t *testing.T) {
	device := &fakeDevice{}
	b, err := batch.New(device, batch.ArchetypeMesh3D, batch.CreateOptions{})
	require.NoError(t, err)

	q := b.CreateQueue()
	q.Add([]batch.AttributeData{
		batch.IndexData{0, 1, 2},
		batch.Vec3Data{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		batch.Vec3Data{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		batch.Vec2Data{{0, 0}, {1, 0}, {0, 1}},
	}, 0)

	_, err = b.Flush()
	require.NoError(t, err)

	summary := b.BuildStatsString(false)
	require.Contains(t, summary, `"Archetype":"ArchetypeMesh3D"`)
	require.Contains(t, summary, `"Streams"`)

	detailed := b.BuildStatsString(true)
	require.Contains(t, detailed, `"Blocks"`)
}
