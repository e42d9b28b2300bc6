package batch

// BufferUsage tells the device what a physical buffer will bind as.
type BufferUsage uint32

const (
	// BufferUsageIndex marks a buffer that binds as an index buffer.
	BufferUsageIndex BufferUsage = iota
	// BufferUsageVertex marks a buffer that binds as a vertex buffer.
	BufferUsageVertex
)

var bufferUsageMapping = map[BufferUsage]string{
	BufferUsageIndex:  "BufferUsageIndex",
	BufferUsageVertex: "BufferUsageVertex",
}

func (u BufferUsage) String() string {
	return bufferUsageMapping[u]
}

// Buffer is an opaque handle to one GPU-resident buffer created by a Device.
// Draw code downcasts it to the adapter's concrete type to bind it.
type Buffer interface {
	// ByteSize returns the size the buffer was created with.
	ByteSize() int
}

// Device is the surrounding graphics layer's buffer-resource factory and
// upload primitive. The batching core calls it once per frame at most, from
// the thread that owns the Batch; implementations do not need to be
// thread-safe for this consumer.
type Device interface {
	// CreateBuffer allocates a GPU buffer of byteSize bytes for the given
	// usage. The contents are undefined until written.
	CreateBuffer(usage BufferUsage, byteSize int) (Buffer, error)
	// WriteBuffer copies data into the buffer at byteOffset.
	WriteBuffer(buf Buffer, byteOffset int, data []byte) error
	// DestroyBuffer releases a buffer created by this device.
	DestroyBuffer(buf Buffer)
}

// MappableDevice is implemented by devices whose buffers live in host-visible
// memory. When a Device also implements MappableDevice, flush opens the mapped
// region once per buffer, writes dirty ranges with plain copies, and closes
// it, instead of issuing one WriteBuffer per range.
type MappableDevice interface {
	// OpenMapped maps the buffer and returns its full byte contents.
	OpenMapped(buf Buffer) ([]byte, error)
	// CloseMapped unmaps a buffer previously opened with OpenMapped, making
	// the writes visible to the GPU.
	CloseMapped(buf Buffer) error
}
