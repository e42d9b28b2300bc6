package batch

import (
	cerrors "github.com/cockroachdb/errors"
	"github.com/vkngwrapper/quiver/bufutils"
	"golang.org/x/exp/slog"
)

// CreateOptions contains optional parameters for creating a new Batch.
type CreateOptions struct {
	// Logger is the target for debug diagnostics from the batching core and
	// its arenas. When nil, slog.Default() is used.
	Logger *slog.Logger
}

// DrawInfo is the drawable state of a Batch after a Flush: bind the buffers,
// draw IndexCount indices from offset 0.
type DrawInfo struct {
	// IndexBuffer is the shared index buffer. It is nil until a Flush has
	// uploaded at least one object.
	IndexBuffer Buffer
	// IndexCount is the number of live uint32 indices to draw.
	IndexCount int
	// VertexBuffers holds one buffer per vertex attribute, in schema order.
	VertexBuffers []Buffer
}

// Batch groups many small draw objects of one archetype into shared index and
// vertex buffers so they can be drawn with a single call. Producers enqueue
// edits through Queues; Flush settles the pending edits, uploads the dirty
// byte ranges, and returns the drawable state.
//
// A Batch and all of its Queues must be used from a single thread.
type Batch struct {
	device    Device
	archetype Archetype

	manager  *objectManager
	provider *provider
	queues   []*Queue

	lastID ObjectID
	logger *slog.Logger
}

// New creates a Batch for one archetype on the provided device.
func New(device Device, archetype Archetype, options CreateOptions) (*Batch, error) {
	if device == nil {
		return nil, cerrors.New("batch.New: device must not be nil")
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p, err := newProvider(archetype, logger)
	if err != nil {
		return nil, err
	}

	return &Batch{
		device:    device,
		archetype: archetype,
		manager:   newObjectManager(logger),
		provider:  p,
		logger:    logger,
	}, nil
}

// Archetype returns the archetype this batch was created for.
func (b *Batch) Archetype() Archetype {
	return b.archetype
}

// CreateQueue creates a new command queue feeding this batch. Queues are
// drained in creation order at each Flush.
func (b *Batch) CreateQueue() *Queue {
	q := newQueue(b)
	b.queues = append(b.queues, q)
	return q
}

// ObjectCount returns the number of live objects, not counting enqueued edits
// that have not been flushed yet.
func (b *Batch) ObjectCount() int {
	return b.manager.objectCount()
}

func (b *Batch) nextObjectID() ObjectID {
	b.lastID++
	return b.lastID
}

// Flush drains every queue, applies the pending edits, rewrites the dirty
// attribute data into the staging arenas, and uploads the dirty byte ranges
// to the device. The returned DrawInfo is valid until the next Flush.
//
// Command validation failures (AttributeTypeMismatchError,
// MismatchedVertexCountError) are recoverable: the offending command is
// dropped, the remaining commands still apply, and the first such failure is
// returned. Buffer creation failure panics.
func (b *Batch) Flush() (DrawInfo, error) {
	var firstErr error
	for _, q := range b.queues {
		err := q.drain(func(cmd *command) error {
			return b.manager.apply(cmd, b.provider)
		})
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := b.manager.flush(b.provider); err != nil && firstErr == nil {
		firstErr = err
	}

	if err := b.provider.upload(b.device); err != nil && firstErr == nil {
		firstErr = err
	}

	return b.provider.drawInfo(), firstErr
}

// FragmentationSize returns the total number of freed-but-unreused elements
// across this batch's staging arenas.
func (b *Batch) FragmentationSize() int {
	return b.provider.fragmentationSize()
}

// Defragment compacts every staging arena and schedules a full rewrite of all
// attribute data, so the next Flush re-uploads the compacted contents.
func (b *Batch) Defragment() {
	b.provider.defragment()
	for attribute := 0; attribute < b.provider.attributeCount(); attribute++ {
		b.manager.refreshAttribute(attribute)
	}
}

// AddDetailedStatistics sums allocation and fragmentation statistics for all
// of this batch's staging arenas into stats.
func (b *Batch) AddDetailedStatistics(stats *bufutils.DetailedStatistics) {
	b.provider.addDetailedStatistics(stats)
}

// Validate checks internal consistency of every staging arena. It only does
// real work in debug builds of consuming code; call it directly from tests.
func (b *Batch) Validate() error {
	return b.provider.validate()
}

// Destroy releases the batch's device buffers. The Batch must not be used
// afterwards.
func (b *Batch) Destroy() {
	b.provider.destroy(b.device)
}
