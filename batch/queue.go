package batch

import (
	"github.com/eapache/queue"
	"github.com/go-gl/mathgl/mgl32"
)

// Queue is a command-queue handle obtained from Batch.CreateQueue. Producers
// enqueue object edits on it; the owning Batch drains every queue, in queue
// creation order, at the start of Flush. A Queue must only be used from the
// thread that owns its Batch.
type Queue struct {
	batch   *Batch
	pending *queue.Queue
}

func newQueue(b *Batch) *Queue {
	return &Queue{
		batch:   b,
		pending: queue.New(),
	}
}

// Add enqueues a new object holding one array per schema attribute, drawn at
// the given order relative to the batch's other objects. The object's id is
// issued immediately; the object itself becomes live at the next Flush.
func (q *Queue) Add(data []AttributeData, order int) ObjectID {
	id := q.batch.nextObjectID()
	q.pending.Add(&command{
		kind:  commandAdd,
		id:    id,
		order: order,
		data:  data,
	})
	return id
}

// Remove enqueues removal of an object. Removing an unknown or already
// removed id is a no-op.
func (q *Queue) Remove(id ObjectID) {
	q.pending.Add(&command{
		kind: commandRemove,
		id:   id,
	})
}

// Replace enqueues replacement of one attribute's array. A changed element
// count reallocates the attribute's block at the next Flush. Every vertex
// attribute of the object must arrive at the same element count by the end of
// the frame- an object whose vertex counts still diverge when Flush settles
// the command log is dropped, and Flush reports MismatchedVertexCountError.
func (q *Queue) Replace(id ObjectID, attribute int, data AttributeData) {
	q.pending.Add(&command{
		kind:      commandReplace,
		id:        id,
		attribute: attribute,
		payload:   data,
	})
}

// Transform enqueues an affine transform for one attribute. The transform
// composes with any transform already pending on the attribute and is applied
// during write-back; the stored array is never modified. Transforming the
// index stream fails the next Flush with AttributeTypeMismatchError.
func (q *Queue) Transform(id ObjectID, attribute int, transform mgl32.Mat4) {
	q.pending.Add(&command{
		kind:      commandTransform,
		id:        id,
		attribute: attribute,
		transform: transform,
	})
}

// Refresh enqueues a full rewrite of one attribute across every live object,
// for callers that mutated shared state the streams cannot observe.
func (q *Queue) Refresh(attribute int) {
	q.pending.Add(&command{
		kind:      commandRefresh,
		attribute: attribute,
	})
}

// Len returns the number of commands waiting in this queue.
func (q *Queue) Len() int {
	return q.pending.Length()
}

func (q *Queue) drain(handle func(cmd *command) error) error {
	var firstErr error
	for q.pending.Length() > 0 {
		cmd := q.pending.Remove().(*command)
		if err := handle(cmd); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
