package batch

import "github.com/go-gl/mathgl/mgl32"

type commandKind uint32

const (
	commandAdd commandKind = iota
	commandRemove
	commandReplace
	commandTransform
	commandRefresh
)

var commandKindMapping = map[commandKind]string{
	commandAdd:       "commandAdd",
	commandRemove:    "commandRemove",
	commandReplace:   "commandReplace",
	commandTransform: "commandTransform",
	commandRefresh:   "commandRefresh",
}

func (k commandKind) String() string {
	return commandKindMapping[k]
}

// command is one entry of the per-frame command log. Producers append through
// a Queue; the manager drains the log in FIFO order at flush time. Commands
// are idempotent state transitions- a command naming an id that was already
// removed is a no-op, not an error, because producers may enqueue ahead of a
// same-frame removal.
type command struct {
	kind      commandKind
	id        ObjectID
	attribute int

	order     int
	data      []AttributeData // commandAdd
	payload   AttributeData   // commandReplace
	transform mgl32.Mat4      // commandTransform
}
