package batch

import "github.com/pkg/errors"

// AttributeTypeMismatchError is the error returned when attribute data of the wrong element
// kind is supplied for a stream, or when a transform is applied to the index stream
var AttributeTypeMismatchError error = errors.New("attribute data does not match the stream element kind")

// MismatchedVertexCountError is the error returned when an object's vertex attribute arrays
// do not all hold the same element count- index values can only be rebased against a single
// shared vertex offset
var MismatchedVertexCountError error = errors.New("vertex attribute arrays must hold the same element count")
