package bufutils

import (
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint
}

func CheckNonNegative[T Number](number T, name string) error {
	if number < 0 {
		return cerrors.Wrapf(NegativeSizeError, "%s is %d", name, number)
	}
	return nil
}

func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

// AsBytes reinterprets a typed element slice as its underlying bytes, for
// handing staging data to a GPU upload primitive. The returned slice aliases
// the input and is only valid while the input remains reachable and unmoved.
func AsBytes[T any](elements []T) []byte {
	if len(elements) == 0 {
		return nil
	}

	var zero T
	stride := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&elements[0])), len(elements)*stride)
}

// ElementSize returns the size in bytes of a single element of type T.
func ElementSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
