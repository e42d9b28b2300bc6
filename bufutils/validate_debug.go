//go:build debug_buf_utils

package bufutils

import "fmt"

// DebugValidate will call Validate on the provided object and panics if any errors are returned.
// This method no-ops unless the debug_buf_utils build tag is present.
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}

// DebugAssert panics with the provided message when the condition is false. It is used to
// surface caller contract violations (double free, dead handles, out-of-range attribute
// indices) during development. This method no-ops unless the debug_buf_utils build tag
// is present.
func DebugAssert(condition bool, format string, args ...any) {
	if !condition {
		panic(fmt.Sprintf(format, args...))
	}
}

// DebugCheckNonNegative will verify that the numerical value passed in is not negative, and
// panics if it is. This method no-ops unless the debug_buf_utils build tag is present.
func DebugCheckNonNegative[T Number](value T, name string) {
	err := CheckNonNegative[T](value, name)
	if err != nil {
		panic(err)
	}
}
