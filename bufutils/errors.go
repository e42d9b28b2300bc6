package bufutils

import "github.com/pkg/errors"

// NegativeSizeError is the error returned from CheckNonNegative or other methods if the size or
// count being tested is negative
var NegativeSizeError error = errors.New("size must not be negative")
