package convert

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOutputType is returned for an output-type tag outside the
// supported set. No parsing is done when it is returned.
var ErrUnsupportedOutputType = errors.New("unsupported output type")

// SerializationError reports a serializer that could not produce output.
type SerializationError struct {
	Format Format
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serializing %s: %v", e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
