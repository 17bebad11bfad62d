package framer

import (
	"errors"
	"fmt"
)

// ErrNoContent is reported in ContentResult.Warning when every pixel of the
// image is background. The image is passed through unchanged.
var ErrNoContent = errors.New("no content found")

// ErrNearestFilter rejects nearest-neighbour resampling.
var ErrNearestFilter = errors.New("nearest-neighbour resampling is not supported, use lanczos, catmullrom, linear or box")

// ParseError reports a malformed ratio or size argument.
type ParseError struct {
	Kind     string // "ratio" or "size"
	Input    string
	Expected string // e.g. "W:H"
	Example  string
}

func (e *ParseError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("invalid %s %q: use format %s (e.g. %s)", e.Kind, e.Input, e.Expected, e.Example)
	}
	return fmt.Sprintf("invalid %s %q: use format %s", e.Kind, e.Input, e.Expected)
}

// ResizeInconsistencyError is returned by CheckConsistency when an explicit
// output size does not match the requested ratio. It is advisory: the
// explicit size is still honoured.
type ResizeInconsistencyError struct {
	Ratio          Ratio
	Width, Height  int
	ExpectedHeight int
}

func (e *ResizeInconsistencyError) Error() string {
	return fmt.Sprintf("explicit size %dx%d diverges from ratio %s (expected height %d)",
		e.Width, e.Height, e.Ratio, e.ExpectedHeight)
}
