package format

import "errors"

// ErrTruncated indicates a buffer too small to hold the structure being
// decoded or encoded.
var ErrTruncated = errors.New("format: buffer truncated")
