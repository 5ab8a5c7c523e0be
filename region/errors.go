package region

import "errors"

var (
	// ErrBadRef indicates an invalid, stale, or freed object reference.
	ErrBadRef = errors.New("region: bad object reference")

	// ErrNoTable indicates a dispatch attempt on an object whose header
	// carries no dispatch table.
	ErrNoTable = errors.New("region: object has no dispatch table")

	// ErrBadOp indicates a dispatch attempt on an operation slot the
	// object's table does not install.
	ErrBadOp = errors.New("region: operation not in dispatch table")

	// ErrBadArgs indicates a dispatched operation received the wrong
	// argument count.
	ErrBadArgs = errors.New("region: bad operation arguments")

	// ErrNotList indicates a list operation on an object that does not
	// carry the list dispatch table.
	ErrNotList = errors.New("region: object is not a list")
)
