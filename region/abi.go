package region

// Package-level entry points forming the runtime ABI generated code calls
// into. They drive a single process-wide runtime with an init-once
// lifecycle and no teardown: the process owns the state for its lifetime.
// Single logical thread of execution assumed throughout; callers adding
// concurrency must synchronize externally.

// std is the process-wide runtime behind the ABI functions.
var std *Runtime

// Init performs process-wide setup. It must run exactly once before any
// other ABI call; a second call is a contract violation.
func Init() {
	if std != nil {
		panic("region: Init called twice")
	}
	std = New(nil)
}

// Default returns the process-wide runtime for inspection (statistics,
// object views). It panics before Init.
func Default() *Runtime { return mustStd() }

// Enter increments the region depth by one.
func Enter() { mustStd().Enter() }

// Exit runs the collector, then decrements the region depth by one.
func Exit() { mustStd().Exit() }

// Malloc allocates a tracked block of size bytes, header included.
func Malloc(size int) Ref { return mustStd().Malloc(size) }

// Ret marks obj with the escape sentinel and performs one Exit, returning
// the same handle.
func Ret(obj Ref) Ref { return mustStd().Ret(obj) }

func mustStd() *Runtime {
	if std == nil {
		panic("region: Init must be called before any other operation")
	}
	return std
}
