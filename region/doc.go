// Package region implements the runtime memory manager a compiler's
// generated code links against: a scope-depth region allocator that reclaims
// objects when the scope that allocated them exits, plus the minimal object
// model (common header, capability dispatch, growable list) built on top.
//
// # Overview
//
// Every heap block begins with a common header carrying the scope depth it
// was allocated at, a reference count, and a dispatch table ID (see
// internal/format for the frozen binary layout). The runtime keeps a single
// ledger of every live block in allocation order - the tracker - and a
// single depth counter. Because scopes nest in LIFO order, the tracker is
// always sorted by non-decreasing depth, so the collector only ever scans a
// suffix of it.
//
// # Scope lifecycle
//
// Generated code brackets each dynamic extent with Enter and Exit:
//
//	rt := region.New(nil)
//	rt.Enter()
//	obj := rt.Malloc(size)
//	// ... use obj ...
//	rt.Exit() // obj is reclaimed here unless marked to escape
//
// Exit runs the collector before decrementing the depth. The collector
// walks the tracker tail-first: blocks stamped at the exiting depth (or
// deeper) are freed when their reference count is zero and left floating
// otherwise; the walk stops at the first block belonging to an ancestor
// scope. Floating blocks are a documented leak, not an error - they are
// dropped from the tracker and never reclaimed, and Stats counts them.
//
// # Escape protocol
//
// Exactly one object per exiting scope may survive. Ret stamps the object's
// depth with the escape sentinel 0 and performs one Exit; the collector
// exempts the sentinel from freeing and re-registers the object at the
// parent depth. Chaining Ret through enclosing scopes carries a value
// arbitrarily far up the call stack, one scope at a time. Marking a second
// object before the same Exit is a caller contract violation and panics.
//
// # Object model and dispatch
//
// Polymorphism is capability dispatch, not inheritance: each type installs a
// fixed-size table of operation functions indexed by operation identity
// (OpAppend, OpGet, ...). The base object type has a registered, empty
// table; the list container installs append and get. Invoke indirects
// through the table named by the object's header and is the system's sole
// polymorphism mechanism.
//
// # Error handling
//
// Allocation failure is fatal: the default handler prints a diagnostic and
// exits the process, matching the unchecked allocation policy of the
// generated-code ABI. Unbalanced Enter/Exit pairs, double escapes, double
// Init, and undersized Malloc panic. Out-of-range list reads are
// recoverable and return Nil.
//
// # Thread safety
//
// The runtime is single-threaded and cooperative. Nothing locks; concurrent
// use from multiple goroutines without external synchronization is the
// caller's obligation.
//
// # Related packages
//
//   - github.com/joshuapare/scopekit/internal/format: frozen header layout
//   - github.com/joshuapare/scopekit/internal/arena: block storage, handles
package region
