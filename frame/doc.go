// Package frame implements the fixed-layout call frame exchanged with the
// native call boundary.
//
// A Frame owns 32 argument slots of 8 bytes each, a result region sized to
// hold a full pointer, a slot count, an error flag, and the 64-bit
// identifier of the native function an Invoke targets. One frame serves one
// goroutine and is reused across calls; the only cross-goroutine state
// behind it is the arena ledger.
//
// Arguments are packed in push order into ascending slots and read back
// with typed getters. Native handlers write results with the SetResult
// methods or raise failures with Fail; the caller surfaces those failures
// through CheckError, which consumes and resets the frame.
package frame
