// Package scriptbridge bridges a managed scripting environment to a native
// host application through a fixed-layout call frame.
//
// Callers pack typed arguments into the frame, invoke a native function
// selected by a 64-bit identifier, and unpack a typed result. Strings cross
// the boundary as natively allocated NUL-terminated buffers whose lifetime
// is managed out of band: producers hand them to a concurrent ledger, and a
// time- and count-bounded reclaim pass frees them after the call returns.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	scriptbridge/        Root package with Buffer, Allocator, Retainer interfaces
//	├── codec/           Tagged-value packing and unpacking over 8-byte slots
//	├── frame/           Fixed-layout call frame exchanged with the native boundary
//	├── arena/           Pinned buffer allocator, transient buffer ledger, reclaimer
//	├── registry/        Native function registry and identifier hashing
//	├── driver/          Typed call orchestration over a reusable frame
//	├── handles/         Opaque handle table for native-side objects
//	├── sched/           Tick-keyed callback scheduler
//	├── natives/         Built-in native handlers
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Register a native and call it:
//
//	reg := registry.New()
//	reg.Register("ADD", func(f *frame.Frame) error {
//	    f.SetResultInt32(f.Int32(0) + f.Int32(1))
//	    return nil
//	})
//
//	d := driver.New(reg)
//	sum, err := d.CallInt32(registry.Identifier("ADD"),
//	    codec.Int32(2), codec.Int32(3))
//
// Each driver owns one frame and is intended for a single goroutine; the
// arena and ledger behind it are safe for concurrent use by many drivers.
package scriptbridge
