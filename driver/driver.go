// Package driver orchestrates complete native calls over a reusable frame.
//
// A Driver owns one frame and serves one goroutine. Each call resets the
// frame, packs the arguments left to right, sets the native identifier,
// invokes, and either propagates the native failure or unpacks the typed
// result. A nested call made from inside a handler skips the reset: its
// arguments append after the outer call's, its handler reads them from
// index zero, and the outer call's argument and result state is restored
// when it returns. Reclamation of transient string buffers is triggered by
// the frame once per outermost invocation.
package driver

import (
	"github.com/wippyai/script-bridge/frame"
)

// Driver executes typed native calls on a single reusable frame.
type Driver struct {
	f *frame.Frame
}

// New creates a driver around a fresh frame targeting invoker. Frame
// options (shared allocator, ledger, reclaimer) pass through.
func New(invoker frame.Invoker, opts ...frame.Option) *Driver {
	return &Driver{f: frame.New(invoker, opts...)}
}

// Frame exposes the underlying frame, mainly for natives-side tests.
func (d *Driver) Frame() *frame.Frame {
	return d.f
}

// call runs the shared pack/invoke/check sequence. extract, if non-nil,
// reads the typed result off the frame on success; for nested calls it
// runs before the outer call's state is restored.
func (d *Driver) call(id uint64, args []any, extract func(*frame.Frame)) error {
	f := d.f

	nested := f.InFlight()
	if nested {
		mark := f.BeginNested()
		defer f.EndNested(mark)
	} else {
		f.Reset()
	}

	for _, a := range args {
		if err := f.Push(a); err != nil {
			return err
		}
	}
	f.SetIdentifier(id)
	f.Invoke()

	var err error
	if nested {
		// A consuming CheckError would wipe the outer call; read the
		// failure and let EndNested restore the frame.
		err = f.NativeError()
	} else {
		err = f.CheckError()
	}
	if err != nil {
		return err
	}

	if extract != nil {
		extract(f)
	}
	return nil
}

// Call invokes a native with no interesting result.
func (d *Driver) Call(id uint64, args ...any) error {
	return d.call(id, args, nil)
}

// CallBool invokes a native and unpacks a boolean result.
func (d *Driver) CallBool(id uint64, args ...any) (bool, error) {
	var v bool
	err := d.call(id, args, func(f *frame.Frame) { v = f.ResultBool() })
	return v, err
}

// CallInt32 invokes a native and unpacks an int32 result.
func (d *Driver) CallInt32(id uint64, args ...any) (int32, error) {
	var v int32
	err := d.call(id, args, func(f *frame.Frame) { v = f.ResultInt32() })
	return v, err
}

// CallInt64 invokes a native and unpacks an int64 result.
func (d *Driver) CallInt64(id uint64, args ...any) (int64, error) {
	var v int64
	err := d.call(id, args, func(f *frame.Frame) { v = f.ResultInt64() })
	return v, err
}

// CallUint64 invokes a native and unpacks a uint64 result.
func (d *Driver) CallUint64(id uint64, args ...any) (uint64, error) {
	var v uint64
	err := d.call(id, args, func(f *frame.Frame) { v = f.ResultUint64() })
	return v, err
}

// CallFloat32 invokes a native and unpacks a float32 result.
func (d *Driver) CallFloat32(id uint64, args ...any) (float32, error) {
	var v float32
	err := d.call(id, args, func(f *frame.Frame) { v = f.ResultFloat32() })
	return v, err
}

// CallFloat64 invokes a native and unpacks a float64 result.
func (d *Driver) CallFloat64(id uint64, args ...any) (float64, error) {
	var v float64
	err := d.call(id, args, func(f *frame.Frame) { v = f.ResultFloat64() })
	return v, err
}

// CallPointer invokes a native and unpacks a raw pointer result.
func (d *Driver) CallPointer(id uint64, args ...any) (uintptr, error) {
	var v uintptr
	err := d.call(id, args, func(f *frame.Frame) { v = f.ResultPointer() })
	return v, err
}

// CallString invokes a native and copies out a string result.
func (d *Driver) CallString(id uint64, args ...any) (string, error) {
	var v string
	err := d.call(id, args, func(f *frame.Frame) { v = f.ResultString() })
	return v, err
}
