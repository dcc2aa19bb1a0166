package frame

import "github.com/wippyai/script-bridge/codec"

// Typed argument getters. Out-of-range indices yield the zero value, which
// matches how natives probe optional arguments.

func (f *Frame) Bool(i int) bool {
	s := f.arg(i)
	if s == nil {
		return false
	}
	return codec.UnpackBool(s)
}

func (f *Frame) Int8(i int) int8 {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackInt8(s)
}

func (f *Frame) Uint8(i int) uint8 {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackUint8(s)
}

func (f *Frame) Int16(i int) int16 {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackInt16(s)
}

func (f *Frame) Uint16(i int) uint16 {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackUint16(s)
}

func (f *Frame) Int32(i int) int32 {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackInt32(s)
}

func (f *Frame) Uint32(i int) uint32 {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackUint32(s)
}

func (f *Frame) Int64(i int) int64 {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackInt64(s)
}

func (f *Frame) Uint64(i int) uint64 {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackUint64(s)
}

func (f *Frame) Float32(i int) float32 {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackFloat32(s)
}

func (f *Frame) Float64(i int) float64 {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackFloat64(s)
}

func (f *Frame) Pointer(i int) uintptr {
	s := f.arg(i)
	if s == nil {
		return 0
	}
	return codec.UnpackPointer(s)
}

// String copies out the NUL-terminated sequence addressed by slot i.
func (f *Frame) String(i int) string {
	s := f.arg(i)
	if s == nil {
		return ""
	}
	return codec.UnpackString(s)
}
