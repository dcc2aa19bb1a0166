package codec

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Typed slot readers. Each reads the 8 bytes at the base of slot; narrow
// types truncate, which is exact because packing zero-extends.

func UnpackBool(slot []byte) bool {
	return binary.LittleEndian.Uint64(slot) != 0
}

func UnpackInt8(slot []byte) int8   { return int8(binary.LittleEndian.Uint64(slot)) }
func UnpackUint8(slot []byte) uint8 { return uint8(binary.LittleEndian.Uint64(slot)) }

func UnpackInt16(slot []byte) int16   { return int16(binary.LittleEndian.Uint64(slot)) }
func UnpackUint16(slot []byte) uint16 { return uint16(binary.LittleEndian.Uint64(slot)) }

func UnpackInt32(slot []byte) int32   { return int32(binary.LittleEndian.Uint64(slot)) }
func UnpackUint32(slot []byte) uint32 { return uint32(binary.LittleEndian.Uint64(slot)) }

func UnpackInt64(slot []byte) int64   { return int64(binary.LittleEndian.Uint64(slot)) }
func UnpackUint64(slot []byte) uint64 { return binary.LittleEndian.Uint64(slot) }

func UnpackFloat32(slot []byte) float32 {
	return math.Float32frombits(uint32(binary.LittleEndian.Uint64(slot)))
}

func UnpackFloat64(slot []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(slot))
}

func UnpackPointer(slot []byte) uintptr {
	return uintptr(binary.LittleEndian.Uint64(slot))
}

// UnpackString reads the pointer stored in slot and copies out the
// NUL-terminated UTF-8 sequence it addresses. A null pointer yields "".
// The returned string is an owned copy; it stays valid after the backing
// buffer is reclaimed.
func UnpackString(slot []byte) string {
	return GoString(UnpackPointer(slot))
}

// GoString copies a NUL-terminated byte sequence at ptr into a Go string.
func GoString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}

	n := 0
	for *(*byte)(unsafe.Pointer(ptr + uintptr(n))) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n))
}
