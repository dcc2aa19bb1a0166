package frame

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	scriptbridge "github.com/wippyai/script-bridge"
	"github.com/wippyai/script-bridge/codec"
	"github.com/wippyai/script-bridge/errors"
)

// Result setters for the native side of the boundary. Each writes the
// packed value at offset 0 of the result region and records one result
// slot. Setting a new result replaces the previous one.

// putResult zero-fills the result region and writes the low width bytes.
func putResult(region []byte, bits uint64, width int) {
	var full [SlotSize]byte
	binary.LittleEndian.PutUint64(full[:], bits)
	for i := width; i < SlotSize; i++ {
		full[i] = 0
	}
	copy(region, full[:])
}

func (f *Frame) setResultBits(bits uint64, width int) {
	f.retireResultBuf()
	putResult(f.result[:], bits, width)
	f.resultSlots = 1
}

func (f *Frame) SetResultBool(v bool) {
	var n uint64
	if v {
		n = 1
	}
	f.setResultBits(n, 1)
}

func (f *Frame) SetResultInt8(v int8)     { f.setResultBits(uint64(uint8(v)), 1) }
func (f *Frame) SetResultUint8(v uint8)   { f.setResultBits(uint64(v), 1) }
func (f *Frame) SetResultInt16(v int16)   { f.setResultBits(uint64(uint16(v)), 2) }
func (f *Frame) SetResultUint16(v uint16) { f.setResultBits(uint64(v), 2) }
func (f *Frame) SetResultInt32(v int32)   { f.setResultBits(uint64(uint32(v)), 4) }
func (f *Frame) SetResultUint32(v uint32) { f.setResultBits(uint64(v), 4) }
func (f *Frame) SetResultInt64(v int64)   { f.setResultBits(uint64(v), 8) }
func (f *Frame) SetResultUint64(v uint64) { f.setResultBits(v, 8) }

func (f *Frame) SetResultPointer(p uintptr) {
	f.setResultBits(uint64(p), 8)
}

func (f *Frame) SetResultFloat32(v float32) {
	f.setResultBits(uint64(math.Float32bits(v)), 4)
}

func (f *Frame) SetResultFloat64(v float64) {
	f.setResultBits(math.Float64bits(v), 8)
}

// SetResultString allocates a native copy of s and stores its pointer at
// offset 0 of the result region. The buffer stays out of the ledger until
// the next Reset so the caller can copy the string out after the
// post-invoke reclaim pass.
func (f *Frame) SetResultString(s string) error {
	if !utf8.ValidString(s) {
		return errors.InvalidUTF8(errors.PhasePack, nil, []byte(s))
	}
	buf, err := f.alloc.CString(s)
	if err != nil {
		return err
	}
	f.retireResultBuf()
	f.resultBuf = buf
	putResult(f.result[:], uint64(buf.Ptr), SlotSize)
	f.resultSlots = 1
	return nil
}

// Fail raises a native failure: it stores msg as the string result and
// sets the error flag. The caller observes it through CheckError.
func (f *Frame) Fail(msg string) {
	if err := f.SetResultString(msg); err != nil {
		// The message itself was unpackable; surface a generic failure.
		_ = f.SetResultString("native error")
	}
	f.hasError = true
}

// Result getters for the caller side.

func (f *Frame) ResultBool() bool       { return codec.UnpackBool(f.result[:]) }
func (f *Frame) ResultInt32() int32     { return codec.UnpackInt32(f.result[:]) }
func (f *Frame) ResultUint32() uint32   { return codec.UnpackUint32(f.result[:]) }
func (f *Frame) ResultInt64() int64     { return codec.UnpackInt64(f.result[:]) }
func (f *Frame) ResultUint64() uint64   { return codec.UnpackUint64(f.result[:]) }
func (f *Frame) ResultFloat32() float32 { return codec.UnpackFloat32(f.result[:]) }
func (f *Frame) ResultFloat64() float64 { return codec.UnpackFloat64(f.result[:]) }
func (f *Frame) ResultPointer() uintptr { return codec.UnpackPointer(f.result[:]) }

// ResultString copies out the string addressed by the pointer at offset 0
// of the result region.
func (f *Frame) ResultString() string {
	return codec.UnpackString(f.result[:])
}

func (f *Frame) retireResultBuf() {
	if !f.resultBuf.IsNull() {
		f.ledger.Retain(f.resultBuf)
		f.resultBuf = scriptbridge.Buffer{}
	}
}
