package codec

import (
	"encoding/binary"
	"reflect"
	"unicode/utf8"
	"unsafe"

	scriptbridge "github.com/wippyai/script-bridge"
	"github.com/wippyai/script-bridge/errors"
)

// SlotSize is the width of one argument slot in bytes.
const SlotSize = 8

// Pack writes v into region, which must be a whole number of 8-byte slots.
// It returns the number of slots consumed: one for every variant except
// structural values wider than a slot and expansions, which may span
// several. The slot region is always zero-filled before a narrow write so
// no stale bytes survive from a previous call.
//
// String packing allocates through alloc and immediately hands the buffer
// to ledger; the caller never owns it.
func Pack(region []byte, v Value, alloc scriptbridge.Allocator, ledger scriptbridge.Retainer) (int, error) {
	if len(region) < SlotSize {
		return 0, errors.New(errors.PhasePack, errors.KindCapacity).
			Detail("no slot space remaining").
			Build()
	}

	switch v.Kind {
	case KindBool, KindS8, KindU8, KindS16, KindU16, KindS32, KindU32,
		KindS64, KindU64, KindF32, KindF64, KindPointer:
		putSlot(region, v.Num, v.Kind.width())
		return 1, nil

	case KindEnum:
		w := int(v.Width)
		switch w {
		case 1, 2, 4, 8:
		default:
			return 0, errors.New(errors.PhasePack, errors.KindInvalidData).
				Slot("enum").
				Detail("unsupported enum width %d", w).
				Build()
		}
		putSlot(region, v.Num, w)
		return 1, nil

	case KindNull:
		putSlot(region, 0, SlotSize)
		return 1, nil

	case KindString:
		return packString(region, v.Str, alloc, ledger)

	case KindHandle:
		return packHandle(region, v.Ref)

	case KindExpand:
		return packExpansion(region, v.Ref, alloc, ledger)

	case KindStruct:
		return packStruct(region, v.Ref)
	}

	return 0, errors.New(errors.PhasePack, errors.KindInvalidData).
		Slot(v.Kind.String()).
		Detail("cannot pack value of this kind").
		Build()
}

// putSlot zero-fills one slot and writes the low width bytes of bits at its
// base. Writes go through encoding/binary, so no alignment is assumed.
func putSlot(slot []byte, bits uint64, width int) {
	var full [SlotSize]byte
	binary.LittleEndian.PutUint64(full[:], bits)
	if width < SlotSize {
		for i := width; i < SlotSize; i++ {
			full[i] = 0
		}
	}
	copy(slot[:SlotSize], full[:])
}

func packString(region []byte, s string, alloc scriptbridge.Allocator, ledger scriptbridge.Retainer) (int, error) {
	if !utf8.ValidString(s) {
		return 0, errors.InvalidUTF8(errors.PhasePack, nil, []byte(s))
	}

	buf, err := alloc.CString(s)
	if err != nil {
		return 0, errors.New(errors.PhasePack, errors.KindAllocation).
			Cause(err).
			Detail("failed to allocate %d bytes for string data", len(s)+1).
			Build()
	}
	ledger.Retain(buf)

	putSlot(region, uint64(buf.Ptr), SlotSize)
	return 1, nil
}

func packHandle(region []byte, ref any) (int, error) {
	var ptr uintptr
	switch h := ref.(type) {
	case NativeRef:
		ptr = h.NativePtr()
	case EntityRef:
		ptr = h.EntityPtr()
	case nil:
		return 0, errors.NilPointer(errors.PhasePack, nil, "handle")
	default:
		return 0, errors.TypeMismatch(errors.PhasePack, nil, reflect.TypeOf(ref).String(), "handle")
	}
	putSlot(region, uint64(ptr), SlotSize)
	return 1, nil
}

func packExpansion(region []byte, ref any, alloc scriptbridge.Allocator, ledger scriptbridge.Retainer) (int, error) {
	e, ok := ref.(Expander)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhasePack, nil, reflect.TypeOf(ref).String(), "expand")
	}

	used := 0
	for _, sub := range e.ExpandNative() {
		n, err := Pack(region[used*SlotSize:], sub, alloc, ledger)
		if err != nil {
			return 0, err
		}
		used += n
	}
	return used, nil
}

// packStruct copies the raw byte image of a struct or array value into the
// slot region, spanning as many slots as its size requires. The trailing
// bytes of the last slot are zeroed.
func packStruct(region []byte, v any) (int, error) {
	if v == nil {
		return 0, errors.NilPointer(errors.PhasePack, nil, "struct")
	}

	rv := reflect.ValueOf(v)
	rt := rv.Type()
	size := int(rt.Size())
	slots := (size + SlotSize - 1) / SlotSize
	if slots == 0 {
		slots = 1
	}
	if slots*SlotSize > len(region) {
		return 0, errors.New(errors.PhasePack, errors.KindOverflow).
			GoType(rt.String()).
			Detail("structural value of %d bytes exceeds remaining slot budget (%d bytes)", size, len(region)).
			Build()
	}

	for i := 0; i < slots*SlotSize; i++ {
		region[i] = 0
	}

	// Pointer-shaped values are stored directly in the interface data word,
	// so the byte image must come from an addressable copy, not the word.
	tmp := reflect.New(rt).Elem()
	tmp.Set(rv)
	src := unsafe.Slice((*byte)(tmp.Addr().UnsafePointer()), size)
	copy(region, src)
	return slots, nil
}
