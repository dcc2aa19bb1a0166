package codec

import (
	"math"
	"reflect"

	"github.com/wippyai/script-bridge/errors"
)

// NativeRef is implemented by values that wrap a raw native pointer and
// present it as a single call argument.
type NativeRef interface {
	NativePtr() uintptr
}

// EntityRef is implemented by entity wrappers. It packs identically to
// NativeRef but lets the native side distinguish entity handles.
type EntityRef interface {
	EntityPtr() uintptr
}

// Expander is implemented by composite script-side values that present as
// zero or more native call arguments in their place.
type Expander interface {
	ExpandNative() []Value
}

// Value is a classified argument or result. Construct via the typed
// constructors or Classify; the zero Value is invalid.
type Value struct {
	Kind  Kind
	Num   uint64 // primitive bits, pointer value, enum discriminant
	Str   string
	Width uint8 // enum underlying width in bytes
	Ref   any   // handle, expander, or structural payload
}

func Bool(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{Kind: KindBool, Num: n}
}

func Int8(v int8) Value    { return Value{Kind: KindS8, Num: uint64(uint8(v))} }
func Uint8(v uint8) Value  { return Value{Kind: KindU8, Num: uint64(v)} }
func Int16(v int16) Value  { return Value{Kind: KindS16, Num: uint64(uint16(v))} }
func Uint16(v uint16) Value { return Value{Kind: KindU16, Num: uint64(v)} }
func Int32(v int32) Value  { return Value{Kind: KindS32, Num: uint64(uint32(v))} }
func Uint32(v uint32) Value { return Value{Kind: KindU32, Num: uint64(v)} }
func Int64(v int64) Value  { return Value{Kind: KindS64, Num: uint64(v)} }
func Uint64(v uint64) Value { return Value{Kind: KindU64, Num: v} }

func Float32(v float32) Value {
	return Value{Kind: KindF32, Num: uint64(math.Float32bits(v))}
}

func Float64(v float64) Value {
	return Value{Kind: KindF64, Num: math.Float64bits(v)}
}

// Pointer packs a raw native address.
func Pointer(p uintptr) Value { return Value{Kind: KindPointer, Num: uint64(p)} }

// Enum packs a discriminant using its declared underlying width (1, 2, 4
// or 8 bytes).
func Enum(v uint64, width uint8) Value {
	return Value{Kind: KindEnum, Num: v, Width: width}
}

// String packs a NUL-terminated native copy of s.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// NullString packs a null pointer without allocating.
func NullString() Value { return Value{Kind: KindNull} }

// Handle packs the native pointer exposed by a NativeRef or EntityRef.
func Handle(ref any) Value { return Value{Kind: KindHandle, Ref: ref} }

// Expand packs the expansion of e in place of a single value.
func Expand(e Expander) Value { return Value{Kind: KindExpand, Ref: e} }

// Struct packs the raw bytes of v across one or more slots. v must be a
// struct or array value whose byte image is meaningful to the native side.
func Struct(v any) Value { return Value{Kind: KindStruct, Ref: v} }

// Classify resolves an arbitrary Go value into a tagged Value. Capability
// interfaces are checked before primitive handling; named integer types
// classify as enums of their underlying width; struct and array values fall
// back to a raw structural copy.
func Classify(v any) (Value, error) {
	switch ref := v.(type) {
	case nil:
		return NullString(), nil
	case NativeRef:
		return Handle(ref), nil
	case EntityRef:
		return Handle(ref), nil
	case Expander:
		return Expand(ref), nil
	case Value:
		return ref, nil
	case bool:
		return Bool(ref), nil
	case int8:
		return Int8(ref), nil
	case uint8:
		return Uint8(ref), nil
	case int16:
		return Int16(ref), nil
	case uint16:
		return Uint16(ref), nil
	case int32:
		return Int32(ref), nil
	case uint32:
		return Uint32(ref), nil
	case int64:
		return Int64(ref), nil
	case uint64:
		return Uint64(ref), nil
	case int:
		return Int64(int64(ref)), nil
	case uint:
		return Uint64(uint64(ref)), nil
	case float32:
		return Float32(ref), nil
	case float64:
		return Float64(ref), nil
	case uintptr:
		return Pointer(ref), nil
	case string:
		return String(ref), nil
	case *string:
		if ref == nil {
			return NullString(), nil
		}
		return String(*ref), nil
	}

	// Named types reach here: enums keep their declared underlying width,
	// structs and arrays take the structural path.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return Enum(uint64(rv.Int()), uint8(rv.Type().Size())), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return Enum(rv.Uint(), uint8(rv.Type().Size())), nil
	case reflect.Struct, reflect.Array:
		return Struct(v), nil
	case reflect.UnsafePointer, reflect.Pointer:
		return Pointer(rv.Pointer()), nil
	}

	return Value{}, errors.New(errors.PhasePack, errors.KindTypeMismatch).
		GoType(reflect.TypeOf(v).String()).
		Detail("no packing rule for value").
		Build()
}
