package codec

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/wippyai/script-bridge/arena"
)

func packInto(t *testing.T, region []byte, v Value) int {
	t.Helper()
	n, err := Pack(region, v, arena.New(), arena.NewLedger())
	if err != nil {
		t.Fatalf("Pack(%v) failed: %v", v.Kind, err)
	}
	return n
}

func TestPack_ZeroExtension(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want uint64
	}{
		{"bool true", Bool(true), 1},
		{"bool false", Bool(false), 0},
		{"s8 negative", Int8(-1), 0xFF},
		{"u8", Uint8(0xAB), 0xAB},
		{"s16 negative", Int16(-2), 0xFFFE},
		{"u16", Uint16(0xBEEF), 0xBEEF},
		{"s32 negative", Int32(-1), 0xFFFFFFFF},
		{"u32", Uint32(0xDEADBEEF), 0xDEADBEEF},
		{"f32", Float32(1.5), 0x3FC00000},
		{"enum width 1", Enum(0x7F, 1), 0x7F},
		{"enum width 2", Enum(0x1234, 2), 0x1234},
		{"enum width 4", Enum(0x12345678, 4), 0x12345678},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Dirty the slot first; packing must not leak stale bytes.
			region := make([]byte, SlotSize)
			for i := range region {
				region[i] = 0xFF
			}

			n := packInto(t, region, tt.v)
			if n != 1 {
				t.Fatalf("slots = %d, want 1", n)
			}
			got := binary.LittleEndian.Uint64(region)
			if got != tt.want {
				t.Errorf("slot = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestPack_FullWidth(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want uint64
	}{
		{"s64", Int64(-1), 0xFFFFFFFFFFFFFFFF},
		{"u64", Uint64(0x0123456789ABCDEF), 0x0123456789ABCDEF},
		{"f64", Float64(2.0), 0x4000000000000000},
		{"pointer", Pointer(0xCAFEBABE), 0xCAFEBABE},
		{"enum width 8", Enum(0xFFFFFFFFFFFFFFFF, 8), 0xFFFFFFFFFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := make([]byte, SlotSize)
			packInto(t, region, tt.v)
			if got := binary.LittleEndian.Uint64(region); got != tt.want {
				t.Errorf("slot = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestPack_EnumBadWidth(t *testing.T) {
	region := make([]byte, SlotSize)
	if _, err := Pack(region, Enum(1, 3), arena.New(), arena.NewLedger()); err == nil {
		t.Fatal("expected error for enum width 3")
	}
}

func TestPack_String(t *testing.T) {
	a := arena.New()
	l := arena.NewLedger()
	region := make([]byte, SlotSize)

	n, err := Pack(region, String("hello"), a, l)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("slots = %d, want 1", n)
	}

	if got := UnpackString(region); got != "hello" {
		t.Errorf("round trip = %q, want %q", got, "hello")
	}
	if l.Depth() != 1 {
		t.Errorf("ledger depth = %d, want 1", l.Depth())
	}
	if a.Live() != 1 {
		t.Errorf("live buffers = %d, want 1", a.Live())
	}
}

func TestPack_NullString(t *testing.T) {
	a := arena.New()
	l := arena.NewLedger()
	region := make([]byte, SlotSize)
	for i := range region {
		region[i] = 0xFF
	}

	if _, err := Pack(region, NullString(), a, l); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if got := binary.LittleEndian.Uint64(region); got != 0 {
		t.Errorf("null string slot = %#x, want 0", got)
	}
	if a.Allocated() != 0 {
		t.Errorf("null string allocated %d buffers", a.Allocated())
	}
	if l.Depth() != 0 {
		t.Errorf("null string ledgered %d buffers", l.Depth())
	}
}

func TestPack_DistinctStrings(t *testing.T) {
	a := arena.New()
	l := arena.NewLedger()
	r1 := make([]byte, SlotSize)
	r2 := make([]byte, SlotSize)

	if _, err := Pack(r1, String("alpha"), a, l); err != nil {
		t.Fatal(err)
	}
	if _, err := Pack(r2, String("beta"), a, l); err != nil {
		t.Fatal(err)
	}

	p1 := UnpackPointer(r1)
	p2 := UnpackPointer(r2)
	if p1 == p2 {
		t.Fatal("distinct strings share a buffer")
	}

	// Freeing one buffer must not invalidate the other.
	b1, ok := l.TryDequeue()
	if !ok {
		t.Fatal("ledger empty")
	}
	a.Free(b1)

	survivor := r1
	if b1.Ptr == p1 {
		survivor = r2
	}
	got := UnpackString(survivor)
	if got != "alpha" && got != "beta" {
		t.Errorf("surviving string corrupted: %q", got)
	}
}

func TestPack_InvalidUTF8(t *testing.T) {
	region := make([]byte, SlotSize)
	_, err := Pack(region, String(string([]byte{0xff, 0xfe})), arena.New(), arena.NewLedger())
	if err == nil {
		t.Fatal("expected invalid UTF-8 error")
	}
}

type vec3 struct {
	X, Y, Z float32
}

func TestPack_StructSpansSlots(t *testing.T) {
	region := make([]byte, 4*SlotSize)
	for i := range region {
		region[i] = 0xFF
	}

	v := vec3{X: 1, Y: 2, Z: 3}
	n := packInto(t, region, Struct(v))
	if n != 2 {
		t.Fatalf("slots = %d, want 2 for a 12-byte struct", n)
	}

	want := make([]byte, 2*SlotSize)
	binary.LittleEndian.PutUint32(want[0:], 0x3F800000) // 1.0
	binary.LittleEndian.PutUint32(want[4:], 0x40000000) // 2.0
	binary.LittleEndian.PutUint32(want[8:], 0x40400000) // 3.0
	if !bytes.Equal(region[:2*SlotSize], want) {
		t.Errorf("struct bytes = %x, want %x", region[:2*SlotSize], want)
	}
}

// A struct whose only field is a pointer is stored directly in the
// interface data word; its packed image must still be the struct's own
// bytes, the pointer address itself.
func TestPack_PointerShapedStruct(t *testing.T) {
	n := int64(0x1122334455667788)
	type ref struct{ p *int64 }

	region := make([]byte, SlotSize)
	slots := packInto(t, region, Struct(ref{p: &n}))
	if slots != 1 {
		t.Fatalf("slots = %d, want 1", slots)
	}

	got := binary.LittleEndian.Uint64(region)
	want := uint64(uintptr(unsafe.Pointer(&n)))
	if got != want {
		t.Errorf("slot = %#x, want pointer address %#x", got, want)
	}
	if got == uint64(n) {
		t.Error("slot holds the pointee's value instead of the pointer")
	}
}

func TestPack_StructNilPointerField(t *testing.T) {
	type ref struct{ p *int64 }

	region := make([]byte, SlotSize)
	for i := range region {
		region[i] = 0xFF
	}

	slots := packInto(t, region, Struct(ref{}))
	if slots != 1 {
		t.Fatalf("slots = %d, want 1", slots)
	}
	if got := binary.LittleEndian.Uint64(region); got != 0 {
		t.Errorf("nil pointer field packed as %#x, want 0", got)
	}
}

func TestPack_StructOverflow(t *testing.T) {
	region := make([]byte, SlotSize) // one slot, struct needs two
	_, err := Pack(region, Struct(vec3{}), arena.New(), arena.NewLedger())
	if err == nil {
		t.Fatal("expected overflow error")
	}
}

type fakeHandle struct {
	ptr uintptr
}

func (h fakeHandle) NativePtr() uintptr { return h.ptr }

type fakeEntity struct {
	ptr uintptr
}

func (h fakeEntity) EntityPtr() uintptr { return h.ptr }

func TestPack_Handles(t *testing.T) {
	tests := []struct {
		name string
		ref  any
		want uint64
	}{
		{"native ref", fakeHandle{ptr: 0x1000}, 0x1000},
		{"entity ref", fakeEntity{ptr: 0x2000}, 0x2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := make([]byte, SlotSize)
			packInto(t, region, Handle(tt.ref))
			if got := binary.LittleEndian.Uint64(region); got != tt.want {
				t.Errorf("slot = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestPack_NilHandle(t *testing.T) {
	region := make([]byte, SlotSize)
	if _, err := Pack(region, Handle(nil), arena.New(), arena.NewLedger()); err == nil {
		t.Fatal("expected nil pointer error")
	}
}

type pair struct {
	id   int32
	name string
}

func (p pair) ExpandNative() []Value {
	return []Value{Int32(p.id), String(p.name)}
}

func TestPack_Expansion(t *testing.T) {
	a := arena.New()
	l := arena.NewLedger()
	region := make([]byte, 4*SlotSize)

	n, err := Pack(region, Expand(pair{id: 7, name: "seven"}), a, l)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("slots = %d, want 2", n)
	}
	if got := UnpackInt32(region[:SlotSize]); got != 7 {
		t.Errorf("sub-value 0 = %d, want 7", got)
	}
	if got := UnpackString(region[SlotSize:]); got != "seven" {
		t.Errorf("sub-value 1 = %q, want %q", got, "seven")
	}
}

func TestPack_ExpansionOverflow(t *testing.T) {
	region := make([]byte, SlotSize) // expansion needs two slots
	_, err := Pack(region, Expand(pair{id: 1, name: "x"}), arena.New(), arena.NewLedger())
	if err == nil {
		t.Fatal("expected capacity error")
	}
}

func TestPack_RegionTooSmall(t *testing.T) {
	if _, err := Pack(nil, Int32(1), arena.New(), arena.NewLedger()); err == nil {
		t.Fatal("expected capacity error for empty region")
	}
}
