package codec

import (
	"testing"

	"github.com/wippyai/script-bridge/arena"
)

func TestRoundTrip_Primitives(t *testing.T) {
	region := make([]byte, SlotSize)
	a := arena.New()
	l := arena.NewLedger()

	roundTrip := func(t *testing.T, v Value) {
		t.Helper()
		for i := range region {
			region[i] = 0xAA
		}
		if _, err := Pack(region, v, a, l); err != nil {
			t.Fatalf("Pack failed: %v", err)
		}
	}

	t.Run("bool", func(t *testing.T) {
		roundTrip(t, Bool(true))
		if !UnpackBool(region) {
			t.Error("bool round trip lost true")
		}
		roundTrip(t, Bool(false))
		if UnpackBool(region) {
			t.Error("bool round trip lost false")
		}
	})

	t.Run("int8", func(t *testing.T) {
		roundTrip(t, Int8(-100))
		if got := UnpackInt8(region); got != -100 {
			t.Errorf("int8 = %d, want -100", got)
		}
	})

	t.Run("uint8", func(t *testing.T) {
		roundTrip(t, Uint8(200))
		if got := UnpackUint8(region); got != 200 {
			t.Errorf("uint8 = %d, want 200", got)
		}
	})

	t.Run("int16", func(t *testing.T) {
		roundTrip(t, Int16(-30000))
		if got := UnpackInt16(region); got != -30000 {
			t.Errorf("int16 = %d, want -30000", got)
		}
	})

	t.Run("uint16", func(t *testing.T) {
		roundTrip(t, Uint16(60000))
		if got := UnpackUint16(region); got != 60000 {
			t.Errorf("uint16 = %d, want 60000", got)
		}
	})

	t.Run("int32", func(t *testing.T) {
		roundTrip(t, Int32(-2000000000))
		if got := UnpackInt32(region); got != -2000000000 {
			t.Errorf("int32 = %d", got)
		}
	})

	t.Run("uint32", func(t *testing.T) {
		roundTrip(t, Uint32(4000000000))
		if got := UnpackUint32(region); got != 4000000000 {
			t.Errorf("uint32 = %d", got)
		}
	})

	t.Run("int64", func(t *testing.T) {
		roundTrip(t, Int64(-9000000000000000000))
		if got := UnpackInt64(region); got != -9000000000000000000 {
			t.Errorf("int64 = %d", got)
		}
	})

	t.Run("uint64", func(t *testing.T) {
		roundTrip(t, Uint64(18000000000000000000))
		if got := UnpackUint64(region); got != 18000000000000000000 {
			t.Errorf("uint64 = %d", got)
		}
	})

	t.Run("float32", func(t *testing.T) {
		roundTrip(t, Float32(3.14))
		if got := UnpackFloat32(region); got != 3.14 {
			t.Errorf("float32 = %v", got)
		}
	})

	t.Run("float64", func(t *testing.T) {
		roundTrip(t, Float64(2.718281828))
		if got := UnpackFloat64(region); got != 2.718281828 {
			t.Errorf("float64 = %v", got)
		}
	})

	t.Run("pointer", func(t *testing.T) {
		roundTrip(t, Pointer(0xDEADBEEF))
		if got := UnpackPointer(region); got != 0xDEADBEEF {
			t.Errorf("pointer = %#x", got)
		}
	})
}

func TestRoundTrip_Strings(t *testing.T) {
	tests := []struct {
		name string
		s    string
	}{
		{"empty", ""},
		{"ascii", "hello"},
		{"multibyte", "héllo wörld"},
		{"cjk", "日本語のテスト"},
		{"emoji", "call 🌉 bridge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := make([]byte, SlotSize)
			if _, err := Pack(region, String(tt.s), arena.New(), arena.NewLedger()); err != nil {
				t.Fatalf("Pack failed: %v", err)
			}
			if got := UnpackString(region); got != tt.s {
				t.Errorf("round trip = %q, want %q", got, tt.s)
			}
		})
	}
}

func TestGoString_Null(t *testing.T) {
	if got := GoString(0); got != "" {
		t.Errorf("GoString(0) = %q, want empty", got)
	}
}
