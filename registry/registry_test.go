package registry

import (
	"strings"
	"testing"

	"github.com/wippyai/script-bridge/frame"
)

func TestIdentifier_Stable(t *testing.T) {
	a := Identifier("GET_ENTITY_HEALTH")
	b := Identifier("GET_ENTITY_HEALTH")
	if a != b {
		t.Fatalf("identifier not stable: %#x vs %#x", a, b)
	}
	if a == Identifier("SET_ENTITY_HEALTH") {
		t.Error("distinct names hashed to the same identifier")
	}
	if a == 0 {
		t.Error("identifier must be nonzero for real names")
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := New()

	err := r.Register("ECHO_INT", func(f *frame.Frame) error {
		f.SetResultInt32(f.Int32(0))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	id := Identifier("ECHO_INT")
	if _, ok := r.Lookup(id); !ok {
		t.Fatal("registered handler not found")
	}
	if name, ok := r.Name(id); !ok || name != "ECHO_INT" {
		t.Errorf("Name(id) = %q, %v", name, ok)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := New()
	nop := func(*frame.Frame) error { return nil }

	if err := r.Register("DUP", nop); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("DUP", nop); err == nil {
		t.Fatal("duplicate registration succeeded")
	}
}

func TestRegistry_NilHandler(t *testing.T) {
	r := New()
	if err := r.Register("NIL", nil); err == nil {
		t.Fatal("nil handler accepted")
	}
}

func TestRegistry_InvokeDispatch(t *testing.T) {
	r := New()
	r.MustRegister("ADD_ONE", func(f *frame.Frame) error {
		f.SetResultInt32(f.Int32(0) + 1)
		return nil
	})

	f := frame.New(r)
	if err := f.Push(int32(41)); err != nil {
		t.Fatal(err)
	}
	f.SetIdentifier(Identifier("ADD_ONE"))
	f.Invoke()

	if err := f.CheckError(); err != nil {
		t.Fatal(err)
	}
	if got := f.ResultInt32(); got != 42 {
		t.Errorf("result = %d, want 42", got)
	}
}

func TestRegistry_UnknownIdentifier(t *testing.T) {
	r := New()
	f := frame.New(r)
	f.SetIdentifier(0xDEADBEEF)
	f.Invoke()

	err := f.CheckError()
	if err == nil {
		t.Fatal("unknown identifier did not raise an error")
	}
	if !strings.Contains(err.Error(), "unknown native identifier") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRegistry_HandlerErrorBecomesNativeFailure(t *testing.T) {
	r := New()
	r.MustRegister("EXPLODE", func(*frame.Frame) error {
		return errFailure{}
	})

	f := frame.New(r)
	f.SetIdentifier(Identifier("EXPLODE"))
	f.Invoke()

	err := f.CheckError()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("handler error not surfaced: %v", err)
	}
}

type errFailure struct{}

func (errFailure) Error() string { return "boom" }

func TestRegistry_Range(t *testing.T) {
	r := New()
	r.MustRegister("A", func(*frame.Frame) error { return nil })
	r.MustRegister("B", func(*frame.Frame) error { return nil })

	seen := map[string]bool{}
	r.Range(func(name string, id uint64) bool {
		seen[name] = true
		return true
	})
	if !seen["A"] || !seen["B"] || len(seen) != 2 {
		t.Errorf("Range visited %v", seen)
	}
}
