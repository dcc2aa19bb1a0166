package arena

import (
	"unsafe"

	"github.com/puzpuzpuz/xsync/v3"

	scriptbridge "github.com/wippyai/script-bridge"
	"github.com/wippyai/script-bridge/errors"
)

// MaxStringSize caps a single string allocation (16 MB).
const MaxStringSize = 16 << 20

// Arena allocates pinned native buffers. Each buffer is a Go allocation
// held in the pinned map so the collector cannot reclaim it while the
// native side still sees its address; Free unpins it.
//
// Safe for concurrent use.
type Arena struct {
	pinned *xsync.MapOf[uintptr, []byte]
	allocs *xsync.Counter
	frees  *xsync.Counter
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{
		pinned: xsync.NewMapOf[uintptr, []byte](),
		allocs: xsync.NewCounter(),
		frees:  xsync.NewCounter(),
	}
}

// CString allocates a NUL-terminated copy of s and pins it. The returned
// buffer's Len excludes the terminator.
func (a *Arena) CString(s string) (scriptbridge.Buffer, error) {
	if len(s) > MaxStringSize {
		return scriptbridge.Buffer{}, errors.New(errors.PhasePack, errors.KindOverflow).
			Detail("string size %d exceeds maximum %d", len(s), MaxStringSize).
			Build()
	}

	buf := make([]byte, len(s)+1)
	copy(buf, s)

	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	a.pinned.Store(ptr, buf)
	a.allocs.Inc()

	return scriptbridge.Buffer{Ptr: ptr, Len: uint32(len(s))}, nil
}

// Free unpins a buffer previously returned by CString. Freeing the null
// buffer is a no-op; freeing any other buffer twice breaks the
// single-owner invariant and panics.
func (a *Arena) Free(b scriptbridge.Buffer) {
	if b.IsNull() {
		return
	}
	if _, ok := a.pinned.LoadAndDelete(b.Ptr); !ok {
		panic(errors.Invariant(errors.PhaseReclaim, "buffer freed twice or never allocated"))
	}
	a.frees.Inc()
}

// Live returns the number of buffers currently pinned.
func (a *Arena) Live() int {
	return a.pinned.Size()
}

// Allocated returns the total number of buffers handed out.
func (a *Arena) Allocated() int64 {
	return a.allocs.Value()
}

// Freed returns the total number of buffers released.
func (a *Arena) Freed() int64 {
	return a.frees.Value()
}
