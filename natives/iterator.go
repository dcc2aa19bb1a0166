// Package natives provides the built-in native handlers shipped with the
// bridge.
//
// The session iterator natives let managed code walk the host's connected
// sessions without holding a direct reference: the iterator object lives
// in a handle table on the native side and crosses the boundary as an
// opaque pointer-sized handle.
package natives

import (
	"github.com/wippyai/script-bridge/frame"
	"github.com/wippyai/script-bridge/handles"
	"github.com/wippyai/script-bridge/registry"
)

// Native names registered by this package.
const (
	NameCreateSessionIterator = "CREATE_CONNECTED_SESSIONS_ITERATOR"
	NameIteratorHasNext       = "ITERATOR_HAS_NEXT"
	NameIteratorCurrentID     = "ITERATOR_GET_CURRENT_ID"
	NameIteratorAdvance       = "ITERATOR_MOVE_NEXT"
	NameDestroyIterator       = "DESTROY_ITERATOR"
)

// typeSessionIterator tags iterator entries in the handle table.
const typeSessionIterator uint32 = 1

// SessionSource provides the IDs of currently connected sessions.
type SessionSource interface {
	ConnectedIDs() []int32
}

// SessionIterator walks a snapshot of connected session IDs.
type SessionIterator struct {
	ids []int32
	pos int
}

// HasNext reports whether the iterator has unconsumed entries.
func (it *SessionIterator) HasNext() bool {
	return it.pos < len(it.ids)
}

// CurrentID returns the session ID under the cursor, or -1 when exhausted.
func (it *SessionIterator) CurrentID() int32 {
	if it.pos >= len(it.ids) {
		return -1
	}
	return it.ids[it.pos]
}

// Advance moves the cursor forward.
func (it *SessionIterator) Advance() {
	if it.pos < len(it.ids) {
		it.pos++
	}
}

// RegisterSessionNatives binds the iterator natives against a session
// source, storing live iterators in table.
func RegisterSessionNatives(reg *registry.Registry, table *handles.Table, src SessionSource) error {
	lookup := func(f *frame.Frame) *SessionIterator {
		h := handles.Handle(f.Pointer(0))
		v, ok := table.GetTyped(h, typeSessionIterator)
		if !ok {
			return nil
		}
		return v.(*SessionIterator)
	}

	if err := reg.Register(NameCreateSessionIterator, func(f *frame.Frame) error {
		it := &SessionIterator{ids: src.ConnectedIDs()}
		h, err := table.Insert(typeSessionIterator, it)
		if err != nil {
			return err
		}
		f.SetResultPointer(uintptr(h))
		return nil
	}); err != nil {
		return err
	}

	if err := reg.Register(NameIteratorHasNext, func(f *frame.Frame) error {
		it := lookup(f)
		if it == nil {
			f.SetResultBool(false)
			return nil
		}
		f.SetResultBool(it.HasNext())
		return nil
	}); err != nil {
		return err
	}

	if err := reg.Register(NameIteratorCurrentID, func(f *frame.Frame) error {
		it := lookup(f)
		if it == nil {
			f.SetResultInt32(-1)
			return nil
		}
		f.SetResultInt32(it.CurrentID())
		return nil
	}); err != nil {
		return err
	}

	if err := reg.Register(NameIteratorAdvance, func(f *frame.Frame) error {
		if it := lookup(f); it != nil {
			it.Advance()
		}
		return nil
	}); err != nil {
		return err
	}

	return reg.Register(NameDestroyIterator, func(f *frame.Frame) error {
		table.Drop(handles.Handle(f.Pointer(0)))
		return nil
	})
}
