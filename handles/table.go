// Package handles stores native-side objects behind opaque handles.
//
// Natives that create host objects (iterators, entity wrappers) cross them
// to the managed side as a single pointer-sized handle rather than a real
// address. The table recycles slots through a free list, supports a typed
// get so a handle for one object class cannot be read as another, and runs
// a destructor on drop when the value implements Dropper.
package handles

import (
	"sync"

	"github.com/wippyai/script-bridge/errors"
)

// Handle is an opaque reference to a stored object.
// Handle 0 is reserved and always invalid.
type Handle uint64

// Dropper is implemented by values needing cleanup when dropped.
type Dropper interface {
	Drop()
}

// ErrClosed is returned once the table has been closed.
var ErrClosed = errors.Invariant(errors.PhaseInvoke, "handle table closed")

type entry struct {
	value  any
	typeID uint32
	valid  bool
}

// Table is an in-memory handle table safe for concurrent use.
type Table struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert stores a value under a type tag and returns its handle.
func (t *Table) Insert(typeID uint32, value any) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, ErrClosed
	}

	e := entry{typeID: typeID, value: value, valid: true}

	if len(t.freeList) > 0 {
		h := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[h-1] = e
		return h, nil
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries)), nil
}

// Get retrieves a value by handle.
func (t *Table) Get(h Handle) (any, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}
	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// GetTyped retrieves a value only if it carries the expected type tag.
func (t *Table) GetTyped(h Handle, typeID uint32) (any, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}
	e := t.entries[idx]
	if !e.valid || e.typeID != typeID {
		return nil, false
	}
	return e.value, true
}

// Drop removes an object, runs its destructor if it has one, and recycles
// the handle.
func (t *Table) Drop(h Handle) bool {
	if h == 0 {
		return false
	}

	t.mu.Lock()
	idx := h - 1
	if int(idx) >= len(t.entries) {
		t.mu.Unlock()
		return false
	}
	e := &t.entries[idx]
	if !e.valid {
		t.mu.Unlock()
		return false
	}

	value := e.value
	e.valid = false
	e.value = nil
	t.freeList = append(t.freeList, h)
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	return true
}

// Len returns the number of live objects.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}

// Close drops every live object. Further inserts fail with ErrClosed.
func (t *Table) Close() {
	t.mu.Lock()
	var dropped []any
	for i := range t.entries {
		if t.entries[i].valid {
			dropped = append(dropped, t.entries[i].value)
			t.entries[i].valid = false
			t.entries[i].value = nil
		}
	}
	t.closed = true
	t.mu.Unlock()

	for _, v := range dropped {
		if d, ok := v.(Dropper); ok {
			d.Drop()
		}
	}
}
