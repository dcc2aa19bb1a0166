// Package registry maps native function names to handlers and dispatches
// frames to them.
//
// Natives are registered under SCREAMING_SNAKE names; callers select them
// by the 64-bit identifier derived from the name with Identifier. The
// registry implements the frame's native boundary: unknown identifiers and
// handler errors set the frame's error flag instead of panicking, so a bad
// call never takes down the host.
package registry

import (
	"fmt"
	"hash/fnv"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/wippyai/script-bridge/errors"
	"github.com/wippyai/script-bridge/frame"
)

// Handler implements one native function. It reads arguments from the
// frame, writes a result through the SetResult methods, and returns an
// error to raise a native failure for the caller.
type Handler func(f *frame.Frame) error

// Identifier derives the 64-bit native function selector from its
// registered name (FNV-1a).
func Identifier(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}

// Registry is a concurrent native function table.
type Registry struct {
	handlers *xsync.MapOf[uint64, registered]
}

type registered struct {
	name    string
	handler Handler
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{handlers: xsync.NewMapOf[uint64, registered]()}
}

// Register binds a handler to name. Registering the same name twice is a
// programming error and fails.
func (r *Registry) Register(name string, h Handler) error {
	if h == nil {
		return errors.New(errors.PhaseRegistry, errors.KindInvalidData).
			Detail("nil handler for %q", name).
			Build()
	}
	id := Identifier(name)
	if _, loaded := r.handlers.LoadOrStore(id, registered{name: name, handler: h}); loaded {
		return errors.New(errors.PhaseRegistry, errors.KindInvalidData).
			Detail("native %q already registered", name).
			Build()
	}
	Logger().Debug("registered native", zap.String("name", name), zap.Uint64("id", id))
	return nil
}

// MustRegister is Register for init-time tables; it panics on conflict.
func (r *Registry) MustRegister(name string, h Handler) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Lookup returns the handler bound to id.
func (r *Registry) Lookup(id uint64) (Handler, bool) {
	reg, ok := r.handlers.Load(id)
	if !ok {
		return nil, false
	}
	return reg.handler, true
}

// Name returns the registered name behind id, for diagnostics.
func (r *Registry) Name(id uint64) (string, bool) {
	reg, ok := r.handlers.Load(id)
	if !ok {
		return "", false
	}
	return reg.name, true
}

// Len returns the number of registered natives.
func (r *Registry) Len() int {
	return r.handlers.Size()
}

// Range visits every registered native name.
func (r *Registry) Range(fn func(name string, id uint64) bool) {
	r.handlers.Range(func(id uint64, reg registered) bool {
		return fn(reg.name, id)
	})
}

// Invoke implements frame.Invoker. It reads the frame's identifier,
// dispatches to the bound handler, and converts a missing handler or a
// handler error into the frame's error flag.
func (r *Registry) Invoke(f *frame.Frame) {
	reg, ok := r.handlers.Load(f.Identifier())
	if !ok {
		f.Fail(fmt.Sprintf("unknown native identifier 0x%x", f.Identifier()))
		return
	}
	if err := reg.handler(f); err != nil {
		f.Fail(err.Error())
	}
}
