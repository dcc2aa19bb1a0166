package frame

import (
	scriptbridge "github.com/wippyai/script-bridge"
	"github.com/wippyai/script-bridge/arena"
	"github.com/wippyai/script-bridge/codec"
	"github.com/wippyai/script-bridge/errors"
)

const (
	// SlotCount is the fixed argument capacity in 8-byte slots.
	SlotCount = 32

	// SlotSize is the width of one slot in bytes.
	SlotSize = codec.SlotSize
)

// Invoker is the native call boundary: it receives the frame, reads the
// identifier and argument slots, performs the call, and writes the result
// region and error flag before returning. The call is synchronous.
type Invoker interface {
	Invoke(f *Frame)
}

// Frame is the call context. Create one per goroutine with New and reuse
// it across calls; a Frame must never be shared between goroutines.
type Frame struct {
	args   [SlotCount * SlotSize]byte
	result [SlotSize]byte

	argc        int
	resultSlots int
	hasError    bool
	id          uint64

	// depth tracks re-entrant invokes so the reclaim pass runs once per
	// outermost invocation and never recursively.
	depth      int
	reclaiming bool

	// resultBuf backs a string result of the current call. It is retired
	// to the ledger on the next Reset, after the caller has copied the
	// string out; every other transient buffer goes to the ledger at
	// allocation time.
	resultBuf scriptbridge.Buffer

	// baseStack holds the first argument slot of each nested call in
	// progress, so handlers index arguments relative to their own call.
	// Empty means base 0.
	baseStack []int

	invoker   Invoker
	alloc     scriptbridge.Allocator
	ledger    *arena.Ledger
	reclaimer *arena.Reclaimer
}

// Option configures a Frame.
type Option func(*Frame)

// WithAllocator shares an allocator between frames.
func WithAllocator(a scriptbridge.Allocator) Option {
	return func(f *Frame) { f.alloc = a }
}

// WithLedger shares a transient buffer ledger between frames.
func WithLedger(l *arena.Ledger) Option {
	return func(f *Frame) { f.ledger = l }
}

// WithReclaimer overrides the reclaimer run after each outermost invoke.
func WithReclaimer(r *arena.Reclaimer) Option {
	return func(f *Frame) { f.reclaimer = r }
}

// New creates a frame targeting the given native boundary. Without options
// the frame owns a private arena, ledger, and default reclaimer; programs
// running several frames should share one of each via options.
func New(invoker Invoker, opts ...Option) *Frame {
	f := &Frame{invoker: invoker}
	for _, opt := range opts {
		opt(f)
	}
	if f.alloc == nil {
		f.alloc = arena.New()
	}
	if f.ledger == nil {
		f.ledger = arena.NewLedger()
	}
	if f.reclaimer == nil {
		f.reclaimer = arena.NewReclaimer(f.ledger, f.alloc)
	}
	return f
}

// Reset zeroes the argument and result counts and the error flag. It does
// not drain the ledger. A string result still held by the frame is retired
// to the ledger here, so call Reset only after copying results out.
// Resetting twice in a row is the same as resetting once.
func (f *Frame) Reset() {
	f.argc = 0
	f.resultSlots = 0
	f.hasError = false
	f.baseStack = f.baseStack[:0]
	if !f.resultBuf.IsNull() {
		f.ledger.Retain(f.resultBuf)
		f.resultBuf = scriptbridge.Buffer{}
	}
}

// SetIdentifier records which native function the next Invoke targets.
func (f *Frame) SetIdentifier(id uint64) {
	f.id = id
}

// Identifier returns the native function selector for the current call.
func (f *Frame) Identifier() uint64 {
	return f.id
}

// ArgCount returns the number of argument slots written so far.
func (f *Frame) ArgCount() int {
	return f.argc
}

// ResultSlots returns the number of result slots the native side wrote.
func (f *Frame) ResultSlots() int {
	return f.resultSlots
}

// InFlight reports whether an invoke is currently executing on this frame.
func (f *Frame) InFlight() bool {
	return f.depth > 0
}

// HasError reports whether the native side raised an error.
func (f *Frame) HasError() bool {
	return f.hasError
}

// Push classifies v and packs it into the next free slot(s). It fails
// without touching existing slots when the remaining capacity cannot hold
// the value.
func (f *Frame) Push(v any) error {
	cv, err := codec.Classify(v)
	if err != nil {
		return err
	}
	return f.PushValue(cv)
}

// PushValue packs an already classified value.
func (f *Frame) PushValue(v codec.Value) error {
	if f.argc >= SlotCount {
		return errors.Capacity(errors.PhasePack, f.argc, SlotCount)
	}
	n, err := codec.Pack(f.args[f.argc*SlotSize:], v, f.alloc, f.ledger)
	if err != nil {
		return err
	}
	f.argc += n
	return nil
}

// Invoke hands the frame to the native boundary. After the outermost
// invocation returns, one bounded reclaim pass drains the ledger;
// re-entrant invokes on the same frame skip the nested pass.
func (f *Frame) Invoke() {
	f.depth++
	f.invoker.Invoke(f)
	f.depth--

	if f.depth == 0 && !f.reclaiming {
		f.reclaiming = true
		f.reclaimer.Reclaim()
		f.reclaiming = false
	}
}

// CheckError surfaces a native failure. If the error flag is set it reads
// the native-supplied message from the result region, resets the frame,
// and returns the failure; the frame is reset either way once the flag was
// set. With no error it returns nil and leaves the frame untouched.
func (f *Frame) CheckError() error {
	err := f.NativeError()
	if err != nil {
		f.Reset()
	}
	return err
}

// NativeError returns the native failure without consuming it. Nested
// callers use it so the outer call's state can be restored afterwards.
func (f *Frame) NativeError() error {
	if !f.hasError {
		return nil
	}
	return errors.Native(codec.UnpackString(f.result[:]))
}

// CallMark snapshots the caller-visible state of the call in progress.
type CallMark struct {
	argc        int
	id          uint64
	result      [SlotSize]byte
	resultSlots int
	resultBuf   scriptbridge.Buffer
}

// BeginNested prepares the frame for a re-entrant call while an invoke is
// executing. The outer call's arguments stay in their slots; the nested
// call's arguments append after them and its handler reads them from index
// zero. The returned mark restores the outer call in EndNested.
func (f *Frame) BeginNested() CallMark {
	m := CallMark{
		argc:        f.argc,
		id:          f.id,
		result:      f.result,
		resultSlots: f.resultSlots,
		resultBuf:   f.resultBuf,
	}
	f.resultBuf = scriptbridge.Buffer{}
	f.baseStack = append(f.baseStack, f.argc)
	return m
}

// EndNested unwinds a nested call: the nested result buffer, if any, is
// retired to the ledger (the caller has already copied the result out) and
// the outer call's arguments, identifier, and result state come back.
func (f *Frame) EndNested(m CallMark) {
	f.retireResultBuf()
	f.argc = m.argc
	f.id = m.id
	f.result = m.result
	f.resultSlots = m.resultSlots
	f.resultBuf = m.resultBuf
	f.hasError = false
	if n := len(f.baseStack); n > 0 {
		f.baseStack = f.baseStack[:n-1]
	}
}

// Ledger exposes the frame's transient buffer ledger.
func (f *Frame) Ledger() *arena.Ledger {
	return f.ledger
}

// Reclaimer exposes the frame's reclaimer.
func (f *Frame) Reclaimer() *arena.Reclaimer {
	return f.reclaimer
}

// callBase returns the first argument slot of the call in progress.
func (f *Frame) callBase() int {
	if n := len(f.baseStack); n > 0 {
		return f.baseStack[n-1]
	}
	return 0
}

// arg returns the 8-byte slot for argument i of the current call, or nil
// when out of range.
func (f *Frame) arg(i int) []byte {
	idx := f.callBase() + i
	if i < 0 || idx >= f.argc {
		return nil
	}
	return f.args[idx*SlotSize : (idx+1)*SlotSize]
}
