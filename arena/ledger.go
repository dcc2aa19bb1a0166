package arena

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	scriptbridge "github.com/wippyai/script-bridge"
)

// Ledger holds transient buffers between the call that produced them and
// the reclaim pass that frees them. It is an unordered, unbounded,
// lock-free structure: any number of goroutines may Retain concurrently,
// and drains happen on whichever goroutine runs a reclaim pass. Each
// retained buffer is surfaced by TryDequeue exactly once.
type Ledger struct {
	head  atomic.Pointer[ledgerNode]
	depth *xsync.Counter
}

type ledgerNode struct {
	buf  scriptbridge.Buffer
	next *ledgerNode
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{depth: xsync.NewCounter()}
}

// Retain takes ownership of a buffer until a reclaim pass frees it.
func (l *Ledger) Retain(b scriptbridge.Buffer) {
	n := &ledgerNode{buf: b}
	for {
		old := l.head.Load()
		n.next = old
		if l.head.CompareAndSwap(old, n) {
			l.depth.Inc()
			return
		}
	}
}

// TryDequeue removes one buffer if any is present.
func (l *Ledger) TryDequeue() (scriptbridge.Buffer, bool) {
	for {
		n := l.head.Load()
		if n == nil {
			return scriptbridge.Buffer{}, false
		}
		if l.head.CompareAndSwap(n, n.next) {
			l.depth.Dec()
			return n.buf, true
		}
	}
}

// Depth returns the approximate number of buffers awaiting reclamation.
func (l *Ledger) Depth() int64 {
	return l.depth.Value()
}
