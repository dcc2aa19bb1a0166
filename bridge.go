package scriptbridge

// Buffer is an opaque native memory handle: the address of a natively
// allocated, NUL-terminated byte sequence plus its length (excluding the
// terminator). A zero Ptr is the null buffer.
type Buffer struct {
	Ptr uintptr
	Len uint32
}

// IsNull reports whether the buffer holds no allocation.
func (b Buffer) IsNull() bool {
	return b.Ptr == 0
}

// Allocator allocates and frees native buffers that back packed strings.
// Buffers handed out by CString remain valid until Free is called with the
// exact same buffer; freeing a buffer twice is an invariant violation.
type Allocator interface {
	// CString allocates a NUL-terminated copy of s and returns its buffer.
	CString(s string) (Buffer, error)

	// Free releases a buffer previously returned by CString.
	Free(Buffer)
}

// Retainer receives ownership of transient buffers produced while packing.
// Implemented by arena.Ledger; buffers handed to Retain are released later
// by a reclaim pass, never by the producer.
type Retainer interface {
	Retain(Buffer)
}
