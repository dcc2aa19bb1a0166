// Package codec packs tagged values into fixed 8-byte call-frame slots and
// unpacks them back.
//
// A value is classified exactly once into a small closed set of variants
// (primitive, string, native handle, expands-to-sequence, structural
// fallback) and then written with unaligned-safe little-endian stores. Slots
// are zero-filled before narrow writes so stale high-order bytes from a
// prior call never leak into the native side.
//
// Strings are not packed in place: a NUL-terminated native buffer is
// allocated, the slot receives its address, and ownership of the buffer
// passes to the retainer for deferred reclamation.
package codec
