// Package arena manages the native buffers that back packed strings.
//
// Arena allocates pinned NUL-terminated buffers and frees them exactly
// once. Ledger is the concurrent, unbounded collection of buffers awaiting
// reclamation; packing goroutines retain into it from many threads.
// Reclaimer drains the ledger under a per-pass item cap and wall-clock
// budget so the added latency of any single native call stays bounded no
// matter how deep the backlog grows.
package arena
