// Package buffer provides the scoped allocator the voice uses to hand out
// working buffers. All memory is reserved up front; allocation only moves a
// cursor, so nothing reaches the garbage collector once rendering starts.
package buffer
