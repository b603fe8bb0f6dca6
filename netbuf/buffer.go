package netbuf

// Buffer is a fixed-capacity payload container. storage is the full
// backing array; size is the current payload length including any
// reserved prefix; reserved is how many leading bytes of storage are a
// lower-layer header hidden from Payload.
type Buffer struct {
	storage  []byte
	size     int
	reserved int
}

// Capacity returns the total number of bytes storage can hold.
func (b *Buffer) Capacity() int {
	return len(b.storage)
}

// Size returns the current payload length, including the reserved
// prefix.
func (b *Buffer) Size() int {
	return b.size
}

// SetSize sets the payload length. It panics if n exceeds Capacity or
// is less than the reserved prefix — the same "buffer invariant"
// violations the driver core treats as programmer error.
func (b *Buffer) SetSize(n int) {
	if n > b.Capacity() {
		panic("netbuf: size exceeds capacity")
	}
	if n < b.reserved {
		panic("netbuf: size below reserved prefix")
	}
	b.size = n
}

// Reserved returns the number of leading bytes hidden from Payload.
func (b *Buffer) Reserved() int {
	return b.reserved
}

// Advance hides n additional leading bytes from Payload, used when a
// lower layer strips its own header before handing the buffer
// upward. It panics if that would push the reserved prefix past size.
func (b *Buffer) Advance(n int) {
	if b.reserved+n > b.size {
		panic("netbuf: advance past payload size")
	}
	b.reserved += n
}

// Payload returns the bytes after the reserved prefix, up to size.
// The slice aliases the buffer's storage; callers must not retain it
// past the buffer's lifetime.
func (b *Buffer) Payload() []byte {
	return b.storage[b.reserved:b.size]
}

// Raw returns the full backing storage, for producers that need to
// write a header into the reserved prefix themselves (e.g. the bypass
// output path stamping a link-layer descriptor).
func (b *Buffer) Raw() []byte {
	return b.storage
}

// reset clears size and reserved so the buffer looks freshly allocated.
// Called by pool implementations before returning a reused buffer.
func (b *Buffer) reset() {
	b.size = 0
	b.reserved = 0
}
