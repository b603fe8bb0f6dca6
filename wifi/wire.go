package wifi

import "encoding/binary"

// putString writes s, NUL-terminated and zero-padded, into a
// fixed-size field. It panics if s does not fit — callers validate
// length against the field's max before reaching here.
func putString(field []byte, s string) {
	if len(s) >= len(field) {
		panic("wifi: string does not fit field")
	}
	n := copy(field, s)
	for i := n; i < len(field); i++ {
		field[i] = 0
	}
}

// getString reads a NUL-terminated string out of a fixed-size field.
func getString(field []byte) string {
	for i, b := range field {
		if b == 0 {
			return string(field[:i])
		}
	}
	return string(field)
}

func putUint32(buf []byte, v uint32) { binary.LittleEndian.PutUint32(buf, v) }
func getUint32(buf []byte) uint32    { return binary.LittleEndian.Uint32(buf) }
func putInt32(buf []byte, v int32)   { binary.LittleEndian.PutUint32(buf, uint32(v)) }
func getInt32(buf []byte) int32      { return int32(binary.LittleEndian.Uint32(buf)) }
func putUint16(buf []byte, v uint16) { binary.LittleEndian.PutUint16(buf, v) }

// statusFromBody reads the 4-byte little-endian status field the
// module prefixes most command responses with: zero means OK, any
// other value is a module-reported error (spec.md §7: "the per-command
// status field ... becomes OK iff zero").
func statusFromBody(body []byte) Status {
	if len(body) < 4 {
		return Error
	}
	if getInt32(body[:4]) == 0 {
		return OK
	}
	return Error
}
