package tls

import "encoding/binary"

func putInt32(buf []byte, v int32)   { binary.LittleEndian.PutUint32(buf, uint32(v)) }
func getInt32(buf []byte) int32      { return int32(binary.LittleEndian.Uint32(buf)) }
func putUint32(buf []byte, v uint32) { binary.LittleEndian.PutUint32(buf, v) }

func putString(field []byte, s string) {
	if len(s) >= len(field) {
		panic("tls: string does not fit field")
	}
	n := copy(field, s)
	for i := n; i < len(field); i++ {
		field[i] = 0
	}
}
