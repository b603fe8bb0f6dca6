package socket

import "encoding/binary"

func putInt32(buf []byte, v int32)  { binary.LittleEndian.PutUint32(buf, uint32(v)) }
func getInt32(buf []byte) int32     { return int32(binary.LittleEndian.Uint32(buf)) }
func putUint32(buf []byte, v uint32) { binary.LittleEndian.PutUint32(buf, v) }
func getUint32(buf []byte) uint32    { return binary.LittleEndian.Uint32(buf) }

func putString(field []byte, s string) {
	if len(s) >= len(field) {
		panic("socket: string does not fit field")
	}
	n := copy(field, s)
	for i := n; i < len(field); i++ {
		field[i] = 0
	}
}

func getString(field []byte) string {
	for i, b := range field {
		if b == 0 {
			return string(field[:i])
		}
	}
	return string(field)
}
