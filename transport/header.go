package transport

import "encoding/binary"

// SPIHeaderSize is the size of the 7-byte header exchanged before the
// data phase of every turn.
const SPIHeaderSize = 7

const (
	spiTypeWrite = 0x0A // host -> module
	spiTypeReply = 0x0B // module -> host
)

// SPIHeader is the turn header exchanged full-duplex before the data
// phase. Len is the number of data bytes this side intends to carry
// this turn; Lenx is its one's complement, used by the receiver to
// validate the header before trusting Len.
type SPIHeader struct {
	Type uint8
	Len  uint16
	Lenx uint16
}

// NewSPIHeader builds the host's outbound header for a turn carrying n
// bytes of tx payload.
func NewSPIHeader(n uint16) SPIHeader {
	return SPIHeader{Type: spiTypeWrite, Len: n, Lenx: ^n}
}

// Encode writes h into buf as the wire-format 7-byte header. Pad bytes
// are zeroed; the module's own pad bytes carry no defined meaning.
func (h SPIHeader) Encode(buf *[SPIHeaderSize]byte) {
	buf[0] = h.Type
	binary.LittleEndian.PutUint16(buf[1:3], h.Len)
	binary.LittleEndian.PutUint16(buf[3:5], h.Lenx)
	buf[5], buf[6] = 0, 0
}

// DecodeSPIHeader parses a module reply header and validates it. A
// non-nil error means the turn must be aborted.
func DecodeSPIHeader(buf [SPIHeaderSize]byte) (SPIHeader, error) {
	h := SPIHeader{
		Type: buf[0],
		Len:  binary.LittleEndian.Uint16(buf[1:3]),
		Lenx: binary.LittleEndian.Uint16(buf[3:5]),
	}
	if h.Type != spiTypeReply {
		return h, errInvalidReplyType
	}
	if h.Len^h.Lenx != 0xFFFF {
		return h, errInvalidLenCheck
	}
	return h, nil
}
