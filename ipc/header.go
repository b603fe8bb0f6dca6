package ipc

import "encoding/binary"

// HeaderSize is the size of the header present at the start of every
// host->module command and every module->host response/event.
const HeaderSize = 6

// NoRequest is the sentinel req_id meaning "none"; the counter that
// hands out request ids skips it.
const NoRequest uint32 = 0xFFFFFFFF

// EventBit marks api_id values carried by module->host events rather
// than command responses.
const EventBit uint16 = 0x8000

// Header is the 6-byte req_id/api_id pair. Encoded independently of
// Go's struct layout via encoding/binary against a [6]byte, rather
// than relied on to match memory layout, since the wire format is a
// packed C struct on the module side.
type Header struct {
	ReqID uint32
	APIID uint16
}

// Encode writes h into buf as the little-endian wire layout.
func (h Header) Encode(buf *[HeaderSize]byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.ReqID)
	binary.LittleEndian.PutUint16(buf[4:6], h.APIID)
}

// DecodeHeader parses the first 6 bytes of buf as a Header. The
// caller must ensure len(buf) >= HeaderSize.
func DecodeHeader(buf []byte) Header {
	return Header{
		ReqID: binary.LittleEndian.Uint32(buf[0:4]),
		APIID: binary.LittleEndian.Uint16(buf[4:6]),
	}
}

// IsEvent reports whether api_id carries the event bit.
func (h Header) IsEvent() bool {
	return h.APIID&EventBit != 0
}
