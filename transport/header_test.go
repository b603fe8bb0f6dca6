package transport

import "testing"

func TestSPIHeaderRoundTrip(t *testing.T) {
	h := NewSPIHeader(42)
	var buf [SPIHeaderSize]byte
	h.Encode(&buf)

	// Flip the type byte as the module would.
	buf[0] = spiTypeReply

	got, err := DecodeSPIHeader(buf)
	if err != nil {
		t.Fatalf("DecodeSPIHeader: %v", err)
	}
	if got.Len != 42 {
		t.Fatalf("Len = %d, want 42", got.Len)
	}
}

func TestSPIHeaderRejectsBadType(t *testing.T) {
	var buf [SPIHeaderSize]byte
	NewSPIHeader(0).Encode(&buf)
	// Leave type as 0x0A (host type); module replies must be 0x0B.
	if _, err := DecodeSPIHeader(buf); err == nil {
		t.Fatal("expected error for host-typed header")
	}
}

func TestSPIHeaderRejectsBadLenCheck(t *testing.T) {
	var buf [SPIHeaderSize]byte
	buf[0] = spiTypeReply
	buf[1], buf[2] = 10, 0
	buf[3], buf[4] = 0, 0 // lenx should be ^10, not 0
	if _, err := DecodeSPIHeader(buf); err == nil {
		t.Fatal("expected error for bad len/lenx check")
	}
}
