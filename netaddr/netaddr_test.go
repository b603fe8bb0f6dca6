package netaddr

import "testing"

func TestIPv4RoundTrip(t *testing.T) {
	in := [4]byte{192, 168, 1, 42}
	s := IPv4ToASCII(in)
	if s != "192.168.1.42" {
		t.Fatalf("IPv4ToASCII = %q", s)
	}
	out, err := ASCIIToIPv4(s)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("round trip = %v, want %v", out, in)
	}
}

func TestIPv6RoundTrip(t *testing.T) {
	in := [16]byte{0x20, 0x01, 0x0d, 0xb8}
	s := IPv6ToASCII(in)
	out, err := ASCIIToIPv6(s)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("round trip = %v, want %v", out, in)
	}
}

func TestASCIIToIPv4Rejects(t *testing.T) {
	if _, err := ASCIIToIPv4("not-an-ip"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ASCIIToIPv4("::1"); err == nil {
		t.Fatal("expected error for IPv6 literal")
	}
}

func TestSockAddrInStorageRoundTrip(t *testing.T) {
	a := SockAddrIn{Port: 8080, Addr: [4]byte{10, 0, 0, 1}}
	var buf [StorageSize]byte
	a.Storage().Encode(&buf)
	s := DecodeStorage(buf[:])
	if s.Family != FamilyInet {
		t.Fatalf("family = %d, want %d", s.Family, FamilyInet)
	}
	got := SockAddrInFromStorage(s)
	if got != a {
		t.Fatalf("got %+v, want %+v", got, a)
	}
}

func TestSockAddrIn6StorageRoundTrip(t *testing.T) {
	a := SockAddrIn6{Port: 443, Addr: [16]byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}}
	var buf [StorageSize]byte
	a.Storage().Encode(&buf)
	s := DecodeStorage(buf[:])
	if s.Family != FamilyInet6 {
		t.Fatalf("family = %d, want %d", s.Family, FamilyInet6)
	}
	got := SockAddrIn6FromStorage(s)
	if got != a {
		t.Fatalf("got %+v, want %+v", got, a)
	}
}
