package netaddr

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Family values used in the packed SockAddrStorage wire format, as in
// EmwAddress.hpp's EMW_AF_* defines.
const (
	FamilyUnspec = 0
	FamilyInet   = 2
	FamilyInet6  = 10
)

// IPv4ToASCII renders a 4-byte IPv4 address as dotted decimal, the
// form the module expects inside command bodies such as a static-IP
// WIFI_CONNECT_CMD.
func IPv4ToASCII(addr [4]byte) string {
	return net.IP(addr[:]).String()
}

// ASCIIToIPv4 parses a dotted-decimal string into its 4 network-order
// bytes. Returns an error if s is not a valid IPv4 address.
func ASCIIToIPv4(s string) ([4]byte, error) {
	var out [4]byte
	ip := net.ParseIP(s)
	if ip == nil {
		return out, fmt.Errorf("netaddr: invalid IPv4 address %q", s)
	}
	v4 := ip.To4()
	if v4 == nil {
		return out, fmt.Errorf("netaddr: %q is not an IPv4 address", s)
	}
	copy(out[:], v4)
	return out, nil
}

// IPv6ToASCII renders a 16-byte IPv6 address in its shortest colon
// form.
func IPv6ToASCII(addr [16]byte) string {
	return net.IP(addr[:]).String()
}

// ASCIIToIPv6 parses a colon-form IPv6 address into its 16 bytes.
func ASCIIToIPv6(s string) ([16]byte, error) {
	var out [16]byte
	ip := net.ParseIP(s)
	if ip == nil {
		return out, fmt.Errorf("netaddr: invalid IPv6 address %q", s)
	}
	v6 := ip.To16()
	if v6 == nil || ip.To4() != nil {
		return out, fmt.Errorf("netaddr: %q is not an IPv6 address", s)
	}
	copy(out[:], v6)
	return out, nil
}

// StorageSize is the size in bytes of the packed socket-address
// storage format exchanged with the module: { length, family,
// data1[2], data2[3]u32, data3[3]u32 }.
const StorageSize = 1 + 1 + 2 + 4*3 + 4*3

// Storage is the host-side view of the module's packed
// SockAddrStorage_t: port lives in Data1, an IPv4 address in
// Data2[0], and an IPv6 address spans Data2[1:3]++Data3[0:2].
type Storage struct {
	Length uint8
	Family uint8
	Data1  [2]byte
	Data2  [3]uint32
	Data3  [3]uint32
}

// Encode writes s into the wire's little-endian packed layout.
func (s Storage) Encode(buf *[StorageSize]byte) {
	buf[0] = s.Length
	buf[1] = s.Family
	copy(buf[2:4], s.Data1[:])
	off := 4
	for _, v := range s.Data2 {
		binary.LittleEndian.PutUint32(buf[off:off+4], v)
		off += 4
	}
	for _, v := range s.Data3 {
		binary.LittleEndian.PutUint32(buf[off:off+4], v)
		off += 4
	}
}

// DecodeStorage parses the packed wire layout. The caller must ensure
// len(buf) >= StorageSize.
func DecodeStorage(buf []byte) Storage {
	var s Storage
	s.Length = buf[0]
	s.Family = buf[1]
	copy(s.Data1[:], buf[2:4])
	off := 4
	for i := range s.Data2 {
		s.Data2[i] = binary.LittleEndian.Uint32(buf[off : off+4])
		off += 4
	}
	for i := range s.Data3 {
		s.Data3[i] = binary.LittleEndian.Uint32(buf[off : off+4])
		off += 4
	}
	return s
}

// SockAddrIn is the host-side typed view of an IPv4 socket address.
type SockAddrIn struct {
	Port uint16
	Addr [4]byte
}

// Storage marshals a into the packed wire Storage form.
func (a SockAddrIn) Storage() Storage {
	return Storage{
		Length: StorageSize,
		Family: FamilyInet,
		Data1:  [2]byte{byte(a.Port), byte(a.Port >> 8)},
		Data2:  [3]uint32{binary.LittleEndian.Uint32(a.Addr[:]), 0, 0},
	}
}

// SockAddrInFromStorage extracts an IPv4 view from s. The caller is
// responsible for having checked s.Family == FamilyInet.
func SockAddrInFromStorage(s Storage) SockAddrIn {
	var addr [4]byte
	binary.LittleEndian.PutUint32(addr[:], s.Data2[0])
	return SockAddrIn{
		Port: uint16(s.Data1[0]) | uint16(s.Data1[1])<<8,
		Addr: addr,
	}
}

// SockAddrIn6 is the host-side typed view of an IPv6 socket address.
type SockAddrIn6 struct {
	Port uint16
	Addr [16]byte
}

// Storage marshals a into the packed wire Storage form: the address
// bytes span Data2[1:3] followed by Data3[0:2], per spec.md's §3 data
// model.
func (a SockAddrIn6) Storage() Storage {
	var s Storage
	s.Length = StorageSize
	s.Family = FamilyInet6
	s.Data1 = [2]byte{byte(a.Port), byte(a.Port >> 8)}
	s.Data2[1] = binary.LittleEndian.Uint32(a.Addr[0:4])
	s.Data2[2] = binary.LittleEndian.Uint32(a.Addr[4:8])
	s.Data3[0] = binary.LittleEndian.Uint32(a.Addr[8:12])
	s.Data3[1] = binary.LittleEndian.Uint32(a.Addr[12:16])
	return s
}

// SockAddrIn6FromStorage extracts an IPv6 view from s. The caller is
// responsible for having checked s.Family == FamilyInet6.
func SockAddrIn6FromStorage(s Storage) SockAddrIn6 {
	var addr [16]byte
	binary.LittleEndian.PutUint32(addr[0:4], s.Data2[1])
	binary.LittleEndian.PutUint32(addr[4:8], s.Data2[2])
	binary.LittleEndian.PutUint32(addr[8:12], s.Data3[0])
	binary.LittleEndian.PutUint32(addr[12:16], s.Data3[1])
	return SockAddrIn6{
		Port: uint16(s.Data1[0]) | uint16(s.Data1[1])<<8,
		Addr: addr,
	}
}
