// Package tls implements the module-hosted mutual-TLS session API
// spec.md §4.5 names: a TLS connection is a distinct handle type from
// a plain socket, grounded on EmwApiEmw's tlsConnect/tlsSend/tlsReceive
// family in original_source/.
package tls

import (
	"context"
	"time"

	"emw.dev/netaddr"
	"emw.dev/wifi"
)

// Version selects the TLS protocol version, matching
// EmwApiEmw::TlsVersion.
type Version uint8

const (
	VersionSSLv3 Version = iota + 1
	VersionTLS1_0
	VersionTLS1_1
	VersionTLS1_2
)

// maxCertLen and maxSNILen bound the certificate and server-name
// fields, per SPEC_FULL.md's open-question resolution modelling the
// original's generous fixed arrays as bounded slices with explicit
// validation rather than fixed-size arrays.
const (
	maxCertLen = 2500
	maxSNILen  = 128
)

const requestTimeout = 15 * time.Second

const (
	cmdSetVersion           = 0x0301
	cmdSetClientCertificate = 0x0302
	cmdSetClientPrivateKey  = 0x0303
	cmdConnect              = 0x0304
	cmdConnectSNI           = 0x0305
	cmdSend                 = 0x0306
	cmdReceive              = 0x0307
	cmdClose                = 0x0308
	cmdSetNonBlocking       = 0x0309
)

// SetVersion issues TLS_SET_VERSION_CMD, configuring the protocol
// version used by subsequent Connect/ConnectSNI calls on dev.
func SetVersion(ctx context.Context, dev *wifi.Device, version Version) wifi.Status {
	body := []byte{byte(version)}
	_, status := dev.RawRequest(cmdSetVersion, body, make([]byte, 4), requestTimeout)
	return status
}

// SetClientCertificate issues TLS_SET_CLIENT_CERTIFICATE_CMD.
func SetClientCertificate(ctx context.Context, dev *wifi.Device, cert []byte) wifi.Status {
	if len(cert) > maxCertLen {
		return wifi.ParamError
	}
	body := make([]byte, 4+len(cert))
	putUint32(body[0:4], uint32(len(cert)))
	copy(body[4:], cert)
	_, status := dev.RawRequest(cmdSetClientCertificate, body, make([]byte, 4), requestTimeout)
	return status
}

// SetClientPrivateKey issues TLS_SET_CLIENT_PRIVATE_KEY_CMD.
func SetClientPrivateKey(ctx context.Context, dev *wifi.Device, key []byte) wifi.Status {
	if len(key) > maxCertLen {
		return wifi.ParamError
	}
	body := make([]byte, 4+len(key))
	putUint32(body[0:4], uint32(len(key)))
	copy(body[4:], key)
	_, status := dev.RawRequest(cmdSetClientPrivateKey, body, make([]byte, 4), requestTimeout)
	return status
}

// Session is a handle to one TLS-wrapped socket.
type Session struct {
	dev *wifi.Device
	fd  int32
}

// Connect issues TLS_CONNECT_CMD, opening a TLS session to addr over
// a freshly-created socket of the given domain/type/protocol, trusting
// ca to validate the server certificate.
func Connect(ctx context.Context, dev *wifi.Device, domain, typ, protocol int32, addr netaddr.Storage, ca []byte) (*Session, wifi.Status) {
	if len(ca) > maxCertLen {
		return nil, wifi.ParamError
	}
	body := make([]byte, 4+4+4+netaddr.StorageSize+4+len(ca))
	putInt32(body[0:4], domain)
	putInt32(body[4:8], typ)
	putInt32(body[8:12], protocol)
	var enc [netaddr.StorageSize]byte
	addr.Encode(&enc)
	copy(body[12:12+netaddr.StorageSize], enc[:])
	off := 12 + netaddr.StorageSize
	putUint32(body[off:off+4], uint32(len(ca)))
	copy(body[off+4:], ca)

	resp := make([]byte, 4+4)
	n, status := dev.RawRequest(cmdConnect, body, resp, requestTimeout)
	if status != wifi.OK {
		return nil, status
	}
	return &Session{dev: dev, fd: getInt32(resp[4:n])}, wifi.OK
}

// ConnectSNI issues TLS_CONNECT_SNI_CMD, opening a TLS session that
// presents serverName for SNI-based virtual hosting.
func ConnectSNI(ctx context.Context, dev *wifi.Device, serverName string, addr netaddr.Storage, ca []byte) (*Session, wifi.Status) {
	if len(serverName) > maxSNILen || len(ca) > maxCertLen {
		return nil, wifi.ParamError
	}
	body := make([]byte, maxSNILen+1+netaddr.StorageSize+4+len(ca))
	putString(body[:maxSNILen+1], serverName)
	off := maxSNILen + 1
	var enc [netaddr.StorageSize]byte
	addr.Encode(&enc)
	copy(body[off:off+netaddr.StorageSize], enc[:])
	off += netaddr.StorageSize
	putUint32(body[off:off+4], uint32(len(ca)))
	copy(body[off+4:], ca)

	resp := make([]byte, 4+4)
	n, status := dev.RawRequest(cmdConnectSNI, body, resp, requestTimeout)
	if status != wifi.OK {
		return nil, status
	}
	return &Session{dev: dev, fd: getInt32(resp[4:n])}, wifi.OK
}

// Send writes data over the TLS session in a single request. Unlike
// socket.Socket.Send, it does not split data across several requests:
// data longer than the buffer capacity minus 8 is rejected with
// ParamError.
func (s *Session) Send(ctx context.Context, data []byte) (int, wifi.Status) {
	if len(data) > s.dev.BufferCapacity()-8 {
		return 0, wifi.ParamError
	}
	body := make([]byte, 4+4+len(data))
	putInt32(body[0:4], s.fd)
	putInt32(body[4:8], int32(len(data)))
	copy(body[8:], data)

	resp := make([]byte, 4+4)
	n, status := s.dev.RawRequest(cmdSend, body, resp, requestTimeout)
	if status != wifi.OK {
		return 0, status
	}
	return int(getInt32(resp[4:n])), wifi.OK
}

// Receive reads up to len(buf) bytes from the TLS session.
func (s *Session) Receive(ctx context.Context, buf []byte) (int, wifi.Status) {
	want := len(buf)
	if max := s.dev.BufferCapacity() - 8; want > max {
		want = max
	}
	if want <= 0 {
		return 0, wifi.Error
	}
	body := make([]byte, 8)
	putInt32(body[0:4], s.fd)
	putInt32(body[4:8], int32(want))

	resp := make([]byte, 4+4+want)
	_, status := s.dev.RawRequest(cmdReceive, body, resp, requestTimeout)
	if status != wifi.OK {
		return 0, status
	}
	got := int(getInt32(resp[4:8]))
	if got > 0 {
		copy(buf[:got], resp[8:8+got])
	}
	return got, wifi.OK
}

// Close issues TLS_CLOSE_CMD, tearing down the session and its
// underlying socket.
func (s *Session) Close(ctx context.Context) wifi.Status {
	body := make([]byte, 4)
	putInt32(body[0:4], s.fd)
	_, status := s.dev.RawRequest(cmdClose, body, make([]byte, 4), requestTimeout)
	return status
}

// SetNonBlocking issues TLS_SET_NONBLOCKING_CMD.
func (s *Session) SetNonBlocking(ctx context.Context, nonBlocking bool) wifi.Status {
	v := int32(0)
	if nonBlocking {
		v = 1
	}
	body := make([]byte, 8)
	putInt32(body[0:4], s.fd)
	putInt32(body[4:8], v)
	_, status := s.dev.RawRequest(cmdSetNonBlocking, body, make([]byte, 4), requestTimeout)
	return status
}
