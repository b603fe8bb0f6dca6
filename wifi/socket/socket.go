package socket

import (
	"context"
	"time"

	"emw.dev/ipc"
	"emw.dev/netaddr"
	"emw.dev/wifi"
)

// Domain and Type values, as in original_source's EMW_AF_*/EMW_SOCK_*
// defines.
const (
	DomainInet  = netaddr.FamilyInet
	DomainInet6 = netaddr.FamilyInet6

	TypeStream = 1
	TypeDgram  = 2
)

const (
	requestTimeout  = 10 * time.Second
	hostNameMaxLen  = 254
	serviceMaxLen   = 32
	headerOverhead  = 4 + 4 + 4 // status + socket fd + length, the widest fixed prefix any one command adds
)

// Socket is a handle to one module-hosted socket, multiplexed over
// dev's IPC client.
type Socket struct {
	dev *wifi.Device
	fd  int32
}

// Create issues SOCKET_CREATE_CMD and returns a handle to the new
// socket.
func Create(ctx context.Context, dev *wifi.Device, domain, typ, protocol int32) (*Socket, wifi.Status) {
	body := make([]byte, 12)
	putInt32(body[0:4], domain)
	putInt32(body[4:8], typ)
	putInt32(body[8:12], protocol)

	resp := make([]byte, 4+4)
	n, status := dev.RawRequest(cmdCreate, body, resp, requestTimeout)
	if status != wifi.OK {
		return nil, status
	}
	return &Socket{dev: dev, fd: getInt32(resp[4:n])}, wifi.OK
}

// Connect issues SOCKET_CONNECT_CMD against addr.
func (s *Socket) Connect(ctx context.Context, addr netaddr.Storage) wifi.Status {
	body := make([]byte, 4+netaddr.StorageSize)
	putInt32(body[0:4], s.fd)
	var enc [netaddr.StorageSize]byte
	addr.Encode(&enc)
	copy(body[4:], enc[:])

	_, status := s.dev.RawRequest(cmdConnect, body, make([]byte, 4), requestTimeout)
	return status
}

// maxChunk returns the largest payload one Send/Recv call may carry,
// staying within the IPC buffer capacity minus the IPC header and the
// command's fixed fields, per spec.md §4.5's splitting rule.
func (s *Socket) maxChunk() int {
	n := s.dev.BufferCapacity() - ipc.HeaderSize - headerOverhead
	if n < 0 {
		return 0
	}
	return n
}

// Send writes data, splitting it across multiple SOCKET_SEND_CMD
// calls if it exceeds one IPC buffer's capacity. It returns the total
// number of bytes accepted by the module.
func (s *Socket) Send(ctx context.Context, data []byte, flags int32) (int, wifi.Status) {
	chunk := s.maxChunk()
	if chunk <= 0 {
		return 0, wifi.Error
	}
	sent := 0
	for sent < len(data) {
		end := sent + chunk
		if end > len(data) {
			end = len(data)
		}
		piece := data[sent:end]
		body := make([]byte, 4+4+4+len(piece))
		putInt32(body[0:4], s.fd)
		putInt32(body[4:8], int32(len(piece)))
		putInt32(body[8:12], flags)
		copy(body[12:], piece)

		resp := make([]byte, 4+4)
		n, status := s.dev.RawRequest(cmdSend, body, resp, requestTimeout)
		if status != wifi.OK {
			return sent, status
		}
		written := int(getInt32(resp[4:n]))
		sent += written
		if written < len(piece) {
			break
		}
	}
	return sent, wifi.OK
}

// SendTo writes data to addr via SOCKET_SENDTO_CMD, with the same
// chunk-splitting Send applies.
func (s *Socket) SendTo(ctx context.Context, data []byte, addr netaddr.Storage, flags int32) (int, wifi.Status) {
	chunk := s.maxChunk() - netaddr.StorageSize
	if chunk <= 0 {
		return 0, wifi.Error
	}
	var enc [netaddr.StorageSize]byte
	addr.Encode(&enc)

	sent := 0
	for sent < len(data) {
		end := sent + chunk
		if end > len(data) {
			end = len(data)
		}
		piece := data[sent:end]
		body := make([]byte, 4+4+4+netaddr.StorageSize+len(piece))
		putInt32(body[0:4], s.fd)
		putInt32(body[4:8], int32(len(piece)))
		putInt32(body[8:12], flags)
		copy(body[12:12+netaddr.StorageSize], enc[:])
		copy(body[12+netaddr.StorageSize:], piece)

		resp := make([]byte, 4+4)
		n, status := s.dev.RawRequest(cmdSendTo, body, resp, requestTimeout)
		if status != wifi.OK {
			return sent, status
		}
		written := int(getInt32(resp[4:n]))
		sent += written
		if written < len(piece) {
			break
		}
	}
	return sent, wifi.OK
}

// Recv reads up to len(buf) bytes via SOCKET_RECV_CMD, splitting
// across multiple calls if buf exceeds one IPC buffer's capacity.
func (s *Socket) Recv(ctx context.Context, buf []byte, flags int32) (int, wifi.Status) {
	chunk := s.maxChunk()
	if chunk <= 0 {
		return 0, wifi.Error
	}
	read := 0
	for read < len(buf) {
		want := chunk
		if want > len(buf)-read {
			want = len(buf) - read
		}
		body := make([]byte, 4+4+4)
		putInt32(body[0:4], s.fd)
		putInt32(body[4:8], int32(want))
		putInt32(body[8:12], flags)

		resp := make([]byte, 4+4+want)
		_, status := s.dev.RawRequest(cmdRecv, body, resp, requestTimeout)
		if status != wifi.OK {
			return read, status
		}
		got := int(getInt32(resp[4:8]))
		if got <= 0 {
			break
		}
		copy(buf[read:read+got], resp[8:8+got])
		read += got
		if got < want {
			break
		}
	}
	return read, wifi.OK
}

// RecvFrom reads up to len(buf) bytes via SOCKET_RECVFROM_CMD and
// returns the sender's address alongside the byte count.
func (s *Socket) RecvFrom(ctx context.Context, buf []byte, flags int32) (int, netaddr.Storage, wifi.Status) {
	want := s.maxChunk()
	if want > len(buf) {
		want = len(buf)
	}
	if want <= 0 {
		return 0, netaddr.Storage{}, wifi.Error
	}
	body := make([]byte, 4+4+4)
	putInt32(body[0:4], s.fd)
	putInt32(body[4:8], int32(want))
	putInt32(body[8:12], flags)

	resp := make([]byte, 4+4+netaddr.StorageSize+want)
	_, status := s.dev.RawRequest(cmdRecvFrom, body, resp, requestTimeout)
	if status != wifi.OK {
		return 0, netaddr.Storage{}, status
	}
	got := int(getInt32(resp[4:8]))
	addr := netaddr.DecodeStorage(resp[8 : 8+netaddr.StorageSize])
	if got > 0 {
		copy(buf[:got], resp[8+netaddr.StorageSize:8+netaddr.StorageSize+got])
	}
	return got, addr, wifi.OK
}

// Shutdown issues SOCKET_SHUTDOWN_CMD.
func (s *Socket) Shutdown(ctx context.Context, how int32) wifi.Status {
	body := make([]byte, 8)
	putInt32(body[0:4], s.fd)
	putInt32(body[4:8], how)
	_, status := s.dev.RawRequest(cmdShutdown, body, make([]byte, 4), requestTimeout)
	return status
}

// Close issues SOCKET_CLOSE_CMD, releasing the module's socket.
func (s *Socket) Close(ctx context.Context) wifi.Status {
	body := make([]byte, 4)
	putInt32(body[0:4], s.fd)
	_, status := s.dev.RawRequest(cmdClose, body, make([]byte, 4), requestTimeout)
	return status
}

// GetSockOpt issues SOCKET_GETSOCKOPT_CMD and returns the option's raw
// value bytes (truncated to len(out)).
func (s *Socket) GetSockOpt(ctx context.Context, level, name int32, out []byte) (int, wifi.Status) {
	body := make([]byte, 12)
	putInt32(body[0:4], s.fd)
	putInt32(body[4:8], level)
	putInt32(body[8:12], name)

	resp := make([]byte, 4+4+len(out))
	_, status := s.dev.RawRequest(cmdGetSockOpt, body, resp, requestTimeout)
	if status != wifi.OK {
		return 0, status
	}
	got := int(getInt32(resp[4:8]))
	if got > len(out) {
		got = len(out)
	}
	copy(out[:got], resp[8:8+got])
	return got, wifi.OK
}

// SetSockOpt issues SOCKET_SETSOCKOPT_CMD with value's raw bytes.
func (s *Socket) SetSockOpt(ctx context.Context, level, name int32, value []byte) wifi.Status {
	body := make([]byte, 4+4+4+4+len(value))
	putInt32(body[0:4], s.fd)
	putInt32(body[4:8], level)
	putInt32(body[8:12], name)
	putInt32(body[12:16], int32(len(value)))
	copy(body[16:], value)
	_, status := s.dev.RawRequest(cmdSetSockOpt, body, make([]byte, 4), requestTimeout)
	return status
}

// Bind issues SOCKET_BIND_CMD.
func (s *Socket) Bind(ctx context.Context, addr netaddr.Storage) wifi.Status {
	body := make([]byte, 4+netaddr.StorageSize)
	putInt32(body[0:4], s.fd)
	var enc [netaddr.StorageSize]byte
	addr.Encode(&enc)
	copy(body[4:], enc[:])
	_, status := s.dev.RawRequest(cmdBind, body, make([]byte, 4), requestTimeout)
	return status
}

// Listen issues SOCKET_LISTEN_CMD.
func (s *Socket) Listen(ctx context.Context, backlog int32) wifi.Status {
	body := make([]byte, 8)
	putInt32(body[0:4], s.fd)
	putInt32(body[4:8], backlog)
	_, status := s.dev.RawRequest(cmdListen, body, make([]byte, 4), requestTimeout)
	return status
}

// Accept issues SOCKET_ACCEPT_CMD and returns a handle to the
// newly-accepted connection plus the peer's address.
func (s *Socket) Accept(ctx context.Context) (*Socket, netaddr.Storage, wifi.Status) {
	body := make([]byte, 4)
	putInt32(body[0:4], s.fd)

	resp := make([]byte, 4+4+netaddr.StorageSize)
	n, status := s.dev.RawRequest(cmdAccept, body, resp, requestTimeout)
	if status != wifi.OK {
		return nil, netaddr.Storage{}, status
	}
	fd := getInt32(resp[4:8])
	addr := netaddr.DecodeStorage(resp[8:n])
	return &Socket{dev: s.dev, fd: fd}, addr, wifi.OK
}

// GetSockName issues SOCKET_GETSOCKNAME_CMD.
func (s *Socket) GetSockName(ctx context.Context) (netaddr.Storage, wifi.Status) {
	return s.addrQuery(ctx, cmdGetSockName)
}

// GetPeerName issues SOCKET_GETPEERNAME_CMD.
func (s *Socket) GetPeerName(ctx context.Context) (netaddr.Storage, wifi.Status) {
	return s.addrQuery(ctx, cmdGetPeerName)
}

func (s *Socket) addrQuery(ctx context.Context, apiID uint16) (netaddr.Storage, wifi.Status) {
	body := make([]byte, 4)
	putInt32(body[0:4], s.fd)
	resp := make([]byte, 4+netaddr.StorageSize)
	n, status := s.dev.RawRequest(apiID, body, resp, requestTimeout)
	if status != wifi.OK {
		return netaddr.Storage{}, status
	}
	return netaddr.DecodeStorage(resp[4:n]), wifi.OK
}

// GetHostByName issues SOCKET_GETHOSTBYNAME_CMD, resolving name to an
// IPv4 address via the module's resolver.
func GetHostByName(ctx context.Context, dev *wifi.Device, name string) (netaddr.SockAddrIn, wifi.Status) {
	if len(name) > hostNameMaxLen {
		return netaddr.SockAddrIn{}, wifi.ParamError
	}
	body := make([]byte, hostNameMaxLen+1)
	putString(body, name)

	resp := make([]byte, 4+netaddr.StorageSize)
	n, status := dev.RawRequest(cmdGetHostByName, body, resp, requestTimeout)
	if status != wifi.OK {
		return netaddr.SockAddrIn{}, status
	}
	st := netaddr.DecodeStorage(resp[4:n])
	return netaddr.SockAddrInFromStorage(st), wifi.OK
}

// GetAddrInfo issues SOCKET_GETADDRINFO_CMD, resolving node/service to
// one packed address; the module returns a single result rather than
// a list.
func GetAddrInfo(ctx context.Context, dev *wifi.Device, node, service string) (netaddr.Storage, wifi.Status) {
	if len(node) > hostNameMaxLen || len(service) > serviceMaxLen {
		return netaddr.Storage{}, wifi.ParamError
	}
	body := make([]byte, hostNameMaxLen+1+serviceMaxLen+1)
	putString(body[:hostNameMaxLen+1], node)
	putString(body[hostNameMaxLen+1:], service)

	resp := make([]byte, 4+netaddr.StorageSize)
	n, status := dev.RawRequest(cmdGetAddrInfo, body, resp, requestTimeout)
	if status != wifi.OK {
		return netaddr.Storage{}, status
	}
	return netaddr.DecodeStorage(resp[4:n]), wifi.OK
}
