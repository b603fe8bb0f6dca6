// Package socket implements the module-hosted BSD socket subset
// spec.md §4.5 describes: Connect, Send, Recv, SendTo, RecvFrom,
// Shutdown, Close, Get/SetSockOpt, Bind, Listen, Accept,
// GetHostByName and GetAddrInfo, each a typed request over the same
// IPC client a wifi.Device already owns.
package socket

// API identifiers occupy the socket command range spec.md §6
// reserves (0x0201…0x0212), in original_source/EmwApiEmw's method
// declaration order, extended with select, getsockname and
// getpeername (see DESIGN.md).
const (
	cmdCreate        = 0x0201
	cmdConnect       = 0x0202
	cmdSend          = 0x0203
	cmdSendTo        = 0x0204
	cmdRecv          = 0x0205
	cmdRecvFrom      = 0x0206
	cmdShutdown      = 0x0207
	cmdClose         = 0x0208
	cmdGetSockOpt    = 0x0209
	cmdSetSockOpt    = 0x020A
	cmdBind          = 0x020B
	cmdListen        = 0x020C
	cmdAccept        = 0x020D
	cmdSelect        = 0x020E
	cmdGetSockName   = 0x020F
	cmdGetPeerName   = 0x0210
	cmdGetHostByName = 0x0211
	cmdGetAddrInfo   = 0x0212
)
