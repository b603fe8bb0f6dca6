// Package netbuf implements the network buffer: the single container
// type carried between the transport's receive path, the IPC
// demultiplexer and the wifi dispatcher. A Buffer owns its storage
// exclusively — it is handed off, never aliased — and tracks a
// reserved prefix so a lower layer's header can be hidden from
// whoever consumes the payload.
//
// Two Pool backends exist, selected by build tag: the default
// fixed-capacity backend (module-hosted network stack) and the
// "hoststack"-tagged MTU-derived backend (host-hosted network stack,
// used only when bypass mode hands frames to a host IP stack).
package netbuf
