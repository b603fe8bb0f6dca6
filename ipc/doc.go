// Package ipc multiplexes request/response traffic and asynchronous
// events over a single transport.Transport, matching the header
// layout and single-outstanding-request rule: every command carries a
// monotonically increasing request id and a 16-bit API id; at most one
// request is outstanding at a time.
package ipc
