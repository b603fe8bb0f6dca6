// Package netaddr implements the wire-level address conversions the
// driver core exchanges with the module: ASCII dotted/colon address
// strings in command and response bodies, and the 28-byte packed
// socket-address storage format used by the socket API.
//
// Grounded on EmwAddress.cpp/.hpp in original_source/: the module
// speaks IPv4/IPv6 addresses as ASCII strings inside IPC bodies (so a
// command like WIFI_CONNECT_CMD's optional static IP travels as
// dotted decimal, not as 4 raw bytes) and a separate packed binary
// struct for socket addresses passed to SOCKET_CONNECT_CMD and
// friends. Go's net package already parses and formats both address
// families correctly (including the zero-compression rules for IPv6
// the original's networkToAscii hand-rolls); reimplementing that
// parser here would be the "hand-rolled stdlib replacement" the
// project's own conventions avoid; the net.IP round-trip is the
// idiomatic substitute to the extent the examples offer no third-party
// IP-string library for it — see DESIGN.md.
package netaddr
