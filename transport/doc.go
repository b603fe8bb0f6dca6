// Package transport defines the driver-core contract a physical or
// simulated link to the companion module must satisfy, plus the wire
// framing shared by every implementation that frames its link the way
// the SPI transport does.
//
// Three implementations live in sibling packages: transport/spi (real
// SPI + GPIO hardware via periph.io), transport/uartshim (a UART link,
// grounding the driver core's polymorphic-transport design goal) and
// transport/simulator (an in-process fake for tests).
package transport
