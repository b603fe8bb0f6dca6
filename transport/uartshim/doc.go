// Package uartshim implements the Transport contract over a UART
// instead of SPI, using github.com/tarm/serial exactly as this
// project's engraver driver opens its own serial link. There is no
// clock phase to negotiate lengths the way the SPI header does, so
// each turn is framed as a 2-byte little-endian length prefix
// followed by that many payload bytes.
package uartshim
