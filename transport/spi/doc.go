// Package spi drives the companion module over a real SPI bus plus
// its four handshake GPIOs (NSS, FLOW, NOTIFY, RESET), using
// periph.io/x/host/v3 and periph.io/x/conn/v3 the way this project's
// LCD and button drivers open their own SPI and GPIO lines — resolved
// by name through spireg/gpioreg rather than hardcoded to one SoC, so
// the same code runs on any periph.io-supported board.
package spi
