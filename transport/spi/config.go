package spi

import "periph.io/x/conn/v3/physic"

// Config names the SPI port and the four handshake GPIOs to open.
// An empty Port falls back to spireg's "first available" resolution,
// the same default this project's LCD driver uses for its SPI port.
// The four GPIO names have no fallback: an empty name matches no pin
// and Open fails.
type Config struct {
	Port   string
	NSS    string
	FLOW   string
	NOTIFY string
	RESET  string

	// MaxSpeed is the SPI clock; zero defaults to 8MHz, comfortably
	// inside the module's rated SPI slave speed.
	MaxSpeed physic.Frequency
}

const defaultSpeed = 8 * physic.MegaHertz
