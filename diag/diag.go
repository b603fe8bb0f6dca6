// Package diag produces a CBOR snapshot of a wifi.Device's cached
// state for field diagnostics, in the deterministic-encoding style
// bc/urtypes and bc/fountain use for their wire formats.
package diag

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"emw.dev/wifi"
)

// Snapshot is the CBOR-serializable view of a device's cached state
// and scan cache at the moment it was captured.
type Snapshot struct {
	_ struct{} `cbor:",toarray"`

	ProductName      string
	ProductID        string
	FirmwareRevision string

	StationMAC []byte
	SoftAPMAC  []byte

	StationIP      []byte
	StationMask    []byte
	StationGateway []byte
	StationDNS     []byte

	IPv6 []IPv6Entry

	Scan []ScanEntry
}

// IPv6Entry mirrors one of the device's three cached IPv6 address
// slots.
type IPv6Entry struct {
	_       struct{} `cbor:",toarray"`
	Address []byte
	State   int32
}

// ScanEntry mirrors one cached scan result.
type ScanEntry struct {
	_        struct{} `cbor:",toarray"`
	RSSI     int32
	SSID     string
	BSSID    []byte
	Channel  int32
	Security uint8
}

func snapshotFrom(state wifi.DeviceState, scan []wifi.ScanResult) Snapshot {
	s := Snapshot{
		ProductName:      state.ProductName,
		ProductID:        state.ProductID,
		FirmwareRevision: state.FirmwareRevision,
		StationMAC:       state.StationMAC[:],
		SoftAPMAC:        state.SoftAPMAC[:],
		StationIP:        state.StationIP[:],
		StationMask:      state.StationMask[:],
		StationGateway:   state.StationGateway[:],
		StationDNS:       state.StationDNS[:],
	}
	for _, slot := range state.IPv6 {
		s.IPv6 = append(s.IPv6, IPv6Entry{Address: slot.Address[:], State: slot.State})
	}
	for _, r := range scan {
		s.Scan = append(s.Scan, ScanEntry{
			RSSI:     r.RSSI,
			SSID:     r.SSID,
			BSSID:    r.BSSID[:],
			Channel:  r.Channel,
			Security: r.Security,
		})
	}
	return s
}

// Dump encodes dev's current state and scan cache as deterministic
// CBOR, suitable for attaching to a support ticket or writing to a
// diagnostics partition.
func Dump(dev *wifi.Device) ([]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("diag: build encoder: %w", err)
	}
	results := make([]wifi.ScanResult, wifi.MaxScanResults())
	n := dev.GetScanResults(results, len(results))
	snap := snapshotFrom(dev.State(), results[:n])
	b, err := enc.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("diag: marshal snapshot: %w", err)
	}
	return b, nil
}
