package wifi

import (
	"context"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// fotaChunkSize bounds each SYS_FOTA_DATA_CMD write to keep it well
// under one netbuf's capacity, per SPEC_FULL.md's firmware image
// descriptor.
const fotaChunkSize = 2048

const (
	sysFotaDataCmd     = 0x0006
	sysFotaFinishCmd   = 0x0007
)

// NewFirmwareImage computes data's BLAKE2b-256 checksum and returns a
// FirmwareImage ready for StartFOTA.
func NewFirmwareImage(data []byte) FirmwareImage {
	return FirmwareImage{Data: data, Checksum: blake2b.Sum256(data)}
}

// StartFOTA issues SYS_FOTA_START_CMD with img's size and checksum,
// streams its payload via SYS_FOTA_DATA_CMD in fotaChunkSize pieces,
// then issues SYS_FOTA_FINISH_CMD. The module reports the outcome
// asynchronously via SYS_FOTA_STATUS_EVENT, delivered to any callback
// registered with RegisterFotaCallback.
func (d *Device) StartFOTA(ctx context.Context, img FirmwareImage) error {
	startBody := make([]byte, 4+32)
	putUint32(startBody[0:4], uint32(len(img.Data)))
	copy(startBody[4:], img.Checksum[:])
	if _, status := d.request(sysFotaStartCmd, startBody, make([]byte, 4), defaultTimeout); status != OK {
		return fmt.Errorf("wifi: SYS_FOTA_START_CMD: %s", status)
	}

	for off := 0; off < len(img.Data); off += fotaChunkSize {
		end := off + fotaChunkSize
		if end > len(img.Data) {
			end = len(img.Data)
		}
		chunk := img.Data[off:end]
		body := make([]byte, 4+len(chunk))
		putUint32(body[0:4], uint32(off))
		copy(body[4:], chunk)
		if _, status := d.request(sysFotaDataCmd, body, make([]byte, 4), defaultTimeout); status != OK {
			return fmt.Errorf("wifi: SYS_FOTA_DATA_CMD at offset %d: %s", off, status)
		}
	}

	if _, status := d.request(sysFotaFinishCmd, nil, make([]byte, 4), defaultTimeout); status != OK {
		return fmt.Errorf("wifi: SYS_FOTA_FINISH_CMD: %s", status)
	}
	return nil
}
