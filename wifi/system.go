package wifi

import (
	"bytes"
	"context"
	"fmt"

	"emw.dev/ipc"
	"emw.dev/transport"
)

// Echo round-trips payload through SYS_ECHO_CMD and checks the module
// returned it verbatim. The loopback is the host's IPC keepalive and
// round-trip throughput probe; the body carries no status prefix,
// unlike every other command response.
func (d *Device) Echo(ctx context.Context, payload []byte) Status {
	if len(payload) > d.pool.Capacity()-ipc.HeaderSize {
		return ParamError
	}
	resp := make([]byte, len(payload))
	n, ipcStatus := d.client.Request(sysEchoCmd, payload, resp, defaultTimeout)
	if status := fromIPC(ipcStatus); status != OK {
		return status
	}
	if n != len(payload) || !bytes.Equal(resp[:n], payload) {
		return Error
	}
	return OK
}

// Reboot issues SYS_REBOOT_CMD. The module restarts and announces
// itself with SYS_REBOOT_EVENT once back up; that event's handler
// clears the cached scan results and power-save state.
func (d *Device) Reboot(ctx context.Context) Status {
	_, status := d.request(sysRebootCmd, nil, make([]byte, 4), defaultTimeout)
	return status
}

// ResetModule issues SYS_RESET_CMD, restoring the module's stored
// settings to factory defaults. It does not restart the module; call
// Reboot afterwards for the defaults to take effect.
func (d *Device) ResetModule(ctx context.Context) Status {
	_, status := d.request(sysResetCmd, nil, make([]byte, 4), defaultTimeout)
	return status
}

// ResetHardware toggles the transport's RESET line with the low/settle
// timings the module requires, on transports that have one. Callers
// use it to recover a wedged module without tearing the driver down;
// Initialize already performs the same reset during bring-up. On a
// transport with no reset line (the UART shim, the test simulator) it
// is a no-op.
func (d *Device) ResetHardware() error {
	hr, ok := d.transport.(transport.HardwareResetter)
	if !ok {
		return nil
	}
	if err := hr.ResetHardware(); err != nil {
		return fmt.Errorf("wifi: hardware reset: %w", err)
	}
	return nil
}
