package transport

import "errors"

var (
	errInvalidReplyType = errors.New("transport: module reply has wrong header type")
	errInvalidLenCheck  = errors.New("transport: module reply failed len/lenx check")
	errFlowTimeout      = errors.New("transport: FLOW watchdog expired")
)

// ErrFlowTimeout names the condition of a turn aborted because FLOW
// never rose within the watchdog. ProcessPollingData has no error
// result, so the SPI transport logs that abort and retries on the next
// signal; no transport in this module returns this value.
var ErrFlowTimeout = errFlowTimeout
