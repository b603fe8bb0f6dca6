package wifi

// API identifiers, per spec.md §6's enumeration. Commands occupy three
// numeric ranges (system, wifi, socket); events have the high bit
// (0x8000) set, matching ipc.EventBit.
const (
	sysEchoCmd      = 0x0001
	sysRebootCmd    = 0x0002
	sysVersionCmd   = 0x0003
	sysResetCmd     = 0x0004
	sysFotaStartCmd = 0x0005

	wifiGetMacCmd      = 0x0101
	wifiScanCmd        = 0x0102
	wifiConnectCmd     = 0x0103
	wifiDisconnectCmd  = 0x0104
	wifiSoftApStartCmd = 0x0105
	wifiSoftApStopCmd  = 0x0106
	wifiGetIPCmd       = 0x0107
	wifiGetLinkInfoCmd = 0x0108
	wifiPSOnCmd        = 0x0109
	wifiPSOffCmd       = 0x010A
	wifiPingCmd        = 0x010B
	wifiBypassSetCmd   = 0x010C
	wifiBypassGetCmd   = 0x010D
	wifiBypassOutCmd   = 0x010E
	wifiEapSetCertCmd  = 0x010F
	wifiEapConnectCmd  = 0x0110
	wifiWPSConnectCmd  = 0x0111
	wifiWPSStopCmd     = 0x0112
	wifiGetIP6StateCmd = 0x0113
	wifiGetIP6AddrCmd  = 0x0114
	wifiGetSoftMacCmd  = 0x0115
	wifiPing6Cmd       = 0x0118

	sysRebootEvent       = 0x8001
	sysFotaStatusEvent   = 0x8002
	wifiStatusEvent      = 0x8101
	wifiBypassInputEvent = 0x8102
)
