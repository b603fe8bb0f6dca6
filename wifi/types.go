package wifi

// Security identifies a Wi-Fi security mode, grounded on
// EmwApiBase::SecurityType in original_source/.
type Security uint8

const (
	SecurityNone Security = iota
	SecurityWEP
	SecurityWPATKIP
	SecurityWPAAES
	SecurityWPA2TKIP
	SecurityWPA2AES
	SecurityWPA2Mixed
	SecurityWPA3
	SecurityAuto
)

// ScanMode selects between a passive, empty-SSID scan and an active
// scan targeted at a specific SSID.
type ScanMode uint8

const (
	ScanPassive ScanMode = iota
	ScanActive
)

// Interface identifies which of the module's two logical network
// interfaces an operation addresses.
type Interface uint8

const (
	InterfaceStation Interface = iota
	InterfaceSoftAP
)

// Event is a station/soft-AP status transition delivered by
// WIFI_STATUS_EVENT.
type Event uint8

const (
	EventNone Event = iota
	EventStationDown
	EventStationUp
	EventStationGotIP
	EventAPDown
	EventAPUp
)

// StatusCallback is invoked from the receive path when a
// WIFI_STATUS_EVENT arrives for the interface it was registered
// against. It must not block.
type StatusCallback func(iface Interface, event Event, arg any)

// FotaStatus reports the outcome carried by SYS_FOTA_STATUS_EVENT.
type FotaStatus uint8

const (
	FotaSuccess FotaStatus = iota
	FotaFailed
)

// EapType selects the EAP method for connectEAP, matching
// EmwApiBase::EapType.
type EapType uint8

const (
	EapTLS  EapType = 13
	EapTTLS EapType = 21
	EapPEAP EapType = 25
)

// ConnectAttributes optionally pins connect to a specific BSSID and
// channel.
type ConnectAttributes struct {
	BSSID   [6]byte
	Channel uint8
	Security Security
}

// IPAttributes supplies a static IPv4 configuration for ConnectAdvance
// or StartSoftAp. All four fields are ASCII
// dotted-decimal strings on the wire; an empty IPAddressLocal means
// "use DHCP".
type IPAttributes struct {
	IPAddressLocal  string
	NetworkMask     string
	GatewayAddress  string
	DNSServerAddress string
}

// EapAttributes configures an EAP connection; certificate/key material
// is uploaded separately via WIFI_EAP_SET_CERT_CMD before connectEAP
// issues WIFI_EAP_CONNECT_CMD.
type EapAttributes struct {
	Type             EapType
	RootCA           []byte
	ClientCertificate []byte
	ClientKey        []byte
}

// SoftApSettings configures startSoftAp.
type SoftApSettings struct {
	SSID     string
	Password string
	Channel  uint8
	IP       IPAttributes
}

// ScanResult is one entry of the scan cache populated by Scan and
// read back by GetScanResults.
type ScanResult struct {
	RSSI     int32
	SSID     string
	BSSID    [6]byte
	Channel  int32
	Security uint8
}

// maxScanResults is the scan cache's fixed capacity, per spec.md §3.
const maxScanResults = 10

// MaxScanResults returns the scan cache's fixed capacity, for callers
// (diag's snapshot dump) sizing a buffer for GetScanResults.
func MaxScanResults() int { return maxScanResults }

// DeviceState is the cached device-info block spec.md §3 describes:
// mutated only through the driver API, visible to callers only as a
// read via Device's accessor methods.
type DeviceState struct {
	ProductName      string
	ProductID        string
	FirmwareRevision string

	StationMAC [6]byte
	SoftAPMAC  [6]byte

	StationIP      [4]byte
	StationMask    [4]byte
	StationGateway [4]byte
	StationDNS     [4]byte

	IPv6 [3]IPv6Slot
}

// IPv6Slot is one of the three cached IPv6 addresses, with its
// address-state value from WIFI_GET_IP6_STATE_CMD. The three slots
// are shared by both interfaces: the last query for a slot, on either
// interface, is what is cached.
type IPv6Slot struct {
	Address [16]byte
	State   int32
}

// FirmwareImage is a FOTA payload plus the host-computed checksum
// guarding against a corrupted transfer; see SPEC_FULL.md's firmware
// image descriptor.
type FirmwareImage struct {
	Data     []byte
	Checksum [32]byte
}
