package venue

// Protocol identifies the protocol family of a trading venue. The router
// uses it to label venues and group similar pools.
type Protocol uint8

const (
	ProtocolUnknown Protocol = iota
	ProtocolOxedium
	ProtocolCPAMM
)

func (p Protocol) String() string {
	switch p {
	case ProtocolOxedium:
		return "Oxedium"
	case ProtocolCPAMM:
		return "CPAMM"
	default:
		return "Unknown"
	}
}
