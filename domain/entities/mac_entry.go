package entities

// MacEntry stores one MAC address table record
type MacEntry struct {
	Vlan      string
	Mac       string // normalized, separator-free lower case
	MacFull   string // as printed by the device
	Type      string // DYNAMIC or STATIC
	Interface string
}
