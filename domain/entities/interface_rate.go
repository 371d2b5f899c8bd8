package entities

// InterfaceRate stores the rate counters reported for an interface
type InterfaceRate struct {
	Interface  string
	InputBits  int64 // bits/sec over the load interval
	InputPkts  int64 // packets/sec over the load interval
	OutputBits int64
	OutputPkts int64
}
