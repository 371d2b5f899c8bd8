package entities

// UptimeInfo stores the parsed uptime line from show version
type UptimeInfo struct {
	Hostname string
	Uptime   string // free text as reported, e.g. "1 week, 2 days, 3 hours"
	Raw      string
}

// CPULoad stores the aggregate CPU utilization figures
type CPULoad struct {
	FiveSeconds    float64
	FiveSecondsIRQ float64 // interrupt share of the five second figure
	OneMinute      float64
	FiveMinutes    float64
}

// ProcessCPU stores one line of show processes cpu output
type ProcessCPU struct {
	PID         int
	Runtime     int64 // milliseconds
	Invoked     int64
	FiveSeconds float64
	OneMinute   float64
	FiveMinutes float64
	Name        string
}

// MemoryPool stores one row of show memory statistics
type MemoryPool struct {
	Name  string
	Total int64
	Used  int64
	Free  int64
}

// HealthReport aggregates the one-shot device health sweep
type HealthReport struct {
	Uptime    UptimeInfo
	Load      CPULoad
	Processes []ProcessCPU
	Memory    []MemoryPool
}
