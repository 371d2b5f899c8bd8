package entities

// DeviceConfig defines the configuration for a single managed device
type DeviceConfig struct {
	Target         string `yaml:"target"`
	Transport      string `yaml:"transport"`
	Port           int    `yaml:"port"`
	Platform       string `yaml:"platform"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	EnablePassword string `yaml:"enable_password"`
	SnmpCommunity  string `yaml:"snmp_community"`
	Sandbox        bool
	VerbosityLevel int
}

// IsDebugEnabled returns true if debug logs are enabled
func (dc DeviceConfig) IsDebugEnabled() bool {
	return dc.VerbosityLevel == 1 || dc.VerbosityLevel == 3
}

// IsRawOutputEnabled returns true if raw device output is enabled
func (dc DeviceConfig) IsRawOutputEnabled() bool {
	return dc.VerbosityLevel == 2 || dc.VerbosityLevel == 3
}

// PlatformID returns the configured platform, defaulting to auto-detect
func (dc DeviceConfig) PlatformID() string {
	if dc.Platform == "" {
		return "auto"
	}
	return dc.Platform
}
