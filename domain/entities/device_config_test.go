package entities

import "testing"

func TestDeviceConfigVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		wantDebug bool
		wantRaw   bool
	}{
		{name: "silent", level: 0, wantDebug: false, wantRaw: false},
		{name: "debug", level: 1, wantDebug: true, wantRaw: false},
		{name: "raw", level: 2, wantDebug: false, wantRaw: true},
		{name: "debug and raw", level: 3, wantDebug: true, wantRaw: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DeviceConfig{VerbosityLevel: tt.level}
			if cfg.IsDebugEnabled() != tt.wantDebug {
				t.Errorf("IsDebugEnabled() = %v, want %v", cfg.IsDebugEnabled(), tt.wantDebug)
			}
			if cfg.IsRawOutputEnabled() != tt.wantRaw {
				t.Errorf("IsRawOutputEnabled() = %v, want %v", cfg.IsRawOutputEnabled(), tt.wantRaw)
			}
		})
	}
}

func TestPlatformID(t *testing.T) {
	if got := (DeviceConfig{}).PlatformID(); got != "auto" {
		t.Errorf("PlatformID() = %q, want auto for empty platform", got)
	}
	if got := (DeviceConfig{Platform: "iosxe"}).PlatformID(); got != "iosxe" {
		t.Errorf("PlatformID() = %q, want iosxe", got)
	}
}
