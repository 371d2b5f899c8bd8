package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfigFile(t, `
transport: ssh
username: admin
password: secret
enable_password: enable-secret
log_file: test.log
devices:
  - target: 192.168.1.1
  - target: 192.168.1.2
    transport: telnet
    port: 2023
    username: other
`)

	cfg, err := Load(path, "192.168.1.1", true, 1)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Platform != "iosxe" {
		t.Errorf("default platform = %q, want iosxe", cfg.Platform)
	}
	if cfg.LogFile != "test.log" {
		t.Errorf("log_file = %q", cfg.LogFile)
	}
	if cfg.SnmpPort != 162 || cfg.SnmpCommunity != "public" {
		t.Errorf("unexpected SNMP defaults: port=%d community=%q", cfg.SnmpPort, cfg.SnmpCommunity)
	}

	first := cfg.Devices[0]
	if first.Transport != "ssh" || first.Username != "admin" || first.Password != "secret" {
		t.Errorf("device[0] did not inherit globals: %+v", first)
	}
	if first.EnablePassword != "enable-secret" {
		t.Errorf("device[0] enable_password = %q", first.EnablePassword)
	}
	if !first.Sandbox {
		t.Error("device[0] should be in sandbox mode")
	}
	if first.VerbosityLevel != 1 {
		t.Errorf("device[0] verbosity = %d, want 1", first.VerbosityLevel)
	}

	second := cfg.Devices[1]
	if second.Transport != "telnet" || second.Port != 2023 || second.Username != "other" {
		t.Errorf("device[1] overrides not honored: %+v", second)
	}
	if second.VerbosityLevel != 0 {
		t.Errorf("device[1] verbosity = %d, want 0 for non-target", second.VerbosityLevel)
	}
}

func TestLoadInvalidConfigs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bad transport",
			content: `
transport: serial
username: admin
password: secret
devices:
  - target: 192.168.1.1
`,
		},
		{
			name: "bad platform",
			content: `
platform: nxos
username: admin
password: secret
devices:
  - target: 192.168.1.1
`,
		},
		{
			name: "missing username",
			content: `
password: secret
devices:
  - target: 192.168.1.1
`,
		},
		{
			name: "missing password",
			content: `
username: admin
devices:
  - target: 192.168.1.1
`,
		},
		{
			name: "no devices",
			content: `
username: admin
password: secret
`,
		},
		{
			name: "device missing target",
			content: `
username: admin
password: secret
devices:
  - transport: ssh
`,
		},
		{
			name: "device port out of range",
			content: `
username: admin
password: secret
devices:
  - target: 192.168.1.1
    port: 70000
`,
		},
		{
			name: "snmp port out of range",
			content: `
username: admin
password: secret
snmp_port: 99999
devices:
  - target: 192.168.1.1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			if _, err := Load(path, "", true, 0); err == nil {
				t.Fatal("Load() expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "", true, 0); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestFindDevice(t *testing.T) {
	path := writeConfigFile(t, `
username: admin
password: secret
devices:
  - target: 192.168.1.1
  - target: 192.168.1.2
`)
	cfg, err := Load(path, "", true, 0)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	dev, found := cfg.FindDevice("192.168.1.2")
	if !found || dev.Target != "192.168.1.2" {
		t.Errorf("FindDevice() = %+v, found=%v", dev, found)
	}

	if _, found := cfg.FindDevice("10.0.0.1"); found {
		t.Error("FindDevice() should not match unknown targets")
	}
}
