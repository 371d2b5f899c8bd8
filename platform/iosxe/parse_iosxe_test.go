package iosxe

import (
	"reflect"
	"testing"

	"github.com/carlosrabelo/arava/domain/entities"
)

func TestParseIOSXEUptime(t *testing.T) {
	output := `csr1000v-1 uptime is 2 weeks, 3 days, 1 hour, 26 minutes
`
	info := parseIOSXEUptime(output)
	if info.Hostname != "csr1000v-1" {
		t.Errorf("unexpected hostname: %q", info.Hostname)
	}
	if info.Uptime != "2 weeks, 3 days, 1 hour, 26 minutes" {
		t.Errorf("unexpected uptime: %q", info.Uptime)
	}
}

func TestParseIOSXEUptimeNoMatch(t *testing.T) {
	info := parseIOSXEUptime("")
	if info.Hostname != "" || info.Uptime != "" {
		t.Errorf("expected empty info, got %+v", info)
	}
}

func TestParseIOSXERates(t *testing.T) {
	output := `  5 minute input rate 3241000 bits/sec, 412 packets/sec
  5 minute output rate 1862000 bits/sec, 327 packets/sec
`
	rate := parseIOSXERates(output, "GigabitEthernet0/1")
	expected := entities.InterfaceRate{
		Interface:  "GigabitEthernet0/1",
		InputBits:  3241000,
		InputPkts:  412,
		OutputBits: 1862000,
		OutputPkts: 327,
	}
	if !reflect.DeepEqual(rate, expected) {
		t.Fatalf("unexpected rates: %+v", rate)
	}
}

func TestParseIOSXERatesThirtySecondInterval(t *testing.T) {
	output := `  30 second input rate 1000 bits/sec, 2 packets/sec
  30 second output rate 3000 bits/sec, 4 packets/sec
`
	rate := parseIOSXERates(output, "Gi1/0/1")
	if rate.InputBits != 1000 || rate.OutputBits != 3000 {
		t.Fatalf("unexpected rates: %+v", rate)
	}
}

func TestParseIOSXEMACTable(t *testing.T) {
	output := `          Mac Address Table
-------------------------------------------

Vlan    Mac Address       Type        Ports
----    -----------       --------    -----
 100    0050.56be.0001    DYNAMIC     Te1/1/1
  10    aabb.ccdd.eeff    STATIC      Gi1/0/2
  10    0011.2233.4455    DYNAMIC     Gi1/0/1
Total Mac Addresses for this criterion: 3
`
	entries := parseIOSXEMACTable(output)
	expected := []entities.MacEntry{
		{Vlan: "10", Mac: "001122334455", MacFull: "0011.2233.4455", Type: "DYNAMIC", Interface: "Gi1/0/1"},
		{Vlan: "10", Mac: "aabbccddeeff", MacFull: "aabb.ccdd.eeff", Type: "STATIC", Interface: "Gi1/0/2"},
		{Vlan: "100", Mac: "005056be0001", MacFull: "0050.56be.0001", Type: "DYNAMIC", Interface: "Te1/1/1"},
	}
	if !reflect.DeepEqual(entries, expected) {
		t.Fatalf("unexpected MAC table: %+v", entries)
	}
}

func TestParseIOSXECPU(t *testing.T) {
	output := `CPU utilization for five seconds: 7%/1%; one minute: 5%; five minutes: 6%
 PID Runtime(ms)     Invoked      uSecs   5Sec   1Min   5Min TTY Process
 217      752808     1984355        379  1.27%  0.87%  0.95%   0 ARP Input
 124       37983      561410         67  0.55%  0.40%  0.38%   0 IOSD ipc task
`
	load, processes := parseIOSXECPU(output)
	if load.FiveSeconds != 7 || load.FiveSecondsIRQ != 1 || load.OneMinute != 5 || load.FiveMinutes != 6 {
		t.Fatalf("unexpected load: %+v", load)
	}
	if len(processes) != 2 {
		t.Fatalf("expected 2 processes, got %d", len(processes))
	}
	first := processes[0]
	if first.PID != 217 || first.Runtime != 752808 || first.Invoked != 1984355 {
		t.Errorf("unexpected process counters: %+v", first)
	}
	if first.FiveSeconds != 1.27 || first.Name != "ARP Input" {
		t.Errorf("unexpected process fields: %+v", first)
	}
	if processes[1].Name != "IOSD ipc task" {
		t.Errorf("unexpected process name: %q", processes[1].Name)
	}
}

func TestParseIOSXEMemoryStats(t *testing.T) {
	output := `                Head    Total(b)     Used(b)     Free(b)   Lowest(b)  Largest(b)
Processor  7C61F2F0   1862644088   141866704  1720777384  1720717764  1654622440
 lsmpi_io  98D66E90      6295128     6294304         824         824         412
`
	pools := parseIOSXEMemoryStats(output)
	expected := []entities.MemoryPool{
		{Name: "Processor", Total: 1862644088, Used: 141866704, Free: 1720777384},
		{Name: "lsmpi_io", Total: 6295128, Used: 6294304, Free: 824},
	}
	if !reflect.DeepEqual(pools, expected) {
		t.Fatalf("unexpected memory pools: %+v", pools)
	}
}

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "dot separated",
			input:    "AABB.CCDD.EEFF",
			expected: "aabbccddeeff",
		},
		{
			name:     "colon separated",
			input:    "aa:bb:cc:dd:ee:ff",
			expected: "aabbccddeeff",
		},
		{
			name:     "already normalized",
			input:    "aabbccddeeff",
			expected: "aabbccddeeff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizeMAC(tt.input)
			if result != tt.expected {
				t.Errorf("normalizeMAC(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsIOSXECommandError(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected bool
	}{
		{
			name:     "invalid input marker",
			output:   "% Invalid input detected at '^' marker.",
			expected: true,
		},
		{
			name:     "incomplete command",
			output:   "% Incomplete command.",
			expected: true,
		},
		{
			name:     "regular output",
			output:   "GigabitEthernet0/1 is up, line protocol is up",
			expected: false,
		},
		{
			name:     "empty output",
			output:   "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isIOSXECommandError(tt.output)
			if result != tt.expected {
				t.Errorf("isIOSXECommandError(%q) = %v, want %v", tt.output, result, tt.expected)
			}
		})
	}
}
