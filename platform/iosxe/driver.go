package iosxe

import (
	"fmt"
	"strings"

	"github.com/carlosrabelo/arava/domain/entities"
	"github.com/carlosrabelo/arava/domain/ports"
)

const driverName = "iosxe"

// Driver implements the DeviceDriver behaviour for Cisco IOS-XE devices.
type Driver struct{}

// New creates a new IOS-XE driver instance.
func New() *Driver {
	return &Driver{}
}

// Name returns the canonical platform identifier.
func (d *Driver) Name() string {
	return driverName
}

// Detect inspects the device to determine whether it is running IOS-XE.
func (d *Driver) Detect(repo ports.DeviceRepository) (bool, error) {
	if !repo.IsConnected() {
		if err := repo.Connect(); err != nil {
			return false, err
		}
	}
	output, err := repo.ExecuteCommand("show version")
	if err != nil {
		return false, err
	}
	lower := strings.ToLower(output)
	return strings.Contains(lower, "ios-xe") || strings.Contains(lower, "ios xe"), nil
}

// GetAuthenticationSequence returns the login sequence for IOS-XE devices.
func (d *Driver) GetAuthenticationSequence(username, password, enablePassword string) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: "Username:", SendCmd: username + "\n"},
		{WaitFor: "Password:", SendCmd: password + "\n"},
		{WaitFor: ">", SendCmd: "enable\n"},
		{WaitFor: "Password:", SendCmd: enablePassword + "\n"},
		{WaitFor: "#", SendCmd: "terminal length 0\n"},
		{WaitFor: "#", SendCmd: ""},
	}
}

// GetUptime retrieves the system uptime line.
func (d *Driver) GetUptime(repo ports.DeviceRepository, cfg entities.DeviceConfig) (entities.UptimeInfo, error) {
	output, err := repo.ExecuteCommand("show version | include uptime")
	if err != nil {
		return entities.UptimeInfo{}, fmt.Errorf("failed to retrieve uptime: %w", err)
	}
	if isIOSXECommandError(output) {
		return entities.UptimeInfo{}, fmt.Errorf("device rejected uptime command: %s", strings.TrimSpace(output))
	}
	info := parseIOSXEUptime(output)
	if cfg.IsDebugEnabled() {
		fmt.Printf("DEBUG: Uptime for %s: %s\n", cfg.Target, info.Uptime)
	}
	return info, nil
}

// GetInterfaceRates retrieves the current rate counters for an interface.
func (d *Driver) GetInterfaceRates(repo ports.DeviceRepository, cfg entities.DeviceConfig, iface string) (entities.InterfaceRate, error) {
	cmd := fmt.Sprintf("show interfaces %s | include input rate|output rate", iface)
	output, err := repo.ExecuteCommand(cmd)
	if err != nil {
		return entities.InterfaceRate{}, fmt.Errorf("failed to retrieve traffic stats for %s: %w", iface, err)
	}
	if isIOSXECommandError(output) {
		return entities.InterfaceRate{}, fmt.Errorf("device rejected rate query for %s: %s", iface, strings.TrimSpace(output))
	}
	rate := parseIOSXERates(output, iface)
	if cfg.IsDebugEnabled() {
		fmt.Printf("DEBUG: Rates for %s: in=%d bps out=%d bps\n", iface, rate.InputBits, rate.OutputBits)
	}
	return rate, nil
}

// GetMacTable retrieves the MAC address table entries.
func (d *Driver) GetMacTable(repo ports.DeviceRepository, cfg entities.DeviceConfig) ([]entities.MacEntry, error) {
	output, err := repo.ExecuteCommand("show mac address-table")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve MAC table: %w", err)
	}
	if cfg.IsRawOutputEnabled() {
		fmt.Printf("Raw output of 'show mac address-table':\n%s\n", output)
	}
	entries := parseIOSXEMACTable(output)
	if cfg.IsDebugEnabled() {
		fmt.Printf("DEBUG: Found %d MAC table entries\n", len(entries))
	}
	return entries, nil
}

// GetCPUUsage retrieves aggregate CPU load and the busiest processes.
func (d *Driver) GetCPUUsage(repo ports.DeviceRepository, cfg entities.DeviceConfig) (entities.CPULoad, []entities.ProcessCPU, error) {
	output, err := repo.ExecuteCommand("show processes cpu sorted | exclude 0.00%")
	if err != nil {
		return entities.CPULoad{}, nil, fmt.Errorf("failed to retrieve CPU usage: %w", err)
	}
	if cfg.IsRawOutputEnabled() {
		fmt.Printf("Raw output of 'show processes cpu sorted':\n%s\n", output)
	}
	load, processes := parseIOSXECPU(output)
	if cfg.IsDebugEnabled() {
		fmt.Printf("DEBUG: CPU load 5s=%.0f%% 1m=%.0f%% 5m=%.0f%%, %d busy processes\n", load.FiveSeconds, load.OneMinute, load.FiveMinutes, len(processes))
	}
	return load, processes, nil
}

// GetMemoryStats retrieves per-pool memory statistics.
func (d *Driver) GetMemoryStats(repo ports.DeviceRepository, cfg entities.DeviceConfig) ([]entities.MemoryPool, error) {
	output, err := repo.ExecuteCommand("show memory statistics")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve memory statistics: %w", err)
	}
	if cfg.IsRawOutputEnabled() {
		fmt.Printf("Raw output of 'show memory statistics':\n%s\n", output)
	}
	pools := parseIOSXEMemoryStats(output)
	if len(pools) == 0 && isIOSXECommandError(output) {
		return nil, fmt.Errorf("device rejected memory statistics command")
	}
	if cfg.IsDebugEnabled() {
		fmt.Printf("DEBUG: Found %d memory pools\n", len(pools))
	}
	return pools, nil
}

// GetRunningConfig captures the full running configuration.
func (d *Driver) GetRunningConfig(repo ports.DeviceRepository, cfg entities.DeviceConfig) (string, error) {
	output, err := repo.ExecuteCommand("show running-config")
	if err != nil {
		return "", fmt.Errorf("failed to retrieve running configuration: %w", err)
	}
	if isIOSXECommandError(output) {
		return "", fmt.Errorf("device rejected running-config command")
	}
	return output, nil
}

// ToggleInterfaceCommands returns commands to enable or disable an interface.
func (d *Driver) ToggleInterfaceCommands(iface string, enable bool) []string {
	state := "shutdown"
	if enable {
		state = "no shutdown"
	}
	return []string{
		"configure terminal",
		fmt.Sprintf("interface %s", iface),
		state,
		"end",
	}
}

// ApplyConfigCommands wraps raw configuration lines in a config session.
func (d *Driver) ApplyConfigCommands(lines []string) []string {
	commands := make([]string, 0, len(lines)+2)
	commands = append(commands, "configure terminal")
	commands = append(commands, lines...)
	commands = append(commands, "end")
	return commands
}

// SaveCommands returns commands that persist the running configuration.
func (d *Driver) SaveCommands() []string {
	return []string{"write memory"}
}
