package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/carlosrabelo/arava/domain/entities"
	"github.com/carlosrabelo/arava/domain/ports"
	"github.com/carlosrabelo/arava/platform"
)

// OpsServiceImpl implements the device operations service
type OpsServiceImpl struct {
	deviceRepo ports.DeviceRepository
	config     entities.DeviceConfig
	driver     platform.DeviceDriver
}

// NewOpsService creates a new instance of the operations service
func NewOpsService(deviceRepo ports.DeviceRepository, config entities.DeviceConfig, driver platform.DeviceDriver) *OpsServiceImpl {
	return &OpsServiceImpl{
		deviceRepo: deviceRepo,
		config:     config,
		driver:     driver,
	}
}

func (o *OpsServiceImpl) ensureConnected() error {
	if o.deviceRepo.IsConnected() {
		return nil
	}
	return o.deviceRepo.Connect()
}

// HealthReport runs the combined uptime, CPU and memory sweep
func (o *OpsServiceImpl) HealthReport() (*entities.HealthReport, error) {
	if err := o.ensureConnected(); err != nil {
		return nil, err
	}
	uptime, err := o.driver.GetUptime(o.deviceRepo, o.config)
	if err != nil {
		return nil, err
	}
	load, processes, err := o.driver.GetCPUUsage(o.deviceRepo, o.config)
	if err != nil {
		return nil, err
	}
	memory, err := o.driver.GetMemoryStats(o.deviceRepo, o.config)
	if err != nil {
		return nil, err
	}
	return &entities.HealthReport{
		Uptime:    uptime,
		Load:      load,
		Processes: processes,
		Memory:    memory,
	}, nil
}

// GetUptime fetches the system uptime
func (o *OpsServiceImpl) GetUptime() (entities.UptimeInfo, error) {
	if err := o.ensureConnected(); err != nil {
		return entities.UptimeInfo{}, err
	}
	return o.driver.GetUptime(o.deviceRepo, o.config)
}

// WatchTraffic samples the rate counters of an interface
func (o *OpsServiceImpl) WatchTraffic(iface string, samples int, interval time.Duration) ([]entities.InterfaceRate, error) {
	if iface == "" {
		return nil, fmt.Errorf("interface name is required")
	}
	if samples < 1 {
		samples = 1
	}
	if err := o.ensureConnected(); err != nil {
		return nil, err
	}
	rates := make([]entities.InterfaceRate, 0, samples)
	for i := 0; i < samples; i++ {
		if i > 0 {
			time.Sleep(interval)
		}
		rate, err := o.driver.GetInterfaceRates(o.deviceRepo, o.config, iface)
		if err != nil {
			return rates, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

// GetMacTable fetches the MAC address table
func (o *OpsServiceImpl) GetMacTable() ([]entities.MacEntry, error) {
	if err := o.ensureConnected(); err != nil {
		return nil, err
	}
	return o.driver.GetMacTable(o.deviceRepo, o.config)
}

// ToggleInterface enables or disables an interface
func (o *OpsServiceImpl) ToggleInterface(iface string, enable bool) error {
	if iface == "" {
		return fmt.Errorf("interface name is required")
	}
	state := "disabled"
	if enable {
		state = "enabled"
	}
	commands := o.driver.ToggleInterfaceCommands(iface, enable)
	if o.config.Sandbox {
		fmt.Printf("Sandbox: interface %s would be %s with:\n", iface, state)
		for _, cmd := range commands {
			fmt.Printf("  %s\n", cmd)
		}
		return nil
	}
	if err := o.ensureConnected(); err != nil {
		return err
	}
	if err := o.executeCommands(commands); err != nil {
		return fmt.Errorf("failed to toggle interface %s: %w", iface, err)
	}
	fmt.Printf("Interface %s %s\n", iface, state)
	return o.saveConfiguration()
}

// BackupConfig captures the running configuration to a local file
func (o *OpsServiceImpl) BackupConfig(path string) error {
	if path == "" {
		return fmt.Errorf("backup file path is required")
	}
	if err := o.ensureConnected(); err != nil {
		return err
	}
	running, err := o.driver.GetRunningConfig(o.deviceRepo, o.config)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(running+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write backup file %s: %v", path, err)
	}
	fmt.Printf("Running configuration saved to %s\n", path)
	return nil
}

// RestoreConfig replays a backup file against the device configuration
func (o *OpsServiceImpl) RestoreConfig(path string) error {
	lines, err := readConfigLines(path)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("backup file %s has no configuration commands", path)
	}
	commands := o.driver.ApplyConfigCommands(lines)
	if o.config.Sandbox {
		fmt.Printf("Sandbox: %d configuration lines from %s would be applied\n", len(lines), path)
		if o.config.IsDebugEnabled() {
			for _, cmd := range commands {
				fmt.Printf("DEBUG: would send: %s\n", cmd)
			}
		}
		return nil
	}
	if err := o.ensureConnected(); err != nil {
		return err
	}
	if err := o.executeCommands(commands); err != nil {
		return fmt.Errorf("failed to restore configuration from %s: %w", path, err)
	}
	fmt.Printf("Configuration restored from %s\n", path)
	return o.saveConfiguration()
}

// SaveConfig persists the running configuration
func (o *OpsServiceImpl) SaveConfig() error {
	if o.config.Sandbox {
		fmt.Println("Sandbox: configuration would be saved (use --write to apply)")
		return nil
	}
	if err := o.ensureConnected(); err != nil {
		return err
	}
	return o.saveConfiguration()
}

func (o *OpsServiceImpl) saveConfiguration() error {
	for _, cmd := range o.driver.SaveCommands() {
		if _, err := o.deviceRepo.ExecuteCommand(cmd); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
	}
	if o.config.IsDebugEnabled() {
		fmt.Printf("DEBUG: Configuration saved on %s\n", o.config.Target)
	}
	return nil
}

func (o *OpsServiceImpl) executeCommands(commands []string) error {
	for _, cmd := range commands {
		if _, err := o.deviceRepo.ExecuteCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

// readConfigLines loads a backup file, skipping blanks and comment markers
func readConfigLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file %s: %v", path, err)
	}
	lines := make([]string, 0)
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimRight(line, " \r\t")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(trimmed), "!") {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines, nil
}
