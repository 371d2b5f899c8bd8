package platform

import (
	"fmt"
	"strings"

	"github.com/carlosrabelo/arava/domain/entities"
	"github.com/carlosrabelo/arava/domain/ports"
	"github.com/carlosrabelo/arava/platform/iosxe"
)

// DeviceDriver defines the behaviour required to support a device platform.
type DeviceDriver interface {
	Name() string
	Detect(repo ports.DeviceRepository) (bool, error)

	// GetAuthenticationSequence returns the login sequence for this platform
	GetAuthenticationSequence(username, password, enablePassword string) []entities.AuthPrompt

	GetUptime(repo ports.DeviceRepository, cfg entities.DeviceConfig) (entities.UptimeInfo, error)
	GetInterfaceRates(repo ports.DeviceRepository, cfg entities.DeviceConfig, iface string) (entities.InterfaceRate, error)
	GetMacTable(repo ports.DeviceRepository, cfg entities.DeviceConfig) ([]entities.MacEntry, error)
	GetCPUUsage(repo ports.DeviceRepository, cfg entities.DeviceConfig) (entities.CPULoad, []entities.ProcessCPU, error)
	GetMemoryStats(repo ports.DeviceRepository, cfg entities.DeviceConfig) ([]entities.MemoryPool, error)
	GetRunningConfig(repo ports.DeviceRepository, cfg entities.DeviceConfig) (string, error)

	ToggleInterfaceCommands(iface string, enable bool) []string
	ApplyConfigCommands(lines []string) []string
	SaveCommands() []string
}

var registry = []DeviceDriver{
	iosxe.New(),
}

// Get returns a driver by normalized platform name.
func Get(name string) (DeviceDriver, error) {
	normalized := normalizeName(name)
	for _, driver := range registry {
		if driver.Name() == normalized {
			return driver, nil
		}
	}
	return nil, fmt.Errorf("unknown device platform: %s", name)
}

// Available returns all registered drivers.
func Available() []DeviceDriver {
	out := make([]DeviceDriver, len(registry))
	copy(out, registry)
	return out
}

// Detect tries all registered drivers until one matches.
func Detect(repo ports.DeviceRepository) (DeviceDriver, error) {
	var lastErr error
	for _, driver := range registry {
		matched, err := driver.Detect(repo)
		if err != nil {
			lastErr = err
			continue
		}
		if matched {
			return driver, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to detect device platform")
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
