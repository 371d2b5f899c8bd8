package ports

import (
	"time"

	"github.com/carlosrabelo/arava/domain/entities"
)

// OpsService defines the port for device operations
type OpsService interface {
	HealthReport() (*entities.HealthReport, error)
	GetUptime() (entities.UptimeInfo, error)
	WatchTraffic(iface string, samples int, interval time.Duration) ([]entities.InterfaceRate, error)
	GetMacTable() ([]entities.MacEntry, error)
	ToggleInterface(iface string, enable bool) error
	BackupConfig(path string) error
	RestoreConfig(path string) error
	SaveConfig() error
}
