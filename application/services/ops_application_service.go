package services

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carlosrabelo/arava/domain/entities"
	"github.com/carlosrabelo/arava/domain/ports"
	"github.com/carlosrabelo/arava/domain/services"
	"github.com/carlosrabelo/arava/infrastructure/logging"
	"github.com/carlosrabelo/arava/infrastructure/transport"
	"github.com/carlosrabelo/arava/platform"
)

// OpsApplicationService orchestrates device operations and audit logging
type OpsApplicationService struct {
	ops    ports.OpsService
	target string
}

// NewOpsApplicationService creates a new instance of the operations application service
func NewOpsApplicationService(deviceConfig entities.DeviceConfig, transportClient transport.Client, driver platform.DeviceDriver) *OpsApplicationService {
	if configurable, ok := transportClient.(transport.AuthConfigurable); ok {
		configurable.SetAuthSequence(driver.GetAuthenticationSequence(
			deviceConfig.Username, deviceConfig.Password, deviceConfig.EnablePassword))
	}
	deviceAdapter := transport.NewDeviceAdapter(transportClient)
	opsService := services.NewOpsService(deviceAdapter, deviceConfig, driver)

	return &OpsApplicationService{
		ops:    opsService,
		target: deviceConfig.Target,
	}
}

func (o *OpsApplicationService) log() *logrus.Entry {
	return logging.L().WithField("target", o.target)
}

// HealthReport runs the combined health sweep
func (o *OpsApplicationService) HealthReport() (*entities.HealthReport, error) {
	report, err := o.ops.HealthReport()
	if err != nil {
		o.log().WithError(err).Error("Error fetching health report")
		return nil, err
	}
	o.log().Info("Fetched health report")
	return report, nil
}

// GetUptime fetches the system uptime
func (o *OpsApplicationService) GetUptime() (entities.UptimeInfo, error) {
	info, err := o.ops.GetUptime()
	if err != nil {
		o.log().WithError(err).Error("Error fetching uptime")
		return info, err
	}
	o.log().Info("Fetched device uptime")
	return info, nil
}

// WatchTraffic samples interface rate counters
func (o *OpsApplicationService) WatchTraffic(iface string, samples int, interval time.Duration) ([]entities.InterfaceRate, error) {
	rates, err := o.ops.WatchTraffic(iface, samples, interval)
	if err != nil {
		o.log().WithError(err).WithField("interface", iface).Error("Error retrieving traffic stats")
		return rates, err
	}
	o.log().WithField("interface", iface).Info("Fetched traffic statistics")
	return rates, nil
}

// GetMacTable fetches the MAC address table
func (o *OpsApplicationService) GetMacTable() ([]entities.MacEntry, error) {
	entries, err := o.ops.GetMacTable()
	if err != nil {
		o.log().WithError(err).Error("Error fetching MAC address table")
		return nil, err
	}
	o.log().Info("Fetched MAC address table")
	return entries, nil
}

// ToggleInterface enables or disables an interface
func (o *OpsApplicationService) ToggleInterface(iface string, enable bool) error {
	state := "disabled"
	if enable {
		state = "enabled"
	}
	if err := o.ops.ToggleInterface(iface, enable); err != nil {
		o.log().WithError(err).WithField("interface", iface).Error("Error toggling interface state")
		return err
	}
	o.log().WithField("interface", iface).Infof("Interface %s successfully", state)
	return nil
}

// BackupConfig captures the running configuration to a local file
func (o *OpsApplicationService) BackupConfig(path string) error {
	if err := o.ops.BackupConfig(path); err != nil {
		o.log().WithError(err).Error("Error backing up configuration")
		return err
	}
	o.log().WithField("file", path).Info("Configuration backed up")
	return nil
}

// RestoreConfig replays a backup file against the device
func (o *OpsApplicationService) RestoreConfig(path string) error {
	if err := o.ops.RestoreConfig(path); err != nil {
		o.log().WithError(err).Error("Error restoring configuration")
		return err
	}
	o.log().WithField("file", path).Info("Configuration restored successfully")
	return nil
}

// SaveConfig persists the running configuration
func (o *OpsApplicationService) SaveConfig() error {
	if err := o.ops.SaveConfig(); err != nil {
		o.log().WithError(err).Error("Error saving configuration")
		return err
	}
	o.log().Info("Configuration saved")
	return nil
}
