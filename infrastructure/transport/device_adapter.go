package transport

import (
	"github.com/carlosrabelo/arava/domain/entities"
)

// DeviceAdapter implements the DeviceRepository port using existing infrastructure
type DeviceAdapter struct {
	client Client
}

// NewDeviceAdapter creates a new device adapter
func NewDeviceAdapter(client Client) *DeviceAdapter {
	return &DeviceAdapter{
		client: client,
	}
}

// Connect connects to the device
func (a *DeviceAdapter) Connect() error {
	return a.client.Connect()
}

// Disconnect disconnects from the device
func (a *DeviceAdapter) Disconnect() {
	a.client.Disconnect()
}

// ExecuteCommand executes a command on the device
func (a *DeviceAdapter) ExecuteCommand(cmd string) (string, error) {
	return a.client.ExecuteCommand(cmd)
}

// IsConnected checks if connected
func (a *DeviceAdapter) IsConnected() bool {
	return a.client.IsConnected()
}

// Client interface that already exists in the transport package
type Client interface {
	Connect() error
	Disconnect()
	ExecuteCommand(cmd string) (string, error)
	IsConnected() bool
}

// AuthConfigurable allows setting authentication prompts after client creation
type AuthConfigurable interface {
	SetAuthSequence(prompts []entities.AuthPrompt)
}
