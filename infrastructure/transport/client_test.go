package transport

import (
	"testing"

	"github.com/carlosrabelo/arava/domain/entities"
)

func TestCacheKey(t *testing.T) {
	config1 := entities.DeviceConfig{
		Transport:      "ssh",
		Target:         "192.168.1.1",
		Username:       "admin",
		Password:       "password",
		EnablePassword: "enable",
	}

	config2 := entities.DeviceConfig{
		Transport:      "telnet",
		Target:         "192.168.1.1",
		Username:       "admin",
		Password:       "password",
		EnablePassword: "enable",
	}

	config3 := entities.DeviceConfig{
		Transport:      "ssh",
		Target:         "192.168.1.2",
		Username:       "admin",
		Password:       "password",
		EnablePassword: "enable",
	}

	config4 := config1
	config4.Port = 2222

	// Same config produces the same key
	key1a := cacheKey(config1)
	key1b := cacheKey(config1)
	if key1a != key1b {
		t.Errorf("Same config should produce same key: %s != %s", key1a, key1b)
	}

	key2 := cacheKey(config2)
	key3 := cacheKey(config3)
	key4 := cacheKey(config4)

	if key1a == key2 {
		t.Error("Different transport should produce different keys")
	}

	if key1a == key3 {
		t.Error("Different target should produce different keys")
	}

	if key1a == key4 {
		t.Error("Different port should produce different keys")
	}

	if key1a == "" || key2 == "" || key3 == "" {
		t.Error("Cache keys should not be empty")
	}
}

func TestNewClientTransportSelection(t *testing.T) {
	sshClient := newClient(entities.DeviceConfig{Transport: "ssh", Target: "10.0.0.1"})
	if _, ok := sshClient.(*SSHClient); !ok {
		t.Errorf("newClient with ssh transport returned %T", sshClient)
	}

	telnetClient := newClient(entities.DeviceConfig{Transport: "telnet", Target: "10.0.0.1"})
	if _, ok := telnetClient.(*TelnetClient); !ok {
		t.Errorf("newClient with telnet transport returned %T", telnetClient)
	}

	defaultClient := newClient(entities.DeviceConfig{Target: "10.0.0.1"})
	if _, ok := defaultClient.(*SSHClient); !ok {
		t.Errorf("newClient without transport should default to SSH, returned %T", defaultClient)
	}
}

func TestGetCachesClients(t *testing.T) {
	defer CloseAll()

	cfg := entities.DeviceConfig{Transport: "ssh", Target: "10.0.0.9", Username: "admin"}
	first := Get(cfg)
	second := Get(cfg)
	if first != second {
		t.Error("Get() should return the cached client for identical configs")
	}

	other := Get(entities.DeviceConfig{Transport: "ssh", Target: "10.0.0.10", Username: "admin"})
	if other == first {
		t.Error("Get() should return distinct clients for different targets")
	}
}
