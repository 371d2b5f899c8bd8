package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/carlosrabelo/arava/domain/entities"
)

// Config defines the global configuration
type Config struct {
	Platform       string                  `yaml:"platform"`
	Transport      string                  `yaml:"transport"`
	Username       string                  `yaml:"username"`
	Password       string                  `yaml:"password"`
	EnablePassword string                  `yaml:"enable_password"`
	LogFile        string                  `yaml:"log_file"`
	LogLevel       string                  `yaml:"log_level"`
	ServerIP       string                  `yaml:"server_ip"`
	SnmpPort       int                     `yaml:"snmp_port"`
	SnmpCommunity  string                  `yaml:"snmp_community"`
	Devices        []entities.DeviceConfig `yaml:"devices"`
}

func validatePlatform(platform string) error {
	switch platform {
	case "iosxe", "auto":
		return nil
	default:
		return fmt.Errorf("platform %s is invalid, must be 'iosxe' or 'auto'", platform)
	}
}

func validateTransport(transport, context string) error {
	if transport != "ssh" && transport != "telnet" {
		return fmt.Errorf("transport %s is invalid for %s, must be 'ssh' or 'telnet'", transport, context)
	}
	return nil
}

// Load loads and validates configuration from a YAML file
func Load(yamlFile, target string, sandbox bool, verbosityLevel int) (*Config, error) {
	data, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %v", yamlFile, err)
	}
	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %v", err)
	}

	cfg.Platform = strings.ToLower(strings.TrimSpace(cfg.Platform))
	if cfg.Platform == "" {
		cfg.Platform = "iosxe"
	}
	if err := validatePlatform(cfg.Platform); err != nil {
		return nil, err
	}

	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	if cfg.Transport == "" {
		cfg.Transport = "ssh"
	}
	if err := validateTransport(cfg.Transport, "global transport"); err != nil {
		return nil, err
	}

	if cfg.LogFile == "" {
		cfg.LogFile = "arava.log"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.SnmpPort == 0 {
		cfg.SnmpPort = 162
	}
	if cfg.SnmpPort < 1 || cfg.SnmpPort > 65535 {
		return nil, fmt.Errorf("snmp_port %d is out of range", cfg.SnmpPort)
	}
	if cfg.SnmpCommunity == "" {
		cfg.SnmpCommunity = "public"
	}

	if cfg.Username == "" {
		return nil, fmt.Errorf("global username is required")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("global password is required")
	}

	if len(cfg.Devices) == 0 {
		return nil, fmt.Errorf("at least one device is required")
	}

	for i, dev := range cfg.Devices {
		deviceVerbosity := verbosityLevel
		if target != "" && dev.Target != target {
			deviceVerbosity = 0
		}

		if dev.Target == "" {
			return nil, fmt.Errorf("device[%d] target is required", i)
		}

		dev.Transport = strings.ToLower(strings.TrimSpace(dev.Transport))
		if dev.Transport == "" {
			dev.Transport = cfg.Transport
			if deviceVerbosity == 1 || deviceVerbosity == 3 {
				fmt.Printf("DEBUG: No transport defined for device %s, using global %s\n", dev.Target, cfg.Transport)
			}
		}
		if err := validateTransport(dev.Transport, "device "+dev.Target); err != nil {
			return nil, err
		}

		if dev.Port < 0 || dev.Port > 65535 {
			return nil, fmt.Errorf("port %d is out of range for device %s", dev.Port, dev.Target)
		}

		dev.Platform = strings.ToLower(strings.TrimSpace(dev.Platform))
		if dev.Platform == "" {
			dev.Platform = cfg.Platform
		}
		if err := validatePlatform(dev.Platform); err != nil {
			return nil, fmt.Errorf("device %s: %w", dev.Target, err)
		}

		if dev.Username == "" {
			dev.Username = cfg.Username
		}
		if dev.Password == "" {
			dev.Password = cfg.Password
		}
		if dev.EnablePassword == "" {
			dev.EnablePassword = cfg.EnablePassword
		}
		if dev.SnmpCommunity == "" {
			dev.SnmpCommunity = cfg.SnmpCommunity
		}

		dev.Sandbox = sandbox
		dev.VerbosityLevel = deviceVerbosity
		cfg.Devices[i] = dev
	}

	return &cfg, nil
}

// FindDevice returns the device entry matching the given target
func (c *Config) FindDevice(target string) (entities.DeviceConfig, bool) {
	for _, dev := range c.Devices {
		if dev.Target == target {
			return dev, true
		}
	}
	return entities.DeviceConfig{}, false
}
