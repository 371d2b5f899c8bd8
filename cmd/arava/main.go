package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/carlosrabelo/arava/application/services"
	"github.com/carlosrabelo/arava/domain/entities"
	"github.com/carlosrabelo/arava/infrastructure/config"
	"github.com/carlosrabelo/arava/infrastructure/logging"
	"github.com/carlosrabelo/arava/infrastructure/snmp"
	"github.com/carlosrabelo/arava/infrastructure/transport"
	"github.com/carlosrabelo/arava/platform"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  --config string    YAML configuration file (default \"config.yaml\")\n")
	fmt.Fprintf(os.Stderr, "  --target string    Device target (must match a target in YAML, required outside daemon mode)\n")
	fmt.Fprintf(os.Stderr, "  --verbose int      Verbosity level: 0=none, 1=debug logs, 2=raw device output, 3=debug+raw output\n")
	fmt.Fprintf(os.Stderr, "  --write            Apply changes (disables sandbox mode)\n")
	fmt.Fprintf(os.Stderr, "  --report           Run the full health sweep: uptime, CPU, memory, MAC table (default action)\n")
	fmt.Fprintf(os.Stderr, "  --uptime           Show device uptime\n")
	fmt.Fprintf(os.Stderr, "  --traffic string   Sample rate counters for the given interface\n")
	fmt.Fprintf(os.Stderr, "  --samples int      Number of traffic samples (default 1)\n")
	fmt.Fprintf(os.Stderr, "  --interval dur     Delay between traffic samples (default 10s)\n")
	fmt.Fprintf(os.Stderr, "  --mac              Show the MAC address table\n")
	fmt.Fprintf(os.Stderr, "  --enable string    Bring the given interface up (no shutdown)\n")
	fmt.Fprintf(os.Stderr, "  --disable string   Shut the given interface down\n")
	fmt.Fprintf(os.Stderr, "  --backup string    Save the running configuration to a local file\n")
	fmt.Fprintf(os.Stderr, "  --restore string   Replay a configuration backup file against the device\n")
	fmt.Fprintf(os.Stderr, "  --save             Persist the running configuration (write memory)\n")
	fmt.Fprintf(os.Stderr, "  --daemon           Listen for SNMP link traps and probe flapped interfaces\n")
}

func main() {
	flag.Usage = printUsage
	yamlFile := flag.String("config", "config.yaml", "YAML configuration file")
	write := flag.Bool("write", false, "Apply changes (disables sandbox mode)")
	verbosity := flag.Int("verbose", 0, "Verbosity level: 0=none, 1=debug logs, 2=raw device output, 3=debug+raw output")
	host := flag.String("target", "", "Device target (must match a target in YAML)")
	daemon := flag.Bool("daemon", false, "Listen for SNMP link traps and probe flapped interfaces")
	report := flag.Bool("report", false, "Run the full health sweep")
	uptime := flag.Bool("uptime", false, "Show device uptime")
	traffic := flag.String("traffic", "", "Sample rate counters for the given interface")
	samples := flag.Int("samples", 1, "Number of traffic samples")
	interval := flag.Duration("interval", 10*time.Second, "Delay between traffic samples")
	mac := flag.Bool("mac", false, "Show the MAC address table")
	enableIface := flag.String("enable", "", "Bring the given interface up")
	disableIface := flag.String("disable", "", "Shut the given interface down")
	backupFile := flag.String("backup", "", "Save the running configuration to a local file")
	restoreFile := flag.String("restore", "", "Replay a configuration backup file")
	save := flag.Bool("save", false, "Persist the running configuration")
	flag.Parse()

	fmt.Printf("Arava %s (built %s)\n", version, buildTime)

	if *verbosity < 0 || *verbosity > 3 {
		fmt.Fprintf(os.Stderr, "Error: --verbose must be 0, 1, 2, or 3\n")
		flag.Usage()
		os.Exit(1)
	}

	if !*daemon && *host == "" {
		fmt.Fprintf(os.Stderr, "Error: the --target parameter is required outside daemon mode. Specify the device target with --target <target>\n")
		flag.Usage()
		os.Exit(1)
	}

	configPath := findConfigFile(*yamlFile, *verbosity)

	cfg, err := config.Load(configPath, *host, !*write, *verbosity)
	if err != nil {
		log.Fatal(err)
	}
	defer transport.CloseAll()

	if err := logging.Init(cfg.LogFile, cfg.LogLevel); err != nil {
		log.Fatal(err)
	}

	if *daemon {
		fmt.Println("Starting Arava in daemon mode for SNMP traps...")
		watcher := snmp.NewWatcher(cfg, *verbosity == 1 || *verbosity == 3, *verbosity == 2 || *verbosity == 3, probeLinkEvent)
		if err := watcher.Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	deviceCfg, found := cfg.FindDevice(*host)
	if !found {
		fmt.Fprintf(os.Stderr, "Error: target %s not registered in the YAML configuration\n", *host)
		os.Exit(1)
	}

	fmt.Printf("Starting Arava for device %s\n", deviceCfg.Target)
	ops, err := buildService(deviceCfg)
	if err != nil {
		log.Fatal(err)
	}

	failed := false
	ran := false

	if *uptime {
		ran = true
		info, err := ops.GetUptime()
		if err != nil {
			log.Printf("Error fetching uptime for %s: %v", deviceCfg.Target, err)
			failed = true
		} else {
			printUptime(info)
		}
	}

	if *traffic != "" {
		ran = true
		rates, err := ops.WatchTraffic(*traffic, *samples, *interval)
		if err != nil {
			log.Printf("Error retrieving traffic stats for %s: %v", *traffic, err)
			failed = true
		}
		printRates(rates)
	}

	if *mac {
		ran = true
		entries, err := ops.GetMacTable()
		if err != nil {
			log.Printf("Error fetching MAC address table: %v", err)
			failed = true
		} else {
			printMacTable(entries)
		}
	}

	if *enableIface != "" {
		ran = true
		if err := ops.ToggleInterface(*enableIface, true); err != nil {
			log.Printf("Error enabling interface %s: %v", *enableIface, err)
			failed = true
		}
	}

	if *disableIface != "" {
		ran = true
		if err := ops.ToggleInterface(*disableIface, false); err != nil {
			log.Printf("Error disabling interface %s: %v", *disableIface, err)
			failed = true
		}
	}

	if *backupFile != "" {
		ran = true
		if err := ops.BackupConfig(*backupFile); err != nil {
			log.Printf("Error backing up configuration: %v", err)
			failed = true
		}
	}

	if *restoreFile != "" {
		ran = true
		if err := ops.RestoreConfig(*restoreFile); err != nil {
			log.Printf("Error restoring configuration: %v", err)
			failed = true
		}
	}

	if *save {
		ran = true
		if err := ops.SaveConfig(); err != nil {
			log.Printf("Error saving configuration: %v", err)
			failed = true
		}
	}

	if *report || !ran {
		health, err := ops.HealthReport()
		if err != nil {
			log.Printf("Error fetching health report for %s: %v", deviceCfg.Target, err)
			failed = true
		} else {
			printHealthReport(health)
		}
		entries, err := ops.GetMacTable()
		if err != nil {
			log.Printf("Error fetching MAC address table: %v", err)
			failed = true
		} else {
			printMacTable(entries)
		}
	}

	if failed {
		os.Exit(1)
	}
}

// findConfigFile resolves the configuration path using the platform search order
func findConfigFile(yamlFile string, verbosity int) string {
	if yamlFile != "config.yaml" {
		return yamlFile
	}

	possiblePaths := []string{
		filepath.Join(".", "config.yaml"), // Local directory
	}

	if runtime.GOOS == "linux" {
		if userConfigDir, err := os.UserConfigDir(); err == nil {
			possiblePaths = append(possiblePaths, filepath.Join(userConfigDir, "arava", "config.yaml"))
		}
		possiblePaths = append(possiblePaths, "/etc/arava/config.yaml")
	} else if runtime.GOOS == "windows" {
		if appDataDir := os.Getenv("APPDATA"); appDataDir != "" {
			possiblePaths = append(possiblePaths, filepath.Join(appDataDir, "arava", "config.yaml"))
		}
		if programDataDir := os.Getenv("ProgramData"); programDataDir != "" {
			possiblePaths = append(possiblePaths, filepath.Join(programDataDir, "arava", "config.yaml"))
		}
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if verbosity >= 1 {
				fmt.Printf("DEBUG: Configuration file found at %s\n", path)
			}
			return path
		}
	}

	if runtime.GOOS == "windows" {
		log.Fatal("Error: No config.yaml file found in ./, %APPDATA%\\arava\\, or %ProgramData%\\arava\\")
	} else {
		log.Fatal("Error: No config.yaml file found in ./, ~/.config/arava/, or /etc/arava/")
	}
	return yamlFile
}

// buildService resolves the platform driver and wires the application service
func buildService(deviceCfg entities.DeviceConfig) (*services.OpsApplicationService, error) {
	client := transport.Get(deviceCfg)
	adapter := transport.NewDeviceAdapter(client)

	platformName := deviceCfg.PlatformID()
	var driver platform.DeviceDriver
	if platformName == "auto" {
		detected, err := platform.Detect(adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to auto-detect device platform: %w", err)
		}
		driver = detected
		platformName = detected.Name()
		if deviceCfg.IsDebugEnabled() {
			fmt.Printf("DEBUG: Platform auto-detected as %s\n", platformName)
		}
	} else {
		resolved, err := platform.Get(platformName)
		if err != nil {
			return nil, err
		}
		driver = resolved
	}

	deviceCfg.Platform = platformName
	return services.NewOpsApplicationService(deviceCfg, client, driver), nil
}

// probeLinkEvent is the daemon-mode reaction to a debounced link trap
func probeLinkEvent(dev entities.DeviceConfig, iface string, up bool) {
	if !up {
		log.Printf("Link down on %s %s, skipping probe until the port recovers", dev.Target, iface)
		return
	}
	ops, err := buildService(dev)
	if err != nil {
		log.Printf("Error preparing probe for %s: %v", dev.Target, err)
		return
	}
	rates, err := ops.WatchTraffic(iface, 1, 0)
	if err != nil {
		log.Printf("Error probing %s %s after link up: %v", dev.Target, iface, err)
		return
	}
	printRates(rates)
}

func printUptime(info entities.UptimeInfo) {
	if info.Hostname != "" {
		fmt.Printf("Device Uptime: %s up %s\n", info.Hostname, info.Uptime)
		return
	}
	fmt.Printf("Device Uptime: %s\n", info.Raw)
}

func printRates(rates []entities.InterfaceRate) {
	for _, rate := range rates {
		fmt.Printf("Traffic %s: input %d bits/sec (%d pkts/sec), output %d bits/sec (%d pkts/sec)\n",
			rate.Interface, rate.InputBits, rate.InputPkts, rate.OutputBits, rate.OutputPkts)
	}
}

func printMacTable(entries []entities.MacEntry) {
	fmt.Printf("MAC Address Table (%d entries):\n", len(entries))
	fmt.Printf("%-6s %-16s %-8s %s\n", "VLAN", "MAC", "Type", "Port")
	for _, entry := range entries {
		fmt.Printf("%-6s %-16s %-8s %s\n", entry.Vlan, entry.MacFull, entry.Type, entry.Interface)
	}
}

func printHealthReport(report *entities.HealthReport) {
	printUptime(report.Uptime)
	fmt.Printf("CPU Usage: 5s %.0f%% (irq %.0f%%), 1m %.0f%%, 5m %.0f%%\n",
		report.Load.FiveSeconds, report.Load.FiveSecondsIRQ, report.Load.OneMinute, report.Load.FiveMinutes)
	for _, proc := range report.Processes {
		fmt.Printf("  PID %-6d %5.2f%% %5.2f%% %5.2f%%  %s\n",
			proc.PID, proc.FiveSeconds, proc.OneMinute, proc.FiveMinutes, proc.Name)
	}
	fmt.Println("Memory Usage:")
	for _, pool := range report.Memory {
		fmt.Printf("  %-12s total %d used %d free %d\n", pool.Name, pool.Total, pool.Used, pool.Free)
	}
}
