package snmp

import (
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/carlosrabelo/arava/domain/entities"
	"github.com/carlosrabelo/arava/infrastructure/config"
	"github.com/carlosrabelo/arava/infrastructure/logging"
)

const (
	DebounceTime = 10 * time.Second // Minimum time between probes of the same port

	snmpTrapOID = ".1.3.6.1.6.3.1.1.4.1.0"
	linkDownOID = ".1.3.6.1.6.3.1.1.5.3"
	linkUpOID   = ".1.3.6.1.6.3.1.1.5.4"
	ifIndexOID  = ".1.3.6.1.2.1.2.2.1.1"
	ifDescrOID  = ".1.3.6.1.2.1.2.2.1.2"
)

// PortState holds the state of the last handled trap for debouncing
type PortState struct {
	lastTrapTime time.Time
	lastEvent    string
	mutex        sync.Mutex
}

// ProbeFunc is invoked for a debounced link event on a known device
type ProbeFunc func(dev entities.DeviceConfig, iface string, up bool)

// Watcher listens for linkDown/linkUp traps and triggers interface probes
type Watcher struct {
	cfg       *config.Config
	devices   map[string]entities.DeviceConfig
	probe     ProbeFunc
	states    map[string]*PortState
	statesMu  sync.Mutex
	verbose   bool
	rawOutput bool
}

// NewWatcher creates a trap watcher for every configured device
func NewWatcher(cfg *config.Config, verbose, rawOutput bool, probe ProbeFunc) *Watcher {
	devices := make(map[string]entities.DeviceConfig, len(cfg.Devices))
	for _, dev := range cfg.Devices {
		dev.VerbosityLevel = verbosityFor(verbose, rawOutput)
		devices[dev.Target] = dev
	}
	return &Watcher{
		cfg:       cfg,
		devices:   devices,
		probe:     probe,
		states:    make(map[string]*PortState),
		verbose:   verbose,
		rawOutput: rawOutput,
	}
}

func verbosityFor(verbose, rawOutput bool) int {
	switch {
	case verbose && rawOutput:
		return 3
	case rawOutput:
		return 2
	case verbose:
		return 1
	}
	return 0
}

// Run starts the daemon listening for SNMP traps
func (w *Watcher) Run() error {
	listener := gosnmp.NewTrapListener()
	listener.Params = &gosnmp.GoSNMP{
		Port:      uint16(w.cfg.SnmpPort),
		Community: w.cfg.SnmpCommunity,
		Version:   gosnmp.Version2c,
		Timeout:   time.Duration(5) * time.Second,
		Transport: "udp", // Ensure IPv4
	}
	listener.OnNewTrap = w.handleTrap

	listenerAddress := fmt.Sprintf("%s:%d", w.cfg.ServerIP, w.cfg.SnmpPort)
	fmt.Printf("SNMP daemon started, listening for traps on %s with community %s...\n", listenerAddress, w.cfg.SnmpCommunity)
	if err := listener.Listen(listenerAddress); err != nil {
		return fmt.Errorf("failed to start SNMP listener on %s: %v", listenerAddress, err)
	}
	return nil
}

func (w *Watcher) handleTrap(packet *gosnmp.SnmpPacket, addr *net.UDPAddr) {
	if w.verbose {
		fmt.Printf("DEBUG: Received trap from %s\n", addr.IP.String())
	}

	dev, exists := w.devices[addr.IP.String()]
	if !exists {
		log.Printf("Trap from %s not registered in YAML", addr.IP.String())
		return
	}

	event := ""
	ifIndex := -1
	for _, variable := range packet.Variables {
		if w.rawOutput {
			fmt.Printf("Device output: Trap variable: OID=%s, Value=%v\n", variable.Name, variable.Value)
		}
		if variable.Name == snmpTrapOID {
			switch fmt.Sprintf("%v", variable.Value) {
			case linkDownOID:
				event = "linkDown"
			case linkUpOID:
				event = "linkUp"
			}
		}
		if strings.HasPrefix(variable.Name, ifIndexOID+".") {
			if idx, ok := trapValueToInt(variable.Value); ok {
				ifIndex = idx
			}
		}
	}

	if event == "" {
		if w.verbose {
			fmt.Printf("DEBUG: Ignoring trap from %s, not a link event\n", addr.IP.String())
		}
		return
	}
	if ifIndex < 0 {
		log.Printf("Error: Could not extract ifIndex from %s trap sent by %s", event, dev.Target)
		return
	}

	if !w.shouldHandle(dev.Target, ifIndex, event, time.Now()) {
		if w.verbose {
			fmt.Printf("DEBUG: Ignoring %s trap for %s ifIndex %d due to debounce\n", event, dev.Target, ifIndex)
		}
		return
	}

	iface, err := w.resolveIfDescr(dev, ifIndex)
	if err != nil {
		log.Printf("Error resolving ifDescr for ifIndex %d on %s: %v", ifIndex, dev.Target, err)
		iface = fmt.Sprintf("ifIndex %d", ifIndex)
	}

	logging.L().WithField("target", dev.Target).WithField("interface", iface).Infof("Link event %s", event)
	if w.probe != nil {
		w.probe(dev, iface, event == "linkUp")
	}
}

// shouldHandle applies the per-port debounce window and records the event
func (w *Watcher) shouldHandle(target string, ifIndex int, event string, now time.Time) bool {
	key := fmt.Sprintf("%s:%d", target, ifIndex)

	w.statesMu.Lock()
	state, exists := w.states[key]
	if !exists {
		state = &PortState{}
		w.states[key] = state
	}
	w.statesMu.Unlock()

	state.mutex.Lock()
	defer state.mutex.Unlock()
	if now.Sub(state.lastTrapTime) < DebounceTime && state.lastEvent != "" {
		return false
	}
	state.lastTrapTime = now
	state.lastEvent = event
	return true
}

// resolveIfDescr queries the device for the interface name behind an ifIndex
func (w *Watcher) resolveIfDescr(dev entities.DeviceConfig, ifIndex int) (string, error) {
	client := &gosnmp.GoSNMP{
		Target:    dev.Target,
		Port:      161,
		Community: dev.SnmpCommunity,
		Version:   gosnmp.Version2c,
		Timeout:   time.Duration(5) * time.Second,
		Retries:   1,
	}
	if err := client.Connect(); err != nil {
		return "", fmt.Errorf("failed to connect to %s via SNMP: %v", dev.Target, err)
	}
	defer client.Conn.Close()

	oid := fmt.Sprintf("%s.%d", ifDescrOID, ifIndex)
	result, err := client.Get([]string{oid})
	if err != nil {
		return "", fmt.Errorf("failed to query ifDescr for ifIndex %d: %v", ifIndex, err)
	}
	for _, v := range result.Variables {
		if v.Name != oid {
			continue
		}
		if bytes, ok := v.Value.([]byte); ok {
			return string(bytes), nil
		}
		return fmt.Sprintf("%v", v.Value), nil
	}
	return "", fmt.Errorf("ifDescr not found for ifIndex %d", ifIndex)
}

func trapValueToInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
