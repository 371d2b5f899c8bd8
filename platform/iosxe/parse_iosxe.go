package iosxe

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/carlosrabelo/arava/domain/entities"
)

var (
	uptimeRegex     = regexp.MustCompile(`(?m)^\s*(\S+)\s+uptime\s+is\s+(.+?)\s*$`)
	rateRegex       = regexp.MustCompile(`(?m)^\s*(?:\d+\s+(?:minute|second))\s+(input|output)\s+rate\s+(\d+)\s+bits/sec,\s+(\d+)\s+packets/sec`)
	macTableRegex   = regexp.MustCompile(`(?m)^\s*(\d+)\s+([0-9A-Fa-f]{4}\.[0-9A-Fa-f]{4}\.[0-9A-Fa-f]{4})\s+(DYNAMIC|STATIC)\s+(\S+)\s*$`)
	cpuHeaderRegex  = regexp.MustCompile(`CPU utilization for five seconds: (\d+)%/(\d+)%; one minute: (\d+)%; five minutes: (\d+)%`)
	cpuProcessRegex = regexp.MustCompile(`(?m)^\s*(\d+)\s+(\d+)\s+(\d+)\s+\d+\s+(\d+(?:\.\d+)?)%\s+(\d+(?:\.\d+)?)%\s+(\d+(?:\.\d+)?)%\s+\S+\s+(.+?)\s*$`)
	memoryPoolRegex = regexp.MustCompile(`(?m)^\s*(\S+)\s+[0-9A-Fa-f]+\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s*$`)
	commandErrHints = []string{
		"invalid input",
		"unknown command",
		"incomplete command",
		"ambiguous command",
		"unrecognized command",
		"invalid command",
		"syntax error",
		"cannot find command",
	}
)

func parseIOSXEUptime(output string) entities.UptimeInfo {
	info := entities.UptimeInfo{Raw: strings.TrimSpace(output)}
	match := uptimeRegex.FindStringSubmatch(output)
	if len(match) < 3 {
		return info
	}
	info.Hostname = match[1]
	info.Uptime = match[2]
	return info
}

func parseIOSXERates(output, iface string) entities.InterfaceRate {
	rate := entities.InterfaceRate{Interface: iface}
	for _, match := range rateRegex.FindAllStringSubmatch(output, -1) {
		bits, _ := strconv.ParseInt(match[2], 10, 64)
		pkts, _ := strconv.ParseInt(match[3], 10, 64)
		if match[1] == "input" {
			rate.InputBits = bits
			rate.InputPkts = pkts
		} else {
			rate.OutputBits = bits
			rate.OutputPkts = pkts
		}
	}
	return rate
}

func parseIOSXEMACTable(output string) []entities.MacEntry {
	entries := make([]entities.MacEntry, 0)
	for _, match := range macTableRegex.FindAllStringSubmatch(output, -1) {
		if len(match) < 5 {
			continue
		}
		macFull := match[2]
		entries = append(entries, entities.MacEntry{
			Vlan:      match[1],
			Mac:       normalizeMAC(macFull),
			MacFull:   macFull,
			Type:      match[3],
			Interface: match[4],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Vlan != entries[j].Vlan {
			return vlanLess(entries[i].Vlan, entries[j].Vlan)
		}
		return entries[i].Mac < entries[j].Mac
	})
	return entries
}

func parseIOSXECPU(output string) (entities.CPULoad, []entities.ProcessCPU) {
	var load entities.CPULoad
	if match := cpuHeaderRegex.FindStringSubmatch(output); len(match) == 5 {
		load.FiveSeconds, _ = strconv.ParseFloat(match[1], 64)
		load.FiveSecondsIRQ, _ = strconv.ParseFloat(match[2], 64)
		load.OneMinute, _ = strconv.ParseFloat(match[3], 64)
		load.FiveMinutes, _ = strconv.ParseFloat(match[4], 64)
	}
	processes := make([]entities.ProcessCPU, 0)
	for _, match := range cpuProcessRegex.FindAllStringSubmatch(output, -1) {
		if len(match) < 8 {
			continue
		}
		pid, _ := strconv.Atoi(match[1])
		runtime, _ := strconv.ParseInt(match[2], 10, 64)
		invoked, _ := strconv.ParseInt(match[3], 10, 64)
		fiveSec, _ := strconv.ParseFloat(match[4], 64)
		oneMin, _ := strconv.ParseFloat(match[5], 64)
		fiveMin, _ := strconv.ParseFloat(match[6], 64)
		processes = append(processes, entities.ProcessCPU{
			PID:         pid,
			Runtime:     runtime,
			Invoked:     invoked,
			FiveSeconds: fiveSec,
			OneMinute:   oneMin,
			FiveMinutes: fiveMin,
			Name:        match[7],
		})
	}
	return load, processes
}

func parseIOSXEMemoryStats(output string) []entities.MemoryPool {
	pools := make([]entities.MemoryPool, 0)
	for _, match := range memoryPoolRegex.FindAllStringSubmatch(output, -1) {
		if len(match) < 7 {
			continue
		}
		total, _ := strconv.ParseInt(match[2], 10, 64)
		used, _ := strconv.ParseInt(match[3], 10, 64)
		free, _ := strconv.ParseInt(match[4], 10, 64)
		pools = append(pools, entities.MemoryPool{
			Name:  match[1],
			Total: total,
			Used:  used,
			Free:  free,
		})
	}
	return pools
}

func normalizeMAC(mac string) string {
	return strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(mac, ":", ""), ".", ""))
}

func vlanLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

func isIOSXECommandError(output string) bool {
	lower := strings.ToLower(output)
	for _, hint := range commandErrHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
