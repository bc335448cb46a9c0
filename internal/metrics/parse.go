package metrics

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// CPUTicks are the cumulative busy and idle jiffy counters from the
// aggregate cpu line of /proc/stat.
type CPUTicks struct {
	Busy int64
	Idle int64
}

// Percent returns utilization over the interval since prev. The zero value
// for prev yields the since-boot average, which seeds the first sample.
func (t CPUTicks) Percent(prev CPUTicks) float64 {
	busy := t.Busy - prev.Busy
	total := busy + t.Idle - prev.Idle
	if total <= 0 {
		return 0
	}
	return float64(busy) / float64(total) * 100
}

// ParseCPU extracts the cumulative jiffy counters from /proc/stat content.
// Utilization comes from the difference of two parses; the sampler keeps
// the previous counters between cycles.
func ParseCPU(procStat string) (CPUTicks, error) {
	scanner := bufio.NewScanner(strings.NewReader(procStat))

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return CPUTicks{}, fmt.Errorf("invalid /proc/stat cpu line: %s", line)
		}

		// Fields: cpu user nice system idle iowait irq softirq steal guest guest_nice
		var total, idle int64
		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseInt(fields[i], 10, 64)
			if err != nil {
				return CPUTicks{}, fmt.Errorf("failed to parse cpu field %d: %w", i, err)
			}
			total += val

			// idle is index 4, iowait is index 5
			if i == 4 || i == 5 {
				idle += val
			}
		}

		if total == 0 {
			return CPUTicks{}, fmt.Errorf("zero total jiffies in /proc/stat")
		}
		return CPUTicks{Busy: total - idle, Idle: idle}, nil
	}

	if err := scanner.Err(); err != nil {
		return CPUTicks{}, fmt.Errorf("error scanning /proc/stat: %w", err)
	}
	return CPUTicks{}, fmt.Errorf("no aggregate cpu line in /proc/stat")
}

// memInfo holds the memory and swap figures parsed from /proc/meminfo.
type memInfo struct {
	MemUsed   int64
	MemTotal  int64
	SwapUsed  int64
	SwapTotal int64
}

// ParseMemory extracts memory and swap usage from /proc/meminfo content.
// Used memory follows MemAvailable, the kernel's own estimate of what is
// actually reclaimable.
func ParseMemory(procMeminfo string) (memInfo, error) {
	var memTotal, memAvailable, swapTotal, swapFree int64
	found := 0

	scanner := bufio.NewScanner(strings.NewReader(procMeminfo))
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		// Values in /proc/meminfo are in kB
		val, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		valBytes := val * 1024

		switch strings.TrimSuffix(parts[0], ":") {
		case "MemTotal":
			memTotal = valBytes
			found++
		case "MemAvailable":
			memAvailable = valBytes
			found++
		case "SwapTotal":
			swapTotal = valBytes
			found++
		case "SwapFree":
			swapFree = valBytes
			found++
		}
	}

	if err := scanner.Err(); err != nil {
		return memInfo{}, fmt.Errorf("error scanning /proc/meminfo: %w", err)
	}
	if found < 2 || memTotal == 0 {
		return memInfo{}, fmt.Errorf("insufficient memory info in /proc/meminfo")
	}

	return memInfo{
		MemUsed:   memTotal - memAvailable,
		MemTotal:  memTotal,
		SwapUsed:  swapTotal - swapFree,
		SwapTotal: swapTotal,
	}, nil
}

// ParseDisk extracts used/total bytes for the working filesystem from
// `df -P -k <dir>` output: one header line, then one data line.
func ParseDisk(dfOutput string) (used, total int64, err error) {
	lines := strings.Split(strings.TrimSpace(dfOutput), "\n")
	if len(lines) < 2 {
		return 0, 0, fmt.Errorf("unexpected df output: %q", dfOutput)
	}

	// POSIX format: Filesystem 1024-blocks Used Available Capacity Mounted on
	fields := strings.Fields(lines[1])
	if len(fields) < 4 {
		return 0, 0, fmt.Errorf("unexpected df line: %q", lines[1])
	}

	totalKB, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse df total: %w", err)
	}
	usedKB, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse df used: %w", err)
	}

	return usedKB * 1024, totalKB * 1024, nil
}
