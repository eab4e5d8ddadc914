// internal/benchmark/host.go
package benchmark

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// CollectHostInfo snapshots the machine the benchmark runs on. Fields that
// cannot be read are left at their zero value.
func CollectHostInfo() HostInfo {
	info := HostInfo{
		OS:           runtime.GOOS,
		LogicalCores: runtime.NumCPU(),
	}
	if stat, err := host.Info(); err == nil {
		info.Hostname = stat.Hostname
		info.Platform = stat.Platform
		info.Kernel = stat.KernelVersion
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}
	if count, err := cpu.Counts(true); err == nil && count > 0 {
		info.LogicalCores = count
	}
	if stat, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotal = stat.Total
	}
	return info
}
