package inspector

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
)

// sysProbes holds the host query functions so failures can be simulated in
// tests. The zero value is not usable; use realSysProbes.
type sysProbes struct {
	hostInfo      func(ctx context.Context) (*host.InfoStat, error)
	cpuCounts     func(ctx context.Context, logical bool) (int, error)
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	interfaces    func(ctx context.Context) (gnet.InterfaceStatList, error)
}

func realSysProbes() sysProbes {
	return sysProbes{
		hostInfo:      host.InfoWithContext,
		cpuCounts:     cpu.CountsWithContext,
		virtualMemory: mem.VirtualMemoryWithContext,
		interfaces:    gnet.InterfacesWithContext,
	}
}

// ReadSystemInfo takes a synchronous snapshot of the host: platform, CPU
// architecture, logical core count, memory, and the interface table.
// Collection is all-or-nothing: if any probe fails the whole snapshot is the
// fixed unknown/zero fallback. It never returns an error and never panics.
func ReadSystemInfo(ctx context.Context) SystemInfo {
	return readSystemInfo(ctx, realSysProbes())
}

func readSystemInfo(ctx context.Context, probes sysProbes) (info SystemInfo) {
	defer func() {
		if recover() != nil {
			info = UnknownSystemInfo()
		}
	}()

	hi, err := probes.hostInfo(ctx)
	if err != nil || hi == nil {
		return UnknownSystemInfo()
	}

	cores, err := probes.cpuCounts(ctx, true)
	if err != nil {
		return UnknownSystemInfo()
	}

	vm, err := probes.virtualMemory(ctx)
	if err != nil || vm == nil {
		return UnknownSystemInfo()
	}

	ifaces, err := probes.interfaces(ctx)
	if err != nil {
		return UnknownSystemInfo()
	}

	table := make([]NetworkInterface, 0, len(ifaces))
	for _, iface := range ifaces {
		addrs := make([]string, 0, len(iface.Addrs))
		for _, a := range iface.Addrs {
			addrs = append(addrs, a.Addr)
		}
		table = append(table, NetworkInterface{
			Name:      iface.Name,
			MAC:       iface.HardwareAddr,
			Addresses: addrs,
		})
	}

	return SystemInfo{
		Platform:          hi.Platform,
		CPUArch:           hi.KernelArch,
		CPUCores:          cores,
		TotalMemory:       vm.Total,
		FreeMemory:        vm.Available,
		NetworkInterfaces: table,
	}
}
