package service

import (
	"runtime"
	"time"

	"finanzas-ui/config"
	"finanzas-ui/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

var appStartTime = time.Now()

// Status is a snapshot of host and process health for the admin panel.
type Status struct {
	T        time.Time `json:"-"`
	Cpu      float64   `json:"cpu"`
	CpuCores int       `json:"cpuCores"`
	Mem      struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Uptime   uint64    `json:"uptime"`
	Loads    []float64 `json:"loads"`
	AppStats struct {
		Version    string `json:"version"`
		Goroutines int    `json:"goroutines"`
		Mem        uint64 `json:"mem"`
		Uptime     uint64 `json:"uptime"`
	} `json:"appStats"`
}

// ServerService collects system status for the admin panel.
type ServerService struct{}

func (s *ServerService) GetStatus() *Status {
	status := &Status{T: time.Now()}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	status.CpuCores, err = cpu.Counts(false)
	if err != nil {
		logger.Warning("get cpu cores count failed:", err)
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	avgState, err := load.Avg()
	if err != nil {
		logger.Warning("get load avg failed:", err)
	} else {
		status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
	}

	var rtm runtime.MemStats
	runtime.ReadMemStats(&rtm)
	status.AppStats.Version = config.GetVersion()
	status.AppStats.Goroutines = runtime.NumGoroutine()
	status.AppStats.Mem = rtm.Sys
	status.AppStats.Uptime = uint64(time.Since(appStartTime).Seconds())

	return status
}

// GetLogs returns up to count recent buffered log entries at the given level.
func (s *ServerService) GetLogs(count int, level string) []logger.LogEntry {
	if count <= 0 || count > 500 {
		count = 100
	}
	return logger.GetLogs(count, level)
}
