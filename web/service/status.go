package service

import (
	"os"
	"runtime"
	"time"

	"github.com/careerconnect/careerconnect/config"
	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/database/model"
	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/util/common"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

type Usage struct {
	Current uint64 `json:"current"`
	Total   uint64 `json:"total"`
	Human   string `json:"human"`
}

func newUsage(current, total uint64) Usage {
	return Usage{Current: current, Total: total, Human: common.FormatBytes(current) + " / " + common.FormatBytes(total)}
}

// Status is a snapshot of the host, the process and the stored data.
type Status struct {
	Name     string    `json:"name"`
	Version  string    `json:"version"`
	Cpu      float64   `json:"cpu"`
	CpuCores int       `json:"cpuCores"`
	Mem      Usage     `json:"mem"`
	Disk     Usage     `json:"disk"`
	Uptime   uint64    `json:"uptime"`
	Loads    []float64 `json:"loads"`
	AppStats struct {
		Threads    int32  `json:"threads"`
		Mem        uint64 `json:"mem"`
		Goroutines int    `json:"goroutines"`
		Uptime     uint64 `json:"uptime"`
	} `json:"appStats"`
	Counts struct {
		Users        int64 `json:"users"`
		Jobs         int64 `json:"jobs"`
		Applications int64 `json:"applications"`
	} `json:"counts"`
}

type ServerService struct {
	startedAt time.Time
}

func NewServerService() *ServerService {
	return &ServerService{startedAt: time.Now()}
}

// GetStatus collects the snapshot. Probes that fail are logged and left at
// their zero value.
func (s *ServerService) GetStatus() *Status {
	status := &Status{
		Name:    config.GetName(),
		Version: config.GetVersion(),
	}

	if percents, err := cpu.Percent(0, false); err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}
	if cores, err := cpu.Counts(false); err != nil {
		logger.Warning("get cpu cores count failed:", err)
	} else {
		status.CpuCores = cores
	}

	if upTime, err := host.Uptime(); err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	if memInfo, err := mem.VirtualMemory(); err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem = newUsage(memInfo.Used, memInfo.Total)
	}

	if diskInfo, err := disk.Usage("/"); err != nil {
		logger.Warning("get disk usage failed:", err)
	} else {
		status.Disk = newUsage(diskInfo.Used, diskInfo.Total)
	}

	if avg, err := load.Avg(); err != nil {
		logger.Debug("get load avg failed:", err)
	} else {
		status.Loads = []float64{avg.Load1, avg.Load5, avg.Load15}
	}

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if threads, err := p.NumThreads(); err == nil {
			status.AppStats.Threads = threads
		}
		if mi, err := p.MemoryInfo(); err == nil {
			status.AppStats.Mem = mi.RSS
		}
	}
	status.AppStats.Goroutines = runtime.NumGoroutine()
	status.AppStats.Uptime = uint64(time.Since(s.startedAt).Seconds())

	db := database.GetDB()
	db.Model(&model.User{}).Count(&status.Counts.Users)
	db.Model(&model.Job{}).Count(&status.Counts.Jobs)
	db.Model(&model.Application{}).Count(&status.Counts.Applications)

	return status
}
