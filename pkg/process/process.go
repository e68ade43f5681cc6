// Package process 提供进程信息查询，用于识别目标窗口所属进程是否重启
package process

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo 进程信息
type ProcessInfo struct {
	PID  int    `json:"pid"`
	Name string `json:"name"`
	Path string `json:"path"`
	// CreateTime 进程启动时间（Unix 毫秒），同一 PID 被复用时可据此区分
	CreateTime int64 `json:"create_time"`
}

// FindProcess 按名称查找进程 (不区分大小写，支持部分匹配)
func FindProcess(name string) ([]ProcessInfo, error) {
	pids, err := process.Pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	name = strings.ToLower(name)
	var matches []ProcessInfo

	for _, pid := range pids {
		proc, err := process.NewProcess(pid)
		if err != nil {
			continue
		}

		procName, err := proc.Name()
		if err != nil {
			continue
		}

		if strings.Contains(strings.ToLower(procName), name) {
			exe, _ := proc.Exe()
			created, _ := proc.CreateTime()
			matches = append(matches, ProcessInfo{
				PID:        int(pid),
				Name:       procName,
				Path:       exe,
				CreateTime: created,
			})
		}
	}

	return matches, nil
}

// GetProcessByPID 按 PID 获取进程信息
func GetProcessByPID(pid int) (*ProcessInfo, error) {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil, fmt.Errorf("进程不存在: PID=%d", pid)
	}

	name, _ := proc.Name()
	exe, _ := proc.Exe()
	created, err := proc.CreateTime()
	if err != nil {
		return nil, fmt.Errorf("获取进程启动时间失败: PID=%d: %w", pid, err)
	}

	return &ProcessInfo{
		PID:        pid,
		Name:       name,
		Path:       exe,
		CreateTime: created,
	}, nil
}

// IsProcessRunning 检查进程是否正在运行
func IsProcessRunning(pid int) bool {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	running, err := proc.IsRunning()
	if err != nil {
		return false
	}
	return running
}

// Inspector 基于 gopsutil 的进程检查，满足 radiodj.ProcessInspector
type Inspector struct{}

// NewInspector 创建进程检查器
func NewInspector() *Inspector {
	return &Inspector{}
}

// StartTime 返回进程启动时间；进程已退出时返回错误
func (i *Inspector) StartTime(pid int) (int64, error) {
	if !IsProcessRunning(pid) {
		return 0, fmt.Errorf("进程未运行: PID=%d", pid)
	}
	info, err := GetProcessByPID(pid)
	if err != nil {
		return 0, err
	}
	return info.CreateTime, nil
}
