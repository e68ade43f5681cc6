//go:build windows

package input

import (
	"math"
	"sync"
	"syscall"

	"github.com/go-vgo/robotgo"
)

// =====================================================================
// 坐标空间
// =====================================================================
//
// GetWindowRect 返回的控件矩形是物理像素（进程声明 DPI Aware 时），
// robotgo.Move 在不同版本下可能期望物理或逻辑坐标。
//
// coordScale = 物理屏幕尺寸 / robotgo.GetScreenSize()
//   - GetScreenSize 返回逻辑尺寸: coordScale = DPI_scale
//   - GetScreenSize 返回物理尺寸: coordScale = 1.0
//
// NormalizePointForInput:  物理坐标 → robotgo坐标 = x / coordScale
// =====================================================================

var (
	coordinateScaleMu sync.Mutex
	cachedScaleX      float64
	cachedScaleY      float64
	coordsDetected    bool
)

var (
	user32DPI               = syscall.NewLazyDLL("user32.dll")
	procGetSystemMetricsDPI = user32DPI.NewProc("GetSystemMetrics")
	procGetDpiForSystemDPI  = user32DPI.NewProc("GetDpiForSystem")
)

const (
	smCxScreen = 0
	smCyScreen = 1
)

// GetDPIScale 获取系统 DPI 缩放比例
// 1.0 = 100%, 1.25 = 125%, 1.5 = 150%, 2.0 = 200%
func GetDPIScale() float64 {
	if procGetDpiForSystemDPI.Find() != nil {
		return 1.0
	}
	d, _, _ := procGetDpiForSystemDPI.Call()
	if d == 0 {
		return 1.0
	}
	return normalizeScale(float64(d) / 96.0)
}

// getCoordinateScale 获取 物理像素 → robotgo输入坐标 之间的缩放比
func getCoordinateScale() (float64, float64) {
	coordinateScaleMu.Lock()
	defer coordinateScaleMu.Unlock()

	if coordsDetected {
		return cachedScaleX, cachedScaleY
	}

	cachedScaleX, cachedScaleY = detectCoordinateScale()
	coordsDetected = true
	return cachedScaleX, cachedScaleY
}

func detectCoordinateScale() (float64, float64) {
	reportedW, reportedH := robotgo.GetScreenSize()
	if reportedW <= 0 || reportedH <= 0 {
		return 1.0, 1.0
	}

	physW, _, _ := procGetSystemMetricsDPI.Call(smCxScreen)
	physH, _, _ := procGetSystemMetricsDPI.Call(smCyScreen)
	if physW == 0 || physH == 0 {
		s := GetDPIScale()
		return s, s
	}

	return normalizeScale(float64(physW) / float64(reportedW)),
		normalizeScale(float64(physH) / float64(reportedH))
}

func normalizeScale(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1.0
	}
	if v < 0.5 || v > 4.0 {
		return 1.0
	}
	if math.Abs(v-1.0) < 0.05 {
		return 1.0
	}
	return v
}

// NormalizePointForInput 将物理坐标转换为 robotgo 输入坐标
func NormalizePointForInput(x, y int) (int, int) {
	scaleX, scaleY := getCoordinateScale()
	if scaleX <= 0 {
		scaleX = 1.0
	}
	if scaleY <= 0 {
		scaleY = 1.0
	}
	return ScaleInt(x, 1.0/scaleX), ScaleInt(y, 1.0/scaleY)
}
