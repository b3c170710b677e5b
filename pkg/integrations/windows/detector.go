//go:build windows

package windows

import (
	"syscall"
	"unsafe"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
	syswin "golang.org/x/sys/windows"

	"focustrack/pkg/window"
)

var (
	user32                       = syswin.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procIsIconic                 = user32.NewProc("IsIconic")
	procIsZoomed                 = user32.NewProc("IsZoomed")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procEnumWindows              = user32.NewProc("EnumWindows")
)

// Detector implements window.Detector for Windows through the
// foreground-window APIs.
type Detector struct{}

// NewDetector creates a new Windows detector.
func NewDetector() *Detector {
	return &Detector{}
}

// IsAvailable reports whether the user32 entry points resolve.
func (d *Detector) IsAvailable() bool {
	return procGetForegroundWindow.Find() == nil
}

// Backend returns "windows".
func (d *Detector) Backend() string {
	return "windows"
}

// GetActiveWindow resolves the foreground window handle to its owning
// process name and window text, or nil when there is no foreground window.
func (d *Detector) GetActiveWindow() *window.Info {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return nil
	}

	info := d.windowInfo(hwnd)
	if info.Class == "" && info.Title == "" {
		return nil
	}
	return &info
}

// GetAllWindows enumerates visible top-level windows. Best effort.
func (d *Detector) GetAllWindows() []window.Info {
	var infos []window.Info

	cb := syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
			return 1 // continue enumeration
		}
		info := d.windowInfo(hwnd)
		if info.Class != "" || info.Title != "" {
			infos = append(infos, info)
		}
		return 1
	})

	if ret, _, err := procEnumWindows.Call(cb, 0); ret == 0 {
		log.Debug().Err(err).Msg("windows: EnumWindows failed")
		return nil
	}
	return infos
}

func (d *Detector) windowInfo(hwnd uintptr) window.Info {
	info := window.Info{
		Title:     windowText(hwnd),
		Workspace: -1,
		Sequence:  uint64(hwnd),
		Backend:   "windows",
	}

	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid != 0 {
		info.PID = int(pid)
		if proc, err := process.NewProcess(int32(pid)); err == nil {
			if name, err := proc.Name(); err == nil {
				info.Class = name
			}
		}
	}

	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		info.Minimized = true
	}
	if zoomed, _, _ := procIsZoomed.Call(hwnd); zoomed != 0 {
		info.Maximized = true
	}

	return info
}

func windowText(hwnd uintptr) string {
	buf := make([]uint16, 512)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf[:n])
}

// Close releases resources. Nothing is held between calls.
func (d *Detector) Close() error {
	return nil
}
