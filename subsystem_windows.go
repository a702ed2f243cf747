//go:build windows

package regsvr

import (
	"fmt"
	"runtime"
	"syscall"

	"golang.org/x/sys/windows"
)

var (
	modole32            = windows.NewLazySystemDLL("ole32.dll")
	procOleInitialize   = modole32.NewProc("OleInitialize")
	procOleUninitialize = modole32.NewProc("OleUninitialize")
)

// sFalse is returned when the apartment was already initialized on this thread, it still needs a matching uninitialize.
const sFalse = 1

func platformSubsystem(kind string) Subsystem {
	if kind == SubsystemCOM {
		return SubsystemFunc(acquireCOM)
	}
	return SubsystemFunc(acquireOLE)
}

// COM apartments belong to a thread, the goroutine stays locked until release.
func acquireOLE() (Token, error) {
	runtime.LockOSThread()
	r, _, _ := procOleInitialize.Call(0)
	if hr := hresult(r); hr < 0 {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: OleInitialize 0x%08X", ErrSubsystem, uint32(hr))
	}
	return TokenFunc(func() {
		_, _, _ = procOleUninitialize.Call()
		runtime.UnlockOSThread()
	}), nil
}

func acquireCOM() (Token, error) {
	runtime.LockOSThread()
	if err := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED); err != nil && err != syscall.Errno(sFalse) {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: CoInitializeEx: %v", ErrSubsystem, err)
	}
	return TokenFunc(func() {
		windows.CoUninitialize()
		runtime.UnlockOSThread()
	}), nil
}
