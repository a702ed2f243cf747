//go:build windows

package regsvr

import (
	"syscall"

	"golang.org/x/sys/windows"
)

type nativeLibrary struct {
	handle windows.Handle
}

func openNative(path string) (Library, error) {
	h, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return nil, &LoadError{Path: path, Code: LastError(err), Err: err}
	}
	return &nativeLibrary{handle: h}, nil
}

func (l *nativeLibrary) Lookup(name string) (EntryPoint, bool) {
	addr, err := windows.GetProcAddress(l.handle, name)
	if err != nil || addr == 0 {
		return nil, false
	}
	return func() int32 {
		r, _, _ := syscall.SyscallN(addr)
		return hresult(r)
	}, true
}

func (l *nativeLibrary) Close() error {
	return windows.FreeLibrary(l.handle)
}
