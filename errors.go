package regsvr

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrUnsupported occurs when no native loader exists for the running platform.
	ErrUnsupported = errors.New("dynamic libraries unsupported on this platform")
	// ErrSubsystem occurs when the process-wide subsystem refuses to initialize.
	ErrSubsystem = errors.New("subsystem initialization failed")
	// ErrConfig occurs on an unreadable or invalid configuration file.
	ErrConfig = errors.New("invalid configuration")
	// ErrNotRelocatable occurs when a Go object module was built for another platform.
	ErrNotRelocatable = errors.New("go object built for another platform")
)

// LoadError is returned by a [Loader] when a module can not be loaded.
type LoadError struct {
	Path string
	Code uint32 // platform last-error, 0 when unknown
	Err  error
}

func (e *LoadError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("load %s: %v (last error %d)", e.Path, e.Err, e.Code)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LastError extract the platform last-error carried by err, 0 if there is none.
func LastError(err error) uint32 {
	var le *LoadError
	if errors.As(err, &le) && le.Code != 0 {
		return le.Code
	}
	var en syscall.Errno
	if errors.As(err, &en) {
		return uint32(en)
	}
	return 0
}
