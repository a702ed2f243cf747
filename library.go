package regsvr

import (
	"path/filepath"
	"strings"
)

type (
	// EntryPoint is a resolved zero-argument export returning a status word.
	EntryPoint func() int32
	// Library is a loaded module. It only exists while loaded, Close must be called exactly once.
	Library interface {
		Lookup(name string) (EntryPoint, bool) //exact, case-sensitive export lookup
		Close() error                          //unload the module
	}
	// Loader loads a module from a path, errors should be a [*LoadError].
	Loader interface {
		Open(path string) (Library, error)
	}
	// LoaderFunc adapts a function to [Loader].
	LoaderFunc func(path string) (Library, error)
)

func (f LoaderFunc) Open(path string) (Library, error) {
	return f(path)
}

// NativeLoader loads platform shared libraries.
func NativeLoader() Loader {
	return LoaderFunc(openNative)
}

// Dispatch choose a backend by file extension: Go objects go to Object, everything else to Native.
type Dispatch struct {
	Native Loader
	Object Loader
}

// DefaultLoader is a [Dispatch] over the native loader and an [ObjectLoader] for package main.
func DefaultLoader() Loader {
	return Dispatch{Native: NativeLoader(), Object: new(ObjectLoader)}
}

func (d Dispatch) Open(path string) (Library, error) {
	if IsObject(path) && d.Object != nil {
		return d.Object.Open(path)
	}
	return d.Native.Open(path)
}

// IsObject reports whether path names a Go relocatable object, by extension.
func IsObject(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".o", ".a", ".linkable":
		return true
	}
	return false
}
